package watsonx

import (
	"context"
	"fmt"
	"strings"

	"github.com/connorhough/aiwire/internal/llm"
)

// EmbeddingModel implements llm.EmbeddingModel on the watsonx.ai embedding endpoint.
type EmbeddingModel struct {
	api      *API
	defaults *EmbeddingOptions
}

var _ llm.EmbeddingModel = (*EmbeddingModel)(nil)

func NewEmbeddingModel(api *API, defaults *EmbeddingOptions) (*EmbeddingModel, error) {
	if strings.TrimSpace(api.conn.EmbeddingEndpoint) == "" {
		return nil, llm.ErrMissingConfiguration(ProviderID, "embedding_endpoint")
	}
	return &EmbeddingModel{
		api:      api,
		defaults: defaults.Copy(),
	}, nil
}

func (m *EmbeddingModel) Name() string {
	return ProviderID
}

// API returns the client the model sends requests through
func (m *EmbeddingModel) API() *API {
	return m.api
}

func (m *EmbeddingModel) DefaultOptions() llm.EmbeddingOptions {
	return m.defaults
}

func (m *EmbeddingModel) Embed(ctx context.Context, texts []string, opts llm.EmbeddingOptions) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	merged := MergeEmbeddingOptions(m.defaults, opts)
	model, ok := merged.Model()
	if !ok || model == "" {
		return nil, fmt.Errorf("watsonx embedding: model is not set")
	}

	resp, err := m.api.Embed(ctx, EmbeddingRequest{
		Inputs:  texts,
		ModelID: model,
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Results) != len(texts) {
		return nil, fmt.Errorf("watsonx API returned %d embeddings for %d inputs", len(resp.Results), len(texts))
	}

	vectors := make([][]float32, len(resp.Results))
	for i, r := range resp.Results {
		vectors[i] = r.Embedding
	}
	return vectors, nil
}
