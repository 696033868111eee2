package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/connorhough/aiwire/internal/llm"
)

// EmbeddingModel implements llm.EmbeddingModel for the Gemini API
type EmbeddingModel struct {
	client   *genai.Client
	defaults *EmbeddingOptions
}

var _ llm.EmbeddingModel = (*EmbeddingModel)(nil)

func NewEmbeddingModel(client *genai.Client, defaults *EmbeddingOptions) *EmbeddingModel {
	return &EmbeddingModel{
		client:   client,
		defaults: defaults.Copy(),
	}
}

func (m *EmbeddingModel) Name() string {
	return ProviderID
}

func (m *EmbeddingModel) DefaultOptions() llm.EmbeddingOptions {
	return m.defaults
}

func (m *EmbeddingModel) Embed(ctx context.Context, texts []string, opts llm.EmbeddingOptions) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	merged := MergeEmbeddingOptions(m.defaults, opts)
	modelName, ok := merged.Model()
	if !ok || modelName == "" {
		modelName = DefaultEmbeddingModel()
	}

	contents := make([]*genai.Content, 0, len(texts))
	for _, text := range texts {
		contents = append(contents, genai.NewContentFromText(text, genai.RoleUser))
	}

	resp, err := m.client.Models.EmbedContent(ctx, modelName, contents, merged.embedConfig())
	if err != nil {
		return nil, wrapError(err, modelName)
	}

	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("gemini API returned %d embeddings for %d inputs", len(resp.Embeddings), len(texts))
	}

	vectors := make([][]float32, len(resp.Embeddings))
	for i, e := range resp.Embeddings {
		vectors[i] = e.Values
	}
	return vectors, nil
}
