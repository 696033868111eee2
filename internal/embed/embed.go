// Package embed computes embeddings with the active embedding model.
package embed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/connorhough/aiwire/internal/registry"
)

// Vector is one embedding as written to output
type Vector struct {
	Text      string    `json:"text"`
	Dimension int       `json:"dimension"`
	Embedding []float32 `json:"embedding"`
}

// Run embeds texts with the registered embedding model and its defaults.
func Run(ctx context.Context, reg *registry.Memory, texts []string) ([]Vector, error) {
	model, ok := reg.EmbeddingModel()
	if !ok {
		return nil, fmt.Errorf("no embedding model is registered; check ai.model.embedding and provider credentials")
	}

	embeddings, err := model.Embed(ctx, texts, nil)
	if err != nil {
		return nil, err
	}
	if len(embeddings) != len(texts) {
		return nil, fmt.Errorf("%s returned %d embeddings for %d texts", model.Name(), len(embeddings), len(texts))
	}

	out := make([]Vector, len(texts))
	for i, text := range texts {
		out[i] = Vector{Text: text, Dimension: len(embeddings[i]), Embedding: embeddings[i]}
	}
	return out, nil
}

// Write emits one JSON object per line
func Write(w io.Writer, vectors []Vector) error {
	enc := json.NewEncoder(w)
	for _, v := range vectors {
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
	return nil
}
