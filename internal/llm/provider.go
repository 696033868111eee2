// Package llm specifies the capability-level model interfaces and the option
// contracts shared by every provider implementation.
package llm

import (
	"context"
)

// Capability names a model function category. Exactly one provider
// implementation satisfies a capability at a time.
type Capability string

const (
	CapabilityChat      Capability = "chat"
	CapabilityEmbedding Capability = "embedding"
)

// Capabilities returns every known capability in assembly order.
func Capabilities() []Capability {
	return []Capability{CapabilityChat, CapabilityEmbedding}
}

// ChatModel generates text from a prompt.
type ChatModel interface {
	// Name returns the provider identifier (e.g., "watsonx-ai", "gemini")
	Name() string

	// DefaultOptions returns the options assembled from configuration.
	// The returned record is shared and must never be modified.
	DefaultOptions() ChatOptions

	// Generate sends a prompt and returns the response. Fields present in opts
	// override the defaults for this call only; opts may be nil.
	Generate(ctx context.Context, prompt string, opts ChatOptions) (string, error)
}

// EmbeddingModel turns text into vectors.
type EmbeddingModel interface {
	Name() string

	DefaultOptions() EmbeddingOptions

	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, texts []string, opts EmbeddingOptions) ([][]float32, error)
}
