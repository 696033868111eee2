//go:build !no_gemini

package gemini

import (
	"github.com/connorhough/aiwire/internal/llm"
	"github.com/connorhough/aiwire/internal/providers"
)

func init() {
	providers.Provide(ProviderID, llm.CapabilityChat, llm.CapabilityEmbedding)
}
