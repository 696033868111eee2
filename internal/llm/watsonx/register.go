//go:build !no_watsonx

package watsonx

import (
	"github.com/connorhough/aiwire/internal/llm"
	"github.com/connorhough/aiwire/internal/providers"
)

func init() {
	providers.Provide(ProviderID, llm.CapabilityChat, llm.CapabilityEmbedding)
}
