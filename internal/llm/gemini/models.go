package gemini

// ProviderID is the identifier selectors use to choose Gemini.
const ProviderID = "gemini"

// APIKeyEnvVar is consulted when no API key is configured.
const APIKeyEnvVar = "GEMINI_API_KEY"

// Model name constants for Gemini API
// Gemini requires full model names
const (
	ModelFlash     = "gemini-2.5-flash"
	ModelPro       = "gemini-2.5-pro"
	ModelEmbedding = "gemini-embedding-001"
)

// DefaultModel returns the default Gemini chat model
func DefaultModel() string {
	return ModelFlash
}

// DefaultEmbeddingModel returns the default Gemini embedding model
func DefaultEmbeddingModel() string {
	return ModelEmbedding
}
