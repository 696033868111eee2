package llm

// ChatOptions is the capability-agnostic accessor contract for chat options.
//
// Every accessor reports whether the field is present. An absent field means
// "use the provider default". Implementations return absent for fields their
// provider does not support, never an error.
type ChatOptions interface {
	Model() (string, bool)
	Temperature() (float64, bool)
	TopP() (float64, bool)
	TopK() (int, bool)
	MaxTokens() (int, bool)
	// StopSequences returns a copy; nil means absent.
	StopSequences() []string
	FrequencyPenalty() (float64, bool)
	PresencePenalty() (float64, bool)
}

// EmbeddingOptions is the accessor contract for embedding options.
type EmbeddingOptions interface {
	Model() (string, bool)
	Dimensions() (int, bool)
}
