package config

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/connorhough/aiwire/internal/llm/gemini"
	"github.com/connorhough/aiwire/internal/llm/watsonx"
)

// Snapshot is the resolved configuration the assembler works from.
// It is read once at startup and never changed afterwards.
type Snapshot struct {
	Model   Selection     `mapstructure:"model"`
	Watsonx WatsonxConfig `mapstructure:"watsonx"`
	Gemini  GeminiConfig  `mapstructure:"gemini"`
}

// WatsonxConfig is the watsonx.ai connection descriptor plus per-capability blocks.
type WatsonxConfig struct {
	BaseURL           string `mapstructure:"base_url"`
	StreamEndpoint    string `mapstructure:"stream_endpoint"`
	TextEndpoint      string `mapstructure:"text_endpoint"`
	EmbeddingEndpoint string `mapstructure:"embedding_endpoint"`
	ProjectID         string `mapstructure:"project_id"`
	IAMToken          string `mapstructure:"iam_token"`

	Chat      Block `mapstructure:"chat"`
	Embedding Block `mapstructure:"embedding"`
}

// Connection returns the descriptor used to build the watsonx.ai client
func (c WatsonxConfig) Connection() watsonx.Connection {
	return watsonx.Connection{
		BaseURL:           c.BaseURL,
		StreamEndpoint:    c.StreamEndpoint,
		TextEndpoint:      c.TextEndpoint,
		EmbeddingEndpoint: c.EmbeddingEndpoint,
		ProjectID:         c.ProjectID,
		IAMToken:          c.IAMToken,
	}
}

// GeminiConfig is the Gemini connection descriptor plus per-capability blocks.
type GeminiConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`

	Chat      Block `mapstructure:"chat"`
	Embedding Block `mapstructure:"embedding"`
}

// Block is the configuration of one capability of one provider.
type Block struct {
	// Options is the flat map of tunable-parameter defaults.
	Options map[string]any `mapstructure:"options"`
}

// SetDefaults registers defaults for every known key so that files,
// environment variables and defaults all resolve through v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("ai.model.chat", "")
	v.SetDefault("ai.model.embedding", "")

	v.SetDefault("ai.watsonx.base_url", watsonx.DefaultBaseURL)
	v.SetDefault("ai.watsonx.stream_endpoint", watsonx.DefaultStreamEndpoint)
	v.SetDefault("ai.watsonx.text_endpoint", watsonx.DefaultTextEndpoint)
	v.SetDefault("ai.watsonx.embedding_endpoint", watsonx.DefaultEmbeddingEndpoint)
	v.SetDefault("ai.watsonx.project_id", "")
	v.SetDefault("ai.watsonx.iam_token", "")

	v.SetDefault("ai.gemini.api_key", "")
	v.SetDefault("ai.gemini.base_url", "")
	_ = v.BindEnv("ai.gemini.api_key", "AIWIRE_AI_GEMINI_API_KEY", gemini.APIKeyEnvVar)
}

// Load resolves a Snapshot from v.
func Load(v *viper.Viper) (*Snapshot, error) {
	SetDefaults(v)

	var root struct {
		AI Snapshot `mapstructure:"ai"`
	}
	if err := v.Unmarshal(&root); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	return &root.AI, nil
}

// DecodeOptions decodes a flat options map into out, a pointer to a struct
// with mapstructure tags. Scalars are converted weakly ("0.5" becomes 0.5);
// unknown keys are ignored.
func DecodeOptions(raw map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}
