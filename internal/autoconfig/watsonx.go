package autoconfig

import (
	"context"

	"github.com/connorhough/aiwire/internal/config"
	"github.com/connorhough/aiwire/internal/llm"
	"github.com/connorhough/aiwire/internal/llm/watsonx"
	"github.com/connorhough/aiwire/internal/registry"
)

// watsonxChatProperties mirrors ai.watsonx.chat.options
type watsonxChatProperties struct {
	Model             *string  `mapstructure:"model"`
	Temperature       *float64 `mapstructure:"temperature"`
	TopP              *float64 `mapstructure:"top_p"`
	TopK              *int     `mapstructure:"top_k"`
	DecodingMethod    *string  `mapstructure:"decoding_method"`
	MaxNewTokens      *int     `mapstructure:"max_new_tokens"`
	MinNewTokens      *int     `mapstructure:"min_new_tokens"`
	StopSequences     []string `mapstructure:"stop_sequences"`
	RepetitionPenalty *float64 `mapstructure:"repetition_penalty"`
	RandomSeed        *int     `mapstructure:"random_seed"`
}

type watsonxEmbeddingProperties struct {
	Model *string `mapstructure:"model"`
}

// Watsonx returns the watsonx.ai module. Chat and embedding share one API
// client, created the first time either rule builds.
func Watsonx(opts ...watsonx.APIOption) Module {
	return func(snap *config.Snapshot) []Rule {
		var api *watsonx.API
		sharedAPI := func(ctx context.Context) (*watsonx.API, error) {
			if api != nil {
				return api, nil
			}
			a, err := watsonx.NewAPI(ctx, snap.Watsonx.Connection(), opts...)
			if err != nil {
				return nil, err
			}
			api = a
			return api, nil
		}

		return []Rule{
			{
				Provider:   watsonx.ProviderID,
				Capability: llm.CapabilityChat,
				Build: func(ctx context.Context) (registry.Registration, error) {
					defaults, err := watsonxChatOptions(snap.Watsonx.Chat)
					if err != nil {
						return registry.Registration{}, err
					}
					a, err := sharedAPI(ctx)
					if err != nil {
						return registry.Registration{}, err
					}
					model, err := watsonx.NewChatModel(a, defaults)
					if err != nil {
						return registry.Registration{}, err
					}
					return registry.Registration{Client: model, Options: defaults}, nil
				},
			},
			{
				Provider:   watsonx.ProviderID,
				Capability: llm.CapabilityEmbedding,
				Build: func(ctx context.Context) (registry.Registration, error) {
					defaults, err := watsonxEmbeddingOptions(snap.Watsonx.Embedding)
					if err != nil {
						return registry.Registration{}, err
					}
					a, err := sharedAPI(ctx)
					if err != nil {
						return registry.Registration{}, err
					}
					model, err := watsonx.NewEmbeddingModel(a, defaults)
					if err != nil {
						return registry.Registration{}, err
					}
					return registry.Registration{Client: model, Options: defaults}, nil
				},
			},
		}
	}
}

// watsonxChatOptions applies the configured options over the built-in defaults
func watsonxChatOptions(block config.Block) (*watsonx.ChatOptions, error) {
	var p watsonxChatProperties
	if err := config.DecodeOptions(block.Options, &p); err != nil {
		return nil, llm.ErrInvalidConfiguration(watsonx.ProviderID, "chat.options", err)
	}

	b := watsonx.DefaultChatOptions()
	if p.Model != nil {
		b.Model(*p.Model)
	}
	if p.Temperature != nil {
		b.Temperature(*p.Temperature)
	}
	if p.TopP != nil {
		b.TopP(*p.TopP)
	}
	if p.TopK != nil {
		b.TopK(*p.TopK)
	}
	if p.DecodingMethod != nil {
		b.DecodingMethod(*p.DecodingMethod)
	}
	if p.MaxNewTokens != nil {
		b.MaxNewTokens(*p.MaxNewTokens)
	}
	if p.MinNewTokens != nil {
		b.MinNewTokens(*p.MinNewTokens)
	}
	if p.StopSequences != nil {
		b.StopSequences(p.StopSequences)
	}
	if p.RepetitionPenalty != nil {
		b.RepetitionPenalty(*p.RepetitionPenalty)
	}
	if p.RandomSeed != nil {
		b.RandomSeed(*p.RandomSeed)
	}
	return b.Build(), nil
}

func watsonxEmbeddingOptions(block config.Block) (*watsonx.EmbeddingOptions, error) {
	var p watsonxEmbeddingProperties
	if err := config.DecodeOptions(block.Options, &p); err != nil {
		return nil, llm.ErrInvalidConfiguration(watsonx.ProviderID, "embedding.options", err)
	}

	b := watsonx.DefaultEmbeddingOptions()
	if p.Model != nil {
		b.Model(*p.Model)
	}
	return b.Build(), nil
}
