package autoconfig

import (
	"context"

	"google.golang.org/genai"

	"github.com/connorhough/aiwire/internal/config"
	"github.com/connorhough/aiwire/internal/llm"
	"github.com/connorhough/aiwire/internal/llm/gemini"
	"github.com/connorhough/aiwire/internal/registry"
)

type geminiChatProperties struct {
	Model            *string  `mapstructure:"model"`
	Temperature      *float64 `mapstructure:"temperature"`
	TopP             *float64 `mapstructure:"top_p"`
	TopK             *int     `mapstructure:"top_k"`
	MaxTokens        *int     `mapstructure:"max_tokens"`
	StopSequences    []string `mapstructure:"stop_sequences"`
	CandidateCount   *int     `mapstructure:"candidate_count"`
	PresencePenalty  *float64 `mapstructure:"presence_penalty"`
	FrequencyPenalty *float64 `mapstructure:"frequency_penalty"`
	Seed             *int     `mapstructure:"seed"`
}

type geminiEmbeddingProperties struct {
	Model      *string `mapstructure:"model"`
	Dimensions *int    `mapstructure:"dimensions"`
	TaskType   *string `mapstructure:"task_type"`
}

// Gemini returns the Gemini module. Chat and embedding share one client,
// created the first time either rule builds.
func Gemini(opts ...gemini.ClientOption) Module {
	return func(snap *config.Snapshot) []Rule {
		var client *genai.Client
		sharedClient := func(ctx context.Context) (*genai.Client, error) {
			if client != nil {
				return client, nil
			}
			conn := gemini.Connection{APIKey: snap.Gemini.APIKey, BaseURL: snap.Gemini.BaseURL}
			c, err := gemini.NewClient(ctx, conn, opts...)
			if err != nil {
				return nil, err
			}
			client = c
			return client, nil
		}

		return []Rule{
			{
				Provider:   gemini.ProviderID,
				Capability: llm.CapabilityChat,
				Build: func(ctx context.Context) (registry.Registration, error) {
					defaults, err := geminiChatOptions(snap.Gemini.Chat)
					if err != nil {
						return registry.Registration{}, err
					}
					c, err := sharedClient(ctx)
					if err != nil {
						return registry.Registration{}, err
					}
					return registry.Registration{Client: gemini.NewChatModel(c, defaults), Options: defaults}, nil
				},
			},
			{
				Provider:   gemini.ProviderID,
				Capability: llm.CapabilityEmbedding,
				Build: func(ctx context.Context) (registry.Registration, error) {
					defaults, err := geminiEmbeddingOptions(snap.Gemini.Embedding)
					if err != nil {
						return registry.Registration{}, err
					}
					c, err := sharedClient(ctx)
					if err != nil {
						return registry.Registration{}, err
					}
					return registry.Registration{Client: gemini.NewEmbeddingModel(c, defaults), Options: defaults}, nil
				},
			},
		}
	}
}

func geminiChatOptions(block config.Block) (*gemini.ChatOptions, error) {
	var p geminiChatProperties
	if err := config.DecodeOptions(block.Options, &p); err != nil {
		return nil, llm.ErrInvalidConfiguration(gemini.ProviderID, "chat.options", err)
	}

	b := gemini.DefaultChatOptions()
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
	if p.MaxTokens != nil {
		b.MaxTokens(*p.MaxTokens)
	}
	if p.StopSequences != nil {
		b.StopSequences(p.StopSequences)
	}
	if p.CandidateCount != nil {
		b.CandidateCount(*p.CandidateCount)
	}
	if p.PresencePenalty != nil {
		b.PresencePenalty(*p.PresencePenalty)
	}
	if p.FrequencyPenalty != nil {
		b.FrequencyPenalty(*p.FrequencyPenalty)
	}
	if p.Seed != nil {
		b.Seed(*p.Seed)
	}
	return b.Build(), nil
}

func geminiEmbeddingOptions(block config.Block) (*gemini.EmbeddingOptions, error) {
	var p geminiEmbeddingProperties
	if err := config.DecodeOptions(block.Options, &p); err != nil {
		return nil, llm.ErrInvalidConfiguration(gemini.ProviderID, "embedding.options", err)
	}

	b := gemini.DefaultEmbeddingOptions()
	if p.Model != nil {
		b.Model(*p.Model)
	}
	if p.Dimensions != nil {
		b.Dimensions(*p.Dimensions)
	}
	if p.TaskType != nil {
		b.TaskType(*p.TaskType)
	}
	return b.Build(), nil
}
