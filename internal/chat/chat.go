// Package chat sends a single prompt to the active chat model.
package chat

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/connorhough/aiwire/internal/llm"
	"github.com/connorhough/aiwire/internal/llm/gemini"
	"github.com/connorhough/aiwire/internal/llm/watsonx"
	"github.com/connorhough/aiwire/internal/registry"
)

// Overrides are per-call option values given on the command line.
// Nil fields keep the registered defaults.
type Overrides struct {
	Model       *string
	Temperature *float64
	MaxTokens   *int
}

// Options derives the per-call options from the registered defaults.
// The defaults themselves are never modified.
func Options(defaults any, ov Overrides) (llm.ChatOptions, error) {
	switch d := defaults.(type) {
	case *watsonx.ChatOptions:
		b := watsonx.FromOptions(d)
		if ov.Model != nil {
			b.Model(*ov.Model)
		}
		if ov.Temperature != nil {
			b.Temperature(*ov.Temperature)
		}
		if ov.MaxTokens != nil {
			b.MaxNewTokens(*ov.MaxTokens)
		}
		return b.Build(), nil
	case *gemini.ChatOptions:
		b := gemini.FromOptions(d)
		if ov.Model != nil {
			b.Model(*ov.Model)
		}
		if ov.Temperature != nil {
			b.Temperature(*ov.Temperature)
		}
		if ov.MaxTokens != nil {
			b.MaxTokens(*ov.MaxTokens)
		}
		return b.Build(), nil
	default:
		return nil, fmt.Errorf("unsupported chat options type %T", defaults)
	}
}

// Run sends prompt to the registered chat model and returns its reply
func Run(ctx context.Context, reg *registry.Memory, prompt string, ov Overrides) (string, error) {
	r, ok := reg.Lookup(llm.CapabilityChat)
	if !ok {
		return "", fmt.Errorf("no chat model is registered; check ai.model.chat and provider credentials")
	}
	model, ok := r.Client.(llm.ChatModel)
	if !ok {
		return "", fmt.Errorf("chat registration for %s has no chat model", r.Provider)
	}

	opts, err := Options(r.Options, ov)
	if err != nil {
		return "", err
	}

	slog.Debug("generating", "provider", r.Provider, "prompt_length", len(prompt))
	return model.Generate(ctx, prompt, opts)
}
