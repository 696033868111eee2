package watsonx

import (
	"context"
	"fmt"
	"strings"

	"github.com/connorhough/aiwire/internal/llm"
)

// ChatModel implements llm.ChatModel on the watsonx.ai text generation endpoint.
type ChatModel struct {
	api      *API
	defaults *ChatOptions
}

var _ llm.ChatModel = (*ChatModel)(nil)

// NewChatModel returns a chat model using api. A nil defaults is treated as empty.
func NewChatModel(api *API, defaults *ChatOptions) (*ChatModel, error) {
	if strings.TrimSpace(api.conn.TextEndpoint) == "" {
		return nil, llm.ErrMissingConfiguration(ProviderID, "text_endpoint")
	}
	return &ChatModel{
		api:      api,
		defaults: defaults.Copy(),
	}, nil
}

// Name returns the provider name
func (m *ChatModel) Name() string {
	return ProviderID
}

// API returns the client the model sends requests through
func (m *ChatModel) API() *API {
	return m.api
}

func (m *ChatModel) DefaultOptions() llm.ChatOptions {
	return m.defaults
}

// Generate merges opts over the defaults and sends a single generation request.
func (m *ChatModel) Generate(ctx context.Context, prompt string, opts llm.ChatOptions) (string, error) {
	merged := MergeChatOptions(m.defaults, opts)

	model, ok := merged.Model()
	if !ok || model == "" {
		return "", fmt.Errorf("watsonx chat: model is not set")
	}

	resp, err := m.api.Generate(ctx, GenerationRequest{
		Input:      prompt,
		ModelID:    model,
		Parameters: merged.parameters(),
	})
	if err != nil {
		return "", err
	}

	if len(resp.Results) == 0 {
		return "", fmt.Errorf("watsonx API returned no results")
	}

	var result strings.Builder
	for _, r := range resp.Results {
		result.WriteString(r.GeneratedText)
	}

	return strings.TrimSpace(result.String()), nil
}
