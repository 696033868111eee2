package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/connorhough/aiwire/internal/llm"
)

// ChatModel implements llm.ChatModel for the Gemini API
type ChatModel struct {
	client   *genai.Client
	defaults *ChatOptions
}

var _ llm.ChatModel = (*ChatModel)(nil)

// NewChatModel creates a chat model on client. A nil defaults is treated as empty.
func NewChatModel(client *genai.Client, defaults *ChatOptions) *ChatModel {
	return &ChatModel{
		client:   client,
		defaults: defaults.Copy(),
	}
}

// Name returns the provider name
func (m *ChatModel) Name() string {
	return ProviderID
}

func (m *ChatModel) DefaultOptions() llm.ChatOptions {
	return m.defaults
}

// Generate sends a prompt to Gemini and returns the response
func (m *ChatModel) Generate(ctx context.Context, prompt string, opts llm.ChatOptions) (string, error) {
	merged := MergeChatOptions(m.defaults, opts)

	// Use provided model or default
	modelName, ok := merged.Model()
	if !ok || modelName == "" {
		modelName = DefaultModel()
	}

	resp, err := m.client.Models.GenerateContent(ctx, modelName, genai.Text(prompt), merged.generateConfig())
	if err != nil {
		return "", wrapError(err, modelName)
	}

	// Extract text from response
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("gemini API returned no candidates")
	}

	if resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini API returned nil content")
	}

	var result strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			result.WriteString(part.Text)
		}
	}

	output := strings.TrimSpace(result.String())
	if output == "" {
		return "", fmt.Errorf("gemini API returned empty response")
	}

	return output, nil
}
