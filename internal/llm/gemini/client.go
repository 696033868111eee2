// Package gemini implements the chat and embedding models for the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/connorhough/aiwire/internal/llm"
)

// Connection describes how to reach the Gemini API.
type Connection struct {
	APIKey  string
	BaseURL string
}

// ClientOption configures NewClient
type ClientOption func(*clientOptions)

type clientOptions struct {
	httpClient *http.Client
}

// WithHTTPClient sets the transport the SDK sends requests through.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(o *clientOptions) {
		o.httpClient = c
	}
}

// NewClient creates a Gemini API client.
// A missing API key yields an *llm.ConfigError naming "api_key".
func NewClient(ctx context.Context, conn Connection, opts ...ClientOption) (*genai.Client, error) {
	if strings.TrimSpace(conn.APIKey) == "" {
		return nil, llm.ErrMissingConfiguration(ProviderID, "api_key")
	}

	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}

	cfg := &genai.ClientConfig{
		APIKey:     conn.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: o.httpClient,
	}
	if conn.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: conn.BaseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, llm.ErrProviderNotAvailable(ProviderID, err)
	}
	return client, nil
}

// wrapError wraps Gemini API errors with appropriate typed errors
func wrapError(err error, model string) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		// Check status first (most reliable)
		switch apiErr.Status {
		case "INVALID_ARGUMENT":
			if strings.Contains(apiErr.Message, "API key") {
				return llm.ErrAuthenticationFailed(ProviderID, err)
			}
		case "UNAUTHENTICATED", "PERMISSION_DENIED":
			return llm.ErrAuthenticationFailed(ProviderID, err)
		case "RESOURCE_EXHAUSTED":
			return llm.ErrRateLimitExceeded(ProviderID, err)
		case "NOT_FOUND":
			return llm.ErrModelNotFound(model, ProviderID, err)
		}

		// Fallback to HTTP status code
		switch apiErr.Code {
		case 400:
			if strings.Contains(apiErr.Message, "API key") {
				return llm.ErrAuthenticationFailed(ProviderID, err)
			}
		case 401, 403:
			return llm.ErrAuthenticationFailed(ProviderID, err)
		case 429:
			return llm.ErrRateLimitExceeded(ProviderID, err)
		case 404:
			return llm.ErrModelNotFound(model, ProviderID, err)
		}
	}

	// Fallback to string matching for non-APIError types
	errMsg := err.Error()
	if strings.Contains(errMsg, "API key") || strings.Contains(errMsg, "authentication") {
		return llm.ErrAuthenticationFailed(ProviderID, err)
	}

	if strings.Contains(errMsg, "rate limit") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
		return llm.ErrRateLimitExceeded(ProviderID, err)
	}

	if strings.Contains(errMsg, "not found") && strings.Contains(errMsg, "model") {
		return llm.ErrModelNotFound(model, ProviderID, err)
	}

	return fmt.Errorf("gemini API error: %w", err)
}
