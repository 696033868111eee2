package llm

import (
	"errors"
	"testing"
)

func TestErrorTypes(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{
			name:    "provider not available",
			err:     ErrProviderNotAvailable("gemini", errors.New("dial failed")),
			wantMsg: "provider 'gemini' not available: dial failed",
		},
		{
			name:    "authentication failed",
			err:     ErrAuthenticationFailed("gemini", errors.New("invalid key")),
			wantMsg: "authentication failed for provider 'gemini': invalid key",
		},
		{
			name:    "rate limit exceeded",
			err:     ErrRateLimitExceeded("watsonx-ai", nil),
			wantMsg: "rate limit exceeded for provider 'watsonx-ai'",
		},
		{
			name:    "model not found",
			err:     ErrModelNotFound("invalid-model", "gemini", nil),
			wantMsg: "model 'invalid-model' not found for provider 'gemini'",
		},
		{
			name:    "missing configuration",
			err:     ErrMissingConfiguration("watsonx-ai", "iam_token"),
			wantMsg: "watsonx-ai: configuration 'iam_token' is required",
		},
		{
			name:    "invalid configuration",
			err:     ErrInvalidConfiguration("watsonx-ai", "base_url", errors.New("missing scheme")),
			wantMsg: "watsonx-ai: configuration 'base_url' is invalid: missing scheme",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.wantMsg {
				t.Errorf("got %q, want %q", tt.err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestErrorUnwrapping(t *testing.T) {
	underlying := errors.New("network error")
	err := ErrProviderNotAvailable("test", underlying)

	if !errors.Is(err, underlying) {
		t.Error("error should unwrap to underlying error")
	}

	cfgErr := ErrInvalidConfiguration("test", "chat.options", underlying)
	if !errors.Is(cfgErr, underlying) {
		t.Error("config error should unwrap to underlying error")
	}
}

func TestConfigErrorAs(t *testing.T) {
	var err error = ErrMissingConfiguration("watsonx-ai", "project_id")

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %T", err)
	}
	if cfgErr.Field != "project_id" {
		t.Errorf("field: got %q, want %q", cfgErr.Field, "project_id")
	}
}

func TestCapabilities(t *testing.T) {
	got := Capabilities()
	if len(got) != 2 || got[0] != CapabilityChat || got[1] != CapabilityEmbedding {
		t.Errorf("got %v, want [chat embedding]", got)
	}
}
