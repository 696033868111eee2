// Package watsonx implements the chat and embedding models for IBM watsonx.ai.
package watsonx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"

	"github.com/connorhough/aiwire/internal/llm"
)

// ProviderID is the identifier selectors use to choose watsonx.ai.
const ProviderID = "watsonx-ai"

// Connection defaults
const (
	DefaultBaseURL           = "https://us-south.ml.cloud.ibm.com/"
	DefaultStreamEndpoint    = "ml/v1/text/generation_stream?version=2023-05-29"
	DefaultTextEndpoint      = "ml/v1/text/generation?version=2023-05-29"
	DefaultEmbeddingEndpoint = "ml/v1/text/embeddings?version=2023-05-29"
)

// Connection describes how to reach a watsonx.ai deployment.
type Connection struct {
	BaseURL           string
	StreamEndpoint    string
	TextEndpoint      string
	EmbeddingEndpoint string
	ProjectID         string
	IAMToken          string
}

// API is a thin client for the watsonx.ai text generation and embedding
// endpoints. It is shared by the chat and embedding models.
type API struct {
	conn       Connection
	baseURL    *url.URL
	httpClient *http.Client
}

// APIOption configures an API
type APIOption func(*apiOptions)

type apiOptions struct {
	httpClient *http.Client
}

// WithHTTPClient sets the transport the bearer-token client is layered on.
func WithHTTPClient(c *http.Client) APIOption {
	return func(o *apiOptions) {
		o.httpClient = c
	}
}

// NewAPI validates conn and returns a client authenticated with its IAM token.
// A missing required field yields an *llm.ConfigError naming the field.
func NewAPI(ctx context.Context, conn Connection, opts ...APIOption) (*API, error) {
	required := []struct {
		field, value string
	}{
		{"base_url", conn.BaseURL},
		{"project_id", conn.ProjectID},
		{"iam_token", conn.IAMToken},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return nil, llm.ErrMissingConfiguration(ProviderID, r.field)
		}
	}

	base, err := url.Parse(conn.BaseURL)
	if err != nil {
		return nil, llm.ErrInvalidConfiguration(ProviderID, "base_url", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, llm.ErrInvalidConfiguration(ProviderID, "base_url",
			fmt.Errorf("%q is not an absolute URL", conn.BaseURL))
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	o := apiOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, o.httpClient)
	}
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: conn.IAMToken, TokenType: "Bearer"})

	return &API{
		conn:       conn,
		baseURL:    base,
		httpClient: oauth2.NewClient(ctx, src),
	}, nil
}

// Connection returns the descriptor the API was built from.
func (a *API) Connection() Connection {
	return a.conn
}

// GenerationRequest is the body of a text generation call.
type GenerationRequest struct {
	Input      string      `json:"input"`
	ModelID    string      `json:"model_id"`
	ProjectID  string      `json:"project_id"`
	Parameters *Parameters `json:"parameters,omitempty"`
}

// GenerationResponse is the body returned by a text generation call.
type GenerationResponse struct {
	ModelID string `json:"model_id"`
	Results []struct {
		GeneratedText       string `json:"generated_text"`
		GeneratedTokenCount int    `json:"generated_token_count"`
		InputTokenCount     int    `json:"input_token_count"`
		StopReason          string `json:"stop_reason"`
	} `json:"results"`
}

// EmbeddingRequest is the body of an embedding call.
type EmbeddingRequest struct {
	Inputs    []string `json:"inputs"`
	ModelID   string   `json:"model_id"`
	ProjectID string   `json:"project_id"`
}

// EmbeddingResponse is the body returned by an embedding call.
type EmbeddingResponse struct {
	ModelID string `json:"model_id"`
	Results []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"results"`
	InputTokenCount int `json:"input_token_count"`
}

// Generate calls the text generation endpoint once.
func (a *API) Generate(ctx context.Context, req GenerationRequest) (*GenerationResponse, error) {
	req.ProjectID = a.conn.ProjectID
	var resp GenerationResponse
	if err := a.post(ctx, a.conn.TextEndpoint, req.ModelID, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Embed calls the embedding endpoint once.
func (a *API) Embed(ctx context.Context, req EmbeddingRequest) (*EmbeddingResponse, error) {
	req.ProjectID = a.conn.ProjectID
	var resp EmbeddingResponse
	if err := a.post(ctx, a.conn.EmbeddingEndpoint, req.ModelID, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *API) post(ctx context.Context, endpoint, model string, body, out any) error {
	ref, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("watsonx endpoint %q: %w", endpoint, err)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode watsonx request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL.ResolveReference(ref).String(), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create watsonx request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return llm.ErrProviderNotAvailable(ProviderID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read watsonx response: %w", err)
	}

	if resp.StatusCode >= 300 {
		return wrapStatus(resp.StatusCode, model, data)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode watsonx response: %w", err)
	}
	return nil
}

// wrapStatus maps HTTP failures onto the typed provider errors
func wrapStatus(code int, model string, body []byte) error {
	err := fmt.Errorf("status %d: %s", code, strings.TrimSpace(string(body)))
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return llm.ErrAuthenticationFailed(ProviderID, err)
	case http.StatusTooManyRequests:
		return llm.ErrRateLimitExceeded(ProviderID, err)
	case http.StatusNotFound:
		return llm.ErrModelNotFound(model, ProviderID, err)
	}
	return fmt.Errorf("watsonx API error: %w", err)
}
