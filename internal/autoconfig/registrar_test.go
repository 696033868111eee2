package autoconfig

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connorhough/aiwire/internal/config"
	"github.com/connorhough/aiwire/internal/llm"
	"github.com/connorhough/aiwire/internal/llm/gemini"
	"github.com/connorhough/aiwire/internal/llm/watsonx"
	"github.com/connorhough/aiwire/internal/providers"
	"github.com/connorhough/aiwire/internal/registry"
)

func linkedCatalog() *providers.Catalog {
	c := providers.NewCatalog()
	c.Provide(watsonx.ProviderID, llm.CapabilityChat, llm.CapabilityEmbedding)
	c.Provide(gemini.ProviderID, llm.CapabilityChat, llm.CapabilityEmbedding)
	return c
}

func watsonxSnapshot() *config.Snapshot {
	return &config.Snapshot{
		Watsonx: config.WatsonxConfig{
			BaseURL:           watsonx.DefaultBaseURL,
			StreamEndpoint:    watsonx.DefaultStreamEndpoint,
			TextEndpoint:      watsonx.DefaultTextEndpoint,
			EmbeddingEndpoint: watsonx.DefaultEmbeddingEndpoint,
			ProjectID:         "project",
			IAMToken:          "token",
		},
		Gemini: config.GeminiConfig{APIKey: "test-key"},
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func newRegistrar(opts ...Option) *Registrar {
	return New(append([]Option{WithCatalog(linkedCatalog()), WithLogger(quietLogger())}, opts...)...)
}

func TestAssemble_NoSelectorRegistersFirstProvider(t *testing.T) {
	reg := registry.New()

	err := newRegistrar().Assemble(context.Background(), watsonxSnapshot(), reg)
	require.NoError(t, err)

	chat, ok := reg.Lookup(llm.CapabilityChat)
	require.True(t, ok)
	assert.Equal(t, watsonx.ProviderID, chat.Provider)
	assert.IsType(t, &watsonx.ChatModel{}, chat.Client)

	opts, ok := chat.Options.(*watsonx.ChatOptions)
	require.True(t, ok)
	model, _ := opts.Model()
	assert.Equal(t, watsonx.DefaultChatModel, model)

	emb, ok := reg.Lookup(llm.CapabilityEmbedding)
	require.True(t, ok)
	assert.Equal(t, watsonx.ProviderID, emb.Provider)
	assert.IsType(t, &watsonx.EmbeddingModel{}, emb.Client)
}

func TestAssemble_SelectorPicksProvider(t *testing.T) {
	snap := watsonxSnapshot()
	snap.Model.Chat = gemini.ProviderID

	reg := registry.New()
	require.NoError(t, newRegistrar().Assemble(context.Background(), snap, reg))

	chat, ok := reg.Lookup(llm.CapabilityChat)
	require.True(t, ok)
	assert.Equal(t, gemini.ProviderID, chat.Provider)

	emb, ok := reg.Lookup(llm.CapabilityEmbedding)
	require.True(t, ok)
	assert.Equal(t, watsonx.ProviderID, emb.Provider, "embedding is decided independently")
}

func TestAssemble_SelectorNamesUnknownProvider(t *testing.T) {
	snap := watsonxSnapshot()
	snap.Model.Chat = "openai"

	reg := registry.New()
	require.NoError(t, newRegistrar().Assemble(context.Background(), snap, reg))

	assert.False(t, reg.IsRegistered(llm.CapabilityChat))
	assert.True(t, reg.IsRegistered(llm.CapabilityEmbedding))
}

func TestAssemble_BlankSelectorIsAbsent(t *testing.T) {
	snap := watsonxSnapshot()
	snap.Model.Chat = "   "

	reg := registry.New()
	require.NoError(t, newRegistrar().Assemble(context.Background(), snap, reg))

	chat, ok := reg.Lookup(llm.CapabilityChat)
	require.True(t, ok)
	assert.Equal(t, watsonx.ProviderID, chat.Provider)
}

func TestAssemble_NeverOverridesExistingRegistration(t *testing.T) {
	reg := registry.New()
	existing := registry.Registration{Capability: llm.CapabilityChat, Provider: "custom", Client: "client"}
	require.True(t, reg.Register(existing))

	require.NoError(t, newRegistrar().Assemble(context.Background(), watsonxSnapshot(), reg))

	chat, _ := reg.Lookup(llm.CapabilityChat)
	assert.Equal(t, existing, chat)
	assert.True(t, reg.IsRegistered(llm.CapabilityEmbedding))
}

func TestAssemble_Idempotent(t *testing.T) {
	reg := registry.New()
	r := newRegistrar()

	require.NoError(t, r.Assemble(context.Background(), watsonxSnapshot(), reg))
	first := reg.Registrations()

	snap := watsonxSnapshot()
	snap.Model.Chat = gemini.ProviderID
	require.NoError(t, r.Assemble(context.Background(), snap, reg))

	assert.Equal(t, first, reg.Registrations())
}

func TestAssemble_MissingTokenIsFatal(t *testing.T) {
	snap := watsonxSnapshot()
	snap.Watsonx.IAMToken = ""

	reg := registry.New()
	err := newRegistrar().Assemble(context.Background(), snap, reg)
	require.Error(t, err)

	var cfgErr *llm.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, watsonx.ProviderID, cfgErr.Provider)
	assert.Equal(t, "iam_token", cfgErr.Field)
	assert.Contains(t, err.Error(), "token")
	assert.False(t, reg.IsRegistered(llm.CapabilityChat))
}

func TestAssemble_DeselectedProviderNotConstructed(t *testing.T) {
	snap := watsonxSnapshot()
	snap.Watsonx.IAMToken = ""
	snap.Model.Chat = gemini.ProviderID
	snap.Model.Embedding = gemini.ProviderID

	reg := registry.New()
	require.NoError(t, newRegistrar().Assemble(context.Background(), snap, reg))

	for _, capability := range llm.Capabilities() {
		r, ok := reg.Lookup(capability)
		require.True(t, ok, capability)
		assert.Equal(t, gemini.ProviderID, r.Provider)
	}
}

func TestAssemble_UnlinkedProviderSkipped(t *testing.T) {
	catalog := providers.NewCatalog()
	catalog.Provide(gemini.ProviderID, llm.CapabilityEmbedding)

	snap := watsonxSnapshot()
	snap.Model.Chat = watsonx.ProviderID

	reg := registry.New()
	err := newRegistrar(WithCatalog(catalog)).Assemble(context.Background(), snap, reg)
	require.NoError(t, err)

	assert.False(t, reg.IsRegistered(llm.CapabilityChat))
	emb, ok := reg.Lookup(llm.CapabilityEmbedding)
	require.True(t, ok)
	assert.Equal(t, gemini.ProviderID, emb.Provider)
}

func TestAssemble_NothingLinked(t *testing.T) {
	reg := registry.New()
	err := newRegistrar(WithCatalog(providers.NewCatalog())).Assemble(context.Background(), watsonxSnapshot(), reg)
	require.NoError(t, err)
	assert.Empty(t, reg.Registrations())
}

func TestAssemble_SharedAPIBuiltOnce(t *testing.T) {
	snap := watsonxSnapshot()
	var builds []llm.Capability

	counting := func(s *config.Snapshot) []Rule {
		rules := Watsonx()(s)
		for i := range rules {
			build, capability := rules[i].Build, rules[i].Capability
			rules[i].Build = func(ctx context.Context) (registry.Registration, error) {
				builds = append(builds, capability)
				return build(ctx)
			}
		}
		return rules
	}

	reg := registry.New()
	require.NoError(t, newRegistrar(WithModules(counting)).Assemble(context.Background(), snap, reg))
	assert.Equal(t, []llm.Capability{llm.CapabilityChat, llm.CapabilityEmbedding}, builds)

	chat, _ := reg.Lookup(llm.CapabilityChat)
	emb, _ := reg.Lookup(llm.CapabilityEmbedding)
	assert.Same(t,
		chat.Client.(*watsonx.ChatModel).API(),
		emb.Client.(*watsonx.EmbeddingModel).API(),
	)
}

func TestAssemble_OptionsFromConfiguration(t *testing.T) {
	snap := watsonxSnapshot()
	snap.Watsonx.Chat.Options = map[string]any{
		"model":          "ibm/granite-13b-chat-v2",
		"temperature":    "0.1",
		"stop_sequences": []any{"END"},
	}
	snap.Watsonx.Embedding.Options = map[string]any{"model": "ibm/slate-125m-english-rtrvr"}

	reg := registry.New()
	require.NoError(t, newRegistrar().Assemble(context.Background(), snap, reg))

	chat, _ := reg.Lookup(llm.CapabilityChat)
	opts := chat.Options.(*watsonx.ChatOptions)

	model, _ := opts.Model()
	assert.Equal(t, "ibm/granite-13b-chat-v2", model)
	temp, _ := opts.Temperature()
	assert.Equal(t, 0.1, temp)
	assert.Equal(t, []string{"END"}, opts.StopSequences())
	topK, ok := opts.TopK()
	assert.True(t, ok, "unset keys keep built-in defaults")
	assert.Equal(t, watsonx.DefaultTopK, topK)

	emb, _ := reg.Lookup(llm.CapabilityEmbedding)
	embModel, _ := emb.Options.(*watsonx.EmbeddingOptions).Model()
	assert.Equal(t, "ibm/slate-125m-english-rtrvr", embModel)
}

func TestAssemble_InvalidOptions(t *testing.T) {
	snap := watsonxSnapshot()
	snap.Watsonx.Chat.Options = map[string]any{"temperature": "warm"}

	err := newRegistrar().Assemble(context.Background(), snap, registry.New())

	var cfgErr *llm.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "chat.options", cfgErr.Field)
}

func TestAssemble_GeminiOptions(t *testing.T) {
	snap := watsonxSnapshot()
	snap.Model.Embedding = gemini.ProviderID
	snap.Gemini.Embedding.Options = map[string]any{"dimensions": 256, "task_type": "RETRIEVAL_DOCUMENT"}

	reg := registry.New()
	require.NoError(t, newRegistrar().Assemble(context.Background(), snap, reg))

	emb, _ := reg.Lookup(llm.CapabilityEmbedding)
	opts := emb.Options.(*gemini.EmbeddingOptions)
	dims, ok := opts.Dimensions()
	assert.True(t, ok)
	assert.Equal(t, 256, dims)
	model, _ := opts.Model()
	assert.Equal(t, gemini.DefaultEmbeddingModel(), model)
}

func TestAssemble_NilSnapshot(t *testing.T) {
	reg := registry.New()
	err := newRegistrar().Assemble(context.Background(), nil, reg)

	var cfgErr *llm.ConfigError
	require.True(t, errors.As(err, &cfgErr), "watsonx is tried first and has no connection")
	assert.Equal(t, "base_url", cfgErr.Field)
}

func TestAssemble_GeminiClientOptions(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"pong"}]}}]}`))
	}))
	defer server.Close()

	snap := watsonxSnapshot()
	snap.Model.Chat = gemini.ProviderID
	snap.Gemini.BaseURL = server.URL

	reg := registry.New()
	r := newRegistrar(WithModules(Gemini(gemini.WithHTTPClient(server.Client()))))
	require.NoError(t, r.Assemble(context.Background(), snap, reg))

	model, ok := reg.ChatModel()
	require.True(t, ok)

	out, err := model.Generate(context.Background(), "ping", nil)
	require.NoError(t, err)
	assert.Equal(t, "pong", out)
	assert.EqualValues(t, 1, requests.Load())
}
