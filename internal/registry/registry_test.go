package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connorhough/aiwire/internal/llm"
)

type stubChat struct{ name string }

func (s stubChat) Name() string { return s.name }
func (s stubChat) DefaultOptions() llm.ChatOptions { return nil }
func (s stubChat) Generate(context.Context, string, llm.ChatOptions) (string, error) {
	return "", nil
}

func TestMemory_FirstRegistrationWins(t *testing.T) {
	reg := New()
	assert.False(t, reg.IsRegistered(llm.CapabilityChat))

	first := Registration{Capability: llm.CapabilityChat, Provider: "first", Client: stubChat{"first"}}
	second := Registration{Capability: llm.CapabilityChat, Provider: "second", Client: stubChat{"second"}}

	assert.True(t, reg.Register(first))
	assert.False(t, reg.Register(second), "second registration must be a no-op")

	got, ok := reg.Lookup(llm.CapabilityChat)
	require.True(t, ok)
	assert.Equal(t, "first", got.Provider)
	assert.True(t, reg.IsRegistered(llm.CapabilityChat))
	assert.False(t, reg.IsRegistered(llm.CapabilityEmbedding))
}

func TestMemory_CapabilitiesAreIndependent(t *testing.T) {
	reg := New()
	reg.Register(Registration{Capability: llm.CapabilityEmbedding, Provider: "e"})
	reg.Register(Registration{Capability: llm.CapabilityChat, Provider: "c"})

	got := reg.Registrations()
	require.Len(t, got, 2)
	assert.Equal(t, llm.CapabilityChat, got[0].Capability)
	assert.Equal(t, llm.CapabilityEmbedding, got[1].Capability)
}

func TestMemory_TypedLookups(t *testing.T) {
	reg := New()

	_, ok := reg.ChatModel()
	assert.False(t, ok)

	reg.Register(Registration{Capability: llm.CapabilityChat, Provider: "stub", Client: stubChat{"stub"}})
	reg.Register(Registration{Capability: llm.CapabilityEmbedding, Provider: "bad", Client: "not a model"})

	chat, ok := reg.ChatModel()
	require.True(t, ok)
	assert.Equal(t, "stub", chat.Name())

	_, ok = reg.EmbeddingModel()
	assert.False(t, ok, "client of the wrong type is not an embedding model")
}
