// Package registry holds the active implementation for each capability.
package registry

import (
	"cmp"
	"slices"
	"sync"

	"github.com/connorhough/aiwire/internal/llm"
)

// Registration associates a capability with one provider client and the
// default options it was assembled with.
type Registration struct {
	Capability llm.Capability
	Provider   string
	Client     any
	Options    any
}

// Registry is the surface the assembler writes to.
type Registry interface {
	IsRegistered(capability llm.Capability) bool
	// Register adds r unless its capability already has a registration.
	// It reports whether r was added.
	Register(r Registration) bool
}

// Memory is an in-process Registry. The first registration per capability wins.
type Memory struct {
	entries map[llm.Capability]Registration
	mu      sync.RWMutex
}

var _ Registry = (*Memory)(nil)

// New creates an empty registry
func New() *Memory {
	return &Memory{
		entries: make(map[llm.Capability]Registration),
	}
}

func (m *Memory) IsRegistered(capability llm.Capability) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.entries[capability]
	return ok
}

func (m *Memory) Register(r Registration) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[r.Capability]; ok {
		return false
	}
	m.entries[r.Capability] = r
	return true
}

// Lookup returns the registration for capability
func (m *Memory) Lookup(capability llm.Capability) (Registration, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.entries[capability]
	return r, ok
}

// Registrations returns every registration ordered by capability
func (m *Memory) Registrations() []Registration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Registration, 0, len(m.entries))
	for _, r := range m.entries {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b Registration) int {
		return compareCapability(a.Capability, b.Capability)
	})
	return out
}

// ChatModel returns the active chat model, if one is registered.
func (m *Memory) ChatModel() (llm.ChatModel, bool) {
	r, ok := m.Lookup(llm.CapabilityChat)
	if !ok {
		return nil, false
	}
	model, ok := r.Client.(llm.ChatModel)
	return model, ok
}

// EmbeddingModel returns the active embedding model, if one is registered.
func (m *Memory) EmbeddingModel() (llm.EmbeddingModel, bool) {
	r, ok := m.Lookup(llm.CapabilityEmbedding)
	if !ok {
		return nil, false
	}
	model, ok := r.Client.(llm.EmbeddingModel)
	return model, ok
}

// compareCapability orders known capabilities first, in assembly order.
func compareCapability(a, b llm.Capability) int {
	rank := func(c llm.Capability) int {
		if i := slices.Index(llm.Capabilities(), c); i >= 0 {
			return i
		}
		return len(llm.Capabilities())
	}
	if c := cmp.Compare(rank(a), rank(b)); c != 0 {
		return c
	}
	return cmp.Compare(a, b)
}
