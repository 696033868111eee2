// Package providers records which provider implementations are linked into
// the running binary and which capabilities each one can satisfy.
//
// Provider packages announce themselves from init, so excluding a provider at
// build time (see the no_watsonx and no_gemini build tags) removes it from the
// catalog and the assembler skips it without error.
package providers

import (
	"slices"
	"sync"

	"github.com/connorhough/aiwire/internal/llm"
)

// Catalog tracks provider capabilities
type Catalog struct {
	linked map[string]map[llm.Capability]bool
	mu     sync.RWMutex
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{
		linked: make(map[string]map[llm.Capability]bool),
	}
}

// Provide records that provider can satisfy the given capabilities
func (c *Catalog) Provide(provider string, capabilities ...llm.Capability) {
	c.mu.Lock()
	defer c.mu.Unlock()

	caps, ok := c.linked[provider]
	if !ok {
		caps = make(map[llm.Capability]bool)
		c.linked[provider] = caps
	}
	for _, capability := range capabilities {
		caps[capability] = true
	}
}

// Available reports whether provider is linked and satisfies capability
func (c *Catalog) Available(provider string, capability llm.Capability) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.linked[provider][capability]
}

// Providers returns the linked provider names, sorted
func (c *Catalog) Providers() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.linked))
	for name := range c.linked {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Global catalog instance
var globalCatalog = NewCatalog()

// Default returns the catalog provider packages register with
func Default() *Catalog {
	return globalCatalog
}

// Provide is a convenience function that uses the global catalog
func Provide(provider string, capabilities ...llm.Capability) {
	globalCatalog.Provide(provider, capabilities...)
}

// Available is a convenience function that uses the global catalog
func Available(provider string, capability llm.Capability) bool {
	return globalCatalog.Available(provider, capability)
}
