// Package autoconfig assembles the active chat and embedding models from a
// configuration snapshot.
//
// Each provider contributes rules, one per capability it can satisfy. For every
// capability the rules are tried in order and a rule registers its model only
// when the provider is linked into the binary, nothing is registered for the
// capability yet, and the capability's selector is absent or names the
// provider. The first rule to register wins.
package autoconfig

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/connorhough/aiwire/internal/config"
	"github.com/connorhough/aiwire/internal/llm"
	"github.com/connorhough/aiwire/internal/providers"
	"github.com/connorhough/aiwire/internal/registry"
)

// Availability reports whether a provider implementation is linked in.
type Availability interface {
	Available(provider string, capability llm.Capability) bool
}

// Rule describes how one provider satisfies one capability.
type Rule struct {
	Provider   string
	Capability llm.Capability
	// Build constructs the client and default options. It is only called
	// once every predicate for the rule holds.
	Build func(ctx context.Context) (registry.Registration, error)
}

// Module produces the rules of one provider for a snapshot.
type Module func(snap *config.Snapshot) []Rule

// Registrar evaluates rules against a registry
type Registrar struct {
	catalog Availability
	modules []Module
	logger  *slog.Logger
}

// Option configures a Registrar
type Option func(*Registrar)

// WithCatalog replaces the linked-provider catalog
func WithCatalog(c Availability) Option {
	return func(r *Registrar) {
		r.catalog = c
	}
}

// WithModules replaces the provider modules. Order decides precedence.
func WithModules(modules ...Module) Option {
	return func(r *Registrar) {
		r.modules = modules
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Registrar) {
		r.logger = l
	}
}

// New returns a registrar over the linked providers, watsonx.ai first.
func New(opts ...Option) *Registrar {
	r := &Registrar{
		catalog: providers.Default(),
		modules: []Module{Watsonx(), Gemini()},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Assemble registers a default model for each capability that has none.
// Existing registrations are left untouched, so running it again against the
// same registry changes nothing. A provider that is selected but
// misconfigured aborts assembly with an *llm.ConfigError.
func (r *Registrar) Assemble(ctx context.Context, snap *config.Snapshot, reg registry.Registry) error {
	if snap == nil {
		snap = &config.Snapshot{}
	}

	var rules []Rule
	for _, m := range r.modules {
		rules = append(rules, m(snap)...)
	}

	for _, capability := range llm.Capabilities() {
		for _, rule := range rules {
			if rule.Capability != capability {
				continue
			}
			if err := r.apply(ctx, snap, reg, rule); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Registrar) apply(ctx context.Context, snap *config.Snapshot, reg registry.Registry, rule Rule) error {
	log := r.logger.With("capability", string(rule.Capability), "provider", rule.Provider)

	if !r.catalog.Available(rule.Provider, rule.Capability) {
		log.Debug("provider not linked, skipping")
		return nil
	}
	if reg.IsRegistered(rule.Capability) {
		log.Debug("capability already registered, skipping")
		return nil
	}
	if selected, ok := snap.Model.Selector(rule.Capability); ok && selected != rule.Provider {
		log.Debug("provider not selected, skipping", "selected", selected)
		return nil
	}

	registration, err := rule.Build(ctx)
	if err != nil {
		return fmt.Errorf("failed to assemble %s model: %w", rule.Capability, err)
	}
	registration.Capability = rule.Capability
	registration.Provider = rule.Provider

	if reg.Register(registration) {
		log.Info("registered model", "model", modelName(registration.Options))
	}
	return nil
}

func modelName(options any) string {
	if o, ok := options.(interface{ Model() (string, bool) }); ok {
		name, _ := o.Model()
		return name
	}
	return ""
}
