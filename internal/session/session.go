// Package session resolves configuration and assembles the active models for
// a single CLI invocation.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/viper"

	"github.com/connorhough/aiwire/internal/autoconfig"
	"github.com/connorhough/aiwire/internal/config"
	"github.com/connorhough/aiwire/internal/llm"
	"github.com/connorhough/aiwire/internal/registry"
)

// Assemble loads the snapshot from v, applies the selector overrides and
// registers the default models into a fresh registry.
func Assemble(ctx context.Context, v *viper.Viper, overrides config.Selection, logger *slog.Logger, opts ...autoconfig.Option) (*registry.Memory, error) {
	snap, err := config.Load(v)
	if err != nil {
		return nil, err
	}
	snap.Model.ApplyFlags(overrides.Chat, overrides.Embedding)

	logger.Debug("resolved selectors", "chat", snap.Model.Chat, "embedding", snap.Model.Embedding)

	reg := registry.New()
	opts = append([]autoconfig.Option{autoconfig.WithLogger(logger)}, opts...)
	if err := autoconfig.New(opts...).Assemble(ctx, snap, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// Describe writes one row per registration: capability, provider and model.
func Describe(w io.Writer, reg *registry.Memory) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CAPABILITY\tPROVIDER\tMODEL")

	registered := make(map[llm.Capability]bool)
	for _, r := range reg.Registrations() {
		registered[r.Capability] = true
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Capability, r.Provider, modelOf(r.Options))
	}
	for _, capability := range llm.Capabilities() {
		if !registered[capability] {
			fmt.Fprintf(tw, "%s\t-\t-\n", capability)
		}
	}
	return tw.Flush()
}

// DefaultOptions renders the default options registered for capability as
// indented JSON.
func DefaultOptions(reg *registry.Memory, capability llm.Capability) ([]byte, error) {
	r, ok := reg.Lookup(capability)
	if !ok {
		return nil, fmt.Errorf("no %s model is registered", capability)
	}
	return json.MarshalIndent(r.Options, "", "  ")
}

// ParseCapability validates a capability name given on the command line
func ParseCapability(s string) (llm.Capability, error) {
	for _, c := range llm.Capabilities() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown capability %q (expected one of %v)", s, llm.Capabilities())
}

func modelOf(options any) string {
	if o, ok := options.(interface{ Model() (string, bool) }); ok {
		if name, ok := o.Model(); ok {
			return name
		}
	}
	return "-"
}
