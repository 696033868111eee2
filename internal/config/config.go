// Package config provides configuration management functionality for the aiwire application.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/connorhough/aiwire/internal/llm"
)

// GetValue retrieves a configuration value by key
func GetValue(key string) (string, error) {
	if !viper.IsSet(key) {
		return "", fmt.Errorf("key '%s' not found in configuration", key)
	}
	return viper.GetString(key), nil
}

// SetValue sets a configuration value by key and persists it to the config file
func SetValue(key string, value string) error {
	viper.Set(key, value)
	return viper.WriteConfig()
}

// Selection holds the named-provider selector for each capability.
// An empty selector means any linked provider may satisfy the capability.
type Selection struct {
	Chat      string `mapstructure:"chat"`
	Embedding string `mapstructure:"embedding"`
}

// Selector returns the provider selected for capability, if any
func (s Selection) Selector(capability llm.Capability) (string, bool) {
	var v string
	switch capability {
	case llm.CapabilityChat:
		v = s.Chat
	case llm.CapabilityEmbedding:
		v = s.Embedding
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

// ApplyFlags applies flag overrides to the selection (called from command layer)
func (s *Selection) ApplyFlags(chatFlag, embeddingFlag string) {
	if chatFlag != "" {
		s.Chat = chatFlag
	}
	if embeddingFlag != "" {
		s.Embedding = embeddingFlag
	}
}

// LogLevel maps the log_level setting to a slog level. Unknown values fall back to info.
func LogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
