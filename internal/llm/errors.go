package llm

import "fmt"

// ProviderError represents a provider-specific error
type ProviderError struct {
	Provider string
	Msg      string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ErrProviderNotAvailable indicates the provider client could not be created
func ErrProviderNotAvailable(provider string, err error) error {
	return &ProviderError{
		Provider: provider,
		Msg:      fmt.Sprintf("provider '%s' not available", provider),
		Err:      err,
	}
}

// ErrAuthenticationFailed indicates authentication failure (invalid API key, expired token, etc.)
func ErrAuthenticationFailed(provider string, err error) error {
	return &ProviderError{
		Provider: provider,
		Msg:      fmt.Sprintf("authentication failed for provider '%s'", provider),
		Err:      err,
	}
}

// ErrRateLimitExceeded indicates the provider's rate limit was hit
func ErrRateLimitExceeded(provider string, err error) error {
	return &ProviderError{
		Provider: provider,
		Msg:      fmt.Sprintf("rate limit exceeded for provider '%s'", provider),
		Err:      err,
	}
}

// ErrModelNotFound indicates the specified model doesn't exist for the provider
func ErrModelNotFound(model, provider string, err error) error {
	return &ProviderError{
		Provider: provider,
		Msg:      fmt.Sprintf("model '%s' not found for provider '%s'", model, provider),
		Err:      err,
	}
}

// ConfigError reports configuration that prevents a provider client from
// being built. Field is the configuration key at fault.
type ConfigError struct {
	Provider string
	Field    string
	Msg      string
	Err      error
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("%s: configuration '%s' %s", e.Provider, e.Field, e.Msg)
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ErrMissingConfiguration indicates a required configuration field is empty
func ErrMissingConfiguration(provider, field string) error {
	return &ConfigError{
		Provider: provider,
		Field:    field,
		Msg:      "is required",
	}
}

// ErrInvalidConfiguration indicates a configuration field could not be used as given
func ErrInvalidConfiguration(provider, field string, err error) error {
	return &ConfigError{
		Provider: provider,
		Field:    field,
		Msg:      "is invalid",
		Err:      err,
	}
}
