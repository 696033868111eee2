// Package cohere holds the option record for Cohere command models.
package cohere

import (
	"encoding/json"
	"maps"
	"slices"

	"github.com/connorhough/aiwire/internal/llm"
)

// ReturnLikelihoods controls how token likelihoods are returned with a response.
type ReturnLikelihoods string

const (
	ReturnLikelihoodsGeneration ReturnLikelihoods = "GENERATION"
	ReturnLikelihoodsAll        ReturnLikelihoods = "ALL"
	ReturnLikelihoodsNone       ReturnLikelihoods = "NONE"
)

// Truncate controls how inputs longer than the maximum token length are handled.
type Truncate string

const (
	TruncateNone  Truncate = "NONE"
	TruncateStart Truncate = "START"
	TruncateEnd   Truncate = "END"
)

// ChatOptions is an immutable set of Cohere generation parameters.
// Unset fields mean "use the provider default". Values are not range checked.
//
// Build one with NewBuilder, or derive a variant of an existing record with
// FromOptions. A record has no setters and is safe for concurrent reads.
type ChatOptions struct {
	temperature       *float64
	topP              *float64
	topK              *int
	maxTokens         *int
	stopSequences     []string
	returnLikelihoods *ReturnLikelihoods
	numGenerations    *int
	logitBias         map[string]float64
	truncate          *Truncate
}

var _ llm.ChatOptions = (*ChatOptions)(nil)

// get returns o, or an empty record when o is nil, so a typed-nil record
// reads as all fields absent.
func (o *ChatOptions) get() *ChatOptions {
	if o == nil {
		return &ChatOptions{}
	}
	return o
}

func (o *ChatOptions) Temperature() (float64, bool) { return value(o.get().temperature) }

// TopP is the cumulative probability cut-off for nucleus sampling.
func (o *ChatOptions) TopP() (float64, bool) { return value(o.get().topP) }

// TopK is the number of token choices considered for the next token.
func (o *ChatOptions) TopK() (int, bool) { return value(o.get().topK) }

func (o *ChatOptions) MaxTokens() (int, bool) { return value(o.get().maxTokens) }

func (o *ChatOptions) StopSequences() []string { return slices.Clone(o.get().stopSequences) }

func (o *ChatOptions) ReturnLikelihoods() (ReturnLikelihoods, bool) {
	return value(o.get().returnLikelihoods)
}

func (o *ChatOptions) NumGenerations() (int, bool) { return value(o.get().numGenerations) }

// LogitBias maps tokens to biases. The returned map is a copy; nil means absent.
func (o *ChatOptions) LogitBias() map[string]float64 { return maps.Clone(o.get().logitBias) }

func (o *ChatOptions) Truncate() (Truncate, bool) { return value(o.get().truncate) }

// Model is not configurable per call for Cohere; always absent.
func (o *ChatOptions) Model() (string, bool) { return "", false }

// FrequencyPenalty is not supported by Cohere; always absent.
func (o *ChatOptions) FrequencyPenalty() (float64, bool) { return 0, false }

// PresencePenalty is not supported by Cohere; always absent.
func (o *ChatOptions) PresencePenalty() (float64, bool) { return 0, false }

// Copy returns an independent record equal to o.
func (o *ChatOptions) Copy() *ChatOptions {
	return FromOptions(o).Build()
}

type wireOptions struct {
	Temperature       *float64           `json:"temperature,omitempty"`
	TopP              *float64           `json:"p,omitempty"`
	TopK              *int               `json:"k,omitempty"`
	MaxTokens         *int               `json:"max_tokens,omitempty"`
	StopSequences     []string           `json:"stop_sequences,omitempty"`
	ReturnLikelihoods *ReturnLikelihoods `json:"return_likelihoods,omitempty"`
	NumGenerations    *int               `json:"num_generations,omitempty"`
	LogitBias         map[string]float64 `json:"logit_bias,omitempty"`
	Truncate          *Truncate          `json:"truncate,omitempty"`
}

// MarshalJSON encodes the present fields using the Cohere request field names.
func (o *ChatOptions) MarshalJSON() ([]byte, error) {
	o = o.get()
	return json.Marshal(wireOptions{
		Temperature:       o.temperature,
		TopP:              o.topP,
		TopK:              o.topK,
		MaxTokens:         o.maxTokens,
		StopSequences:     o.stopSequences,
		ReturnLikelihoods: o.returnLikelihoods,
		NumGenerations:    o.numGenerations,
		LogitBias:         o.logitBias,
		Truncate:          o.truncate,
	})
}

func (o *ChatOptions) clone() ChatOptions {
	if o == nil {
		return ChatOptions{}
	}
	return ChatOptions{
		temperature:       clonePtr(o.temperature),
		topP:              clonePtr(o.topP),
		topK:              clonePtr(o.topK),
		maxTokens:         clonePtr(o.maxTokens),
		stopSequences:     slices.Clone(o.stopSequences),
		returnLikelihoods: clonePtr(o.returnLikelihoods),
		numGenerations:    clonePtr(o.numGenerations),
		logitBias:         maps.Clone(o.logitBias),
		truncate:          clonePtr(o.truncate),
	}
}

// Builder accumulates field values for a ChatOptions record.
type Builder struct {
	opts ChatOptions
}

// NewBuilder returns a builder with every field unset.
func NewBuilder() *Builder {
	return &Builder{}
}

// FromOptions returns a builder pre-populated with every field of o.
// A nil o yields an empty builder.
func FromOptions(o *ChatOptions) *Builder {
	b := NewBuilder()
	if o != nil {
		b.opts = o.clone()
	}
	return b
}

func (b *Builder) Temperature(v float64) *Builder {
	b.opts.temperature = &v
	return b
}

func (b *Builder) TopP(v float64) *Builder {
	b.opts.topP = &v
	return b
}

func (b *Builder) TopK(v int) *Builder {
	b.opts.topK = &v
	return b
}

func (b *Builder) MaxTokens(v int) *Builder {
	b.opts.maxTokens = &v
	return b
}

// StopSequences copies v; later changes to v do not reach the builder.
func (b *Builder) StopSequences(v []string) *Builder {
	b.opts.stopSequences = slices.Clone(v)
	return b
}

func (b *Builder) ReturnLikelihoods(v ReturnLikelihoods) *Builder {
	b.opts.returnLikelihoods = &v
	return b
}

func (b *Builder) NumGenerations(v int) *Builder {
	b.opts.numGenerations = &v
	return b
}

// LogitBias copies v; later changes to v do not reach the builder.
func (b *Builder) LogitBias(v map[string]float64) *Builder {
	b.opts.logitBias = maps.Clone(v)
	return b
}

func (b *Builder) Truncate(v Truncate) *Builder {
	b.opts.truncate = &v
	return b
}

// Build returns a snapshot of the current field state. The builder stays
// usable and never aliases a record it has built.
func (b *Builder) Build() *ChatOptions {
	o := b.opts.clone()
	return &o
}

func value[T any](p *T) (T, bool) {
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
