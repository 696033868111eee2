package watsonx

import (
	"encoding/json"
	"slices"

	"github.com/connorhough/aiwire/internal/llm"
)

// Chat option defaults applied by DefaultChatOptions
const (
	DefaultChatModel         = "google/flan-ul2"
	DefaultTemperature       = 0.7
	DefaultTopP              = 1.0
	DefaultTopK              = 50
	DefaultDecodingMethod    = "greedy"
	DefaultMaxNewTokens      = 20
	DefaultMinNewTokens      = 0
	DefaultRepetitionPenalty = 1.0
)

// ChatOptions is an immutable set of watsonx.ai generation parameters.
// Unset fields mean "use the provider default". Values are not range checked.
type ChatOptions struct {
	model             *string
	temperature       *float64
	topP              *float64
	topK              *int
	decodingMethod    *string
	maxNewTokens      *int
	minNewTokens      *int
	stopSequences     []string
	repetitionPenalty *float64
	randomSeed        *int
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

func (o *ChatOptions) Model() (string, bool) { return value(o.get().model) }
func (o *ChatOptions) Temperature() (float64, bool) { return value(o.get().temperature) }
func (o *ChatOptions) TopP() (float64, bool) { return value(o.get().topP) }
func (o *ChatOptions) TopK() (int, bool) { return value(o.get().topK) }

// DecodingMethod is "greedy" or "sample".
func (o *ChatOptions) DecodingMethod() (string, bool) { return value(o.get().decodingMethod) }

// MaxTokens reports max_new_tokens.
func (o *ChatOptions) MaxTokens() (int, bool) { return value(o.get().maxNewTokens) }
func (o *ChatOptions) MinNewTokens() (int, bool) { return value(o.get().minNewTokens) }
func (o *ChatOptions) StopSequences() []string { return slices.Clone(o.get().stopSequences) }
func (o *ChatOptions) RepetitionPenalty() (float64, bool) { return value(o.get().repetitionPenalty) }
func (o *ChatOptions) RandomSeed() (int, bool) { return value(o.get().randomSeed) }

// FrequencyPenalty is not supported by watsonx.ai; always absent.
func (o *ChatOptions) FrequencyPenalty() (float64, bool) { return 0, false }

// PresencePenalty reports the repetition penalty.
func (o *ChatOptions) PresencePenalty() (float64, bool) { return value(o.get().repetitionPenalty) }

// Copy returns an independent record equal to o.
func (o *ChatOptions) Copy() *ChatOptions {
	return FromOptions(o).Build()
}

// Parameters is the "parameters" object of a generation request.
type Parameters struct {
	DecodingMethod    *string  `json:"decoding_method,omitempty"`
	MaxNewTokens      *int     `json:"max_new_tokens,omitempty"`
	MinNewTokens      *int     `json:"min_new_tokens,omitempty"`
	StopSequences     []string `json:"stop_sequences,omitempty"`
	RepetitionPenalty *float64 `json:"repetition_penalty,omitempty"`
	RandomSeed        *int     `json:"random_seed,omitempty"`
	Temperature       *float64 `json:"temperature,omitempty"`
	TopP              *float64 `json:"top_p,omitempty"`
	TopK              *int     `json:"top_k,omitempty"`
}

// parameters copies every generation field out of o.
func (o *ChatOptions) parameters() *Parameters {
	c := o.clone()
	return &Parameters{
		DecodingMethod:    c.decodingMethod,
		MaxNewTokens:      c.maxNewTokens,
		MinNewTokens:      c.minNewTokens,
		StopSequences:     c.stopSequences,
		RepetitionPenalty: c.repetitionPenalty,
		RandomSeed:        c.randomSeed,
		Temperature:       c.temperature,
		TopP:              c.topP,
		TopK:              c.topK,
	}
}

// MarshalJSON encodes the present fields using the watsonx.ai parameter names.
func (o *ChatOptions) MarshalJSON() ([]byte, error) {
	o = o.get()
	return json.Marshal(struct {
		Model *string `json:"model,omitempty"`
		*Parameters
	}{o.model, o.parameters()})
}

func (o *ChatOptions) clone() ChatOptions {
	if o == nil {
		return ChatOptions{}
	}
	return ChatOptions{
		model:             clonePtr(o.model),
		temperature:       clonePtr(o.temperature),
		topP:              clonePtr(o.topP),
		topK:              clonePtr(o.topK),
		decodingMethod:    clonePtr(o.decodingMethod),
		maxNewTokens:      clonePtr(o.maxNewTokens),
		minNewTokens:      clonePtr(o.minNewTokens),
		stopSequences:     slices.Clone(o.stopSequences),
		repetitionPenalty: clonePtr(o.repetitionPenalty),
		randomSeed:        clonePtr(o.randomSeed),
	}
}

// overlay copies every field present in src over the receiver.
func (o *ChatOptions) overlay(src *ChatOptions) {
	c := src.clone()
	if c.model != nil {
		o.model = c.model
	}
	if c.temperature != nil {
		o.temperature = c.temperature
	}
	if c.topP != nil {
		o.topP = c.topP
	}
	if c.topK != nil {
		o.topK = c.topK
	}
	if c.decodingMethod != nil {
		o.decodingMethod = c.decodingMethod
	}
	if c.maxNewTokens != nil {
		o.maxNewTokens = c.maxNewTokens
	}
	if c.minNewTokens != nil {
		o.minNewTokens = c.minNewTokens
	}
	if c.stopSequences != nil {
		o.stopSequences = c.stopSequences
	}
	if c.repetitionPenalty != nil {
		o.repetitionPenalty = c.repetitionPenalty
	}
	if c.randomSeed != nil {
		o.randomSeed = c.randomSeed
	}
}

// ChatOptionsBuilder accumulates field values for a ChatOptions record.
type ChatOptionsBuilder struct {
	opts ChatOptions
}

// NewChatOptionsBuilder returns a builder with every field unset.
func NewChatOptionsBuilder() *ChatOptionsBuilder {
	return &ChatOptionsBuilder{}
}

// DefaultChatOptions returns a builder holding the watsonx.ai chat defaults.
func DefaultChatOptions() *ChatOptionsBuilder {
	return NewChatOptionsBuilder().
		Model(DefaultChatModel).
		Temperature(DefaultTemperature).
		TopP(DefaultTopP).
		TopK(DefaultTopK).
		DecodingMethod(DefaultDecodingMethod).
		MaxNewTokens(DefaultMaxNewTokens).
		MinNewTokens(DefaultMinNewTokens).
		RepetitionPenalty(DefaultRepetitionPenalty)
}

// FromOptions returns a builder pre-populated with every field of o.
// A nil o yields an empty builder.
func FromOptions(o *ChatOptions) *ChatOptionsBuilder {
	b := NewChatOptionsBuilder()
	if o != nil {
		b.opts = o.clone()
	}
	return b
}

// FromChatOptions returns a builder holding the portable fields of any
// provider's chat options. Records of this package are copied in full.
func FromChatOptions(o llm.ChatOptions) *ChatOptionsBuilder {
	if w, ok := o.(*ChatOptions); ok {
		return FromOptions(w)
	}
	b := NewChatOptionsBuilder()
	if o == nil {
		return b
	}
	if v, ok := o.Model(); ok {
		b.Model(v)
	}
	if v, ok := o.Temperature(); ok {
		b.Temperature(v)
	}
	if v, ok := o.TopP(); ok {
		b.TopP(v)
	}
	if v, ok := o.TopK(); ok {
		b.TopK(v)
	}
	if v, ok := o.MaxTokens(); ok {
		b.MaxNewTokens(v)
	}
	if v := o.StopSequences(); v != nil {
		b.StopSequences(v)
	}
	if v, ok := o.PresencePenalty(); ok {
		b.RepetitionPenalty(v)
	}
	return b
}

// MergeChatOptions returns a new record holding defaults overlaid with every
// field present in runtime. Neither input is modified.
func MergeChatOptions(defaults *ChatOptions, runtime llm.ChatOptions) *ChatOptions {
	b := FromOptions(defaults)
	if runtime != nil {
		b.opts.overlay(FromChatOptions(runtime).Build())
	}
	return b.Build()
}

func (b *ChatOptionsBuilder) Model(v string) *ChatOptionsBuilder {
	b.opts.model = &v
	return b
}

func (b *ChatOptionsBuilder) Temperature(v float64) *ChatOptionsBuilder {
	b.opts.temperature = &v
	return b
}

func (b *ChatOptionsBuilder) TopP(v float64) *ChatOptionsBuilder {
	b.opts.topP = &v
	return b
}

func (b *ChatOptionsBuilder) TopK(v int) *ChatOptionsBuilder {
	b.opts.topK = &v
	return b
}

func (b *ChatOptionsBuilder) DecodingMethod(v string) *ChatOptionsBuilder {
	b.opts.decodingMethod = &v
	return b
}

func (b *ChatOptionsBuilder) MaxNewTokens(v int) *ChatOptionsBuilder {
	b.opts.maxNewTokens = &v
	return b
}

func (b *ChatOptionsBuilder) MinNewTokens(v int) *ChatOptionsBuilder {
	b.opts.minNewTokens = &v
	return b
}

// StopSequences copies v.
func (b *ChatOptionsBuilder) StopSequences(v []string) *ChatOptionsBuilder {
	b.opts.stopSequences = slices.Clone(v)
	return b
}

func (b *ChatOptionsBuilder) RepetitionPenalty(v float64) *ChatOptionsBuilder {
	b.opts.repetitionPenalty = &v
	return b
}

func (b *ChatOptionsBuilder) RandomSeed(v int) *ChatOptionsBuilder {
	b.opts.randomSeed = &v
	return b
}

// Build returns a snapshot of the current field state.
func (b *ChatOptionsBuilder) Build() *ChatOptions {
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
