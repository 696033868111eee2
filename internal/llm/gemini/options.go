package gemini

import (
	"encoding/json"
	"math"
	"slices"

	"google.golang.org/genai"

	"github.com/connorhough/aiwire/internal/llm"
)

// ChatOptions is an immutable set of Gemini generation parameters.
// Unset fields mean "use the provider default".
type ChatOptions struct {
	model            *string
	temperature      *float64
	topP             *float64
	topK             *int
	maxTokens        *int
	stopSequences    []string
	candidateCount   *int
	presencePenalty  *float64
	frequencyPenalty *float64
	seed             *int
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
func (o *ChatOptions) MaxTokens() (int, bool) { return value(o.get().maxTokens) }
func (o *ChatOptions) StopSequences() []string { return slices.Clone(o.get().stopSequences) }
func (o *ChatOptions) CandidateCount() (int, bool) { return value(o.get().candidateCount) }
func (o *ChatOptions) PresencePenalty() (float64, bool) { return value(o.get().presencePenalty) }
func (o *ChatOptions) FrequencyPenalty() (float64, bool) { return value(o.get().frequencyPenalty) }
func (o *ChatOptions) Seed() (int, bool) { return value(o.get().seed) }

func (o *ChatOptions) Copy() *ChatOptions {
	return FromOptions(o).Build()
}

// MarshalJSON encodes the present fields using the Gemini generation config names.
func (o *ChatOptions) MarshalJSON() ([]byte, error) {
	o = o.get()
	return json.Marshal(struct {
		Model            *string  `json:"model,omitempty"`
		Temperature      *float64 `json:"temperature,omitempty"`
		TopP             *float64 `json:"topP,omitempty"`
		TopK             *int     `json:"topK,omitempty"`
		MaxTokens        *int     `json:"maxOutputTokens,omitempty"`
		StopSequences    []string `json:"stopSequences,omitempty"`
		CandidateCount   *int     `json:"candidateCount,omitempty"`
		PresencePenalty  *float64 `json:"presencePenalty,omitempty"`
		FrequencyPenalty *float64 `json:"frequencyPenalty,omitempty"`
		Seed             *int     `json:"seed,omitempty"`
	}{
		o.model, o.temperature, o.topP, o.topK, o.maxTokens, o.stopSequences,
		o.candidateCount, o.presencePenalty, o.frequencyPenalty, o.seed,
	})
}

// generateConfig converts the record into the SDK request config.
func (o *ChatOptions) generateConfig() *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature:      toFloat32(o.temperature),
		TopP:             toFloat32(o.topP),
		PresencePenalty:  toFloat32(o.presencePenalty),
		FrequencyPenalty: toFloat32(o.frequencyPenalty),
		StopSequences:    slices.Clone(o.stopSequences),
	}
	if o.topK != nil {
		cfg.TopK = genai.Ptr(float32(*o.topK))
	}
	if o.maxTokens != nil {
		cfg.MaxOutputTokens = toInt32(*o.maxTokens)
	}
	if o.candidateCount != nil {
		cfg.CandidateCount = toInt32(*o.candidateCount)
	}
	if o.seed != nil {
		cfg.Seed = genai.Ptr(toInt32(*o.seed))
	}
	return cfg
}

func (o *ChatOptions) clone() ChatOptions {
	if o == nil {
		return ChatOptions{}
	}
	return ChatOptions{
		model:            clonePtr(o.model),
		temperature:      clonePtr(o.temperature),
		topP:             clonePtr(o.topP),
		topK:             clonePtr(o.topK),
		maxTokens:        clonePtr(o.maxTokens),
		stopSequences:    slices.Clone(o.stopSequences),
		candidateCount:   clonePtr(o.candidateCount),
		presencePenalty:  clonePtr(o.presencePenalty),
		frequencyPenalty: clonePtr(o.frequencyPenalty),
		seed:             clonePtr(o.seed),
	}
}

// ChatOptionsBuilder accumulates field values for a ChatOptions record.
type ChatOptionsBuilder struct {
	opts ChatOptions
}

func NewChatOptionsBuilder() *ChatOptionsBuilder {
	return &ChatOptionsBuilder{}
}

// DefaultChatOptions returns a builder holding only the default model; every
// other field is left to the API.
func DefaultChatOptions() *ChatOptionsBuilder {
	return NewChatOptionsBuilder().Model(DefaultModel())
}

// FromOptions returns a builder pre-populated with every field of o.
func FromOptions(o *ChatOptions) *ChatOptionsBuilder {
	b := NewChatOptionsBuilder()
	if o != nil {
		b.opts = o.clone()
	}
	return b
}

// MergeChatOptions returns a new record holding defaults overlaid with every
// field present in runtime. Gemini-only fields are taken from runtime only
// when it is a Gemini record.
func MergeChatOptions(defaults *ChatOptions, runtime llm.ChatOptions) *ChatOptions {
	b := FromOptions(defaults)
	if runtime == nil {
		return b.Build()
	}

	if v, ok := runtime.Model(); ok {
		b.Model(v)
	}
	if v, ok := runtime.Temperature(); ok {
		b.Temperature(v)
	}
	if v, ok := runtime.TopP(); ok {
		b.TopP(v)
	}
	if v, ok := runtime.TopK(); ok {
		b.TopK(v)
	}
	if v, ok := runtime.MaxTokens(); ok {
		b.MaxTokens(v)
	}
	if v := runtime.StopSequences(); v != nil {
		b.StopSequences(v)
	}
	if v, ok := runtime.PresencePenalty(); ok {
		b.PresencePenalty(v)
	}
	if v, ok := runtime.FrequencyPenalty(); ok {
		b.FrequencyPenalty(v)
	}
	if g, ok := runtime.(*ChatOptions); ok {
		if v, ok := g.CandidateCount(); ok {
			b.CandidateCount(v)
		}
		if v, ok := g.Seed(); ok {
			b.Seed(v)
		}
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

func (b *ChatOptionsBuilder) MaxTokens(v int) *ChatOptionsBuilder {
	b.opts.maxTokens = &v
	return b
}

func (b *ChatOptionsBuilder) StopSequences(v []string) *ChatOptionsBuilder {
	b.opts.stopSequences = slices.Clone(v)
	return b
}

func (b *ChatOptionsBuilder) CandidateCount(v int) *ChatOptionsBuilder {
	b.opts.candidateCount = &v
	return b
}

func (b *ChatOptionsBuilder) PresencePenalty(v float64) *ChatOptionsBuilder {
	b.opts.presencePenalty = &v
	return b
}

func (b *ChatOptionsBuilder) FrequencyPenalty(v float64) *ChatOptionsBuilder {
	b.opts.frequencyPenalty = &v
	return b
}

func (b *ChatOptionsBuilder) Seed(v int) *ChatOptionsBuilder {
	b.opts.seed = &v
	return b
}

func (b *ChatOptionsBuilder) Build() *ChatOptions {
	o := b.opts.clone()
	return &o
}

// EmbeddingOptions is an immutable set of Gemini embedding parameters.
type EmbeddingOptions struct {
	model      *string
	dimensions *int
	taskType   *string
}

var _ llm.EmbeddingOptions = (*EmbeddingOptions)(nil)

// get returns o, or an empty record when o is nil, so a typed-nil record
// reads as all fields absent.
func (o *EmbeddingOptions) get() *EmbeddingOptions {
	if o == nil {
		return &EmbeddingOptions{}
	}
	return o
}

func (o *EmbeddingOptions) Model() (string, bool) { return value(o.get().model) }

// Dimensions is the requested output dimensionality.
func (o *EmbeddingOptions) Dimensions() (int, bool) { return value(o.get().dimensions) }

// TaskType is the embedding task hint, e.g. "RETRIEVAL_DOCUMENT".
func (o *EmbeddingOptions) TaskType() (string, bool) { return value(o.get().taskType) }

func (o *EmbeddingOptions) Copy() *EmbeddingOptions {
	return FromEmbeddingOptions(o).Build()
}

func (o *EmbeddingOptions) MarshalJSON() ([]byte, error) {
	o = o.get()
	return json.Marshal(struct {
		Model      *string `json:"model,omitempty"`
		Dimensions *int    `json:"outputDimensionality,omitempty"`
		TaskType   *string `json:"taskType,omitempty"`
	}{o.model, o.dimensions, o.taskType})
}

func (o *EmbeddingOptions) embedConfig() *genai.EmbedContentConfig {
	cfg := &genai.EmbedContentConfig{}
	if o.dimensions != nil {
		cfg.OutputDimensionality = genai.Ptr(toInt32(*o.dimensions))
	}
	if o.taskType != nil {
		cfg.TaskType = *o.taskType
	}
	return cfg
}

// EmbeddingOptionsBuilder accumulates field values for an EmbeddingOptions record.
type EmbeddingOptionsBuilder struct {
	opts EmbeddingOptions
}

func NewEmbeddingOptionsBuilder() *EmbeddingOptionsBuilder {
	return &EmbeddingOptionsBuilder{}
}

func DefaultEmbeddingOptions() *EmbeddingOptionsBuilder {
	return NewEmbeddingOptionsBuilder().Model(DefaultEmbeddingModel())
}

func FromEmbeddingOptions(o *EmbeddingOptions) *EmbeddingOptionsBuilder {
	b := NewEmbeddingOptionsBuilder()
	if o != nil {
		b.opts = o.clone()
	}
	return b
}

// MergeEmbeddingOptions returns defaults overlaid with the fields present in runtime.
func MergeEmbeddingOptions(defaults *EmbeddingOptions, runtime llm.EmbeddingOptions) *EmbeddingOptions {
	b := FromEmbeddingOptions(defaults)
	if runtime == nil {
		return b.Build()
	}
	if v, ok := runtime.Model(); ok {
		b.Model(v)
	}
	if v, ok := runtime.Dimensions(); ok {
		b.Dimensions(v)
	}
	if g, ok := runtime.(*EmbeddingOptions); ok {
		if v, ok := g.TaskType(); ok {
			b.TaskType(v)
		}
	}
	return b.Build()
}

func (b *EmbeddingOptionsBuilder) Model(v string) *EmbeddingOptionsBuilder {
	b.opts.model = &v
	return b
}

func (b *EmbeddingOptionsBuilder) Dimensions(v int) *EmbeddingOptionsBuilder {
	b.opts.dimensions = &v
	return b
}

func (b *EmbeddingOptionsBuilder) TaskType(v string) *EmbeddingOptionsBuilder {
	b.opts.taskType = &v
	return b
}

func (b *EmbeddingOptionsBuilder) Build() *EmbeddingOptions {
	o := b.opts.clone()
	return &o
}

func (o *EmbeddingOptions) clone() EmbeddingOptions {
	if o == nil {
		return EmbeddingOptions{}
	}
	return EmbeddingOptions{
		model:      clonePtr(o.model),
		dimensions: clonePtr(o.dimensions),
		taskType:   clonePtr(o.taskType),
	}
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

func toFloat32(p *float64) *float32 {
	if p == nil {
		return nil
	}
	return genai.Ptr(float32(*p))
}

// toInt32 saturates v to the int32 range the API uses.
func toInt32(v int) int32 {
	return int32(max(math.MinInt32, min(v, math.MaxInt32)))
}
