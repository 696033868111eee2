package watsonx

import (
	"encoding/json"

	"github.com/connorhough/aiwire/internal/llm"
)

// DefaultEmbeddingModel is used when no embedding model is configured.
const DefaultEmbeddingModel = "ibm/slate-30m-english-rtrvr"

// EmbeddingOptions is an immutable set of watsonx.ai embedding parameters.
type EmbeddingOptions struct {
	model *string
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

// Dimensions is fixed by the watsonx.ai model; always absent.
func (o *EmbeddingOptions) Dimensions() (int, bool) { return 0, false }

func (o *EmbeddingOptions) Copy() *EmbeddingOptions {
	return FromEmbeddingOptions(o).Build()
}

func (o *EmbeddingOptions) MarshalJSON() ([]byte, error) {
	o = o.get()
	return json.Marshal(struct {
		Model *string `json:"model,omitempty"`
	}{o.model})
}

// EmbeddingOptionsBuilder accumulates field values for an EmbeddingOptions record.
type EmbeddingOptionsBuilder struct {
	opts EmbeddingOptions
}

func NewEmbeddingOptionsBuilder() *EmbeddingOptionsBuilder {
	return &EmbeddingOptionsBuilder{}
}

// DefaultEmbeddingOptions returns a builder holding the watsonx.ai embedding defaults.
func DefaultEmbeddingOptions() *EmbeddingOptionsBuilder {
	return NewEmbeddingOptionsBuilder().Model(DefaultEmbeddingModel)
}

// FromEmbeddingOptions returns a builder pre-populated with every field of o.
func FromEmbeddingOptions(o *EmbeddingOptions) *EmbeddingOptionsBuilder {
	b := NewEmbeddingOptionsBuilder()
	if o != nil {
		b.opts.model = clonePtr(o.model)
	}
	return b
}

func (b *EmbeddingOptionsBuilder) Model(v string) *EmbeddingOptionsBuilder {
	b.opts.model = &v
	return b
}

func (b *EmbeddingOptionsBuilder) Build() *EmbeddingOptions {
	return &EmbeddingOptions{model: clonePtr(b.opts.model)}
}

// MergeEmbeddingOptions returns defaults overlaid with the model from runtime, if present.
func MergeEmbeddingOptions(defaults *EmbeddingOptions, runtime llm.EmbeddingOptions) *EmbeddingOptions {
	b := FromEmbeddingOptions(defaults)
	if runtime != nil {
		if v, ok := runtime.Model(); ok {
			b.Model(v)
		}
	}
	return b.Build()
}
