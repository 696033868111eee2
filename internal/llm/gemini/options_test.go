package gemini

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connorhough/aiwire/internal/llm"
	"github.com/connorhough/aiwire/internal/llm/cohere"
	"github.com/connorhough/aiwire/internal/llm/watsonx"
)

func TestChatOptions_GenerateConfig(t *testing.T) {
	o := NewChatOptionsBuilder().
		Temperature(0.5).
		TopP(0.8).
		TopK(20).
		MaxTokens(128).
		StopSequences([]string{"END"}).
		CandidateCount(2).
		Seed(42).
		Build()

	cfg := o.generateConfig()

	require.NotNil(t, cfg.Temperature)
	assert.Equal(t, float32(0.5), *cfg.Temperature)
	require.NotNil(t, cfg.TopP)
	assert.Equal(t, float32(0.8), *cfg.TopP)
	require.NotNil(t, cfg.TopK)
	assert.Equal(t, float32(20), *cfg.TopK)
	assert.Equal(t, int32(128), cfg.MaxOutputTokens)
	assert.Equal(t, []string{"END"}, cfg.StopSequences)
	assert.Equal(t, int32(2), cfg.CandidateCount)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, int32(42), *cfg.Seed)
	assert.Nil(t, cfg.PresencePenalty)

	cfg.StopSequences[0] = "mutated"
	assert.Equal(t, []string{"END"}, o.StopSequences())
}

func TestChatOptions_EmptyGenerateConfig(t *testing.T) {
	cfg := NewChatOptionsBuilder().Build().generateConfig()

	assert.Nil(t, cfg.Temperature)
	assert.Nil(t, cfg.TopK)
	assert.Zero(t, cfg.MaxOutputTokens)
	assert.Nil(t, cfg.StopSequences)
}

func TestFromOptions_RoundTrip(t *testing.T) {
	full := DefaultChatOptions().Temperature(0.1).StopSequences([]string{"a"}).Seed(3).Build()
	assert.Equal(t, full, FromOptions(full).Build())
	assert.Equal(t, full, full.Copy())

	empty := NewChatOptionsBuilder().Build()
	assert.Equal(t, empty, FromOptions(empty).Build())
}

func TestMergeChatOptions(t *testing.T) {
	defaults := DefaultChatOptions().Temperature(0.9).Seed(1).Build()

	merged := MergeChatOptions(defaults, watsonx.NewChatOptionsBuilder().
		Temperature(0.2).
		RepetitionPenalty(1.5).
		Build())

	temperature, _ := merged.Temperature()
	assert.Equal(t, 0.2, temperature)
	penalty, ok := merged.PresencePenalty()
	assert.True(t, ok)
	assert.Equal(t, 1.5, penalty)
	seed, _ := merged.Seed()
	assert.Equal(t, 1, seed)
	model, _ := merged.Model()
	assert.Equal(t, ModelFlash, model)

	temperature, _ = defaults.Temperature()
	assert.Equal(t, 0.9, temperature)

	merged = MergeChatOptions(defaults, NewChatOptionsBuilder().Seed(9).CandidateCount(3).Build())
	seed, _ = merged.Seed()
	assert.Equal(t, 9, seed)
	count, _ := merged.CandidateCount()
	assert.Equal(t, 3, count)
}

func TestEmbeddingOptions(t *testing.T) {
	defaults := DefaultEmbeddingOptions().TaskType("RETRIEVAL_DOCUMENT").Build()

	model, _ := defaults.Model()
	assert.Equal(t, ModelEmbedding, model)
	assert.Equal(t, defaults, defaults.Copy())

	merged := MergeEmbeddingOptions(defaults, NewEmbeddingOptionsBuilder().Dimensions(256).Build())
	dims, ok := merged.Dimensions()
	assert.True(t, ok)
	assert.Equal(t, 256, dims)
	_, ok = defaults.Dimensions()
	assert.False(t, ok)

	cfg := merged.embedConfig()
	require.NotNil(t, cfg.OutputDimensionality)
	assert.Equal(t, int32(256), *cfg.OutputDimensionality)
	assert.Equal(t, "RETRIEVAL_DOCUMENT", cfg.TaskType)
}

func TestChatOptions_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(NewChatOptionsBuilder().Model(ModelPro).MaxTokens(10).Build())
	require.NoError(t, err)
	assert.JSONEq(t, `{"model":"gemini-2.5-pro","maxOutputTokens":10}`, string(data))
}

func TestChatOptions_GenerateConfigSaturatesInt32(t *testing.T) {
	cfg := NewChatOptionsBuilder().
		MaxTokens(math.MaxInt32 + 10).
		CandidateCount(math.MinInt32 - 10).
		Seed(math.MaxInt32 + 1).
		Build().
		generateConfig()

	assert.Equal(t, int32(math.MaxInt32), cfg.MaxOutputTokens)
	assert.Equal(t, int32(math.MinInt32), cfg.CandidateCount)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, int32(math.MaxInt32), *cfg.Seed)

	embed := NewEmbeddingOptionsBuilder().Dimensions(math.MaxInt32 + 1).Build().embedConfig()
	require.NotNil(t, embed.OutputDimensionality)
	assert.Equal(t, int32(math.MaxInt32), *embed.OutputDimensionality)
}

func TestMergeChatOptions_TypedNilRuntime(t *testing.T) {
	defaults := DefaultChatOptions().Temperature(0.4).Build()

	tests := []struct {
		name    string
		runtime llm.ChatOptions
	}{
		{"gemini", (*ChatOptions)(nil)},
		{"watsonx", (*watsonx.ChatOptions)(nil)},
		{"cohere", (*cohere.ChatOptions)(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var merged *ChatOptions
			require.NotPanics(t, func() {
				merged = MergeChatOptions(defaults, tt.runtime)
			})
			assert.Equal(t, defaults, merged)
		})
	}
}

func TestMergeEmbeddingOptions_TypedNilRuntime(t *testing.T) {
	defaults := DefaultEmbeddingOptions().Build()

	var runtime *EmbeddingOptions
	assert.Equal(t, defaults, MergeEmbeddingOptions(defaults, runtime))
	assert.Equal(t, defaults, MergeEmbeddingOptions(defaults, (*watsonx.EmbeddingOptions)(nil)))
}
