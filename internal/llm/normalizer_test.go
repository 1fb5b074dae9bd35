package llm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app_errors "loomchat/backend/internal/errors"
	"loomchat/backend/internal/llm"
	"loomchat/backend/internal/model"
)

func newOpenAIMapper(t *testing.T) *llm.ResponseMapper {
	t.Helper()
	mapper, err := llm.NewResponseMapper(model.CompatibilityOpenAI)
	require.NoError(t, err)
	return mapper
}

func TestNewResponseMapper_RejectsUnsupportedFamily(t *testing.T) {
	_, err := llm.NewResponseMapper(model.CompatibilityNone)
	assert.ErrorIs(t, err, app_errors.ErrValidation)

	_, err = llm.NewResponseMapper(model.Compatibility("anthropic"))
	assert.ErrorIs(t, err, app_errors.ErrValidation)
}

func TestParse_ContentDelta(t *testing.T) {
	mapper := newOpenAIMapper(t)

	resp, err := mapper.Parse(`{"choices":[{"delta":{"content":"Hello"}}]}`)
	require.NoError(t, err)

	assert.Equal(t, llm.KindContentDelta, resp.Kind)
	require.NotNil(t, resp.Content)
	assert.Equal(t, "Hello", *resp.Content)
}

func TestParse_EmptyContentIsStillAContentDelta(t *testing.T) {
	mapper := newOpenAIMapper(t)

	// An explicit empty delta outranks usage in the same frame.
	resp, err := mapper.Parse(`{"choices":[{"delta":{"content":""}}],"usage":{"prompt_tokens":1,"completion_tokens":2,"total_tokens":3}}`)
	require.NoError(t, err)

	assert.Equal(t, llm.KindContentDelta, resp.Kind)
	require.NotNil(t, resp.Content)
	assert.Empty(t, *resp.Content)
}

func TestParse_FinalWithTrailingContent(t *testing.T) {
	mapper := newOpenAIMapper(t)

	resp, err := mapper.Parse(`{"choices":[{"delta":{"content":" there"},"finish_reason":"stop"}]}`)
	require.NoError(t, err)

	assert.Equal(t, llm.KindFinal, resp.Kind)
	assert.Equal(t, "stop", resp.FinishReason)
	require.NotNil(t, resp.Content)
	assert.Equal(t, " there", *resp.Content)
}

func TestParse_FinalWithoutContent(t *testing.T) {
	mapper := newOpenAIMapper(t)

	resp, err := mapper.Parse(`{"choices":[{"delta":{},"finish_reason":"stop"}]}`)
	require.NoError(t, err)

	assert.Equal(t, llm.KindFinal, resp.Kind)
	assert.Nil(t, resp.Content)
}

func TestParse_ToolCallsOutrankFinishReason(t *testing.T) {
	mapper := newOpenAIMapper(t)

	frame := `{"choices":[{"delta":{"tool_calls":[{"id":"call_1","index":0,"type":"function","function":{"name":"get_weather","arguments":"{\"city\":\"Kyiv\"}"}}]},"finish_reason":"tool_calls"}]}`
	resp, err := mapper.Parse(frame)
	require.NoError(t, err)

	assert.Equal(t, llm.KindToolCall, resp.Kind)
	assert.Equal(t, "tool_calls", resp.FinishReason)
	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "call_1", resp.ToolCalls[0].ID)
	assert.Equal(t, "get_weather", resp.ToolCalls[0].Name)
	assert.Equal(t, `{"city":"Kyiv"}`, resp.ToolCalls[0].Arguments)
}

func TestParse_PartialToolCallDescriptorsAreDropped(t *testing.T) {
	mapper := newOpenAIMapper(t)

	// The second descriptor is missing its function block and must not
	// surface half-filled.
	frame := `{"choices":[{"delta":{"tool_calls":[` +
		`{"id":"call_1","index":0,"type":"function","function":{"name":"a","arguments":"{}"}},` +
		`{"id":"call_2","index":1,"type":"function"}]}}]}`
	resp, err := mapper.Parse(frame)
	require.NoError(t, err)

	require.Equal(t, llm.KindToolCall, resp.Kind)
	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "call_1", resp.ToolCalls[0].ID)
}

func TestParse_UsageOnlyFrame(t *testing.T) {
	mapper := newOpenAIMapper(t)

	resp, err := mapper.Parse(`{"choices":[],"usage":{"prompt_tokens":10,"completion_tokens":25,"total_tokens":35}}`)
	require.NoError(t, err)

	assert.Equal(t, llm.KindUsage, resp.Kind)
	require.NotNil(t, resp.Usage)
	assert.Equal(t, int64(10), resp.Usage.PromptTokens)
	assert.Equal(t, int64(25), resp.Usage.CompletionTokens)
	assert.Equal(t, int64(35), resp.Usage.TotalTokens)
}

func TestParse_EmptyObjectIsABenignEmptyDelta(t *testing.T) {
	mapper := newOpenAIMapper(t)

	resp, err := mapper.Parse(`{}`)
	require.NoError(t, err)

	assert.Equal(t, llm.KindContentDelta, resp.Kind)
	require.NotNil(t, resp.Content)
	assert.Empty(t, *resp.Content)
}

func TestParse_MalformedJSONCarriesTheOffendingText(t *testing.T) {
	mapper := newOpenAIMapper(t)

	_, err := mapper.Parse(`{"choices": [`)
	require.Error(t, err)
	assert.ErrorIs(t, err, app_errors.ErrMalformedFrame)
	assert.Contains(t, err.Error(), `{"choices": [`)
}
