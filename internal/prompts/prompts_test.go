package prompts

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promptText(t *testing.T, result *mcp.GetPromptResult) string {
	t.Helper()
	require.Len(t, result.Messages, 1)
	assert.Equal(t, mcp.RoleUser, result.Messages[0].Role)
	tc, ok := result.Messages[0].Content.(mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Messages[0].Content)
	return tc.Text
}

func TestStartPrompt_Definition(t *testing.T) {
	def := NewStartPrompt().Definition()
	assert.Equal(t, "imc-start", def.Name)
	assert.Len(t, def.Arguments, 3)
}

func TestStartPrompt_Handle_NoArguments(t *testing.T) {
	result, err := NewStartPrompt().Handle(context.Background(), mcp.GetPromptRequest{})
	require.NoError(t, err)

	text := promptText(t, result)
	assert.Equal(t, "IMC calculation", result.Description)
	assert.Contains(t, text, "Ask me for my weight")
	assert.Contains(t, text, "ask for a name")
}

func TestStartPrompt_Handle_WithArguments(t *testing.T) {
	req := mcp.GetPromptRequest{}
	req.Params.Arguments = map[string]string{
		"name":   "Ana",
		"weight": "70",
		"height": "1.75",
	}

	result, err := NewStartPrompt().Handle(context.Background(), req)
	require.NoError(t, err)

	text := promptText(t, result)
	assert.Equal(t, "IMC calculation for Ana", result.Description)
	assert.Contains(t, text, "`imc_calculate` with weight=70 and height=1.75")
	assert.Contains(t, text, `name="Ana"`)
}

func TestStartPrompt_Handle_PartialMeasurements(t *testing.T) {
	req := mcp.GetPromptRequest{}
	req.Params.Arguments = map[string]string{"weight": "70"}

	result, err := NewStartPrompt().Handle(context.Background(), req)
	require.NoError(t, err)
	assert.Contains(t, promptText(t, result), "Ask me for my weight")
}

func TestReviewPrompt_Handle(t *testing.T) {
	assert.Equal(t, "imc-review", NewReviewPrompt().Definition().Name)

	result, err := NewReviewPrompt().Handle(context.Background(), mcp.GetPromptRequest{})
	require.NoError(t, err)

	text := promptText(t, result)
	assert.Contains(t, text, "imc_stats")
	assert.Contains(t, text, "imc_record_list")
}
