// Package prompts implements MCP prompt handlers for the IMC calculator.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// StartPrompt handles the imc-start MCP prompt.
// It walks the AI through one calculate-then-save session.
type StartPrompt struct{}

// NewStartPrompt creates a StartPrompt.
func NewStartPrompt() *StartPrompt {
	return &StartPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StartPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("imc-start",
		mcp.WithPromptDescription(
			"Calculate a body mass index and optionally save it to the history. "+
				"Weight and height are asked for when not given.",
		),
		mcp.WithArgument("name",
			mcp.ArgumentDescription("Whose index this is (used when saving)"),
		),
		mcp.WithArgument("weight",
			mcp.ArgumentDescription("Weight in kilograms"),
		),
		mcp.WithArgument("height",
			mcp.ArgumentDescription("Height in meters"),
		),
	)
}

// Handle processes the imc-start prompt request.
func (p *StartPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	args := req.Params.Arguments
	name := strings.TrimSpace(args["name"])
	weight := strings.TrimSpace(args["weight"])
	height := strings.TrimSpace(args["height"])

	var b strings.Builder
	b.WriteString("I want to calculate my IMC (body mass index).\n\n")

	if weight != "" && height != "" {
		fmt.Fprintf(&b, "My weight is %s kg and my height is %s m.\n\n", weight, height)
		b.WriteString("Please:\n")
		fmt.Fprintf(&b, "1. Run `imc_calculate` with weight=%s and height=%s\n", weight, height)
	} else {
		b.WriteString("Please:\n")
		b.WriteString("1. Ask me for my weight (kg) and height (m), then run `imc_calculate`\n")
	}
	b.WriteString("2. Show me the result and explain the classification in plain words\n")

	if name != "" {
		fmt.Fprintf(&b, "3. Ask whether I want to keep it; if so, run `imc_record_save` with name=%q\n", name)
	} else {
		b.WriteString("3. Ask whether I want to keep it; if so, ask for a name and run `imc_record_save`\n")
	}
	b.WriteString("\nIf a value is rejected, tell me the accepted range and ask again.")

	desc := "IMC calculation"
	if name != "" {
		desc = fmt.Sprintf("IMC calculation for %s", name)
	}

	return &mcp.GetPromptResult{
		Description: desc,
		Messages: []mcp.PromptMessage{
			{
				Role:    mcp.RoleUser,
				Content: mcp.NewTextContent(b.String()),
			},
		},
	}, nil
}
