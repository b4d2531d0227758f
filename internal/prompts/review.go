package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// ReviewPrompt handles the imc-review MCP prompt.
// It instructs the AI to read and present the saved history.
type ReviewPrompt struct{}

// NewReviewPrompt creates a ReviewPrompt.
func NewReviewPrompt() *ReviewPrompt {
	return &ReviewPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *ReviewPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("imc-review",
		mcp.WithPromptDescription(
			"Review the saved IMC history: statistics, latest records and how they are classified.",
		),
	)
}

// Handle processes the imc-review prompt request.
func (p *ReviewPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "IMC history review",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please run `imc_stats` and then `imc_record_list` with limit=10.\n\n" +
						"Then:\n" +
						"1. Summarize how many records I have and the average IMC\n" +
						"2. Show the latest records in a table\n" +
						"3. Point out the records outside Peso Normal, without giving medical advice\n" +
						"4. Remind me I can edit (`imc_record_update`) or delete (`imc_record_delete`) any entry",
				),
			},
		},
	}, nil
}
