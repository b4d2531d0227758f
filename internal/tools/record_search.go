package tools

import (
	"context"
	"fmt"

	"github.com/HendryAvila/imc/internal/history"
	"github.com/mark3labs/mcp-go/mcp"
)

// SearchRecordsTool handles the imc_record_search MCP tool.
type SearchRecordsTool struct {
	store *history.Store
}

// NewSearchRecordsTool creates a SearchRecordsTool.
func NewSearchRecordsTool(store *history.Store) *SearchRecordsTool {
	return &SearchRecordsTool{store: store}
}

// Definition returns the MCP tool definition for imc_record_search.
func (t *SearchRecordsTool) Definition() mcp.Tool {
	return mcp.NewTool("imc_record_search",
		mcp.WithDescription(
			"Filter the IMC history by name or classification (case-insensitive substring). "+
				"An empty query returns every record.",
		),
		mcp.WithString("query",
			mcp.Description("Text to look for, e.g. 'ana' or 'sobrepeso'"),
		),
	)
}

// Handle processes the imc_record_search tool call.
func (t *SearchRecordsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")

	results := t.store.Search(query)
	if len(results) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No records match %q.", query)), nil
	}

	text := fmt.Sprintf("Found %d record(s):\n\n%s", len(results), formatRecordTable(results))
	return mcp.NewToolResultText(text), nil
}
