package tools

import (
	"context"
	"fmt"

	"github.com/HendryAvila/imc/internal/history"
	"github.com/mark3labs/mcp-go/mcp"
)

// ListRecordsTool handles the imc_record_list MCP tool.
type ListRecordsTool struct {
	store *history.Store
}

// NewListRecordsTool creates a ListRecordsTool.
func NewListRecordsTool(store *history.Store) *ListRecordsTool {
	return &ListRecordsTool{store: store}
}

// Definition returns the MCP tool definition for imc_record_list.
func (t *ListRecordsTool) Definition() mcp.Tool {
	return mcp.NewTool("imc_record_list",
		mcp.WithDescription("List the IMC history, newest first."),
		mcp.WithNumber("limit",
			mcp.Description("Max records to show (default: all)"),
		),
	)
}

// Handle processes the imc_record_list tool call.
func (t *ListRecordsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	records := t.store.List()
	if len(records) == 0 {
		return mcp.NewToolResultText("The history is empty. Use imc_record_save to add a record."), nil
	}

	total := len(records)
	if limit := req.GetInt("limit", 0); limit > 0 && limit < total {
		records = records[:limit]
	}

	text := fmt.Sprintf("## Histórico (%d of %d)\n\n%s", len(records), total, formatRecordTable(records))
	return mcp.NewToolResultText(text), nil
}
