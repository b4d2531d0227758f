package tools

import (
	"context"
	"strings"

	"github.com/HendryAvila/imc/internal/history"
	"github.com/mark3labs/mcp-go/mcp"
)

// GetRecordTool handles the imc_record_get MCP tool.
type GetRecordTool struct {
	store *history.Store
}

// NewGetRecordTool creates a GetRecordTool.
func NewGetRecordTool(store *history.Store) *GetRecordTool {
	return &GetRecordTool{store: store}
}

// Definition returns the MCP tool definition for imc_record_get.
func (t *GetRecordTool) Definition() mcp.Tool {
	return mcp.NewTool("imc_record_get",
		mcp.WithDescription("Show one history record by ID, e.g. to pre-fill an edit."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Record ID"),
		),
	)
}

// Handle processes the imc_record_get tool call.
func (t *GetRecordTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := strings.TrimSpace(req.GetString("id", ""))
	if id == "" {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	rec, err := t.store.Get(id)
	if err != nil {
		return errorResult("get", err), nil
	}
	return mcp.NewToolResultText(formatRecord(rec)), nil
}
