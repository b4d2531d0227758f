package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/imc/internal/history"
	"github.com/mark3labs/mcp-go/mcp"
)

// UpdateRecordTool handles the imc_record_update MCP tool.
type UpdateRecordTool struct {
	store *history.Store
}

// NewUpdateRecordTool creates an UpdateRecordTool with the given history store.
func NewUpdateRecordTool(store *history.Store) *UpdateRecordTool {
	return &UpdateRecordTool{store: store}
}

// Definition returns the MCP tool definition for imc_record_update.
func (t *UpdateRecordTool) Definition() mcp.Tool {
	return mcp.NewTool("imc_record_update",
		mcp.WithDescription(
			"Edit a history record. All fields are re-submitted: name, weight and height are required, "+
				"the index and classification are recomputed, and the record keeps its ID and position.",
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("ID of the record to edit"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Label for the entry"),
		),
		mcp.WithNumber("weight",
			mcp.Required(),
			mcp.Description("Weight in kilograms (20 to 300)"),
		),
		mcp.WithNumber("height",
			mcp.Required(),
			mcp.Description("Height in meters (0.5 to 3)"),
		),
		mcp.WithNumber("imc",
			mcp.Description("Ignored; the index is always recomputed"),
		),
		mcp.WithString("date",
			mcp.Description("Date as YYYY-MM-DD (default: keep the current date)"),
		),
	)
}

// Handle processes the imc_record_update tool call.
func (t *UpdateRecordTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := strings.TrimSpace(req.GetString("id", ""))
	if id == "" {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	f, err := fieldsArg(req)
	if err != nil {
		return errorResult("update", err), nil
	}

	rec, err := t.store.Update(id, f)
	if err != nil {
		return errorResult("update", err), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("## Record Updated\n\n%s", formatRecord(rec))), nil
}
