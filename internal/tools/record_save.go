package tools

import (
	"context"
	"fmt"

	"github.com/HendryAvila/imc/internal/history"
	"github.com/mark3labs/mcp-go/mcp"
)

// SaveRecordTool handles the imc_record_save MCP tool.
type SaveRecordTool struct {
	store *history.Store
}

// NewSaveRecordTool creates a SaveRecordTool with the given history store.
func NewSaveRecordTool(store *history.Store) *SaveRecordTool {
	return &SaveRecordTool{store: store}
}

// Definition returns the MCP tool definition for imc_record_save.
func (t *SaveRecordTool) Definition() mcp.Tool {
	return mcp.NewTool("imc_record_save",
		mcp.WithDescription(
			"Save a calculation to the IMC history. The index and classification are "+
				"computed from weight and height; the record is added at the top of the history.",
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Label for the entry, usually the person's name"),
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
			mcp.Description("IMC shown by imc_calculate (optional; always recomputed)"),
		),
		mcp.WithString("date",
			mcp.Description("Date as YYYY-MM-DD (default: today)"),
		),
	)
}

// Handle processes the imc_record_save tool call.
func (t *SaveRecordTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f, err := fieldsArg(req)
	if err != nil {
		return errorResult("save", err), nil
	}

	rec, err := t.store.Create(f)
	if err != nil {
		return errorResult("save", err), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("## Record Saved\n\n%s\nHistory now holds %d record(s).",
		formatRecord(rec), t.store.Len())), nil
}
