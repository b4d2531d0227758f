package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/imc/internal/history"
	"github.com/mark3labs/mcp-go/mcp"
)

// DeleteRecordTool handles the imc_record_delete MCP tool.
type DeleteRecordTool struct {
	store *history.Store
}

// NewDeleteRecordTool creates a DeleteRecordTool with the given history store.
func NewDeleteRecordTool(store *history.Store) *DeleteRecordTool {
	return &DeleteRecordTool{store: store}
}

// Definition returns the MCP tool definition for imc_record_delete.
func (t *DeleteRecordTool) Definition() mcp.Tool {
	return mcp.NewTool("imc_record_delete",
		mcp.WithDescription(
			"Delete a history record. Ask the user first: the call is refused unless confirm=true.",
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("ID of the record to delete"),
		),
		mcp.WithBoolean("confirm",
			mcp.Required(),
			mcp.Description("Must be true, after the user has confirmed the deletion"),
		),
	)
}

// Handle processes the imc_record_delete tool call.
func (t *DeleteRecordTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := strings.TrimSpace(req.GetString("id", ""))
	if id == "" {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	if !req.GetBool("confirm", false) {
		rec, err := t.store.Get(id)
		if err != nil {
			return errorResult("delete", err), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf(
			"deletion of %q (%s, %s) not confirmed: ask the user, then call again with confirm=true",
			rec.ID, rec.Name, rec.Date)), nil
	}

	if err := t.store.Delete(id); err != nil {
		return errorResult("delete", err), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Record %s deleted. History now holds %d record(s).", id, t.store.Len())), nil
}
