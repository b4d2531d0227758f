package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/imc/internal/history"
	"github.com/HendryAvila/imc/internal/imc"
	"github.com/mark3labs/mcp-go/mcp"
)

// StatsTool handles the imc_stats MCP tool.
type StatsTool struct {
	store *history.Store
}

// NewStatsTool creates a StatsTool with the given history store.
func NewStatsTool(store *history.Store) *StatsTool {
	return &StatsTool{store: store}
}

// Definition returns the MCP tool definition for imc_stats.
func (t *StatsTool) Definition() mcp.Tool {
	return mcp.NewTool("imc_stats",
		mcp.WithDescription(
			"Show history statistics: number of records, average IMC and records per classification.",
		),
	)
}

// Handle processes the imc_stats tool call.
func (t *StatsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sum := t.store.Summary()

	var sb strings.Builder
	sb.WriteString("## IMC Statistics\n\n")
	sb.WriteString(fmt.Sprintf("- **Records**: %d\n", sum.Count))
	sb.WriteString(fmt.Sprintf("- **Average IMC**: %s\n", imc.Format(sum.AverageIMC)))
	if sum.AverageCategory != "" {
		sb.WriteString(fmt.Sprintf("- **Average classification**: %s\n", sum.AverageCategory))
	}

	sb.WriteString("\n| Classificação | Registros |\n|---|---|\n")
	for _, c := range sum.ByCategory {
		sb.WriteString(fmt.Sprintf("| %s | %d |\n", c.Category, c.Count))
	}

	return mcp.NewToolResultText(sb.String()), nil
}
