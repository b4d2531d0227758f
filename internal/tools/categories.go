package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/imc/internal/imc"
	"github.com/mark3labs/mcp-go/mcp"
)

// CategoriesTool handles the imc_categories MCP tool.
// It is stateless and needs no store.
type CategoriesTool struct{}

// NewCategoriesTool creates a CategoriesTool.
func NewCategoriesTool() *CategoriesTool {
	return &CategoriesTool{}
}

// Definition returns the MCP tool definition for imc_categories.
func (t *CategoriesTool) Definition() mcp.Tool {
	return mcp.NewTool("imc_categories",
		mcp.WithDescription(
			"Show the IMC classification table. Pass an imc value to highlight the bucket it falls into.",
		),
		mcp.WithNumber("imc",
			mcp.Description("Optional IMC value to highlight"),
		),
	)
}

// Handle processes the imc_categories tool call.
func (t *CategoriesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	value, err := numberArg(req, "imc")
	if err != nil {
		return errorResult("categories", err), nil
	}

	current := ""
	if value != nil {
		current = imc.Classify(*value).Name
	}

	var b strings.Builder
	b.WriteString("## Classificação do IMC\n\n")
	b.WriteString("| | Classificação | IMC | Descrição |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, c := range imc.Categories() {
		marker := ""
		if c.Name == current {
			marker = "→"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", marker, c.Name, c.Range, c.Description)
	}
	if value != nil {
		fmt.Fprintf(&b, "\nIMC %s → **%s**\n", imc.Format(*value), current)
	}

	return mcp.NewToolResultText(b.String()), nil
}
