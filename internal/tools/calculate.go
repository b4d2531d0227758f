package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/HendryAvila/imc/internal/imc"
	"github.com/mark3labs/mcp-go/mcp"
)

// CalculateTool handles the imc_calculate MCP tool.
type CalculateTool struct {
	delay time.Duration
}

// NewCalculateTool creates a CalculateTool. delay is the cosmetic pause
// before the result is returned; zero disables it.
func NewCalculateTool(delay time.Duration) *CalculateTool {
	return &CalculateTool{delay: delay}
}

// Definition returns the MCP tool definition for imc_calculate.
func (t *CalculateTool) Definition() mcp.Tool {
	return mcp.NewTool("imc_calculate",
		mcp.WithDescription(
			"Calculate the body mass index (IMC = weight / height²) and its classification. "+
				"Nothing is saved; call imc_record_save afterwards to keep the result in the history.",
		),
		mcp.WithNumber("weight",
			mcp.Required(),
			mcp.Description(fmt.Sprintf("Weight in kilograms (%g to %g)", imc.MinWeight, imc.MaxWeight)),
		),
		mcp.WithNumber("height",
			mcp.Required(),
			mcp.Description(fmt.Sprintf("Height in meters (%g to %g)", imc.MinHeight, imc.MaxHeight)),
		),
	)
}

// Handle processes the imc_calculate tool call.
func (t *CalculateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	weight, err := numberArg(req, "weight")
	if err != nil {
		return errorResult("calculate", err), nil
	}
	height, err := numberArg(req, "height")
	if err != nil {
		return errorResult("calculate", err), nil
	}
	if weight == nil {
		return mcp.NewToolResultError("'weight' is required"), nil
	}
	if height == nil {
		return mcp.NewToolResultError("'height' is required"), nil
	}

	value, err := imc.Compute(*weight, *height)
	if err != nil {
		return errorResult("calculate", err), nil
	}

	if err := imc.Delay(ctx, t.delay); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("calculation cancelled: %v", err)), nil
	}

	cat := imc.Classify(value)

	var b strings.Builder
	b.WriteString("## Resultado\n\n")
	fmt.Fprintf(&b, "- **IMC**: %s\n", imc.Format(value))
	fmt.Fprintf(&b, "- **Classificação**: %s (%s)\n", cat.Name, cat.Range)
	fmt.Fprintf(&b, "- **Descrição**: %s\n", cat.Description)
	fmt.Fprintf(&b, "- **Peso**: %g kg | **Altura**: %g m\n", *weight, *height)
	b.WriteString("\nO IMC é uma ferramenta de triagem, não um diagnóstico. ")
	b.WriteString("Consulte um profissional de saúde para uma avaliação completa.\n")
	b.WriteString("\nTo keep this result, call `imc_record_save` with a name, the weight and the height.\n")

	return mcp.NewToolResultText(b.String()), nil
}
