// Package tools implements the MCP tool handlers for the IMC calculator
// and its history.
//
// Each tool is a struct holding its dependencies, with Definition()
// returning the mcp.Tool schema and Handle() serving the call:
// - one file per tool
// - user mistakes (bad input, unknown ID) come back as error *results*,
//   never as Go errors, so the client can show them and carry on
package tools

import (
	"errors"
	"fmt"
	"strings"

	"github.com/HendryAvila/imc/internal/form"
	"github.com/HendryAvila/imc/internal/history"
	"github.com/HendryAvila/imc/internal/imc"
	"github.com/mark3labs/mcp-go/mcp"
)

// numberArg reads a numeric argument that may arrive as a JSON number or
// as a string. Missing or blank values return (nil, nil).
func numberArg(req mcp.CallToolRequest, key string) (*float64, error) {
	return form.Number(key, req.GetArguments()[key])
}

// fieldsArg collects the record fields shared by save and update.
func fieldsArg(req mcp.CallToolRequest) (history.Fields, error) {
	var f history.Fields
	var err error

	f.Name = strings.TrimSpace(req.GetString("name", ""))
	f.Date = strings.TrimSpace(req.GetString("date", ""))

	if f.Weight, err = numberArg(req, "weight"); err != nil {
		return history.Fields{}, err
	}
	if f.Height, err = numberArg(req, "height"); err != nil {
		return history.Fields{}, err
	}
	if f.IMC, err = numberArg(req, "imc"); err != nil {
		return history.Fields{}, err
	}
	return f, nil
}

// errorResult renders err as a tool error, prefixed by what failed.
func errorResult(action string, err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, imc.ErrParse):
		return mcp.NewToolResultError(fmt.Sprintf("%s: invalid input: %v", action, err))
	case errors.Is(err, imc.ErrValidation):
		return mcp.NewToolResultError(fmt.Sprintf("%s: %v", action, err))
	case errors.Is(err, history.ErrNotFound):
		return mcp.NewToolResultError(fmt.Sprintf("%s: %v", action, err))
	default:
		return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", action, err))
	}
}

// formatRecord renders one record as a markdown bullet block.
func formatRecord(r history.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- **ID**: %s\n", r.ID)
	fmt.Fprintf(&b, "- **Nome**: %s\n", r.Name)
	fmt.Fprintf(&b, "- **Peso**: %g kg\n", r.Weight)
	fmt.Fprintf(&b, "- **Altura**: %g m\n", r.Height)
	fmt.Fprintf(&b, "- **IMC**: %s\n", imc.Format(r.IMC))
	fmt.Fprintf(&b, "- **Classificação**: %s\n", r.Category)
	fmt.Fprintf(&b, "- **Data**: %s\n", r.Date)
	return b.String()
}

// formatRecordTable renders records as a markdown table, newest first.
func formatRecordTable(records []history.Record) string {
	var b strings.Builder
	b.WriteString("| ID | Nome | Peso | Altura | IMC | Classificação | Data |\n")
	b.WriteString("|---|---|---|---|---|---|---|\n")
	for _, r := range records {
		fmt.Fprintf(&b, "| %s | %s | %g | %g | %s | %s | %s |\n",
			r.ID, r.Name, r.Weight, r.Height, imc.Format(r.IMC), r.Category, r.Date)
	}
	return b.String()
}
