// Package resources implements MCP resource handlers for the IMC history.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (imc://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/HendryAvila/imc/internal/history"
	"github.com/HendryAvila/imc/internal/imc"
	"github.com/mark3labs/mcp-go/mcp"
)

// URIs served by Handler.
const (
	CategoriesURI = "imc://categories"
	HistoryURI    = "imc://history"
)

// Handler manages IMC resource endpoints.
type Handler struct {
	store *history.Store
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(store *history.Store) *Handler {
	return &Handler{store: store}
}

// CategoriesResource returns the MCP resource definition for the
// classification table.
func (h *Handler) CategoriesResource() mcp.Resource {
	return mcp.NewResource(
		CategoriesURI,
		"IMC Classification Table",
		mcp.WithResourceDescription("The six IMC buckets with range labels and descriptions, lowest first"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleCategories returns the classification table as JSON.
func (h *Handler) HandleCategories(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(req.Params.URI, imc.Categories())
}

// HistoryResource returns the MCP resource definition for the saved history.
func (h *Handler) HistoryResource() mcp.Resource {
	return mcp.NewResource(
		HistoryURI,
		"IMC History",
		mcp.WithResourceDescription("Every saved IMC record, newest first"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleHistory returns the current history as a JSON array.
func (h *Handler) HandleHistory(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(req.Params.URI, h.store.List())
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
