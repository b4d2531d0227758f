// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it opens the storage backend, mounts the
// history store and injects it into the tools, prompts and resources that
// need it. No business logic lives here, only wiring.
package server

import (
	"fmt"

	"github.com/HendryAvila/imc/internal/config"
	"github.com/HendryAvila/imc/internal/history"
	"github.com/HendryAvila/imc/internal/prompts"
	"github.com/HendryAvila/imc/internal/resources"
	"github.com/HendryAvila/imc/internal/storage"
	"github.com/HendryAvila/imc/internal/tools"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// Version is set at build time via ldflags.
var Version = "dev"

// openBackend is a package-level variable for testability.
var openBackend = storage.Open

// OpenStore opens the configured backend and mounts the history store.
// The returned cleanup closes the backend; it is always non-nil.
func OpenStore(cfg config.Config, logger *zap.Logger) (*history.Store, func(), error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	backend, err := openBackend(cfg.Backend, cfg.DataDir)
	if err != nil {
		return nil, noop, fmt.Errorf("opening %s storage: %w", cfg.Backend, err)
	}

	store := history.New(backend,
		history.WithKey(cfg.StorageKey),
		history.WithLogger(logger.Named("history")),
	)
	store.Load()

	cleanup := func() {
		if err := backend.Close(); err != nil {
			logger.Warn("storage close failed", zap.Error(err))
		}
	}
	return store, cleanup, nil
}

// New creates and configures the MCP server with all tools, prompts,
// and resources registered.
//
// The calculator never depends on persistence: if the configured backend
// cannot be opened, the history falls back to process memory and a
// warning is logged, so the server still starts.
//
// The returned cleanup function closes the backend and must be called on
// shutdown (typically via defer). It is always non-nil.
func New(cfg config.Config, logger *zap.Logger) (*server.MCPServer, func(), error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, noop, fmt.Errorf("invalid config: %w", err)
	}

	store, cleanup, err := OpenStore(cfg, logger)
	if err != nil {
		logger.Warn("history will not persist", zap.Error(err))
		store = history.New(storage.NewMemory(),
			history.WithKey(cfg.StorageKey),
			history.WithLogger(logger.Named("history")),
		)
		cleanup = noop
	}

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"imc",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register calculator tools ---

	calculateTool := tools.NewCalculateTool(cfg.ResultDelay)
	s.AddTool(calculateTool.Definition(), calculateTool.Handle)

	categoriesTool := tools.NewCategoriesTool()
	s.AddTool(categoriesTool.Definition(), categoriesTool.Handle)

	// --- Register history tools ---

	saveTool := tools.NewSaveRecordTool(store)
	s.AddTool(saveTool.Definition(), saveTool.Handle)

	updateTool := tools.NewUpdateRecordTool(store)
	s.AddTool(updateTool.Definition(), updateTool.Handle)

	deleteTool := tools.NewDeleteRecordTool(store)
	s.AddTool(deleteTool.Definition(), deleteTool.Handle)

	getTool := tools.NewGetRecordTool(store)
	s.AddTool(getTool.Definition(), getTool.Handle)

	listTool := tools.NewListRecordsTool(store)
	s.AddTool(listTool.Definition(), listTool.Handle)

	searchTool := tools.NewSearchRecordsTool(store)
	s.AddTool(searchTool.Definition(), searchTool.Handle)

	statsTool := tools.NewStatsTool(store)
	s.AddTool(statsTool.Definition(), statsTool.Handle)

	// --- Register prompts ---

	startPrompt := prompts.NewStartPrompt()
	s.AddPrompt(startPrompt.Definition(), startPrompt.Handle)

	reviewPrompt := prompts.NewReviewPrompt()
	s.AddPrompt(reviewPrompt.Definition(), reviewPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(store)
	s.AddResource(resourceHandler.CategoriesResource(), resourceHandler.HandleCategories)
	s.AddResource(resourceHandler.HistoryResource(), resourceHandler.HandleHistory)

	logger.Info("server ready",
		zap.String("version", Version),
		zap.String("backend", cfg.Backend),
		zap.Int("records", store.Len()),
	)

	return s, cleanup, nil
}

// noop is a no-op cleanup function used when there is nothing to close.
func noop() {}

// serverInstructions returns the system instructions that tell the AI
// how to use the IMC tools.
func serverInstructions() string {
	return `You have access to an IMC (índice de massa corporal, body mass index) calculator with a saved history.

## CALCULATING

- imc_calculate takes weight in kilograms (20 to 300) and height in meters (0.5 to 3).
  Heights given in centimeters must be converted first (175 cm = 1.75 m).
- The index is weight / height², shown with one decimal, and classified into one of six
  buckets (imc_categories shows the table). A value exactly on a boundary belongs to the
  higher bucket: 25.0 is Sobrepeso.
- Calculating never saves anything.

## HISTORY

- imc_record_save keeps a calculation. It needs a name, the weight and the height; the date
  defaults to today. The index and classification are always recomputed from weight and height.
- imc_record_list shows records newest first; imc_record_search filters by name or classification.
- imc_record_update re-submits every field of an existing record; it keeps its ID and position.
- imc_record_delete is destructive. ALWAYS ask the user to confirm, then call it with confirm=true.
- imc_stats summarizes the history.

## TONE

The IMC is a screening number, not a diagnosis. Present results neutrally and suggest a
health professional for anything beyond the classification.`
}
