// Package server wires all MCP components and creates the server instance.
//
// This is the composition root (DIP): it creates concrete implementations
// and injects them into the tools that depend on abstractions. No
// business logic lives here — only wiring.
package server

import (
	"log"

	"github.com/mark3labs/mcp-go/server"

	"github.com/offbench/discovery-mcp/internal/analysis"
	"github.com/offbench/discovery-mcp/internal/config"
	"github.com/offbench/discovery-mcp/internal/project"
	"github.com/offbench/discovery-mcp/internal/storage"
	syncstore "github.com/offbench/discovery-mcp/internal/sync"
	"github.com/offbench/discovery-mcp/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools registered.
// This is the single place where all dependencies are resolved.
//
// The returned cleanup function closes the sync store's database
// connection and must be called on shutdown (typically via defer).
// It is always non-nil and safe to call even if sync init failed.
func New() (*server.MCPServer, func(), error) {
	cfg := config.FromEnv()
	log.Printf("discovery server starting: storage_root=%s sync_enabled=%v prefer_summaries=%v",
		cfg.StorageRoot, cfg.SyncEnabled(), cfg.PreferSummaries)

	// --- Create shared dependencies ---

	provider := storageProvider(cfg)
	repo := project.NewRepository()

	opts := analysis.DefaultOptions()
	opts.PreferSummaries = cfg.PreferSummaries
	analyzer := analysis.New(opts)

	// --- Sync store ---
	//
	// Sync is an independent subsystem: if it fails to initialize, the
	// discovery tools continue working. We log a warning and run with
	// sync disabled — the analysis pipeline is still fully functional.

	cleanup := noop
	var store *syncstore.Store
	if cfg.SyncEnabled() {
		st, err := syncstore.New(syncstore.Config{Path: cfg.SyncDBPath})
		if err != nil {
			log.Printf("WARNING: sync subsystem disabled: %v", err)
		} else {
			store = st
			cleanup = func() {
				if err := st.Close(); err != nil {
					log.Printf("WARNING: sync store close: %v", err)
				}
			}
		}
	}

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"discovery",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register project tools ---

	listTool := tools.NewListProjectsTool(provider)
	s.AddTool(listTool.Definition(), listTool.Handle)

	createTool := tools.NewCreateProjectTool(provider, repo)
	s.AddTool(createTool.Definition(), createTool.Handle)

	deleteTool := tools.NewDeleteProjectTool(provider, repo)
	s.AddTool(deleteTool.Definition(), deleteTool.Handle)

	// --- Register document tools ---

	ingestTool := tools.NewIngestTool(provider, repo)
	s.AddTool(ingestTool.Definition(), ingestTool.Handle)

	addDocTool := tools.NewAddDocumentTool(provider, repo)
	s.AddTool(addDocTool.Definition(), addDocTool.Handle)

	// --- Register analysis tools ---

	analyzeTool := tools.NewAnalyzeTool(repo, analyzer, store, cfg.AutoSyncOnAnalyze)
	s.AddTool(analyzeTool.Definition(), analyzeTool.Handle)

	questionsTool := tools.NewQuestionsTool(repo)
	s.AddTool(questionsTool.Definition(), questionsTool.Handle)

	updateTool := tools.NewUpdateContextTool(repo, store, cfg.AutoSyncOnUpdate)
	s.AddTool(updateTool.Definition(), updateTool.Handle)

	recalcTool := tools.NewRecalculateTool(repo, analyzer, store, cfg.AutoSyncOnAnalyze)
	s.AddTool(recalcTool.Definition(), recalcTool.Handle)

	// --- Register deliverable tools ---

	getTemplateTool := tools.NewGetTemplateTool()
	s.AddTool(getTemplateTool.Definition(), getTemplateTool.Handle)

	generateTool := tools.NewGenerateDeliverableTool(provider, repo)
	s.AddTool(generateTool.Definition(), generateTool.Handle)

	// --- Register sync tool ---
	//
	// Registered unconditionally — handles a nil store internally by
	// reporting that sync is not configured.

	syncTool := tools.NewSyncTool(repo, store)
	s.AddTool(syncTool.Definition(), syncTool.Handle)

	return s, cleanup, nil
}

// storageProvider returns the document storage backend for the current
// configuration. Local filesystem is the only backend today; the
// indirection keeps tools coded against the interface.
func storageProvider(cfg config.Config) storage.Provider {
	return storage.NewLocalProvider(cfg.StorageRoot)
}

// noop is a no-op cleanup function used as the default when sync is
// disabled or hasn't been initialized.
func noop() {}

// serverInstructions returns the instructions that tell the AI how to
// drive the discovery workflow.
func serverInstructions() string {
	return `You have access to a discovery analysis server for software
integration consulting. It analyzes discovery documents (emails, call
transcripts, SOWs, requirement docs) for gaps, ambiguities, and
conflicts, and tracks a confidence score per project.

## Typical workflow

1. create_project — set up the project folder structure
2. add_document / ingest_documents — load discovery documents
3. analyze_discovery — run the analysis and get the confidence score
4. extract_open_questions — get prioritized clarifying questions to
   send to the client
5. update_project_context — record the client's answers
6. recalculate_confidence — see how the score improved
7. generate_deliverable — fill an SOW, implementation plan, or
   technical spec template from the analysis

Repeat steps 4-6 until the confidence score clears the project's
threshold (80 by default), then generate deliverables.

## Guidance

- Never invent answers to open questions — ask the client. The
  analysis only records clarifications that documents actually
  contain.
- A low confidence score is a signal to gather more discovery
  material, not a failure.
- Use sync_project to push results to the local sync database when
  other tooling needs to query them.`
}
