package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/offbench/discovery-mcp/internal/project"
	syncstore "github.com/offbench/discovery-mcp/internal/sync"
)

// SyncTool handles the sync_project MCP tool: push a project's latest
// analysis into the local sync database on demand.
type SyncTool struct {
	repo  *project.Repository
	store *syncstore.Store
}

// NewSyncTool creates a SyncTool. store may be nil when sync is not
// configured; the tool then reports that instead of failing.
func NewSyncTool(repo *project.Repository, store *syncstore.Store) *SyncTool {
	return &SyncTool{repo: repo, store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *SyncTool) Definition() mcp.Tool {
	return mcp.NewTool("sync_project",
		mcp.WithDescription(
			"Push a project's latest analysis (gaps, ambiguities, conflicts, "+
				"documents, open questions) to the local sync database so other "+
				"tooling can query it.",
		),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project identifier"),
		),
	)
}

// Handle processes the sync_project tool call.
func (t *SyncTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID := req.GetString("project_id", "")
	if projectID == "" {
		return mcp.NewToolResultError("'project_id' is required"), nil
	}
	if t.store == nil {
		return mcp.NewToolResultError("Sync is not configured. Set DISCOVERY_SYNC_DB to enable it."), nil
	}

	state := t.repo.Get(projectID)
	if state == nil {
		return mcp.NewToolResultError(projectNotFound(projectID)), nil
	}
	if state.Analysis == nil {
		return mcp.NewToolResultError("No analysis found. Run analyze_discovery before syncing."), nil
	}

	if err := t.store.SyncAnalysis(state, state.Analysis); err != nil {
		return nil, fmt.Errorf("syncing %s: %w", projectID, err)
	}

	stats, err := t.store.Stats()
	if err != nil {
		return nil, fmt.Errorf("reading sync stats: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Synced project `%s` (%s).\n\n", projectID, findingCounts(state.Analysis))
	fmt.Fprintf(&b, "Sync database now holds %d project(s), %d gap(s), %d conflict(s), %d open question(s).\n",
		stats.Projects, stats.Gaps, stats.Conflicts, stats.Questions)
	return mcp.NewToolResultText(b.String()), nil
}
