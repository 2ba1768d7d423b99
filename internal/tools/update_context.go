package tools

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/offbench/discovery-mcp/internal/project"
	syncstore "github.com/offbench/discovery-mcp/internal/sync"
)

// UpdateContextTool handles the update_project_context MCP tool.
type UpdateContextTool struct {
	repo     *project.Repository
	store    *syncstore.Store
	autoSync bool
}

// NewUpdateContextTool creates an UpdateContextTool. store may be nil
// when sync is not configured.
func NewUpdateContextTool(repo *project.Repository, store *syncstore.Store, autoSync bool) *UpdateContextTool {
	return &UpdateContextTool{repo: repo, store: store, autoSync: autoSync}
}

// Definition returns the MCP tool definition for registration.
func (t *UpdateContextTool) Definition() mcp.Tool {
	return mcp.NewTool("update_project_context",
		mcp.WithDescription(
			"Record new information learned after the initial analysis "+
				"(client answers, follow-up emails, decisions). Matching gaps "+
				"are marked answered. Run recalculate_confidence afterwards to "+
				"see the updated score.",
		),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project identifier"),
		),
		mcp.WithString("new_information",
			mcp.Required(),
			mcp.Description("The new information to record, in plain text"),
		),
		mcp.WithString("update_type",
			mcp.Description("Kind of update: context, answer, or decision (default context)"),
			mcp.Enum("context", "answer", "decision"),
		),
	)
}

// Handle processes the update_project_context tool call.
func (t *UpdateContextTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID := req.GetString("project_id", "")
	if projectID == "" {
		return mcp.NewToolResultError("'project_id' is required"), nil
	}
	info := req.GetString("new_information", "")
	if strings.TrimSpace(info) == "" {
		return mcp.NewToolResultError("'new_information' is required"), nil
	}
	updateType := req.GetString("update_type", "context")

	state := t.repo.Get(projectID)
	if state == nil {
		return mcp.NewToolResultError(projectNotFound(projectID)), nil
	}

	state.AddContext(info, updateType)
	answered := state.MatchGapAnswers(info)
	t.repo.Update(state)

	if t.store != nil && t.autoSync && state.Analysis != nil {
		if err := t.store.SyncAnalysis(state, state.Analysis); err != nil {
			log.Printf("WARNING: auto-sync after context update failed: %v", err)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Recorded %s update for `%s` (%d context entries total).\n", updateType, projectID, len(state.AdditionalContext))
	if answered > 0 {
		fmt.Fprintf(&b, "\nMarked %d gap(s) as answered by this information.\n", answered)
	}
	b.WriteString("\nRun recalculate_confidence to see the updated score.")
	return mcp.NewToolResultText(b.String()), nil
}
