package tools

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/offbench/discovery-mcp/internal/analysis"
	"github.com/offbench/discovery-mcp/internal/project"
	syncstore "github.com/offbench/discovery-mcp/internal/sync"
)

// RecalculateTool handles the recalculate_confidence MCP tool.
type RecalculateTool struct {
	repo     *project.Repository
	analyzer *analysis.Analyzer
	store    *syncstore.Store
	autoSync bool
}

// NewRecalculateTool creates a RecalculateTool. store may be nil when
// sync is not configured.
func NewRecalculateTool(repo *project.Repository, analyzer *analysis.Analyzer, store *syncstore.Store, autoSync bool) *RecalculateTool {
	return &RecalculateTool{repo: repo, analyzer: analyzer, store: store, autoSync: autoSync}
}

// Definition returns the MCP tool definition for registration.
func (t *RecalculateTool) Definition() mcp.Tool {
	return mcp.NewTool("recalculate_confidence",
		mcp.WithDescription(
			"Re-run the analysis over the ingested documents plus all "+
				"recorded context updates, and report how the confidence score "+
				"moved since the previous run.",
		),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project identifier"),
		),
	)
}

// Handle processes the recalculate_confidence tool call.
func (t *RecalculateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID := req.GetString("project_id", "")
	if projectID == "" {
		return mcp.NewToolResultError("'project_id' is required"), nil
	}

	state := t.repo.Get(projectID)
	if state == nil {
		return mcp.NewToolResultError(projectNotFound(projectID)), nil
	}
	if state.Analysis == nil {
		return mcp.NewToolResultError("No analysis found. Run analyze_discovery first."), nil
	}
	if len(state.Documents) == 0 {
		return mcp.NewToolResultError("No documents ingested. Run ingest_documents first."), nil
	}

	previous := state.Analysis.OverallConfidence

	result := t.analyzer.Analyze(state.Documents, state.AdditionalContext)

	// Re-match recorded answers against the fresh findings so gaps
	// already addressed stay answered across re-analyses.
	state.UpdateAnalysis(result)
	for _, info := range state.AdditionalContext {
		state.MatchGapAnswers(info)
	}
	t.repo.Update(state)

	if t.store != nil && t.autoSync {
		if err := t.store.SyncAnalysis(state, result); err != nil {
			log.Printf("WARNING: auto-sync after recalculate failed: %v", err)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Confidence Recalculated: %s\n\n", projectID)
	fmt.Fprintf(&b, "- Previous: %.1f/100\n", previous)
	fmt.Fprintf(&b, "- Current: %.1f/100 (%+.1f)\n\n", result.OverallConfidence, result.OverallConfidence-previous)
	b.WriteString(scoreSummary(result))
	b.WriteString("\n")

	unanswered := 0
	for _, gap := range result.Gaps {
		if !gap.Answered {
			unanswered++
		}
	}
	fmt.Fprintf(&b, "\nRemaining: %d unanswered gap(s), %d ambiguity(ies), %d conflict(s).\n",
		unanswered, len(result.Ambiguities), len(result.Conflicts))

	if improvement, ok := state.ConfidenceImprovement(); ok {
		fmt.Fprintf(&b, "\nTotal improvement since first analysis: %+.1f points.\n", improvement)
	}
	return mcp.NewToolResultText(b.String()), nil
}
