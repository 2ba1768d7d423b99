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

// AnalyzeTool handles the analyze_discovery MCP tool: run the analysis
// engine over a project's ingested documents and record the result.
type AnalyzeTool struct {
	repo     *project.Repository
	analyzer *analysis.Analyzer

	// store is nil when the sync database isn't configured.
	store    *syncstore.Store
	autoSync bool
}

// NewAnalyzeTool creates an AnalyzeTool. store may be nil; autoSync is
// ignored in that case.
func NewAnalyzeTool(repo *project.Repository, analyzer *analysis.Analyzer, store *syncstore.Store, autoSync bool) *AnalyzeTool {
	return &AnalyzeTool{repo: repo, analyzer: analyzer, store: store, autoSync: autoSync}
}

// Definition returns the MCP tool definition for registration.
func (t *AnalyzeTool) Definition() mcp.Tool {
	return mcp.NewTool("analyze_discovery",
		mcp.WithDescription(
			"Analyze a project's discovery documents for gaps (missing "+
				"information), ambiguities (vague requirements), and conflicts "+
				"(contradictory statements), and compute the confidence score.",
		),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project identifier"),
		),
	)
}

// Handle processes the analyze_discovery tool call.
func (t *AnalyzeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID := req.GetString("project_id", "")
	if projectID == "" {
		return mcp.NewToolResultError("'project_id' is required"), nil
	}

	state := t.repo.Get(projectID)
	if state == nil {
		return mcp.NewToolResultError(projectNotFound(projectID) + ". Run ingest_documents first."), nil
	}
	if len(state.Documents) == 0 {
		return mcp.NewToolResultError(fmt.Sprintf("No documents found for project: %s", projectID)), nil
	}

	result := t.analyzer.Analyze(state.Documents, state.AdditionalContext)
	state.UpdateAnalysis(result)
	t.repo.Update(state)

	t.maybeSync(state, result)

	return mcp.NewToolResultText(renderAnalysis(projectID, result)), nil
}

// maybeSync pushes the result to the sync store when configured.
// Sync failures are logged and never fail the analysis itself.
func (t *AnalyzeTool) maybeSync(state *project.State, result *analysis.Result) {
	if t.store == nil || !t.autoSync {
		return
	}
	if err := t.store.SyncAnalysis(state, result); err != nil {
		log.Printf("WARNING: auto-sync after analyze failed: %v", err)
	}
}

// renderAnalysis formats the full analysis response.
func renderAnalysis(projectID string, r *analysis.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Analysis Complete — %s\n\n", projectID)
	fmt.Fprintf(&b, "%s\n\n", scoreSummary(r))
	fmt.Fprintf(&b, "**Client:** %s\n", r.ClientName)
	fmt.Fprintf(&b, "**Systems identified:** %s\n", joinOrNone(r.SystemsIdentified))
	fmt.Fprintf(&b, "**Findings:** %s\n", findingCounts(r))

	if len(r.Gaps) > 0 {
		b.WriteString("\n## Gaps\n\n")
		for _, g := range r.Gaps {
			fmt.Fprintf(&b, "- [%s/%s] %s\n", g.Priority, g.Category, g.Description)
		}
	}

	if len(r.Ambiguities) > 0 {
		b.WriteString("\n## Ambiguities\n\n")
		for _, a := range r.Ambiguities {
			fmt.Fprintf(&b, "- '%s': %s\n", a.Term, a.ClarificationNeeded)
			if a.Clarification != "" {
				fmt.Fprintf(&b, "  - Clarification found in documents: %s\n", a.Clarification)
			}
		}
	}

	if len(r.Conflicts) > 0 {
		b.WriteString("\n## Conflicts\n\n")
		for _, c := range r.Conflicts {
			fmt.Fprintf(&b, "- **%s** (%s): %s\n", c.Topic, c.Priority, c.ResolutionNeeded)
			for i, stmt := range c.ConflictingStatements {
				fmt.Fprintf(&b, "  - %q (%s)\n", stmt, c.Sources[i])
			}
			if c.Resolution != "" {
				fmt.Fprintf(&b, "  - Resolution found in documents: %s\n", c.Resolution)
			}
		}
	}

	if len(r.PainPoints) > 0 {
		b.WriteString("\n## Pain Points\n\n")
		for _, p := range r.PainPoints {
			fmt.Fprintf(&b, "- %s\n", p)
		}
	}

	if len(r.BusinessObjectives) > 0 {
		b.WriteString("\n## Business Objectives\n\n")
		for _, o := range r.BusinessObjectives {
			fmt.Fprintf(&b, "- %s\n", o)
		}
	}

	b.WriteString("\nNext: run extract_open_questions to get prioritized clarifying questions.\n")
	return b.String()
}
