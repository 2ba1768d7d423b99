// Package tools implements the MCP tool handlers for the discovery
// pipeline.
//
// Each tool is a struct that receives its dependencies via constructor
// (DIP) and exposes a Definition for registration plus a Handle
// compatible with mcp-go's CallToolRequest signature. One file per tool.
//
// User-facing failures (unknown project, missing analysis) are returned
// as tool error results, not Go errors; Go errors are reserved for
// infrastructure problems.
package tools

import (
	"fmt"
	"strings"

	"github.com/offbench/discovery-mcp/internal/analysis"
)

// projectNotFound builds the standard unknown-project error message.
func projectNotFound(projectID string) string {
	return fmt.Sprintf("Project not found: %s", projectID)
}

// scoreSummary renders the four confidence scores as a compact block.
func scoreSummary(r *analysis.Result) string {
	return fmt.Sprintf(
		"Clarity: %.1f | Completeness: %.1f | Alignment: %.1f | **Overall: %.1f%%**",
		r.ClarityScore, r.CompletenessScore, r.AlignmentScore, r.OverallConfidence,
	)
}

// findingCounts renders gap/ambiguity/conflict counts on one line.
func findingCounts(r *analysis.Result) string {
	return fmt.Sprintf("%d gaps, %d ambiguities, %d conflicts",
		len(r.Gaps), len(r.Ambiguities), len(r.Conflicts))
}

// joinOrNone joins items with commas, or "none" for an empty list.
func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
