package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/offbench/discovery-mcp/internal/analysis"
	"github.com/offbench/discovery-mcp/internal/project"
)

// ambiguityQuestionCap limits how many ambiguity questions are emitted.
const ambiguityQuestionCap = 3

// QuestionsTool handles the extract_open_questions MCP tool.
type QuestionsTool struct {
	repo *project.Repository
}

// NewQuestionsTool creates a QuestionsTool.
func NewQuestionsTool(repo *project.Repository) *QuestionsTool {
	return &QuestionsTool{repo: repo}
}

// Definition returns the MCP tool definition for registration.
func (t *QuestionsTool) Definition() mcp.Tool {
	return mcp.NewTool("extract_open_questions",
		mcp.WithDescription(
			"Generate prioritized clarifying questions from the latest "+
				"analysis: high-priority gaps first, then medium, then the top "+
				"ambiguities. Answered gaps are skipped.",
		),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project identifier"),
		),
	)
}

// Handle processes the extract_open_questions tool call.
func (t *QuestionsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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

	questions := buildQuestions(state.Analysis)
	if len(questions) == 0 {
		return mcp.NewToolResultText("No open questions — all detected items are answered or low priority."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generated %d clarifying question(s) for `%s`:\n\n", len(questions), projectID)
	b.WriteString(strings.Join(questions, "\n"))
	return mcp.NewToolResultText(b.String()), nil
}

// buildQuestions assembles the numbered question list: unanswered
// high-priority gaps, then medium, then up to three ambiguities.
// Low-priority gaps are deliberately left out of the question list —
// they still appear in the analysis itself.
func buildQuestions(result *analysis.Result) []string {
	var questions []string
	num := 1

	appendGaps := func(priority analysis.Priority) {
		for _, gap := range result.Gaps {
			if gap.Priority != priority || gap.Answered || gap.SuggestedQuestion == "" {
				continue
			}
			questions = append(questions, fmt.Sprintf(
				"%d. [%s/%s] %s\n   - Why it matters: %s",
				num, strings.ToUpper(string(gap.Priority)), gap.Category,
				gap.SuggestedQuestion, gap.Impact,
			))
			num++
		}
	}

	appendGaps(analysis.PriorityHigh)
	appendGaps(analysis.PriorityMedium)

	for i, amb := range result.Ambiguities {
		if i >= ambiguityQuestionCap {
			break
		}
		questions = append(questions, fmt.Sprintf(
			"%d. [%s/clarity] Regarding '%s': %s\n   - Context: %s",
			num, strings.ToUpper(string(amb.Priority)), amb.Term,
			amb.ClarificationNeeded, amb.Context,
		))
		num++
	}

	return questions
}
