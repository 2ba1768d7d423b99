package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/offbench/discovery-mcp/internal/project"
	"github.com/offbench/discovery-mcp/internal/storage"
	"github.com/offbench/discovery-mcp/internal/templates"
)

// GetTemplateTool handles the get_template MCP tool: return a raw
// deliverable template with its placeholders intact.
type GetTemplateTool struct{}

// NewGetTemplateTool creates a GetTemplateTool.
func NewGetTemplateTool() *GetTemplateTool {
	return &GetTemplateTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *GetTemplateTool) Definition() mcp.Tool {
	return mcp.NewTool("get_template",
		mcp.WithDescription(
			"Return a built-in deliverable template with its [PLACEHOLDER] "+
				"markers intact, for manual editing or review.",
		),
		mcp.WithString("template_type",
			mcp.Required(),
			mcp.Description("Which template: sow, implementation-plan, or technical-specs"),
			mcp.Enum("sow", "implementation-plan", "technical-specs"),
		),
	)
}

// Handle processes the get_template tool call.
func (t *GetTemplateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	templateType := req.GetString("template_type", "")
	if templateType == "" {
		return mcp.NewToolResultError("'template_type' is required"), nil
	}

	content, err := templates.Get(templateType)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(content), nil
}

// GenerateDeliverableTool handles the generate_deliverable MCP tool:
// fill a template from the latest analysis and save it into the
// project's implementation folder.
type GenerateDeliverableTool struct {
	provider storage.Provider
	repo     *project.Repository
	filler   *templates.Filler
}

// NewGenerateDeliverableTool creates a GenerateDeliverableTool.
func NewGenerateDeliverableTool(provider storage.Provider, repo *project.Repository) *GenerateDeliverableTool {
	return &GenerateDeliverableTool{
		provider: provider,
		repo:     repo,
		filler:   templates.NewFiller(),
	}
}

// Definition returns the MCP tool definition for registration.
func (t *GenerateDeliverableTool) Definition() mcp.Tool {
	return mcp.NewTool("generate_deliverable",
		mcp.WithDescription(
			"Fill a deliverable template with the latest analysis results "+
				"and save it to the project's implementation folder. Fields "+
				"the analysis could not determine are left marked "+
				"[NEEDS CLARIFICATION].",
		),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project identifier"),
		),
		mcp.WithString("template_type",
			mcp.Required(),
			mcp.Description("Which template: sow, implementation-plan, or technical-specs"),
			mcp.Enum("sow", "implementation-plan", "technical-specs"),
		),
	)
}

// Handle processes the generate_deliverable tool call.
func (t *GenerateDeliverableTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID := req.GetString("project_id", "")
	if projectID == "" {
		return mcp.NewToolResultError("'project_id' is required"), nil
	}
	templateType := req.GetString("template_type", "")
	if templateType == "" {
		return mcp.NewToolResultError("'template_type' is required"), nil
	}

	state := t.repo.Get(projectID)
	if state == nil {
		return mcp.NewToolResultError(projectNotFound(projectID)), nil
	}
	if state.Analysis == nil {
		return mcp.NewToolResultError("No analysis found. Run analyze_discovery before generating deliverables."), nil
	}

	raw, err := templates.Get(templateType)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	filled := t.filler.Fill(raw, state)

	filename, _ := templates.Filename(templateType)
	if err := t.provider.SaveDeliverable(projectID, filename, filled); err != nil {
		return nil, fmt.Errorf("saving deliverable for %s: %w", projectID, err)
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Generated `%s` for project `%s` (confidence %.1f/100) and saved it to the implementation folder.\n\n%s",
		filename, projectID, state.Analysis.OverallConfidence, filled,
	)), nil
}
