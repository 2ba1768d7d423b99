package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/offbench/discovery-mcp/internal/project"
	"github.com/offbench/discovery-mcp/internal/storage"
)

// DeleteProjectTool handles the delete_project MCP tool.
type DeleteProjectTool struct {
	provider storage.Provider
	repo     *project.Repository
}

// NewDeleteProjectTool creates a DeleteProjectTool.
func NewDeleteProjectTool(provider storage.Provider, repo *project.Repository) *DeleteProjectTool {
	return &DeleteProjectTool{provider: provider, repo: repo}
}

// Definition returns the MCP tool definition for registration.
func (t *DeleteProjectTool) Definition() mcp.Tool {
	return mcp.NewTool("delete_project",
		mcp.WithDescription(
			"Delete a discovery project: its stored documents, deliverables, "+
				"and in-memory state. This cannot be undone.",
		),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project identifier"),
		),
	)
}

// Handle processes the delete_project tool call.
func (t *DeleteProjectTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID := req.GetString("project_id", "")
	if projectID == "" {
		return mcp.NewToolResultError("'project_id' is required"), nil
	}

	removed, err := t.provider.DeleteProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("deleting project: %w", err)
	}

	hadState := t.repo.Delete(projectID)

	if !removed && !hadState {
		return mcp.NewToolResultError(projectNotFound(projectID)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Project `%s` deleted.", projectID)), nil
}
