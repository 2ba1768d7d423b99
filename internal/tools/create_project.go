package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/offbench/discovery-mcp/internal/project"
	"github.com/offbench/discovery-mcp/internal/storage"
)

// CreateProjectTool handles the create_project MCP tool.
type CreateProjectTool struct {
	provider storage.Provider
	repo     *project.Repository
}

// NewCreateProjectTool creates a CreateProjectTool.
func NewCreateProjectTool(provider storage.Provider, repo *project.Repository) *CreateProjectTool {
	return &CreateProjectTool{provider: provider, repo: repo}
}

// Definition returns the MCP tool definition for registration.
func (t *CreateProjectTool) Definition() mcp.Tool {
	return mcp.NewTool("create_project",
		mcp.WithDescription(
			"Create a new discovery project with its folder structure "+
				"(discovery/emails, discovery/transcripts, discovery/client-docs, "+
				"implementation, working).",
		),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Unique project identifier (e.g. 'cozyhome-shopify-quickbooks')"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Human-readable project name"),
		),
		mcp.WithString("description",
			mcp.Description("Short description of the engagement"),
		),
	)
}

// Handle processes the create_project tool call.
func (t *CreateProjectTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID := req.GetString("project_id", "")
	name := req.GetString("name", "")
	description := req.GetString("description", "")

	if projectID == "" {
		return mcp.NewToolResultError("'project_id' is required"), nil
	}
	if name == "" {
		return mcp.NewToolResultError("'name' is required"), nil
	}

	info, err := t.provider.CreateProject(projectID, name, description)
	if err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	t.repo.GetOrCreate(info.ID, info.Name, info.Description)

	return mcp.NewToolResultText(fmt.Sprintf(
		"Project **%s** created (`%s`).\n\n"+
			"Drop discovery documents into the project's discovery folders, "+
			"or use add_document, then run ingest_documents.",
		info.Name, info.ID,
	)), nil
}
