package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/offbench/discovery-mcp/internal/storage"
)

// ListProjectsTool handles the list_projects MCP tool.
type ListProjectsTool struct {
	provider storage.Provider
}

// NewListProjectsTool creates a ListProjectsTool.
func NewListProjectsTool(provider storage.Provider) *ListProjectsTool {
	return &ListProjectsTool{provider: provider}
}

// Definition returns the MCP tool definition for registration.
func (t *ListProjectsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_projects",
		mcp.WithDescription(
			"List all available discovery projects with their metadata. "+
				"Use this to find a project_id before ingesting or analyzing documents.",
		),
	)
}

// Handle processes the list_projects tool call.
func (t *ListProjectsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projects, err := t.provider.ListProjects()
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	if len(projects) == 0 {
		return mcp.NewToolResultText("No projects found. Use create_project to start one."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d project(s):\n\n", len(projects))
	for _, p := range projects {
		fmt.Fprintf(&b, "- **%s** (`%s`)", p.Name, p.ID)
		if p.Description != "" {
			fmt.Fprintf(&b, " — %s", p.Description)
		}
		b.WriteString("\n")
	}

	return mcp.NewToolResultText(b.String()), nil
}
