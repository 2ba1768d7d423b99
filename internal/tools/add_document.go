package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/offbench/discovery-mcp/internal/project"
	"github.com/offbench/discovery-mcp/internal/storage"
)

// AddDocumentTool handles the add_document MCP tool: upload one document
// directly into a project's discovery folder and parse it immediately.
type AddDocumentTool struct {
	provider storage.Provider
	repo     *project.Repository
}

// NewAddDocumentTool creates an AddDocumentTool.
func NewAddDocumentTool(provider storage.Provider, repo *project.Repository) *AddDocumentTool {
	return &AddDocumentTool{provider: provider, repo: repo}
}

// Definition returns the MCP tool definition for registration.
func (t *AddDocumentTool) Definition() mcp.Tool {
	return mcp.NewTool("add_document",
		mcp.WithDescription(
			"Add a single discovery document to a project. The document is "+
				"stored, parsed per its kind, and appended to the project's "+
				"ingested set — no full re-ingest needed.",
		),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project identifier"),
		),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Description("Document kind, selects the parser"),
			mcp.Enum("email", "transcript", "client-doc"),
		),
		mcp.WithString("filename",
			mcp.Required(),
			mcp.Description("Filename to store the document as (e.g. 'kickoff-call.txt')"),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Full document text"),
		),
	)
}

// Handle processes the add_document tool call.
func (t *AddDocumentTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID := req.GetString("project_id", "")
	kind := req.GetString("kind", "")
	filename := req.GetString("filename", "")
	content := req.GetString("content", "")

	if projectID == "" {
		return mcp.NewToolResultError("'project_id' is required"), nil
	}
	if filename == "" {
		return mcp.NewToolResultError("'filename' is required"), nil
	}
	if content == "" {
		return mcp.NewToolResultError("'content' is required"), nil
	}

	var subfolder string
	switch kind {
	case "email":
		subfolder = storage.SubfolderEmails
	case "transcript":
		subfolder = storage.SubfolderTranscripts
	case "client-doc":
		subfolder = storage.SubfolderClientDocs
	default:
		return mcp.NewToolResultError("'kind' must be 'email', 'transcript', or 'client-doc'"), nil
	}

	info, err := t.provider.GetProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("loading project: %w", err)
	}
	if info == nil {
		return mcp.NewToolResultError(projectNotFound(projectID)), nil
	}

	if err := t.provider.AddDocument(projectID, storage.FolderDiscovery, subfolder, filename, content); err != nil {
		return nil, fmt.Errorf("storing document: %w", err)
	}

	doc := parseBySubfolder(subfolder, filename, content)
	state := t.repo.GetOrCreate(info.ID, info.Name, info.Description)
	state.AddDocument(doc)
	t.repo.Update(state)

	return mcp.NewToolResultText(fmt.Sprintf(
		"Added **%s** (%s) to project `%s`. The project now has %d ingested document(s).",
		filename, doc.Type, projectID, len(state.Documents),
	)), nil
}
