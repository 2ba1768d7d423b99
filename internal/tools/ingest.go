package tools

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/offbench/discovery-mcp/internal/document"
	"github.com/offbench/discovery-mcp/internal/project"
	"github.com/offbench/discovery-mcp/internal/storage"
)

// IngestTool handles the ingest_documents MCP tool. It loads every file
// from a project's discovery folders, parses each with the parser
// matching its subfolder, and replaces the project's document set.
type IngestTool struct {
	provider storage.Provider
	repo     *project.Repository
}

// NewIngestTool creates an IngestTool.
func NewIngestTool(provider storage.Provider, repo *project.Repository) *IngestTool {
	return &IngestTool{provider: provider, repo: repo}
}

// Definition returns the MCP tool definition for registration.
func (t *IngestTool) Definition() mcp.Tool {
	return mcp.NewTool("ingest_documents",
		mcp.WithDescription(
			"Load and parse all discovery documents from a project folder. "+
				"Emails, transcripts, and client docs each get type-specific "+
				"metadata extraction. Re-running replaces previously ingested documents.",
		),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project identifier"),
		),
	)
}

// Handle processes the ingest_documents tool call.
func (t *IngestTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID := req.GetString("project_id", "")
	if projectID == "" {
		return mcp.NewToolResultError("'project_id' is required"), nil
	}

	info, err := t.provider.GetProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("loading project: %w", err)
	}
	if info == nil {
		return mcp.NewToolResultError(projectNotFound(projectID)), nil
	}

	files, err := t.provider.ListDocuments(projectID, storage.FolderDiscovery)
	if err != nil {
		return nil, fmt.Errorf("listing discovery documents: %w", err)
	}

	state := t.repo.GetOrCreate(info.ID, info.Name, info.Description)
	state.ClearDocuments()

	var loaded []string
	for _, file := range files {
		content, ok, err := t.provider.GetDocument(projectID, storage.FolderDiscovery, file.Subfolder, file.Filename)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", file.Path, err)
		}
		if !ok {
			// Listed but vanished before reading; skip rather than fail.
			log.Printf("WARNING: document disappeared during ingest: %s", file.Path)
			continue
		}

		doc := parseBySubfolder(file.Subfolder, file.Path, content)
		state.AddDocument(doc)
		loaded = append(loaded, fmt.Sprintf("- %s (%s)", file.Filename, doc.Type))
	}

	t.repo.Update(state)

	if len(loaded) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf(
			"No discovery documents found for **%s**. Add files under the "+
				"project's discovery/ folders and re-run.", info.Name,
		)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Loaded %d document(s) for **%s**:\n\n%s\n\nNext: run analyze_discovery.",
		len(loaded), info.Name, strings.Join(loaded, "\n"),
	)), nil
}

// parseBySubfolder picks the parser matching the discovery subfolder the
// file lives in. Files outside the known subfolders get the generic
// client-doc treatment.
func parseBySubfolder(subfolder, path, content string) *document.Document {
	switch subfolder {
	case storage.SubfolderEmails:
		return document.ParseEmail(path, content)
	case storage.SubfolderTranscripts:
		return document.ParseTranscript(path, content)
	default:
		return document.ParseClientDoc(path, content)
	}
}
