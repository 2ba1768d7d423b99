// Package storage abstracts where project folders and documents live.
//
// Provider is the boundary the tools depend on; LocalProvider implements
// it on the local filesystem. The analyzer never touches storage — the
// tool layer feeds it parsed documents.
package storage

import (
	"fmt"

	"github.com/offbench/discovery-mcp/internal/project"
)

// --- Folder type enum ---

// FolderType identifies one of the three folders in a project structure.
type FolderType string

const (
	FolderDiscovery      FolderType = "discovery"
	FolderImplementation FolderType = "implementation"
	FolderWorking        FolderType = "working"
)

// validFolders is the set of allowed folder types.
var validFolders = map[FolderType]bool{
	FolderDiscovery:      true,
	FolderImplementation: true,
	FolderWorking:        true,
}

// ValidateFolder returns an error if the folder type is not recognized.
func ValidateFolder(f FolderType) error {
	if !validFolders[f] {
		return fmt.Errorf("invalid folder type %q: must be one of: discovery, implementation, working", f)
	}
	return nil
}

// Discovery subfolders map to the type-specific document parsers.
const (
	SubfolderEmails      = "emails"
	SubfolderTranscripts = "transcripts"
	SubfolderClientDocs  = "client-docs"
)

// --- Metadata types ---

// ProjectInfo is the stored metadata for one project.
type ProjectInfo struct {
	ID          string         `json:"project_id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Config      project.Config `json:"config"`
}

// DocumentInfo describes one stored document file.
type DocumentInfo struct {
	Filename  string `json:"filename"`
	Subfolder string `json:"subfolder,omitempty"`
	Path      string `json:"path"`
}

// --- Provider interface ---

// Provider is the storage boundary consumed by the tool layer.
// Abstracted for testability and for future remote backends (DIP).
type Provider interface {
	ListProjects() ([]ProjectInfo, error)
	GetProject(projectID string) (*ProjectInfo, error)
	CreateProject(projectID, name, description string) (*ProjectInfo, error)
	DeleteProject(projectID string) (bool, error)

	ListDocuments(projectID string, folder FolderType) ([]DocumentInfo, error)
	GetDocument(projectID string, folder FolderType, subfolder, filename string) (string, bool, error)
	AddDocument(projectID string, folder FolderType, subfolder, filename, content string) error
	SaveDeliverable(projectID, filename, content string) error

	LoadConfig(projectID string) (project.Config, error)
	SaveConfig(projectID string, cfg project.Config) error
}
