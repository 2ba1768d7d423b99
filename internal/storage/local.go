package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/offbench/discovery-mcp/internal/project"
)

// ProjectConfigFile is the metadata filename inside each project folder.
const ProjectConfigFile = "project.json"

// LocalProvider implements Provider on a local directory tree:
//
//	<root>/<project-id>/
//	    project.json
//	    discovery/{emails,transcripts,client-docs}/
//	    implementation/
//	    working/
type LocalProvider struct {
	root string
}

// NewLocalProvider creates a provider rooted at the given directory.
// The root is created lazily on first project creation.
func NewLocalProvider(root string) *LocalProvider {
	return &LocalProvider{root: root}
}

// projectPath returns the directory for a project.
func (p *LocalProvider) projectPath(projectID string) string {
	return filepath.Join(p.root, projectID)
}

// folderPath returns the directory for a folder within a project.
func (p *LocalProvider) folderPath(projectID string, folder FolderType) string {
	return filepath.Join(p.projectPath(projectID), string(folder))
}

// ListProjects scans the root for project directories with readable
// metadata. Unreadable entries are skipped rather than failing the scan.
func (p *LocalProvider) ListProjects() ([]ProjectInfo, error) {
	entries, err := os.ReadDir(p.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading storage root: %w", err)
	}

	var projects []ProjectInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := p.GetProject(entry.Name())
		if err != nil || info == nil {
			continue
		}
		projects = append(projects, *info)
	}

	sort.Slice(projects, func(i, j int) bool { return projects[i].ID < projects[j].ID })
	return projects, nil
}

// GetProject reads a project's metadata. Returns nil (not an error) when
// the project doesn't exist.
func (p *LocalProvider) GetProject(projectID string) (*ProjectInfo, error) {
	data, err := os.ReadFile(filepath.Join(p.projectPath(projectID), ProjectConfigFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading project metadata: %w", err)
	}

	var info ProjectInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("parsing %s for %q: %w", ProjectConfigFile, projectID, err)
	}
	return &info, nil
}

// CreateProject creates the project folder structure and metadata.
// Creating an existing project returns its current metadata unchanged.
func (p *LocalProvider) CreateProject(projectID, name, description string) (*ProjectInfo, error) {
	if existing, err := p.GetProject(projectID); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	dirs := []string{
		filepath.Join(p.folderPath(projectID, FolderDiscovery), SubfolderEmails),
		filepath.Join(p.folderPath(projectID, FolderDiscovery), SubfolderTranscripts),
		filepath.Join(p.folderPath(projectID, FolderDiscovery), SubfolderClientDocs),
		p.folderPath(projectID, FolderImplementation),
		p.folderPath(projectID, FolderWorking),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	info := &ProjectInfo{
		ID:          projectID,
		Name:        name,
		Description: description,
		Config:      project.DefaultConfig(),
	}
	if err := p.writeInfo(info); err != nil {
		return nil, err
	}
	return info, nil
}

// DeleteProject removes a project and everything under it. Returns false
// when the project didn't exist.
func (p *LocalProvider) DeleteProject(projectID string) (bool, error) {
	dir := p.projectPath(projectID)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return false, nil
	}
	if err := os.RemoveAll(dir); err != nil {
		return false, fmt.Errorf("deleting project %q: %w", projectID, err)
	}
	return true, nil
}

// ListDocuments lists document files in a folder. For the discovery
// folder the three subfolders are walked and each file is tagged with
// its subfolder so the ingestion tool can pick the right parser.
func (p *LocalProvider) ListDocuments(projectID string, folder FolderType) ([]DocumentInfo, error) {
	if err := ValidateFolder(folder); err != nil {
		return nil, err
	}

	base := p.folderPath(projectID, folder)

	if folder != FolderDiscovery {
		return listFiles(base, "")
	}

	var docs []DocumentInfo
	for _, sub := range []string{SubfolderEmails, SubfolderTranscripts, SubfolderClientDocs} {
		found, err := listFiles(filepath.Join(base, sub), sub)
		if err != nil {
			return nil, err
		}
		docs = append(docs, found...)
	}
	return docs, nil
}

// listFiles returns the regular files in dir, sorted by name. A missing
// directory yields an empty list.
func listFiles(dir, subfolder string) ([]DocumentInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var docs []DocumentInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		docs = append(docs, DocumentInfo{
			Filename:  entry.Name(),
			Subfolder: subfolder,
			Path:      filepath.Join(dir, entry.Name()),
		})
	}
	return docs, nil
}

// GetDocument reads one document's content. The boolean reports whether
// the file exists.
func (p *LocalProvider) GetDocument(projectID string, folder FolderType, subfolder, filename string) (string, bool, error) {
	if err := ValidateFolder(folder); err != nil {
		return "", false, err
	}

	path := filepath.Join(p.folderPath(projectID, folder), subfolder, filename)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading document %s: %w", path, err)
	}
	return string(data), true, nil
}

// AddDocument writes a document file, creating parent directories as
// needed.
func (p *LocalProvider) AddDocument(projectID string, folder FolderType, subfolder, filename, content string) error {
	if err := ValidateFolder(folder); err != nil {
		return err
	}

	dir := filepath.Join(p.folderPath(projectID, folder), subfolder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return os.WriteFile(filepath.Join(dir, filename), []byte(content), 0o644)
}

// SaveDeliverable writes a generated deliverable into the implementation
// folder.
func (p *LocalProvider) SaveDeliverable(projectID, filename, content string) error {
	return p.AddDocument(projectID, FolderImplementation, "", filename, content)
}

// LoadConfig returns the project's analysis configuration, or defaults
// when the project has no stored metadata.
func (p *LocalProvider) LoadConfig(projectID string) (project.Config, error) {
	info, err := p.GetProject(projectID)
	if err != nil {
		return project.Config{}, err
	}
	if info == nil {
		return project.DefaultConfig(), nil
	}
	return info.Config, nil
}

// SaveConfig updates the project's analysis configuration in place.
func (p *LocalProvider) SaveConfig(projectID string, cfg project.Config) error {
	info, err := p.GetProject(projectID)
	if err != nil {
		return err
	}
	if info == nil {
		return fmt.Errorf("project %q not found", projectID)
	}
	info.Config = cfg
	return p.writeInfo(info)
}

// writeInfo marshals and writes a project's metadata file.
func (p *LocalProvider) writeInfo(info *ProjectInfo) error {
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling project metadata: %w", err)
	}

	dir := p.projectPath(info.ID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating project directory: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, ProjectConfigFile), data, 0o644)
}
