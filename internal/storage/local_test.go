package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/offbench/discovery-mcp/internal/project"
)

func newTestProvider(t *testing.T) *LocalProvider {
	t.Helper()
	return NewLocalProvider(t.TempDir())
}

func TestCreateProjectLaysOutFolders(t *testing.T) {
	p := newTestProvider(t)

	info, err := p.CreateProject("cozyhome", "CozyHome", "Shopify to QuickBooks")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if info.ID != "cozyhome" || info.Name != "CozyHome" {
		t.Errorf("info = %+v", info)
	}
	if info.Config.ConfidenceThreshold != 80.0 {
		t.Errorf("ConfidenceThreshold = %v, want default", info.Config.ConfidenceThreshold)
	}

	for _, dir := range []string{
		"discovery/emails", "discovery/transcripts", "discovery/client-docs",
		"implementation", "working",
	} {
		full := filepath.Join(p.root, "cozyhome", dir)
		if st, err := os.Stat(full); err != nil || !st.IsDir() {
			t.Errorf("missing directory %s", dir)
		}
	}

	if _, err := os.Stat(filepath.Join(p.root, "cozyhome", ProjectConfigFile)); err != nil {
		t.Errorf("missing %s: %v", ProjectConfigFile, err)
	}
}

func TestCreateProjectIdempotent(t *testing.T) {
	p := newTestProvider(t)

	if _, err := p.CreateProject("p1", "Original", "first"); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	again, err := p.CreateProject("p1", "Replacement", "second")
	if err != nil {
		t.Fatalf("CreateProject (again): %v", err)
	}
	if again.Name != "Original" {
		t.Errorf("Name = %q, want existing metadata kept", again.Name)
	}
}

func TestGetProjectAbsent(t *testing.T) {
	p := newTestProvider(t)
	info, err := p.GetProject("missing")
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if info != nil {
		t.Errorf("info = %+v, want nil", info)
	}
}

func TestListProjectsSorted(t *testing.T) {
	p := newTestProvider(t)
	for _, id := range []string{"zeta", "alpha"} {
		if _, err := p.CreateProject(id, id, ""); err != nil {
			t.Fatalf("CreateProject %s: %v", id, err)
		}
	}

	projects, err := p.ListProjects()
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(projects) != 2 || projects[0].ID != "alpha" || projects[1].ID != "zeta" {
		t.Errorf("projects = %+v", projects)
	}
}

func TestListProjectsEmptyRoot(t *testing.T) {
	// Root doesn't exist until the first project is created.
	p := NewLocalProvider(filepath.Join(t.TempDir(), "never-created"))
	projects, err := p.ListProjects()
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(projects) != 0 {
		t.Errorf("projects = %+v, want none", projects)
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	p := newTestProvider(t)
	if _, err := p.CreateProject("p1", "P1", ""); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	if err := p.AddDocument("p1", FolderDiscovery, SubfolderEmails, "kickoff.txt", "email body"); err != nil {
		t.Fatalf("AddDocument: %v", err)
	}

	content, ok, err := p.GetDocument("p1", FolderDiscovery, SubfolderEmails, "kickoff.txt")
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if !ok || content != "email body" {
		t.Errorf("content = %q, ok = %v", content, ok)
	}

	_, ok, err = p.GetDocument("p1", FolderDiscovery, SubfolderEmails, "missing.txt")
	if err != nil {
		t.Fatalf("GetDocument (missing): %v", err)
	}
	if ok {
		t.Error("ok = true for a missing document")
	}
}

func TestListDocumentsTagsSubfolders(t *testing.T) {
	p := newTestProvider(t)
	if _, err := p.CreateProject("p1", "P1", ""); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	seed := []struct{ subfolder, filename string }{
		{SubfolderEmails, "a.txt"},
		{SubfolderTranscripts, "call.txt"},
		{SubfolderClientDocs, "sow.txt"},
	}
	for _, s := range seed {
		if err := p.AddDocument("p1", FolderDiscovery, s.subfolder, s.filename, "x"); err != nil {
			t.Fatalf("AddDocument: %v", err)
		}
	}

	docs, err := p.ListDocuments("p1", FolderDiscovery)
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("docs = %+v", docs)
	}

	// Subfolder walk order: emails, transcripts, client-docs.
	if docs[0].Subfolder != SubfolderEmails || docs[0].Filename != "a.txt" {
		t.Errorf("docs[0] = %+v", docs[0])
	}
	if docs[1].Subfolder != SubfolderTranscripts {
		t.Errorf("docs[1] = %+v", docs[1])
	}
	if docs[2].Subfolder != SubfolderClientDocs {
		t.Errorf("docs[2] = %+v", docs[2])
	}
}

func TestListDocumentsRejectsUnknownFolder(t *testing.T) {
	p := newTestProvider(t)
	if _, err := p.ListDocuments("p1", "attic"); err == nil {
		t.Error("ListDocuments accepted an unknown folder")
	}
}

func TestSaveDeliverable(t *testing.T) {
	p := newTestProvider(t)
	if _, err := p.CreateProject("p1", "P1", ""); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	if err := p.SaveDeliverable("p1", "client-facing-sow.md", "# SOW"); err != nil {
		t.Fatalf("SaveDeliverable: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(p.root, "p1", string(FolderImplementation), "client-facing-sow.md"))
	if err != nil {
		t.Fatalf("reading deliverable: %v", err)
	}
	if string(data) != "# SOW" {
		t.Errorf("content = %q", data)
	}
}

func TestDeleteProject(t *testing.T) {
	p := newTestProvider(t)
	if _, err := p.CreateProject("p1", "P1", ""); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	removed, err := p.DeleteProject("p1")
	if err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}
	if !removed {
		t.Error("removed = false for an existing project")
	}

	removed, err = p.DeleteProject("p1")
	if err != nil {
		t.Fatalf("DeleteProject (again): %v", err)
	}
	if removed {
		t.Error("removed = true for a missing project")
	}
}

func TestConfigRoundTrip(t *testing.T) {
	p := newTestProvider(t)
	if _, err := p.CreateProject("p1", "P1", ""); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	cfg, err := p.LoadConfig("p1")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	cfg.ConfidenceThreshold = 90.0
	cfg.AutoReanalyze = false

	if err := p.SaveConfig("p1", cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	got, err := p.LoadConfig("p1")
	if err != nil {
		t.Fatalf("LoadConfig (after save): %v", err)
	}
	if got.ConfidenceThreshold != 90.0 || got.AutoReanalyze {
		t.Errorf("config = %+v", got)
	}
}

func TestSaveConfigUnknownProject(t *testing.T) {
	p := newTestProvider(t)
	if err := p.SaveConfig("ghost", project.DefaultConfig()); err == nil {
		t.Error("SaveConfig accepted an unknown project")
	}
}
