package sync

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/offbench/discovery-mcp/internal/analysis"
	"github.com/offbench/discovery-mcp/internal/document"
	"github.com/offbench/discovery-mcp/internal/project"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(Config{Path: filepath.Join(t.TempDir(), "data", "sync.db")})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testState() (*project.State, *analysis.Result) {
	result := &analysis.Result{
		Gaps: []analysis.Gap{
			{
				Category:          analysis.CategoryBusinessRules,
				Description:       "Refund and return handling not discussed",
				Impact:            "Returns could fail to sync",
				Priority:          analysis.PriorityHigh,
				SuggestedQuestion: "How should refunds be handled?",
			},
			{
				Category:          analysis.CategoryEdgeCases,
				Description:       "Edge cases not explored",
				Priority:          analysis.PriorityLow,
				SuggestedQuestion: "What edge cases matter?",
				Answered:          true,
				Answer:            "Partial refunds only.",
			},
		},
		Ambiguities: []analysis.Ambiguity{
			{Term: "fast", Context: "must be fast", ClarificationNeeded: "How fast?", Priority: analysis.PriorityMedium},
		},
		Conflicts: []analysis.Conflict{
			{
				Topic:                 "Inventory System of Record",
				ConflictingStatements: []string{"Shopify is the source of truth", "QuickBooks is the master"},
				Sources:               []string{"email.txt", "call.txt"},
				ResolutionNeeded:      "Clarify the owner",
				Priority:              analysis.PriorityHigh,
			},
		},
		ClientName:        "Acme",
		SystemsIdentified: []string{"Shopify", "QuickBooks"},
	}
	result.CalculateConfidence()

	state := project.NewState("acme-sync", "Acme Sync", "pilot")
	state.Documents = []*document.Document{
		{Path: "email.txt", Type: document.TypeEmail, Source: document.SourceLocal, Subject: "kickoff"},
		{Path: "call.txt", Type: document.TypeTranscript, Source: document.SourceLocal},
	}
	state.Analysis = result

	return state, result
}

func TestSyncAnalysisRoundTrip(t *testing.T) {
	s := newTestStore(t)
	state, result := testState()

	if err := s.SyncAnalysis(state, result); err != nil {
		t.Fatalf("SyncAnalysis: %v", err)
	}

	stats, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Projects != 1 {
		t.Errorf("Projects = %d, want 1", stats.Projects)
	}
	if stats.Gaps != 2 {
		t.Errorf("Gaps = %d, want 2", stats.Gaps)
	}
	if stats.Conflicts != 1 {
		t.Errorf("Conflicts = %d, want 1", stats.Conflicts)
	}
	// Only unanswered gaps with questions become open questions.
	if stats.Questions != 1 {
		t.Errorf("Questions = %d, want 1", stats.Questions)
	}
}

func TestSyncAnalysisReplacesPreviousRows(t *testing.T) {
	s := newTestStore(t)
	state, result := testState()

	if err := s.SyncAnalysis(state, result); err != nil {
		t.Fatalf("SyncAnalysis: %v", err)
	}
	// Second sync with fewer findings must not accumulate rows.
	result.Gaps = result.Gaps[:1]
	result.Conflicts = nil
	if err := s.SyncAnalysis(state, result); err != nil {
		t.Fatalf("SyncAnalysis (second): %v", err)
	}

	stats, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Projects != 1 || stats.Gaps != 1 || stats.Conflicts != 0 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestLastSync(t *testing.T) {
	s := newTestStore(t)
	state, result := testState()

	if _, ok, err := s.LastSync(state.ID); err != nil || ok {
		t.Fatalf("LastSync before sync: ok=%v err=%v", ok, err)
	}

	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	old := timeNow
	timeNow = func() time.Time { return at }
	t.Cleanup(func() { timeNow = old })

	if err := s.SyncAnalysis(state, result); err != nil {
		t.Fatalf("SyncAnalysis: %v", err)
	}

	got, ok, err := s.LastSync(state.ID)
	if err != nil {
		t.Fatalf("LastSync: %v", err)
	}
	if !ok {
		t.Fatal("ok = false after a sync")
	}
	if !got.Equal(at) {
		t.Errorf("LastSync = %v, want %v", got, at)
	}
}

func TestStoredScoresAndStatements(t *testing.T) {
	s := newTestStore(t)
	state, result := testState()

	if err := s.SyncAnalysis(state, result); err != nil {
		t.Fatalf("SyncAnalysis: %v", err)
	}

	var overall float64
	var systems string
	err := s.db.QueryRow(
		`SELECT overall_confidence, systems FROM analyses WHERE project_id = ?`, state.ID,
	).Scan(&overall, &systems)
	if err != nil {
		t.Fatalf("querying analysis row: %v", err)
	}
	if overall != result.OverallConfidence {
		t.Errorf("overall_confidence = %v, want %v", overall, result.OverallConfidence)
	}
	if systems != "Shopify,QuickBooks" {
		t.Errorf("systems = %q", systems)
	}

	var statements string
	err = s.db.QueryRow(
		`SELECT statements FROM conflicts WHERE project_id = ?`, state.ID,
	).Scan(&statements)
	if err != nil {
		t.Fatalf("querying conflict row: %v", err)
	}
	want := "Shopify is the source of truth" + statementSeparator + "QuickBooks is the master"
	if statements != want {
		t.Errorf("statements = %q, want %q", statements, want)
	}

	var docCount int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM documents WHERE project_id = ?`, state.ID).Scan(&docCount); err != nil {
		t.Fatalf("counting documents: %v", err)
	}
	if docCount != 2 {
		t.Errorf("documents = %d, want 2", docCount)
	}
}
