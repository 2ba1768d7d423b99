package project

import (
	"testing"
	"time"

	"github.com/offbench/discovery-mcp/internal/analysis"
	"github.com/offbench/discovery-mcp/internal/document"
)

// fixedClock pins timeNow and restores it on cleanup.
func fixedClock(t *testing.T, at time.Time) {
	t.Helper()
	old := timeNow
	timeNow = func() time.Time { return at }
	t.Cleanup(func() { timeNow = old })
}

func TestNewStateDefaults(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	fixedClock(t, now)

	s := NewState("cozyhome", "CozyHome", "Shopify to QuickBooks sync")

	if s.ID != "cozyhome" || s.Name != "CozyHome" {
		t.Errorf("state = %+v", s)
	}
	if s.Config.ConfidenceThreshold != 80.0 {
		t.Errorf("ConfidenceThreshold = %v, want 80", s.Config.ConfidenceThreshold)
	}
	if !s.Config.AutoReanalyze {
		t.Error("AutoReanalyze should default to true")
	}
	if !s.CreatedAt.Equal(now) || !s.LastUpdated.Equal(now) {
		t.Errorf("timestamps = %v / %v", s.CreatedAt, s.LastUpdated)
	}
}

func TestAddAndClearDocuments(t *testing.T) {
	s := NewState("p", "P", "")
	s.AddDocument(&document.Document{Path: "a.txt"})
	s.AddDocument(&document.Document{Path: "b.txt"})
	if len(s.Documents) != 2 {
		t.Fatalf("len(Documents) = %d, want 2", len(s.Documents))
	}

	s.ClearDocuments()
	if len(s.Documents) != 0 {
		t.Errorf("len(Documents) = %d after clear", len(s.Documents))
	}
}

func TestUpdateAnalysisRecordsHistory(t *testing.T) {
	fixedClock(t, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	s := NewState("p", "P", "")

	first := &analysis.Result{Gaps: make([]analysis.Gap, 3)}
	first.CalculateConfidence()
	s.UpdateAnalysis(first)

	second := &analysis.Result{Gaps: make([]analysis.Gap, 1)}
	second.CalculateConfidence()
	s.UpdateAnalysis(second)

	if s.Analysis != second {
		t.Error("Analysis not replaced")
	}
	if len(s.ConfidenceHistory) != 2 {
		t.Fatalf("history length = %d, want 2", len(s.ConfidenceHistory))
	}
	if s.ConfidenceHistory[0].OverallConfidence != first.OverallConfidence {
		t.Errorf("history[0] = %v, want %v", s.ConfidenceHistory[0].OverallConfidence, first.OverallConfidence)
	}
	if s.ConfidenceHistory[1].Timestamp != "2025-03-01T10:00:00Z" {
		t.Errorf("Timestamp = %q", s.ConfidenceHistory[1].Timestamp)
	}
}

func TestConfidenceImprovement(t *testing.T) {
	s := NewState("p", "P", "")

	if _, ok := s.ConfidenceImprovement(); ok {
		t.Error("improvement reported with no history")
	}

	first := &analysis.Result{Gaps: make([]analysis.Gap, 3)}
	first.CalculateConfidence()
	s.UpdateAnalysis(first)

	if _, ok := s.ConfidenceImprovement(); ok {
		t.Error("improvement reported with a single run")
	}

	second := &analysis.Result{Gaps: make([]analysis.Gap, 1)}
	second.CalculateConfidence()
	s.UpdateAnalysis(second)

	got, ok := s.ConfidenceImprovement()
	if !ok {
		t.Fatal("improvement not reported after two runs")
	}
	want := second.OverallConfidence - first.OverallConfidence
	if got != want {
		t.Errorf("improvement = %v, want %v", got, want)
	}
}

func TestAddContextLogsUpdate(t *testing.T) {
	fixedClock(t, time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC))
	s := NewState("p", "P", "")

	s.AddContext("Refunds create credit notes in QuickBooks.", "answer")

	if len(s.AdditionalContext) != 1 {
		t.Fatalf("AdditionalContext = %v", s.AdditionalContext)
	}
	if len(s.UpdatesLog) != 1 {
		t.Fatalf("UpdatesLog = %v", s.UpdatesLog)
	}
	entry := s.UpdatesLog[0]
	if entry.Type != "answer" || entry.Content != "Refunds create credit notes in QuickBooks." {
		t.Errorf("entry = %+v", entry)
	}
	if entry.Timestamp != "2025-03-02T09:00:00Z" {
		t.Errorf("Timestamp = %q", entry.Timestamp)
	}
}

func TestMatchGapAnswers(t *testing.T) {
	s := NewState("p", "P", "")
	s.Analysis = &analysis.Result{
		Gaps: []analysis.Gap{
			{Description: "Refund and return handling not discussed"},
			{Description: "Tax handling not specified"},
			{Description: "API rate limits not discussed", Answered: true, Answer: "old"},
		},
	}

	answered := s.MatchGapAnswers("Refunds will create credit notes; tax handling stays in QuickBooks.")

	if answered != 2 {
		t.Fatalf("answered = %d, want 2", answered)
	}
	if !s.Analysis.Gaps[0].Answered || !s.Analysis.Gaps[1].Answered {
		t.Error("matching gaps not marked answered")
	}
	if s.Analysis.Gaps[2].Answer != "old" {
		t.Error("already-answered gap was overwritten")
	}

	// A second pass over the same information matches nothing new.
	if again := s.MatchGapAnswers("Refunds will create credit notes."); again != 0 {
		t.Errorf("second pass answered = %d, want 0", again)
	}
}

func TestMatchGapAnswersIgnoresShortWords(t *testing.T) {
	s := NewState("p", "P", "")
	s.Analysis = &analysis.Result{
		Gaps: []analysis.Gap{{Description: "Tax handling not specified"}},
	}

	// "tax" and "not" are too short to count as keywords.
	if got := s.MatchGapAnswers("tax not"); got != 0 {
		t.Errorf("answered = %d, want 0", got)
	}
}

func TestMatchGapAnswersNoAnalysis(t *testing.T) {
	s := NewState("p", "P", "")
	if got := s.MatchGapAnswers("anything"); got != 0 {
		t.Errorf("answered = %d, want 0", got)
	}
}
