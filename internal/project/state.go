// Package project holds per-project discovery state: ingested documents,
// the latest analysis, follow-up context, and the confidence history.
//
// State is shared across tool calls through a Repository that is
// explicitly constructed and injected at the composition root — never a
// hidden global.
package project

import (
	"strings"
	"time"

	"github.com/offbench/discovery-mcp/internal/analysis"
	"github.com/offbench/discovery-mcp/internal/document"
)

// timeNow is a package-level variable for testability.
var timeNow = time.Now

// Config holds per-project analysis settings.
type Config struct {
	ConfidenceThreshold float64 `json:"confidence_threshold"`
	AutoReanalyze       bool    `json:"auto_reanalyze"`
}

// DefaultConfig returns the standard project configuration.
func DefaultConfig() Config {
	return Config{
		ConfidenceThreshold: 80.0,
		AutoReanalyze:       true,
	}
}

// UpdateEntry is one item in the append-only updates log.
type UpdateEntry struct {
	Type      string `json:"type"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// ConfidenceSnapshot records the four scores at one analysis run.
type ConfidenceSnapshot struct {
	Timestamp         string  `json:"timestamp"`
	OverallConfidence float64 `json:"overall_confidence"`
	ClarityScore      float64 `json:"clarity_score"`
	CompletenessScore float64 `json:"completeness_score"`
	AlignmentScore    float64 `json:"alignment_score"`
}

// State is one project's discovery state across tool calls.
type State struct {
	ID          string `json:"project_id"`
	Name        string `json:"project_name"`
	Description string `json:"project_description,omitempty"`

	Config Config `json:"config"`

	Documents []*document.Document `json:"documents"`

	// Analysis is the current result, replaced wholesale on each
	// re-analysis. Prior runs survive only as ConfidenceHistory entries.
	Analysis *analysis.Result `json:"analysis,omitempty"`

	AdditionalContext []string             `json:"additional_context"`
	UpdatesLog        []UpdateEntry        `json:"updates_log"`
	ConfidenceHistory []ConfidenceSnapshot `json:"confidence_history"`

	CreatedAt   time.Time `json:"created_at"`
	LastUpdated time.Time `json:"last_updated"`
}

// NewState creates an empty project state.
func NewState(id, name, description string) *State {
	now := timeNow()
	return &State{
		ID:          id,
		Name:        name,
		Description: description,
		Config:      DefaultConfig(),
		CreatedAt:   now,
		LastUpdated: now,
	}
}

// AddDocument appends a document to the project.
func (s *State) AddDocument(doc *document.Document) {
	s.Documents = append(s.Documents, doc)
	s.LastUpdated = timeNow()
}

// ClearDocuments removes all documents, keeping analysis and context.
// Used when re-ingesting a project folder from scratch.
func (s *State) ClearDocuments() {
	s.Documents = nil
	s.LastUpdated = timeNow()
}

// UpdateAnalysis replaces the current analysis and appends a score
// snapshot to the confidence history. The history grows without bound.
func (s *State) UpdateAnalysis(result *analysis.Result) {
	s.Analysis = result
	s.ConfidenceHistory = append(s.ConfidenceHistory, ConfidenceSnapshot{
		Timestamp:         timeNow().UTC().Format(time.RFC3339),
		OverallConfidence: result.OverallConfidence,
		ClarityScore:      result.ClarityScore,
		CompletenessScore: result.CompletenessScore,
		AlignmentScore:    result.AlignmentScore,
	})
	s.LastUpdated = timeNow()
}

// AddContext appends follow-up context and logs the update. It does not
// trigger re-analysis — callers decide when to re-run the analyzer.
func (s *State) AddContext(text, updateType string) {
	s.AdditionalContext = append(s.AdditionalContext, text)
	s.UpdatesLog = append(s.UpdatesLog, UpdateEntry{
		Type:      updateType,
		Content:   text,
		Timestamp: timeNow().UTC().Format(time.RFC3339),
	})
	s.LastUpdated = timeNow()
}

// ConfidenceImprovement returns last-minus-first overall confidence in
// the history. The second return is false when fewer than two analyses
// have run.
func (s *State) ConfidenceImprovement() (float64, bool) {
	if len(s.ConfidenceHistory) < 2 {
		return 0, false
	}
	first := s.ConfidenceHistory[0].OverallConfidence
	last := s.ConfidenceHistory[len(s.ConfidenceHistory)-1].OverallConfidence
	return last - first, true
}

// gapKeywordMinLen filters out short words when matching answers to gaps.
const gapKeywordMinLen = 4

// MatchGapAnswers marks gaps as answered when the new information shares
// a keyword (longer than four characters) with the gap's description.
// Returns how many gaps were newly answered.
func (s *State) MatchGapAnswers(newInformation string) int {
	if s.Analysis == nil {
		return 0
	}

	infoLower := strings.ToLower(newInformation)
	answered := 0

	for i := range s.Analysis.Gaps {
		gap := &s.Analysis.Gaps[i]
		if gap.Answered {
			continue
		}
		for _, keyword := range strings.Fields(strings.ToLower(gap.Description)) {
			if len(keyword) <= gapKeywordMinLen {
				continue
			}
			if strings.Contains(infoLower, keyword) {
				gap.Answered = true
				gap.Answer = newInformation
				answered++
				break
			}
		}
	}

	return answered
}
