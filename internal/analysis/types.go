// Package analysis implements the discovery analysis engine: rule-based
// extraction that turns free-form discovery documents into structured
// findings (gaps, ambiguities, conflicts) plus a composite confidence score.
//
// The engine is stateless and side-effect-free — it performs no I/O, holds
// no mutable state between calls, and is safe to invoke concurrently as
// long as each call gets its own inputs.
package analysis

import "fmt"

// --- Gap category enum ---

// GapCategory classifies the topic area a gap belongs to.
type GapCategory string

const (
	CategoryBusinessRules        GapCategory = "business_rules"
	CategoryTechnicalConstraints GapCategory = "technical_constraints"
	CategoryEdgeCases            GapCategory = "edge_cases"
	CategorySuccessCriteria      GapCategory = "success_criteria"
	CategoryDataFlows            GapCategory = "data_flows"
	CategoryErrorHandling        GapCategory = "error_handling"
)

// validCategories is the set of allowed gap categories.
var validCategories = map[GapCategory]bool{
	CategoryBusinessRules:        true,
	CategoryTechnicalConstraints: true,
	CategoryEdgeCases:            true,
	CategorySuccessCriteria:      true,
	CategoryDataFlows:            true,
	CategoryErrorHandling:        true,
}

// ValidateCategory returns an error if the category is not recognized.
func ValidateCategory(c GapCategory) error {
	if !validCategories[c] {
		return fmt.Errorf("invalid gap category %q", c)
	}
	return nil
}

// --- Priority enum ---

// Priority ranks gaps, ambiguities, and conflicts.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// validPriorities is the set of allowed priorities.
var validPriorities = map[Priority]bool{
	PriorityHigh:   true,
	PriorityMedium: true,
	PriorityLow:    true,
}

// ValidatePriority returns an error if the priority is not recognized.
func ValidatePriority(p Priority) error {
	if !validPriorities[p] {
		return fmt.Errorf("invalid priority %q: must be one of: high, medium, low", p)
	}
	return nil
}

// --- Findings ---

// Gap represents a critical topic area with no explicit mention anywhere
// in the input corpus. A gap can later be marked answered when follow-up
// context matches its description by keyword overlap.
type Gap struct {
	Category          GapCategory `json:"category"`
	Description       string      `json:"description"`
	Impact            string      `json:"impact"`
	Priority          Priority    `json:"priority"`
	SuggestedQuestion string      `json:"suggested_question,omitempty"`
	Answered          bool        `json:"answered"`
	Answer            string      `json:"answer,omitempty"`
}

// NewGap constructs a Gap, failing fast on invalid enum values.
func NewGap(category GapCategory, description, impact string, priority Priority, question string) (Gap, error) {
	if err := ValidateCategory(category); err != nil {
		return Gap{}, err
	}
	if err := ValidatePriority(priority); err != nil {
		return Gap{}, err
	}
	return Gap{
		Category:          category,
		Description:       description,
		Impact:            impact,
		Priority:          priority,
		SuggestedQuestion: question,
	}, nil
}

// Ambiguity represents a vague term flagged for clarification.
// Context is a short window around the first occurrence of the term.
// Clarification is populated only when explicit supporting text is found
// elsewhere in the corpus — it is never inferred.
type Ambiguity struct {
	Term                string   `json:"term"`
	Context             string   `json:"context"`
	ClarificationNeeded string   `json:"clarification_needed"`
	Priority            Priority `json:"priority"`
	Clarification       string   `json:"clarification,omitempty"`
}

// Conflict represents two or more documents making inconsistent claims
// about the same topic. Resolution follows the same non-inference rule
// as Ambiguity.Clarification.
type Conflict struct {
	Topic                 string   `json:"topic"`
	ConflictingStatements []string `json:"conflicting_statements"`
	Sources               []string `json:"sources"`
	ResolutionNeeded      string   `json:"resolution_needed"`
	Priority              Priority `json:"priority"`
	Resolution            string   `json:"resolution,omitempty"`
}

// NewConflict constructs a Conflict, failing fast on an invalid priority.
func NewConflict(topic string, statements, sources []string, resolutionNeeded string, priority Priority) (Conflict, error) {
	if err := ValidatePriority(priority); err != nil {
		return Conflict{}, err
	}
	return Conflict{
		Topic:                 topic,
		ConflictingStatements: statements,
		Sources:               sources,
		ResolutionNeeded:      resolutionNeeded,
		Priority:              priority,
	}, nil
}

// --- Analysis result ---

// Result is the complete analysis of a discovery corpus.
type Result struct {
	Gaps        []Gap       `json:"gaps"`
	Ambiguities []Ambiguity `json:"ambiguities"`
	Conflicts   []Conflict  `json:"conflicts"`

	// Confidence scores, 0-100. OverallConfidence is always the weighted
	// combination computed by CalculateConfidence — never set directly.
	ClarityScore      float64 `json:"clarity_score"`
	CompletenessScore float64 `json:"completeness_score"`
	AlignmentScore    float64 `json:"alignment_score"`
	OverallConfidence float64 `json:"overall_confidence"`

	SystemsIdentified  []string `json:"systems_identified"`
	ClientName         string   `json:"client_name,omitempty"`
	PainPoints         []string `json:"pain_points"`
	BusinessObjectives []string `json:"business_objectives"`
}

// Per-finding penalties for the confidence formula. Linear with a floor
// of zero; the weights favor clarity and completeness over alignment.
const (
	ambiguityPenalty = 5
	gapPenalty       = 10
	conflictPenalty  = 15

	clarityWeight      = 0.4
	completenessWeight = 0.4
	alignmentWeight    = 0.2
)

// CalculateConfidence recomputes the four scores from the current finding
// counts and returns the overall confidence.
//
// An empty result scores 100.0: no evidence of problems reads as maximal
// confidence. That conflates "nothing analyzed" with "nothing wrong", but
// downstream consumers depend on the current value, so it is preserved.
func (r *Result) CalculateConfidence() float64 {
	r.ClarityScore = penaltyScore(len(r.Ambiguities), ambiguityPenalty)
	r.CompletenessScore = penaltyScore(len(r.Gaps), gapPenalty)
	r.AlignmentScore = penaltyScore(len(r.Conflicts), conflictPenalty)

	r.OverallConfidence = r.ClarityScore*clarityWeight +
		r.CompletenessScore*completenessWeight +
		r.AlignmentScore*alignmentWeight

	return r.OverallConfidence
}

// penaltyScore applies a fixed per-item cost against a 100-point start,
// floored at zero.
func penaltyScore(count, penalty int) float64 {
	score := 100 - count*penalty
	if score < 0 {
		return 0
	}
	return float64(score)
}
