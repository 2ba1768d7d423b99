// Package templates fills client-deliverable templates with discovery
// data. Templates are plain markdown with [PLACEHOLDER] markers; filling
// is literal string substitution, so an unfilled marker stays visible in
// the output as an explicit to-do.
package templates

import (
	"fmt"
	"strings"

	"github.com/offbench/discovery-mcp/internal/project"
)

// Filler fills deliverable templates from a project's analysis.
type Filler struct{}

// NewFiller creates a template filler.
func NewFiller() *Filler {
	return &Filler{}
}

// clarificationFields get a [NEEDS_CLARIFICATION: ...] marker when the
// discovery data can't supply a value.
var clarificationFields = []string{
	"PROJECT_ID", "CLIENT_CONTACT_NAME", "CLIENT_CONTACT_TITLE", "DATE",
	"TOTAL_TIMELINE", "TOTAL_COST", "MONTHLY_FEE", "SUPPORT_HOURS",
	"LEAD_ENGINEER", "PROJECT_MANAGER", "STATUS",
	"PHASE_1_DURATION", "PHASE_2_DURATION", "PHASE_3_DURATION",
	"PHASE_4_DURATION", "PHASE_5_DURATION",
	"TIME_SAVINGS", "ERROR_REDUCTION", "ROI_ESTIMATE",
}

// Fill replaces every known placeholder in the template with data from
// the project state. A project with no analysis gets the template back
// unchanged.
func (f *Filler) Fill(template string, state *project.State) string {
	if state.Analysis == nil {
		return template
	}

	filled := template
	for placeholder, value := range f.templateData(state) {
		filled = strings.ReplaceAll(filled, "["+placeholder+"]", value)
	}

	filled = strings.ReplaceAll(filled, "[OPEN_QUESTIONS]", openQuestions(state))
	filled = strings.ReplaceAll(filled, "[CONFIDENCE_SCORE]",
		fmt.Sprintf("%.1f", state.Analysis.OverallConfidence))

	return filled
}

// templateData extracts the placeholder values from the project state.
func (f *Filler) templateData(state *project.State) map[string]string {
	a := state.Analysis
	data := map[string]string{}

	data["PROJECT_NAME"] = state.Name
	if a.ClientName != "" {
		data["CLIENT_NAME"] = a.ClientName
	} else {
		data["CLIENT_NAME"] = state.Name
	}

	systems := a.SystemsIdentified
	switch {
	case len(systems) >= 2:
		data["SYSTEM_A"] = systems[0]
		data["SYSTEM_B"] = systems[1]
		data["INTEGRATION_TYPE"] = systems[0] + " to " + systems[1]
		data["HIGH_LEVEL_INTEGRATION_DESCRIPTION"] = fmt.Sprintf(
			"This integration will connect %s with %s to enable automated data "+
				"synchronization and eliminate manual data entry.",
			systems[0], systems[1])
	case len(systems) == 1:
		data["SYSTEM_A"] = systems[0]
		data["SYSTEM_B"] = "[NEEDS_CLARIFICATION: Second system not identified]"
		data["INTEGRATION_TYPE"] = systems[0] + " Integration"
		data["HIGH_LEVEL_INTEGRATION_DESCRIPTION"] = "[NEEDS_CLARIFICATION: Integration details not clear]"
	default:
		data["SYSTEM_A"] = "[NEEDS_CLARIFICATION: Systems not identified]"
		data["SYSTEM_B"] = "[NEEDS_CLARIFICATION: Systems not identified]"
		data["INTEGRATION_TYPE"] = "[NEEDS_CLARIFICATION: Integration type not clear]"
		data["HIGH_LEVEL_INTEGRATION_DESCRIPTION"] = "[NEEDS_CLARIFICATION: Integration details not clear]"
	}

	fillRanked(data, "PAIN_POINT_", a.PainPoints)
	fillRanked(data, "OBJECTIVE_", a.BusinessObjectives)

	if len(a.PainPoints) > 0 {
		data["CURRENT_PAIN_POINTS"] = bulletList(a.PainPoints, 3)
		data["CURRENT_STATE_DESCRIPTION"] = "experiencing " + a.PainPoints[0]
	} else {
		data["PAIN_POINT_1"] = "[NEEDS_CLARIFICATION: Pain points not documented]"
		data["CURRENT_PAIN_POINTS"] = "[NEEDS_CLARIFICATION: Pain points not documented]"
		data["CURRENT_STATE_DESCRIPTION"] = "[NEEDS_CLARIFICATION: Current state not documented]"
	}

	if len(a.BusinessObjectives) > 0 {
		data["BUSINESS_OBJECTIVES"] = bulletList(a.BusinessObjectives, 3)
	} else {
		data["OBJECTIVE_1"] = "[NEEDS_CLARIFICATION: Business objectives not documented]"
		data["BUSINESS_OBJECTIVES"] = "[NEEDS_CLARIFICATION: Business objectives not documented]"
	}

	if state.Description != "" {
		data["BUSINESS_DESCRIPTION"] = state.Description
	} else {
		data["BUSINESS_DESCRIPTION"] = "a business using " + data["SYSTEM_A"]
	}

	for _, field := range clarificationFields {
		if _, ok := data[field]; !ok {
			data[field] = "[NEEDS_CLARIFICATION: " + titleWords(field) + "]"
		}
	}

	return data
}

// fillRanked sets prefix1..prefix3 from the first three items. Slots
// past the available items read "Not specified"; with no items at all,
// every slot is blanked so the section collapses cleanly (slot 1 is
// overwritten with a clarification marker by the caller).
func fillRanked(data map[string]string, prefix string, items []string) {
	for i := 1; i <= 3; i++ {
		key := fmt.Sprintf("%s%d", prefix, i)
		switch {
		case i <= len(items):
			data[key] = items[i-1]
		case len(items) > 0:
			data[key] = "Not specified"
		default:
			data[key] = ""
		}
	}
}

// bulletList renders up to max items as a markdown bullet list.
func bulletList(items []string, max int) string {
	if len(items) > max {
		items = items[:max]
	}
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}

// openQuestions renders the open-questions section from unanswered gaps,
// ambiguities, and conflicts.
func openQuestions(state *project.State) string {
	a := state.Analysis
	var questions []string

	for i, gap := range a.Gaps {
		if gap.SuggestedQuestion == "" || gap.Answered {
			continue
		}
		questions = append(questions,
			fmt.Sprintf("%d. **%s**: %s", i+1, titleWords(string(gap.Category)), gap.SuggestedQuestion),
			"   - *Why this matters*: "+gap.Impact,
		)
	}

	for _, amb := range a.Ambiguities {
		questions = append(questions,
			fmt.Sprintf("- **Ambiguous term '%s'**: %s", amb.Term, amb.ClarificationNeeded),
			"   - *Context*: "+amb.Context,
		)
	}

	for _, conflict := range a.Conflicts {
		questions = append(questions,
			fmt.Sprintf("- **Conflicting information about %s**: %s", conflict.Topic, conflict.ResolutionNeeded),
		)
	}

	if len(questions) == 0 {
		return "No open questions - all requirements are clear."
	}
	return strings.Join(questions, "\n")
}

// titleWords converts "business_rules" or "TOTAL_COST" to "Business
// Rules" / "Total Cost".
func titleWords(s string) string {
	words := strings.Split(strings.ToLower(s), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
