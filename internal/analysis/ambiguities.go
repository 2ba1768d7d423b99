package analysis

import (
	"fmt"
	"regexp"
	"strings"
)

// ambiguousTerms are the vague terms flagged for clarification, in
// detection order.
var ambiguousTerms = []string{
	"real-time", "fast", "quick", "simple", "easy", "scalable",
	"robust", "flexible", "soon", "later", "eventually", "approximately",
}

// clarificationsNeeded maps a term to the clarification request attached
// to its ambiguity. Terms not listed get a generic request.
var clarificationsNeeded = map[string]string{
	"real-time":     "Please specify exact sync timing: instant webhooks, sub-second, within 5 minutes?",
	"fast":          "What is the specific performance requirement? Response time in milliseconds?",
	"quick":         "What is the specific time requirement?",
	"simple":        "What does 'simple' mean in this context? What complexity level is acceptable?",
	"scalable":      "What volume needs to be supported? Current and projected?",
	"soon":          "What is the specific timeline? Days, weeks, months?",
	"approximately": "What is the exact figure or acceptable range?",
}

// termWindowRes holds one windowed matcher per ambiguous term, capturing
// up to 50 chars of context on each side of a whole-word match.
var termWindowRes = buildTermWindows()

func buildTermWindows() map[string]*regexp.Regexp {
	res := make(map[string]*regexp.Regexp, len(ambiguousTerms))
	for _, term := range ambiguousTerms {
		res[term] = regexp.MustCompile(`(?i)(.{0,50}\b` + regexp.QuoteMeta(term) + `\b.{0,50})`)
	}
	return res
}

// clarificationPatterns are per-term matchers for term-proximate numeric
// or temporal qualifiers, searched over the whole corpus. Terms without
// an entry can never receive a clarification.
var clarificationPatterns = buildClarificationPatterns()

func buildClarificationPatterns() map[string][]*regexp.Regexp {
	raw := map[string][]string{
		"real-time": {
			`real-time.{0,100}(?:within|under|less than)\s+(\d+\s*(?:seconds?|minutes?|milliseconds?))`,
			`real-time.{0,100}(?:webhook|instant|immediately)`,
		},
		"fast": {
			`fast.{0,100}(?:within|under|less than)\s+(\d+\s*(?:seconds?|minutes?|milliseconds?))`,
			`fast.{0,100}(?:response time|load time|performance).{0,50}(\d+\s*(?:ms|seconds?))`,
		},
		"scalable": {
			`scalable.{0,100}(?:up to|support|handle)\s+([\d,]+)\s*(?:orders?|users?|transactions?|requests?)`,
		},
		"soon": {
			`soon.{0,100}(?:within|in|by)\s+(\d+\s*(?:days?|weeks?|months?))`,
		},
	}

	compiled := make(map[string][]*regexp.Regexp, len(raw))
	for term, patterns := range raw {
		for _, p := range patterns {
			// (?s) so the 0-100 char gap can span line breaks.
			compiled[term] = append(compiled[term], regexp.MustCompile(`(?is)`+p))
		}
	}
	return compiled
}

// clarificationWindowBefore/After bound the context extracted around a
// clarification match.
const (
	clarificationWindowBefore = 100
	clarificationWindowAfter  = 200
	clarificationMinLen       = 20
)

// detectAmbiguities scans the combined content for each ambiguous term.
// Only the first occurrence of a term is reported; later occurrences are
// ignored even when their surrounding context differs.
func detectAmbiguities(content string) []Ambiguity {
	var ambiguities []Ambiguity

	for _, term := range ambiguousTerms {
		m := termWindowRes[term].FindStringSubmatch(content)
		if m == nil {
			continue
		}

		needed, ok := clarificationsNeeded[term]
		if !ok {
			needed = fmt.Sprintf("Please provide specific details instead of '%s'", term)
		}

		ambiguities = append(ambiguities, Ambiguity{
			Term:                term,
			Context:             strings.TrimSpace(m[1]),
			ClarificationNeeded: needed,
			Priority:            PriorityMedium,
			Clarification:       searchClarification(term, content),
		})
	}

	return ambiguities
}

// searchClarification looks for an explicitly stated qualifier for an
// ambiguous term anywhere in the corpus. It returns the collapsed window
// around the first substantial match, or "" when nothing explicit exists.
// A clarification is never inferred from absence or loosely related text.
func searchClarification(term, content string) string {
	for _, re := range clarificationPatterns[term] {
		loc := re.FindStringIndex(content)
		if loc == nil {
			continue
		}

		window := collapseWindow(content, loc[0], clarificationWindowBefore, clarificationWindowAfter)
		if len(window) > clarificationMinLen {
			return window
		}
	}
	return ""
}

// collapseWindow extracts [pos-before, pos+after] from content, clamped
// to bounds, with internal whitespace collapsed to single spaces.
func collapseWindow(content string, pos, before, after int) string {
	start := pos - before
	if start < 0 {
		start = 0
	}
	end := pos + after
	if end > len(content) {
		end = len(content)
	}
	return strings.Join(strings.Fields(content[start:end]), " ")
}
