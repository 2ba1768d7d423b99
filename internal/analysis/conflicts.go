package analysis

import (
	"regexp"
	"strings"

	"github.com/offbench/discovery-mcp/internal/document"
)

// inventoryTopic is the single conflict topic the engine currently
// detects: disputes over which system owns inventory levels.
const inventoryTopic = "Inventory System of Record"

// resolutionKeywords indicate an already-made decision. Iterated in
// order; the first keyword producing a substantial match wins.
var resolutionKeywords = []string{
	"decided", "decision", "agreed", "final decision", "conclusion",
	"resolved", "settled on", "confirmed", "ultimately", "clarification",
}

// Windowing bounds for resolution extraction.
const (
	resolutionWindowBefore = 50
	resolutionWindowAfter  = 300
	decisionWindowAfter    = 200
	resolutionMinLen       = 30
)

// statement pairs a conflicting sentence with the document it came from.
type statement struct {
	text   string
	source string
}

// detectConflicts scans documents for contradictory source-of-truth
// claims about inventory. A conflict requires at least two candidate
// statements across the corpus; a single claim is just a statement.
func detectConflicts(docs []*document.Document) []Conflict {
	var mentions []statement

	for _, doc := range docs {
		lower := strings.ToLower(doc.Content)
		if !strings.Contains(lower, "inventory") && !strings.Contains(lower, "stock") {
			continue
		}
		if !strings.Contains(lower, "source of truth") && !strings.Contains(lower, "master") {
			continue
		}

		for _, sentence := range strings.Split(doc.Content, ".") {
			sl := strings.ToLower(sentence)
			if !strings.Contains(sl, "inventory") && !strings.Contains(sl, "stock") {
				continue
			}
			if !strings.Contains(sl, "source") && !strings.Contains(sl, "master") {
				continue
			}
			mentions = append(mentions, statement{
				text:   strings.TrimSpace(sentence),
				source: doc.Path,
			})
		}
	}

	if len(mentions) < 2 {
		return nil
	}

	statements := make([]string, len(mentions))
	sources := make([]string, len(mentions))
	for i, m := range mentions {
		statements[i] = m.text
		sources[i] = m.source
	}

	return []Conflict{{
		Topic:                 inventoryTopic,
		ConflictingStatements: statements,
		Sources:               sources,
		ResolutionNeeded:      "Clarify which system is the definitive source of truth for inventory levels",
		Priority:              PriorityHigh,
		Resolution:            searchResolution("inventory system of record", docs),
	}}
}

// searchResolution looks for an explicitly stated decision about the
// conflict topic across the full document contents (additional context is
// not consulted). Returns "" when nothing explicit is found — a
// resolution is never inferred.
func searchResolution(topic string, docs []*document.Document) string {
	parts := make([]string, len(docs))
	for i, doc := range docs {
		parts[i] = doc.Content
	}
	allContent := strings.Join(parts, "\n\n")

	topicWord := topic
	if idx := strings.IndexByte(topicWord, ' '); idx >= 0 {
		topicWord = topicWord[:idx]
	}
	tw := regexp.QuoteMeta(topicWord)

	// A resolution keyword and the topic word in the same sentence, in
	// either order.
	for _, keyword := range resolutionKeywords {
		kw := regexp.QuoteMeta(keyword)
		re := regexp.MustCompile(`(?is)([^.]*(?:` + kw + `[^.]*` + tw + `|` + tw + `[^.]*` + kw + `)[^.]*\.)`)

		for _, loc := range re.FindAllStringSubmatchIndex(allContent, -1) {
			matched := strings.TrimSpace(allContent[loc[2]:loc[3]])
			if len(matched) > resolutionMinLen {
				return collapseWindow(allContent, loc[0], resolutionWindowBefore, resolutionWindowAfter)
			}
		}
	}

	// Fall back to decision-statement patterns: "we will use X as/for
	// <topic>" or "<topic> will be/is X". Here the length threshold
	// applies to the extracted window, not the raw match.
	decisionRes := []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:we will use|using|use)\s+([A-Z][a-zA-Z]+(?:\s+[A-Z][a-zA-Z]+)?)\s+(?:as|for).{0,50}` + tw),
		regexp.MustCompile(`(?i)` + tw + `.{0,30}(?:will be|is)\s+([A-Z][a-zA-Z]+)`),
	}

	for _, re := range decisionRes {
		loc := re.FindStringIndex(allContent)
		if loc == nil {
			continue
		}
		window := collapseWindow(allContent, loc[0], resolutionWindowBefore, decisionWindowAfter)
		if len(window) > resolutionMinLen {
			return window
		}
	}

	return ""
}
