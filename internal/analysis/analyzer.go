package analysis

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/offbench/discovery-mcp/internal/document"
)

// Options controls analyzer behavior.
type Options struct {
	// PreferSummaries selects a document's agent-written summary over its
	// full content when the document came from an integration and a
	// summary exists. This avoids re-scanning huge remote documents, at
	// the cost of patterns that only appear in the full text.
	PreferSummaries bool

	// MaxInputBytes caps the combined text blob before scanning, guarding
	// against pathological inputs. Zero disables the cap.
	MaxInputBytes int
}

// DefaultOptions returns the standard analyzer options.
func DefaultOptions() Options {
	return Options{
		PreferSummaries: true,
		MaxInputBytes:   1 << 20, // 1 MiB
	}
}

// Analyzer is the stateless discovery analysis engine.
type Analyzer struct {
	opts Options
}

// New creates an Analyzer with the given options.
func New(opts Options) *Analyzer {
	return &Analyzer{opts: opts}
}

// knownSystems is the fixed catalog of integration platforms the engine
// recognizes. Detection order (and therefore result order) follows this
// list.
var knownSystems = []string{
	"Shopify", "QuickBooks", "Klaviyo", "ShipStation", "Stocky",
	"Stripe", "PayPal", "Mailchimp", "HubSpot", "Salesforce",
	"Zendesk", "Freshdesk", "WooCommerce", "BigCommerce",
}

// Analyze runs the full pipeline over the documents and free-text context
// and returns a complete Result. It is purely functional over its inputs:
// malformed or empty input degrades to empty findings, never an error.
func (a *Analyzer) Analyze(docs []*document.Document, additionalContext []string) *Result {
	allContent := a.combineContent(docs, additionalContext)

	// Nothing to analyze: empty findings, maximal confidence.
	if len(docs) == 0 && strings.TrimSpace(allContent) == "" {
		result := &Result{ClientName: extractClientName(docs)}
		result.CalculateConfidence()
		return result
	}

	result := &Result{
		SystemsIdentified:  extractSystems(allContent),
		ClientName:         extractClientName(docs),
		PainPoints:         collectMatches(allContent, painPointPatterns),
		BusinessObjectives: collectMatches(allContent, objectivePatterns),
	}

	result.Gaps = detectGaps(allContent, additionalContext)
	result.Ambiguities = detectAmbiguities(allContent)
	result.Conflicts = detectConflicts(docs)

	result.CalculateConfidence()

	return result
}

// combineContent builds one labeled text blob from the documents plus the
// additional-context strings. Integration documents with summaries
// contribute the summary instead of full content when PreferSummaries is
// on; everything else gets full-text treatment.
func (a *Analyzer) combineContent(docs []*document.Document, additionalContext []string) string {
	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		if a.opts.PreferSummaries && doc.Summary != "" && doc.Source == document.SourceIntegration {
			parts = append(parts, fmt.Sprintf("[SUMMARY: %s]\n%s", doc.Path, doc.Summary))
		} else {
			parts = append(parts, fmt.Sprintf("[DOCUMENT: %s]\n%s", doc.Path, doc.Content))
		}
	}

	all := strings.Join(parts, "\n\n")
	if len(additionalContext) > 0 {
		all += "\n\n" + strings.Join(additionalContext, "\n")
	}

	if a.opts.MaxInputBytes > 0 && len(all) > a.opts.MaxInputBytes {
		all = all[:a.opts.MaxInputBytes]
	}

	return all
}

// extractSystems returns the known systems mentioned in the content,
// case-insensitive, deduplicated, in catalog order.
func extractSystems(content string) []string {
	lower := strings.ToLower(content)
	var systems []string
	for _, system := range knownSystems {
		if strings.Contains(lower, strings.ToLower(system)) {
			systems = append(systems, system)
		}
	}
	return systems
}

// companyPattern catches "from Acme" / "at Acme Corp" style mentions.
var companyPattern = regexp.MustCompile(`(?:from|at)\s+([A-Z][a-zA-Z]+(?:\s+[A-Z][a-zA-Z]+)?)`)

// extractClientName derives the client name, preferring email domains in
// participant lists over company-name mentions in document content.
func extractClientName(docs []*document.Document) string {
	for _, doc := range docs {
		for _, participant := range doc.Participants {
			at := strings.Index(participant, "@")
			if at < 0 {
				continue
			}
			domain := participant[at+1:]
			if dot := strings.Index(domain, "."); dot >= 0 {
				domain = domain[:dot]
			}
			if domain != "" {
				return capitalize(domain)
			}
		}
	}

	for _, doc := range docs {
		if m := companyPattern.FindStringSubmatch(doc.Content); m != nil {
			return m[1]
		}
	}

	return "Unknown Client"
}

// capitalize uppercases the first byte and lowercases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// painPointPatterns are problem-indicator phrases, applied in order.
var painPointPatterns = compileAll(
	`problem[s]?\s+(?:is|are)\s+([^.]+)`,
	`issue[s]?\s+(?:is|are)\s+([^.]+)`,
	`spending\s+(\d+[^.]+(?:hours?|minutes?)[^.]+)`,
	`frustrated\s+(?:with|about)\s+([^.]+)`,
	`difficulty\s+(?:with|in)\s+([^.]+)`,
	`struggle\s+(?:with|to)\s+([^.]+)`,
)

// objectivePatterns are want/need/goal phrases, applied in order.
var objectivePatterns = compileAll(
	`(?:want|need|would like)\s+to\s+([^.]+)`,
	`goal\s+is\s+to\s+([^.]+)`,
	`objective\s+is\s+to\s+([^.]+)`,
	`looking\s+to\s+([^.]+)`,
	`hoping\s+to\s+([^.]+)`,
)

// matchMinLen filters out captures too short to be meaningful.
const matchMinLen = 10

// matchCap limits how many matches are collected overall.
const matchCap = 5

// compileAll compiles patterns with case-insensitive matching, preserving
// order. Pattern order is observable output — do not reorder.
func compileAll(patterns ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		res[i] = regexp.MustCompile(`(?i)` + p)
	}
	return res
}

// collectMatches gathers trimmed capture-group-1 matches across all
// patterns in pattern-then-match order, dropping short matches and keeping
// at most matchCap overall.
func collectMatches(content string, patterns []*regexp.Regexp) []string {
	var collected []string
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(content, -1) {
			candidate := strings.TrimSpace(m[1])
			if len(candidate) <= matchMinLen {
				continue
			}
			collected = append(collected, candidate)
			if len(collected) >= matchCap {
				return collected
			}
		}
	}
	return collected
}
