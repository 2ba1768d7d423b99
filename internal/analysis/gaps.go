package analysis

import "strings"

// gapCheck is one entry in the fixed gap-detection table: if none of the
// keywords appear anywhere in the corpus or the additional context, the
// gap is emitted.
type gapCheck struct {
	keywords    []string
	category    GapCategory
	description string
	impact      string
	question    string
	priority    Priority
}

// gapChecks is the fixed table of critical topics a discovery corpus is
// expected to address. Order is observable output — do not reorder.
var gapChecks = []gapCheck{
	{
		keywords:    []string{"refund", "return"},
		category:    CategoryBusinessRules,
		description: "Refund and return handling not discussed",
		impact:      "Returns could fail to sync or create duplicate credits",
		question:    "How should refunds and returns be handled? Should they create credit notes or adjustment entries?",
		priority:    PriorityHigh,
	},
	{
		keywords:    []string{"tax", "vat", "sales tax"},
		category:    CategoryBusinessRules,
		description: "Tax handling not specified",
		impact:      "Tax calculations could be incorrect or missing in synced data",
		question:    "How should taxes be calculated and synced? Which system is responsible for tax calculation?",
		priority:    PriorityHigh,
	},
	{
		keywords:    []string{"error", "failure", "retry", "error handling"},
		category:    CategoryErrorHandling,
		description: "Error handling and retry logic not defined",
		impact:      "Failed syncs could go unnoticed or cause data inconsistencies",
		question:    "What should happen when a sync fails? Should we retry automatically? How should errors be reported?",
		priority:    PriorityHigh,
	},
	{
		keywords:    []string{"sync frequency", "real-time", "interval", "schedule"},
		category:    CategoryTechnicalConstraints,
		description: "Sync frequency not clearly defined",
		impact:      "Could build wrong sync mechanism (webhook vs polling)",
		question:    "How often should data sync? Real-time via webhooks, or scheduled intervals (every 15 min, hourly, daily)?",
		priority:    PriorityMedium,
	},
	{
		keywords:    []string{"success", "acceptance", "criteria", "metric"},
		category:    CategorySuccessCriteria,
		description: "Success criteria not explicitly defined",
		impact:      "Unclear definition of project completion",
		question:    "What are the specific success criteria? How will we measure if the integration is working correctly?",
		priority:    PriorityMedium,
	},
	{
		keywords:    []string{"rate limit", "api limit", "throttle"},
		category:    CategoryTechnicalConstraints,
		description: "API rate limits not discussed",
		impact:      "Could hit rate limits and cause sync failures",
		question:    "What are the API rate limits for each system? Do we need to implement throttling?",
		priority:    PriorityMedium,
	},
	{
		keywords:    []string{"authentication", "credentials", "api key", "oauth"},
		category:    CategoryTechnicalConstraints,
		description: "Authentication method not specified",
		impact:      "Could start with wrong authentication approach",
		question:    "What authentication method should be used? API keys, OAuth, or something else?",
		priority:    PriorityMedium,
	},
	{
		keywords:    []string{"edge case", "exception", "special case"},
		category:    CategoryEdgeCases,
		description: "Edge cases not explored",
		impact:      "Unexpected scenarios could break the integration",
		question:    "What edge cases should we handle? (e.g., partial refunds, split payments, cancelled orders)",
		priority:    PriorityLow,
	},
}

// detectGaps emits a gap for every check whose keywords appear in neither
// the combined document text nor the additional context. Content and
// context are independent OR-sources: a mention in either suppresses the
// gap.
func detectGaps(content string, additionalContext []string) []Gap {
	var gaps []Gap
	contentLower := strings.ToLower(content)
	contextLower := strings.ToLower(strings.Join(additionalContext, " "))

	for _, check := range gapChecks {
		if containsAny(contentLower, check.keywords) || containsAny(contextLower, check.keywords) {
			continue
		}
		gaps = append(gaps, Gap{
			Category:          check.category,
			Description:       check.description,
			Impact:            check.impact,
			Priority:          check.priority,
			SuggestedQuestion: check.question,
		})
	}

	return gaps
}

// containsAny reports whether any keyword occurs as a substring of s.
// Both sides are expected to already be lowercase.
func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
