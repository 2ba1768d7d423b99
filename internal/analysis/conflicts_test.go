package analysis

import (
	"strings"
	"testing"

	"github.com/offbench/discovery-mcp/internal/document"
)

func TestDetectConflictsRequiresTwoMentions(t *testing.T) {
	// A single source-of-truth claim is a statement, not a conflict.
	docs := []*document.Document{
		textDoc("email.txt", "Shopify is the source of truth for inventory levels."),
	}
	if got := detectConflicts(docs); got != nil {
		t.Errorf("detectConflicts() = %v, want nil", got)
	}
}

func TestDetectConflictsAcrossDocuments(t *testing.T) {
	docs := []*document.Document{
		textDoc("email.txt", "Shopify should be the source of truth for inventory levels."),
		textDoc("transcript.txt", "QuickBooks must remain the master record for our stock counts."),
	}

	conflicts := detectConflicts(docs)
	if len(conflicts) != 1 {
		t.Fatalf("got %d conflicts, want 1", len(conflicts))
	}

	c := conflicts[0]
	if c.Topic != inventoryTopic {
		t.Errorf("Topic = %q, want %q", c.Topic, inventoryTopic)
	}
	if c.Priority != PriorityHigh {
		t.Errorf("Priority = %q, want high", c.Priority)
	}
	if len(c.ConflictingStatements) != 2 || len(c.Sources) != 2 {
		t.Fatalf("statements=%d sources=%d, want 2 each", len(c.ConflictingStatements), len(c.Sources))
	}
	if c.Sources[0] != "email.txt" || c.Sources[1] != "transcript.txt" {
		t.Errorf("Sources = %v", c.Sources)
	}
	if !strings.Contains(c.ConflictingStatements[0], "Shopify") ||
		!strings.Contains(c.ConflictingStatements[1], "QuickBooks") {
		t.Errorf("ConflictingStatements = %v", c.ConflictingStatements)
	}
	if c.Resolution != "" {
		t.Errorf("Resolution = %q, want empty without an explicit decision", c.Resolution)
	}
}

func TestDetectConflictsWithinOneDocument(t *testing.T) {
	docs := []*document.Document{
		textDoc("notes.txt",
			"Shopify will act as the master for inventory. "+
				"Later the CFO said QuickBooks holds the master inventory numbers."),
	}

	conflicts := detectConflicts(docs)
	if len(conflicts) != 1 {
		t.Fatalf("got %d conflicts, want 1", len(conflicts))
	}
	if len(conflicts[0].ConflictingStatements) != 2 {
		t.Errorf("statements = %v", conflicts[0].ConflictingStatements)
	}
}

func TestDetectConflictsIgnoresUnrelatedDocs(t *testing.T) {
	// Documents mentioning inventory without ownership language don't
	// contribute statements.
	docs := []*document.Document{
		textDoc("a.txt", "Inventory counts drift every week."),
		textDoc("b.txt", "We recount inventory by hand on Mondays."),
	}
	if got := detectConflicts(docs); got != nil {
		t.Errorf("detectConflicts() = %v, want nil", got)
	}
}

func TestSearchResolutionFromKeywordSentence(t *testing.T) {
	docs := []*document.Document{
		textDoc("email.txt", "Shopify should be the source of truth for inventory levels."),
		textDoc("followup.txt", "On Friday we decided that Shopify will own the inventory numbers going forward."),
	}

	got := searchResolution("inventory system of record", docs)
	if got == "" {
		t.Fatal("no resolution found despite an explicit decision")
	}
	if !strings.Contains(got, "decided") {
		t.Errorf("resolution = %q, want the decision sentence", got)
	}
}

func TestSearchResolutionFromDecisionPattern(t *testing.T) {
	docs := []*document.Document{
		textDoc("notes.txt", "For stock levels we will use Shopify as the owner of inventory across channels."),
	}

	got := searchResolution("inventory system of record", docs)
	if got == "" {
		t.Fatal("no resolution found for a 'we will use X as' statement")
	}
	if !strings.Contains(got, "Shopify") {
		t.Errorf("resolution = %q", got)
	}
}

func TestConflictResolutionAttached(t *testing.T) {
	docs := []*document.Document{
		textDoc("email.txt", "Shopify should be the source of truth for inventory levels."),
		textDoc("transcript.txt", "QuickBooks must be the master record for inventory. "+
			"We later agreed the inventory source of truth stays in Shopify."),
	}

	conflicts := detectConflicts(docs)
	if len(conflicts) != 1 {
		t.Fatalf("got %d conflicts, want 1", len(conflicts))
	}
	if conflicts[0].Resolution == "" {
		t.Error("Resolution empty despite an 'agreed' sentence")
	}
}
