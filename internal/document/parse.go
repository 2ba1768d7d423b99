package document

import (
	"regexp"
	"strings"
	"time"
)

// emailDateLayout matches dates like "Monday, January 13, 2025, 2:30 PM".
const emailDateLayout = "Monday, January 2, 2006, 3:04 PM"

// headerScanLines is how many leading lines are inspected for email headers.
const headerScanLines = 10

// speakerPattern matches a capitalized one-or-two-word name followed by a
// colon at line start, e.g. "Sarah:" or "Mike Chen:".
var speakerPattern = regexp.MustCompile(`(?m)^([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)\s*:`)

// ParseEmail parses an email-format document. Header-style lines in the
// first 10 lines populate metadata, participants, subject, and date.
// A date that doesn't match the expected format is silently dropped —
// parse failures never abort ingestion.
func ParseEmail(path, content string) *Document {
	doc := &Document{
		Path:     path,
		Content:  content,
		Type:     TypeEmail,
		Metadata: map[string]string{},
		Source:   SourceLocal,
	}

	lines := strings.Split(content, "\n")
	if len(lines) > headerScanLines {
		lines = lines[:headerScanLines]
	}

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "From:"):
			sender := strings.TrimSpace(strings.TrimPrefix(line, "From:"))
			doc.Participants = append(doc.Participants, sender)
			if addr := bracketedAddress(sender); addr != "" {
				doc.Metadata["from"] = addr
			}
		case strings.HasPrefix(line, "To:"):
			recipient := strings.TrimSpace(strings.TrimPrefix(line, "To:"))
			doc.Participants = append(doc.Participants, recipient)
			if addr := bracketedAddress(recipient); addr != "" {
				doc.Metadata["to"] = addr
			}
		case strings.HasPrefix(line, "Subject:"):
			doc.Subject = strings.TrimSpace(strings.TrimPrefix(line, "Subject:"))
		case strings.HasPrefix(line, "Date:"):
			raw := strings.TrimSpace(strings.TrimPrefix(line, "Date:"))
			if t, err := time.Parse(emailDateLayout, raw); err == nil {
				doc.Date = &t
			}
		}
	}

	return doc
}

// bracketedAddress extracts the address from "Name <addr@host>" forms.
// Returns "" when no angle brackets are present.
func bracketedAddress(s string) string {
	open := strings.Index(s, "<")
	if open < 0 {
		return ""
	}
	rest := s[open+1:]
	close := strings.Index(rest, ">")
	if close < 0 {
		return ""
	}
	return rest[:close]
}

// ParseTranscript parses a call transcript. Participants are the speaker
// names found at line starts, deduplicated in first-seen order.
func ParseTranscript(path, content string) *Document {
	doc := &Document{
		Path:     path,
		Content:  content,
		Type:     TypeTranscript,
		Metadata: map[string]string{},
		Source:   SourceLocal,
	}

	seen := map[string]bool{}
	for _, m := range speakerPattern.FindAllStringSubmatch(content, -1) {
		speaker := m[1]
		if !seen[speaker] {
			seen[speaker] = true
			doc.Participants = append(doc.Participants, speaker)
		}
	}

	return doc
}

// ParseClientDoc parses a generic client document. No structural
// extraction happens; the type is assigned from filename heuristics.
func ParseClientDoc(path, content string) *Document {
	return &Document{
		Path:     path,
		Content:  content,
		Type:     typeFromFilename(path),
		Metadata: map[string]string{},
		Source:   SourceLocal,
	}
}

// typeFromFilename assigns a document type by filename substring.
func typeFromFilename(path string) Type {
	name := strings.ToLower(path)
	if idx := strings.LastIndexAny(name, "/\\"); idx >= 0 {
		name = name[idx+1:]
	}
	switch {
	case strings.Contains(name, "sow"):
		return TypeSOW
	case strings.Contains(name, "guide"), strings.Contains(name, "brand"):
		return TypeGuide
	case strings.Contains(name, "note"):
		return TypeNotes
	default:
		return TypeOther
	}
}
