// Package document defines the normalized representation of one ingested
// discovery document (email, call transcript, client note, ...) plus the
// type-specific parsers that create it.
//
// Documents are immutable after parsing, except for a late-bound Summary
// that an agent may attach to integration-sourced documents.
package document

import (
	"fmt"
	"strings"
	"time"
)

// --- Document type enum ---

// Type categorizes a discovery document.
type Type string

const (
	TypeEmail      Type = "email"
	TypeTranscript Type = "transcript"
	TypeSOW        Type = "sow"
	TypeGuide      Type = "guide"
	TypeNotes      Type = "notes"
	TypeOther      Type = "other"
)

// validTypes is the set of recognized document types.
var validTypes = map[Type]bool{
	TypeEmail:      true,
	TypeTranscript: true,
	TypeSOW:        true,
	TypeGuide:      true,
	TypeNotes:      true,
	TypeOther:      true,
}

// ParseType converts a raw string into a Type. Unknown values coerce to
// TypeOther rather than failing — upstream data carries free-form type
// strings and the analyzer must accept all of them.
func ParseType(s string) Type {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if validTypes[t] {
		return t
	}
	return TypeOther
}

// --- Document source enum ---

// Source identifies where a document came from.
type Source string

const (
	SourceLocal       Source = "local"
	SourceIntegration Source = "integration"
	SourceUpload      Source = "upload"
)

// validSources is the set of allowed document sources.
var validSources = map[Source]bool{
	SourceLocal:       true,
	SourceIntegration: true,
	SourceUpload:      true,
}

// ValidateSource returns an error if the source is not recognized.
// Unlike document types, sources are produced by this codebase only,
// so an unknown value is a programming error.
func ValidateSource(s Source) error {
	if !validSources[s] {
		return fmt.Errorf("invalid document source %q: must be one of: local, integration, upload", s)
	}
	return nil
}

// --- Core data structure ---

// Document is one ingested unit of discovery text with extracted metadata.
type Document struct {
	Path         string            `json:"file_path"`
	Content      string            `json:"content"`
	Type         Type              `json:"doc_type"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	Date         *time.Time        `json:"date,omitempty"`
	Participants []string          `json:"participants,omitempty"`
	Subject      string            `json:"subject,omitempty"`
	Summary      string            `json:"summary,omitempty"`
	Source       Source            `json:"source"`

	// Set only for documents fetched from a remote provider; local
	// ingestion leaves them empty.
	ExternalID  string `json:"external_id,omitempty"`
	ExternalURL string `json:"external_url,omitempty"`
}

// IsEmail reports whether the document is an email.
func (d *Document) IsEmail() bool { return d.Type == TypeEmail }

// IsTranscript reports whether the document is a call transcript.
func (d *Document) IsTranscript() bool { return d.Type == TypeTranscript }
