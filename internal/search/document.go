// Package search provides full-text search over bill sections using Bleve.
// It backs both the user-facing section search and the title matcher's
// candidate retrieval.
package search

import (
	"github.com/billtrace/billtrace-server/internal/domain"
)

// SectionDocument is the document structure for the Bleve index. One
// document per stored section.
type SectionDocument struct {
	ID      string `json:"id"`
	BillID  string `json:"bill_id"`
	Stage   string `json:"stage"`
	Number  int    `json:"number"`
	Title   string `json:"title"`
	Heading string `json:"heading,omitempty"`
	Body    string `json:"body,omitempty"`

	UpdatedAt int64 `json:"updated_at"` // Unix millis
}

// DocumentFromSection builds the index document for a section.
func DocumentFromSection(section *domain.Section) *SectionDocument {
	return &SectionDocument{
		ID:        section.ID,
		BillID:    section.BillID,
		Stage:     string(section.Stage),
		Number:    section.Number,
		Title:     section.Title,
		Heading:   section.Heading,
		Body:      section.Body,
		UpdatedAt: section.UpdatedAt.UnixMilli(),
	}
}

// ToMap converts the document to a map with lowercase field names.
// Bleve by default uses Go struct field names (capitalized), but our
// mapping uses lowercase names, so we convert explicitly.
func (d *SectionDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":         d.ID,
		"bill_id":    d.BillID,
		"stage":      d.Stage,
		"number":     d.Number,
		"title":      d.Title,
		"updated_at": d.UpdatedAt,
	}
	if d.Heading != "" {
		m["heading"] = d.Heading
	}
	if d.Body != "" {
		m["body"] = d.Body
	}
	return m
}
