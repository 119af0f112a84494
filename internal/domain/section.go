// Package domain contains the core business entities for the BillTrace
// legislative tracing server.
package domain

import "fmt"

// Stage identifies a version of a bill as it moves through the chamber.
// Values follow the GPO bill-version abbreviations.
type Stage string

// Bill stages commonly seen in section datasets.
const (
	StageIntroducedHouse Stage = "ih"  // Introduced in House
	StageReportedHouse   Stage = "rh"  // Reported in House
	StageEngrossedHouse  Stage = "eh"  // Engrossed in House
	StageReceivedSenate  Stage = "rds" // Received in Senate
	StageEnrolled        Stage = "enr"
)

// Valid reports whether the stage is one of the known bill versions.
func (s Stage) Valid() bool {
	switch s {
	case StageIntroducedHouse, StageReportedHouse, StageEngrossedHouse, StageReceivedSenate, StageEnrolled:
		return true
	}
	return false
}

// Ordinal returns the stage's position in the legislative sequence.
// Unknown stages sort last.
func (s Stage) Ordinal() int {
	switch s {
	case StageIntroducedHouse:
		return 0
	case StageReportedHouse:
		return 1
	case StageEngrossedHouse:
		return 2
	case StageReceivedSenate:
		return 3
	case StageEnrolled:
		return 4
	}
	return 5
}

// Section is one numbered section of a bill at a particular stage, as loaded
// from a section dataset. Body carries the raw prose; normalization happens
// at comparison time, not at ingest.
type Section struct {
	Tracked
	BillID    string `json:"bill_id"`
	Stage     Stage  `json:"stage"`
	Number    int    `json:"number"`
	Title     string `json:"title"`
	Heading   string `json:"heading,omitempty"` // Raw header the number was extracted from
	Body      string `json:"body"`
	SourceRow int    `json:"source_row,omitempty"` // Row in the ingested dataset, for provenance
}

// Key returns the unique bill/stage/number coordinate of a section.
func (s *Section) Key() string {
	return fmt.Sprintf("%s/%s/%d", s.BillID, s.Stage, s.Number)
}

// HasBody reports whether the section carries comparable prose.
func (s *Section) HasBody() bool {
	return s.Body != ""
}
