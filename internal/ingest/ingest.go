// Package ingest reads bill section and amendment datasets from XLSX and
// CSV files. Parsing is pure: the package turns files into rows and leaves
// persistence to the caller.
package ingest

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/billtrace/billtrace-server/internal/domain"
)

// Kind discriminates what a dataset file contains.
type Kind string

// Dataset kinds.
const (
	KindSections   Kind = "sections"
	KindAmendments Kind = "amendments"
)

// DatasetInfo identifies a dataset file by its name. Section files are
// named <bill>_<stage>.<ext> (e.g. hr8070_ih.xlsx); amendment files are
// named <bill>_amendments.<ext>.
type DatasetInfo struct {
	BillNumber string
	Stage      domain.Stage // Zero for amendment datasets
	Kind       Kind
	Path       string
}

var datasetNameRe = regexp.MustCompile(`(?i)^([a-z]+[0-9]+)_([a-z]+)$`)

// ParseDatasetName extracts bill number and stage from a dataset filename.
// Returns an error for files that don't follow the naming convention or
// name an unknown stage.
func ParseDatasetName(path string) (DatasetInfo, error) {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)

	m := datasetNameRe.FindStringSubmatch(name)
	if m == nil {
		return DatasetInfo{}, fmt.Errorf("dataset %q does not match <bill>_<stage> naming", base)
	}

	info := DatasetInfo{
		BillNumber: strings.ToUpper(m[1]),
		Path:       path,
	}

	suffix := strings.ToLower(m[2])
	if suffix == "amendments" {
		info.Kind = KindAmendments
		return info, nil
	}

	stage := domain.Stage(suffix)
	if !stage.Valid() {
		return DatasetInfo{}, fmt.Errorf("dataset %q names unknown stage %q", base, suffix)
	}
	info.Kind = KindSections
	info.Stage = stage
	return info, nil
}

// SupportedExt reports whether the file extension is a readable dataset
// format.
func SupportedExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".csv":
		return true
	}
	return false
}

// Row is one parsed dataset row before it becomes a domain entity.
type Row struct {
	Line    int // 1-based row number in the source file, for error reporting
	Heading string
	Title   string
	Body    string
}

// Section header patterns. Datasets carry headers like "SEC. 101." or
// "Section 2." depending on which stage document they were cut from.
var sectionNumberRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\s*sec\.\s*(\d+)`),
	regexp.MustCompile(`(?i)^\s*section\s+(\d+)`),
	regexp.MustCompile(`(?i)^\s*sec\s+(\d+)`),
}

// ExtractSectionNumber pulls the section number out of a heading and
// returns the remaining text as the title. Returns ok=false when the
// heading carries no recognizable number.
func ExtractSectionNumber(heading string) (number int, title string, ok bool) {
	for _, re := range sectionNumberRes {
		m := re.FindStringSubmatchIndex(heading)
		if m == nil {
			continue
		}

		n := 0
		for _, c := range heading[m[2]:m[3]] {
			n = n*10 + int(c-'0')
		}

		title = strings.TrimLeft(heading[m[1]:], ". \t")
		title = strings.TrimSpace(title)
		return n, title, true
	}
	return 0, "", false
}

// SectionsFromRows converts parsed rows into sections for one bill stage.
// Rows whose heading carries no section number are skipped; their row
// numbers are returned so the caller can log them.
func SectionsFromRows(billID string, stage domain.Stage, rows []Row) (sections []*domain.Section, skipped []int) {
	for _, row := range rows {
		number, title, ok := ExtractSectionNumber(row.Heading)
		if !ok {
			skipped = append(skipped, row.Line)
			continue
		}

		if title == "" {
			title = row.Title
		}

		sections = append(sections, &domain.Section{
			BillID:    billID,
			Stage:     stage,
			Number:    number,
			Title:     title,
			Heading:   row.Heading,
			Body:      row.Body,
			SourceRow: row.Line,
		})
	}
	return sections, skipped
}
