package ingest

import (
	"fmt"
	"strings"
)

// columnSet maps logical fields to column positions in one dataset file.
// A position of -1 means the file has no such column.
type columnSet struct {
	heading int
	title   int
	body    int
}

// Column header aliases. Datasets come from several scraping runs and the
// spreadsheets never agreed on header names.
var (
	headingAliases = []string{"header", "heading", "section header", "section"}
	titleAliases   = []string{"title", "section title"}
	bodyAliases    = []string{"full_text", "body", "body text", "text", "content"}
)

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

func findColumn(headers []string, aliases []string) int {
	for _, alias := range aliases {
		for i, h := range headers {
			if normalizeHeader(h) == alias {
				return i
			}
		}
	}
	return -1
}

// resolveSectionColumns inspects a header row and locates the heading,
// title, and body columns. A file must carry at least a heading column and
// a body column to be usable.
func resolveSectionColumns(headers []string) (columnSet, error) {
	cols := columnSet{
		heading: findColumn(headers, headingAliases),
		title:   findColumn(headers, titleAliases),
		body:    findColumn(headers, bodyAliases),
	}

	if cols.heading < 0 {
		return cols, fmt.Errorf("no heading column found (looked for %s)", strings.Join(headingAliases, ", "))
	}
	if cols.body < 0 {
		return cols, fmt.Errorf("no body column found (looked for %s)", strings.Join(bodyAliases, ", "))
	}

	return cols, nil
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
