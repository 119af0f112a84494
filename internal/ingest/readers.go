package ingest

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ParseSections reads section rows from a dataset file, dispatching on the
// file extension.
func ParseSections(path string) ([]Row, error) {
	var records [][]string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		records, err = readXLSXRecords(path)
	case ".csv":
		records, err = readCSVRecords(path)
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	return rowsFromRecords(records)
}

// rowsFromRecords converts raw records into Rows using the header row to
// locate columns. Rows with an empty heading are dropped.
func rowsFromRecords(records [][]string) ([]Row, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset is empty")
	}

	cols, err := resolveSectionColumns(records[0])
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(records)-1)
	for i, record := range records[1:] {
		row := Row{
			Line:    i + 2, // 1-based, after the header row
			Heading: cell(record, cols.heading),
			Title:   cell(record, cols.title),
			Body:    cell(record, cols.body),
		}
		if row.Heading == "" {
			continue
		}
		rows = append(rows, row)
	}

	return rows, nil
}
