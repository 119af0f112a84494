package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/billtrace/billtrace-server/internal/domain"
)

// Amendment dataset column aliases.
var (
	amdNumberAliases     = []string{"amendment number", "amendment", "number", "amdt"}
	amdTitleAliases      = []string{"title", "purpose", "description"}
	amdSponsorsAliases   = []string{"sponsors", "sponsor", "offered by"}
	amdContentAliases    = []string{"content", "full_text", "text"}
	amdVoteTypeAliases   = []string{"vote type", "vote_type", "vote"}
	amdYeaAliases        = []string{"yea", "yeas", "ayes"}
	amdNayAliases        = []string{"nay", "nays", "noes"}
	amdAgreedAliases     = []string{"agreed", "result", "outcome"}
	amdSectionAliases    = []string{"matched section", "section number", "section"}
	amdSectionTitleAlias = []string{"matched title", "section title"}
	amdSimilarityAliases = []string{"similarity", "score", "match score"}
)

type amendmentColumns struct {
	number       int
	title        int
	sponsors     int
	content      int
	voteType     int
	yea          int
	nay          int
	agreed       int
	section      int
	sectionTitle int
	similarity   int
}

func resolveAmendmentColumns(headers []string) (amendmentColumns, error) {
	cols := amendmentColumns{
		number:       findColumn(headers, amdNumberAliases),
		title:        findColumn(headers, amdTitleAliases),
		sponsors:     findColumn(headers, amdSponsorsAliases),
		content:      findColumn(headers, amdContentAliases),
		voteType:     findColumn(headers, amdVoteTypeAliases),
		yea:          findColumn(headers, amdYeaAliases),
		nay:          findColumn(headers, amdNayAliases),
		agreed:       findColumn(headers, amdAgreedAliases),
		section:      findColumn(headers, amdSectionAliases),
		sectionTitle: findColumn(headers, amdSectionTitleAlias),
		similarity:   findColumn(headers, amdSimilarityAliases),
	}

	if cols.number < 0 {
		return cols, fmt.Errorf("no amendment number column found (looked for %s)", strings.Join(amdNumberAliases, ", "))
	}

	return cols, nil
}

// ParseAmendments reads amendments from a dataset file, dispatching on the
// file extension. BillID is stamped onto every parsed amendment.
func ParseAmendments(path, billID string) ([]*domain.Amendment, error) {
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

	return amendmentsFromRecords(records, billID)
}

func readXLSXRecords(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", filepath.Base(path))
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return records, nil
}

func readCSVRecords(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var records [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		records = append(records, record)
	}
	return records, nil
}

func amendmentsFromRecords(records [][]string, billID string) ([]*domain.Amendment, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset is empty")
	}

	cols, err := resolveAmendmentColumns(records[0])
	if err != nil {
		return nil, err
	}

	var amendments []*domain.Amendment
	for _, record := range records[1:] {
		numberText := cell(record, cols.number)
		if numberText == "" {
			continue
		}

		number, err := strconv.Atoi(strings.TrimPrefix(numberText, "#"))
		if err != nil {
			// Amendment numbers sometimes carry chamber prefixes like
			// "H.Amdt. 12"; take the trailing digits.
			number, err = trailingNumber(numberText)
			if err != nil {
				continue
			}
		}

		a := &domain.Amendment{
			BillID:              billID,
			Number:              number,
			Title:               cell(record, cols.title),
			Sponsors:            cell(record, cols.sponsors),
			Content:             cell(record, cols.content),
			VoteType:            cell(record, cols.voteType),
			Yea:                 cell(record, cols.yea),
			Nay:                 cell(record, cols.nay),
			Agreed:              cell(record, cols.agreed),
			MatchedSectionTitle: cell(record, cols.sectionTitle),
		}

		if sectionText := cell(record, cols.section); sectionText != "" {
			if n, err := strconv.Atoi(sectionText); err == nil {
				a.MatchedSectionNumber = n
			}
		}
		if simText := cell(record, cols.similarity); simText != "" {
			if score, err := strconv.ParseFloat(simText, 64); err == nil {
				a.SimilarityScore = score
			}
		}

		amendments = append(amendments, a)
	}

	return amendments, nil
}

// trailingNumber extracts the final digit run from a string like
// "H.Amdt. 12".
func trailingNumber(s string) (int, error) {
	end := len(s)
	for end > 0 && (s[end-1] < '0' || s[end-1] > '9') {
		end--
	}
	start := end
	for start > 0 && s[start-1] >= '0' && s[start-1] <= '9' {
		start--
	}
	if start == end {
		return 0, fmt.Errorf("no number in %q", s)
	}
	return strconv.Atoi(s[start:end])
}
