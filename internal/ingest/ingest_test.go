package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billtrace/billtrace-server/internal/domain"
)

func TestParseDatasetName(t *testing.T) {
	tests := []struct {
		path     string
		wantBill string
		wantKind Kind
		wantStg  domain.Stage
		wantErr  bool
	}{
		{path: "hr8070_ih.xlsx", wantBill: "HR8070", wantKind: KindSections, wantStg: domain.StageIntroducedHouse},
		{path: "/data/sets/hr8070_enr.csv", wantBill: "HR8070", wantKind: KindSections, wantStg: domain.StageEnrolled},
		{path: "s2226_rds.xlsx", wantBill: "S2226", wantKind: KindSections, wantStg: domain.StageReceivedSenate},
		{path: "hr8070_amendments.xlsx", wantBill: "HR8070", wantKind: KindAmendments},
		{path: "hr8070_draft.xlsx", wantErr: true}, // unknown stage
		{path: "notes.xlsx", wantErr: true},
		{path: "hr8070.xlsx", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			info, err := ParseDatasetName(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBill, info.BillNumber)
			assert.Equal(t, tt.wantKind, info.Kind)
			assert.Equal(t, tt.wantStg, info.Stage)
		})
	}
}

func TestSupportedExt(t *testing.T) {
	assert.True(t, SupportedExt("hr1_ih.xlsx"))
	assert.True(t, SupportedExt("hr1_ih.CSV"))
	assert.False(t, SupportedExt("hr1_ih.pdf"))
	assert.False(t, SupportedExt("hr1_ih.xlsx.tmp"))
}

func TestExtractSectionNumber(t *testing.T) {
	tests := []struct {
		heading    string
		wantNumber int
		wantTitle  string
		wantOK     bool
	}{
		{heading: "SEC. 101. MILITARY PAY RAISE.", wantNumber: 101, wantTitle: "MILITARY PAY RAISE.", wantOK: true},
		{heading: "Sec. 2. Definitions", wantNumber: 2, wantTitle: "Definitions", wantOK: true},
		{heading: "Section 305. Authorization of appropriations", wantNumber: 305, wantTitle: "Authorization of appropriations", wantOK: true},
		{heading: "sec 12 Sense of Congress", wantNumber: 12, wantTitle: "Sense of Congress", wantOK: true},
		{heading: "  SEC. 7.", wantNumber: 7, wantTitle: "", wantOK: true},
		{heading: "TITLE I - PROCUREMENT", wantOK: false},
		{heading: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.heading, func(t *testing.T) {
			number, title, ok := ExtractSectionNumber(tt.heading)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantNumber, number)
				assert.Equal(t, tt.wantTitle, title)
			}
		})
	}
}

func TestSectionsFromRows(t *testing.T) {
	rows := []Row{
		{Line: 2, Heading: "SEC. 101. MILITARY PAY RAISE.", Body: "The rates of basic pay..."},
		{Line: 3, Heading: "TITLE II - PROCUREMENT", Body: "ignored"},
		{Line: 4, Heading: "SEC. 201.", Title: "Procurement of aircraft", Body: "Funds are authorized..."},
	}

	sections, skipped := SectionsFromRows("bill_1", domain.StageIntroducedHouse, rows)
	require.Len(t, sections, 2)
	assert.Equal(t, []int{3}, skipped)

	assert.Equal(t, 101, sections[0].Number)
	assert.Equal(t, "MILITARY PAY RAISE.", sections[0].Title)
	assert.Equal(t, "The rates of basic pay...", sections[0].Body)
	assert.Equal(t, 2, sections[0].SourceRow)

	// A heading without trailing title falls back to the title column.
	assert.Equal(t, 201, sections[1].Number)
	assert.Equal(t, "Procurement of aircraft", sections[1].Title)
}

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseSectionsCSV(t *testing.T) {
	path := writeTempCSV(t, "hr1_ih.csv",
		"header,full_text\n"+
			"SEC. 1. SHORT TITLE.,This Act may be cited as the Example Act.\n"+
			",orphan body with no heading\n"+
			"SEC. 2. DEFINITIONS.,In this Act the term state means a state.\n")

	rows, err := ParseSections(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "SEC. 1. SHORT TITLE.", rows[0].Heading)
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "SEC. 2. DEFINITIONS.", rows[1].Heading)
	assert.Equal(t, 4, rows[1].Line)
}

func TestParseSectionsCSV_HeaderAliases(t *testing.T) {
	path := writeTempCSV(t, "hr1_ih.csv",
		"Section Header,Section Title,Body Text\n"+
			"SEC. 1. SHORT TITLE.,Short title,This Act may be cited as the Example Act.\n")

	rows, err := ParseSections(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Short title", rows[0].Title)
	assert.Equal(t, "This Act may be cited as the Example Act.", rows[0].Body)
}

func TestParseSectionsCSV_MissingColumns(t *testing.T) {
	path := writeTempCSV(t, "hr1_ih.csv", "foo,bar\na,b\n")

	_, err := ParseSections(path)
	assert.Error(t, err)
}

func TestParseSections_UnsupportedFormat(t *testing.T) {
	_, err := ParseSections("hr1_ih.pdf")
	assert.Error(t, err)
}

func TestParseAmendmentsCSV(t *testing.T) {
	path := writeTempCSV(t, "hr1_amendments.csv",
		"Amendment,Sponsors,Vote Type,Yea,Nay,Agreed,Content,Matched Section,Similarity\n"+
			"12,Rep. Smith,Recorded,218,210,Yes,Strike section 101 and insert...,101,96.5\n"+
			"H.Amdt. 44,Rep. Jones,Voice,,,Yes,After section 205 insert...,,\n"+
			",,,,,,,,\n")

	amendments, err := ParseAmendments(path, "bill_1")
	require.NoError(t, err)
	require.Len(t, amendments, 2)

	assert.Equal(t, 12, amendments[0].Number)
	assert.Equal(t, "bill_1", amendments[0].BillID)
	assert.Equal(t, "Rep. Smith", amendments[0].Sponsors)
	assert.Equal(t, "218", amendments[0].Yea)
	assert.Equal(t, 101, amendments[0].MatchedSectionNumber)
	assert.InDelta(t, 96.5, amendments[0].SimilarityScore, 0.001)

	// Chamber-prefixed numbers parse from the trailing digits.
	assert.Equal(t, 44, amendments[1].Number)
	assert.Equal(t, "Voice", amendments[1].VoteType)
	assert.Zero(t, amendments[1].MatchedSectionNumber)
}

func TestParseAmendmentsCSV_NoNumberColumn(t *testing.T) {
	path := writeTempCSV(t, "hr1_amendments.csv", "Sponsors,Content\nRep. Smith,text\n")

	_, err := ParseAmendments(path, "bill_1")
	assert.Error(t, err)
}
