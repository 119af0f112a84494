package service

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billtrace/billtrace-server/internal/domain"
	"github.com/billtrace/billtrace-server/internal/ingest"
	"github.com/billtrace/billtrace-server/internal/match"
	"github.com/billtrace/billtrace-server/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// setupTestStore creates a temporary store for service tests.
func setupTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func writeDataset(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const ihDataset = "header,full_text\n" +
	"SEC. 1. SHORT TITLE.,This Act may be cited as the Example Act.\n" +
	"SEC. 2. DEFINITIONS.,In this Act the term state means a state of the union.\n" +
	"SEC. 3. SUNSET.,This Act expires five years after enactment.\n"

const enrDataset = "header,full_text\n" +
	"SEC. 1. SHORT TITLE.,This Act may be cited as the Example Act.\n" +
	"SEC. 2. DEFINITIONS.,In this Act the term state means a state or territory of the union.\n" +
	"SEC. 4. REPORTING.,The Secretary shall report annually to Congress.\n"

func TestIngestService_IngestSections(t *testing.T) {
	s := setupTestStore(t)
	svc := NewIngestService(s, match.New(), testLogger())
	ctx := context.Background()

	dir := t.TempDir()
	path := writeDataset(t, dir, "hr1_ih.csv", ihDataset)

	summary, err := svc.IngestFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "HR1", summary.BillNumber)
	assert.Equal(t, domain.StageIntroducedHouse, summary.Stage)
	assert.Equal(t, 3, summary.Sections)
	assert.Zero(t, summary.Traces) // single stage, nothing to trace against

	bill, err := s.GetBillByNumber(ctx, "HR1")
	require.NoError(t, err)
	assert.True(t, bill.HasStage(domain.StageIntroducedHouse))

	sections, err := s.ListSectionsByStage(ctx, bill.ID, domain.StageIntroducedHouse)
	require.NoError(t, err)
	require.Len(t, sections, 3)
	assert.Equal(t, "SHORT TITLE.", sections[0].Title)
}

func TestIngestService_SecondStageBuildsTraces(t *testing.T) {
	s := setupTestStore(t)
	svc := NewIngestService(s, match.New(), testLogger())
	ctx := context.Background()

	dir := t.TempDir()
	_, err := svc.IngestFile(ctx, writeDataset(t, dir, "hr1_ih.csv", ihDataset))
	require.NoError(t, err)

	summary, err := svc.IngestFile(ctx, writeDataset(t, dir, "hr1_enr.csv", enrDataset))
	require.NoError(t, err)

	// Sections 1 and 2 carry forward by title; section 3 (SUNSET) was
	// dropped and section 4 (REPORTING) is new, so neither traces.
	assert.Equal(t, 2, summary.Traces)

	bill, err := s.GetBillByNumber(ctx, "HR1")
	require.NoError(t, err)

	traces, err := s.ListTracesByBill(ctx, bill.ID)
	require.NoError(t, err)
	require.Len(t, traces, 2)
	for _, trace := range traces {
		assert.Equal(t, domain.StageIntroducedHouse, trace.LeftStage)
		assert.Equal(t, domain.StageEnrolled, trace.RightStage)
		assert.Equal(t, 100.0, trace.TitleSimilarity)
	}
}

func TestIngestService_ReingestReplacesStage(t *testing.T) {
	s := setupTestStore(t)
	svc := NewIngestService(s, match.New(), testLogger())
	ctx := context.Background()

	dir := t.TempDir()
	path := writeDataset(t, dir, "hr1_ih.csv", ihDataset)

	_, err := svc.IngestFile(ctx, path)
	require.NoError(t, err)

	// Re-ingest a shorter dataset for the same stage.
	writeDataset(t, dir, "hr1_ih.csv",
		"header,full_text\n"+
			"SEC. 1. SHORT TITLE.,This Act may be cited as the Example Act of 2026.\n")

	summary, err := svc.IngestFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Sections)

	bill, err := s.GetBillByNumber(ctx, "HR1")
	require.NoError(t, err)

	sections, err := s.ListSectionsByStage(ctx, bill.ID, domain.StageIntroducedHouse)
	require.NoError(t, err)
	assert.Len(t, sections, 1)
}

func TestIngestService_IngestAmendments(t *testing.T) {
	s := setupTestStore(t)
	svc := NewIngestService(s, match.New(), testLogger())
	ctx := context.Background()

	dir := t.TempDir()
	path := writeDataset(t, dir, "hr1_amendments.csv",
		"Amendment,Sponsors,Agreed,Matched Section\n"+
			"12,Rep. Smith,Yes,2\n"+
			"44,Rep. Jones,No,\n")

	summary, err := svc.IngestFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, ingest.KindAmendments, summary.Kind)
	assert.Equal(t, 2, summary.Amendments)

	// Re-ingest updates in place rather than duplicating.
	summary, err = svc.IngestFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Amendments)

	bill, err := s.GetBillByNumber(ctx, "HR1")
	require.NoError(t, err)

	amendments, err := s.ListAmendmentsByBill(ctx, bill.ID)
	require.NoError(t, err)
	assert.Len(t, amendments, 2)
}

func TestIngestService_IngestDir(t *testing.T) {
	s := setupTestStore(t)
	svc := NewIngestService(s, match.New(), testLogger())
	ctx := context.Background()

	dir := t.TempDir()
	writeDataset(t, dir, "hr1_enr.csv", enrDataset)
	writeDataset(t, dir, "hr1_ih.csv", ihDataset)
	writeDataset(t, dir, "notes.txt", "not a dataset")
	writeDataset(t, dir, "badname.csv", "header,full_text\nx,y\n")

	summaries, err := svc.IngestDir(ctx, dir)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	// Stages ingest in legislative order regardless of directory order.
	assert.Equal(t, domain.StageIntroducedHouse, summaries[0].Stage)
	assert.Equal(t, domain.StageEnrolled, summaries[1].Stage)
	assert.Equal(t, 2, summaries[1].Traces)
}

func TestIngestService_RejectsMalformedName(t *testing.T) {
	s := setupTestStore(t)
	svc := NewIngestService(s, match.New(), testLogger())

	dir := t.TempDir()
	path := writeDataset(t, dir, "sections.csv", ihDataset)

	_, err := svc.IngestFile(context.Background(), path)
	assert.Error(t, err)
}
