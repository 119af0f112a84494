package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billtrace/billtrace-server/internal/diff"
	"github.com/billtrace/billtrace-server/internal/domain"
	domainerrors "github.com/billtrace/billtrace-server/internal/errors"
	"github.com/billtrace/billtrace-server/internal/match"
)

func TestCompareService_CompareTexts(t *testing.T) {
	svc := NewCompareService(setupTestStore(t), testLogger())

	comparison := svc.CompareTexts(
		"The Secretary shall submit a report. The report is annual.",
		"The Secretary shall submit a detailed report. The report is annual.",
	)

	assert.Equal(t, 100, comparison.Stats.SimilarityPercent)
	assert.Equal(t, 2, comparison.Stats.Unchanged)
	assert.Len(t, comparison.LeftSegments, 2)
	assert.Len(t, comparison.RightSegments, 2)

	// The modified chunk carries word-level detail.
	assert.Equal(t, diff.OpModified, comparison.LeftSegments[0].Op)
	assert.NotEmpty(t, comparison.LeftSegments[0].Words)
}

func TestCompareService_CompareTexts_BothEmpty(t *testing.T) {
	svc := NewCompareService(setupTestStore(t), testLogger())

	comparison := svc.CompareTexts("", "")
	assert.Equal(t, 100, comparison.Stats.SimilarityPercent)
	assert.Empty(t, comparison.Entries)
}

func TestCompareService_CompareTrace(t *testing.T) {
	s := setupTestStore(t)
	compareSvc := NewCompareService(s, testLogger())
	ingestSvc := NewIngestService(s, match.New(), testLogger())
	ctx := context.Background()

	dir := t.TempDir()
	_, err := ingestSvc.IngestFile(ctx, writeDataset(t, dir, "hr1_ih.csv", ihDataset))
	require.NoError(t, err)
	_, err = ingestSvc.IngestFile(ctx, writeDataset(t, dir, "hr1_enr.csv", enrDataset))
	require.NoError(t, err)

	bill, err := s.GetBillByNumber(ctx, "HR1")
	require.NoError(t, err)
	traces, err := s.ListTracesByBill(ctx, bill.ID)
	require.NoError(t, err)
	require.NotEmpty(t, traces)

	var defsTrace *domain.Trace
	for _, trace := range traces {
		left, err := s.GetSection(ctx, trace.LeftSectionID)
		require.NoError(t, err)
		if left.Number == 2 {
			defsTrace = trace
		}
	}
	require.NotNil(t, defsTrace, "definitions section should trace forward")

	comparison, err := compareSvc.CompareTrace(ctx, defsTrace.ID)
	require.NoError(t, err)
	assert.Equal(t, defsTrace.ID, comparison.Trace.ID)
	assert.Equal(t, 2, comparison.Left.Number)
	assert.Equal(t, domain.StageEnrolled, comparison.Right.Stage)

	// "state" became "state or territory": one modified chunk, still
	// counted as unchanged in the stats.
	assert.Equal(t, 1, comparison.Stats.Unchanged)
	assert.Equal(t, diff.OpModified, comparison.Entries[0].Op)
}

func TestCompareService_CompareTrace_NotFound(t *testing.T) {
	svc := NewCompareService(setupTestStore(t), testLogger())

	_, err := svc.CompareTrace(context.Background(), "trc-missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestCompareService_CompareSections_NotFound(t *testing.T) {
	svc := NewCompareService(setupTestStore(t), testLogger())

	_, err := svc.CompareSections(context.Background(), "sec-a", "sec-b")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
