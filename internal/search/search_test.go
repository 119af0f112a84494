package search

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billtrace/billtrace-server/internal/domain"
)

// setupTestIndex creates a temporary search index for testing.
func setupTestIndex(t *testing.T) (*SearchIndex, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "search-test-*")
	require.NoError(t, err)

	index, err := NewSearchIndex(Options{
		DataPath: tmpDir,
		Logger:   nil,
	})
	require.NoError(t, err)

	cleanup := func() {
		_ = index.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return index, cleanup
}

func testSection(id, billID string, stage domain.Stage, number int, title string) *domain.Section {
	section := &domain.Section{
		BillID: billID,
		Stage:  stage,
		Number: number,
		Title:  title,
	}
	section.ID = id
	section.CreatedAt = time.Now()
	section.UpdatedAt = time.Now()
	return section
}

func TestNewSearchIndex(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestSearchIndex_IndexSection(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	section := testSection("sec-1", "bill-1", domain.StageIntroducedHouse, 101, "Military pay raise")
	require.NoError(t, index.IndexSection(context.Background(), section))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestSearchIndex_IndexSections_Batch(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	sections := []*domain.Section{
		testSection("sec-1", "bill-1", domain.StageIntroducedHouse, 101, "Short title"),
		testSection("sec-2", "bill-1", domain.StageIntroducedHouse, 102, "Definitions"),
		testSection("sec-3", "bill-1", domain.StageIntroducedHouse, 103, "Authorization of appropriations"),
	}

	require.NoError(t, index.IndexSections(sections))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)
}

func TestSearchIndex_DeleteSection(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, index.IndexSection(ctx, testSection("sec-1", "bill-1", domain.StageIntroducedHouse, 101, "Short title")))
	require.NoError(t, index.DeleteSection(ctx, "sec-1"))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestSearchIndex_Search_TitleMatch(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, index.IndexSections([]*domain.Section{
		testSection("sec-1", "bill-1", domain.StageIntroducedHouse, 101, "Military pay raise"),
		testSection("sec-2", "bill-1", domain.StageIntroducedHouse, 102, "Naval vessel procurement"),
	}))

	result, err := index.Search(ctx, SearchParams{Query: "military pay", Limit: 10})
	require.NoError(t, err)
	require.NotEmpty(t, result.Hits)
	assert.Equal(t, "sec-1", result.Hits[0].ID)
	assert.Equal(t, "Military pay raise", result.Hits[0].Title)
	assert.Equal(t, 101, result.Hits[0].Number)
}

func TestSearchIndex_Search_Filters(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, index.IndexSections([]*domain.Section{
		testSection("sec-1", "bill-1", domain.StageIntroducedHouse, 101, "Military pay raise"),
		testSection("sec-2", "bill-1", domain.StageEnrolled, 101, "Military pay raise"),
		testSection("sec-3", "bill-2", domain.StageIntroducedHouse, 101, "Military pay raise"),
	}))

	result, err := index.Search(ctx, SearchParams{
		Query:  "military pay",
		BillID: "bill-1",
		Stage:  string(domain.StageEnrolled),
		Limit:  10,
	})
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "sec-2", result.Hits[0].ID)
}

func TestSearchIndex_Search_Highlighting(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, index.IndexSection(ctx,
		testSection("sec-1", "bill-1", domain.StageIntroducedHouse, 101, "Military pay raise")))

	result, err := index.Search(ctx, SearchParams{Query: "military", Limit: 10, Highlight: true})
	require.NoError(t, err)
	require.NotEmpty(t, result.Hits)
	assert.Contains(t, result.Hits[0].Highlights, "title")
}

func TestSearchIndex_TitleCandidates(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, index.IndexSections([]*domain.Section{
		testSection("sec-1", "bill-1", domain.StageEnrolled, 101, "Military pay raise"),
		testSection("sec-2", "bill-1", domain.StageEnrolled, 102, "Definitions"),
		testSection("sec-3", "bill-1", domain.StageIntroducedHouse, 101, "Military pay raise"),
	}))

	hits, err := index.TitleCandidates(ctx, "bill-1", string(domain.StageEnrolled), "Military pay raise", 5)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, "sec-1", hits[0].ID)
}

func TestSearchIndex_MatchAllWhenNoQuery(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, index.IndexSections([]*domain.Section{
		testSection("sec-1", "bill-1", domain.StageIntroducedHouse, 101, "Short title"),
		testSection("sec-2", "bill-1", domain.StageIntroducedHouse, 102, "Definitions"),
	}))

	result, err := index.Search(ctx, SearchParams{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), result.Total)
}

func TestSearchIndex_Rebuild(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, index.IndexSection(ctx,
		testSection("sec-1", "bill-1", domain.StageIntroducedHouse, 101, "Short title")))

	require.NoError(t, index.Rebuild())

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}
