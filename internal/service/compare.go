package service

import (
	"context"
	"log/slog"

	"github.com/billtrace/billtrace-server/internal/diff"
	"github.com/billtrace/billtrace-server/internal/domain"
	"github.com/billtrace/billtrace-server/internal/store"
)

// CompareService runs section body comparisons.
type CompareService struct {
	store      *store.Store
	comparator diff.Comparator
	logger     *slog.Logger
}

// NewCompareService creates a new compare service.
func NewCompareService(store *store.Store, logger *slog.Logger) *CompareService {
	return &CompareService{
		store:      store,
		comparator: diff.New(),
		logger:     logger,
	}
}

// Comparison is a rendered section comparison ready for display.
type Comparison struct {
	Trace *domain.Trace   `json:"trace,omitempty"`
	Left  *domain.Section `json:"left,omitempty"`
	Right *domain.Section `json:"right,omitempty"`

	Stats         diff.Stats     `json:"stats"`
	Entries       []diff.Entry   `json:"entries"`
	LeftSegments  []diff.Segment `json:"left_segments"`
	RightSegments []diff.Segment `json:"right_segments"`
}

// CompareTrace diffs the two sections a trace links.
func (s *CompareService) CompareTrace(ctx context.Context, traceID string) (*Comparison, error) {
	trace, err := s.store.GetTrace(ctx, traceID)
	if err != nil {
		return nil, err
	}

	comparison, err := s.CompareSections(ctx, trace.LeftSectionID, trace.RightSectionID)
	if err != nil {
		return nil, err
	}
	comparison.Trace = trace
	return comparison, nil
}

// CompareSections diffs two stored sections by ID.
func (s *CompareService) CompareSections(ctx context.Context, leftID, rightID string) (*Comparison, error) {
	left, err := s.store.GetSection(ctx, leftID)
	if err != nil {
		return nil, err
	}
	right, err := s.store.GetSection(ctx, rightID)
	if err != nil {
		return nil, err
	}

	comparison := s.CompareTexts(left.Body, right.Body)
	comparison.Left = left
	comparison.Right = right
	return comparison, nil
}

// CompareTexts diffs two raw texts without touching the store.
func (s *CompareService) CompareTexts(leftText, rightText string) *Comparison {
	result := s.comparator.Compare(leftText, rightText)
	leftSegments, rightSegments := diff.Render(result.Entries)

	return &Comparison{
		Stats:         result.Stats,
		Entries:       result.Entries,
		LeftSegments:  leftSegments,
		RightSegments: rightSegments,
	}
}
