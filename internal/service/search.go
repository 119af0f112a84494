package service

import (
	"context"
	"log/slog"

	domainerrors "github.com/billtrace/billtrace-server/internal/errors"
	"github.com/billtrace/billtrace-server/internal/search"
	"github.com/billtrace/billtrace-server/internal/store"
)

// SearchService fronts the section search index and handles reindexing.
type SearchService struct {
	store  *store.Store
	index  *search.SearchIndex
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(store *store.Store, index *search.SearchIndex, logger *slog.Logger) *SearchService {
	return &SearchService{
		store:  store,
		index:  index,
		logger: logger,
	}
}

// Search executes a section search.
func (s *SearchService) Search(ctx context.Context, params search.SearchParams) (*search.SearchResult, error) {
	if params.Limit <= 0 {
		params.Limit = search.DefaultSearchParams().Limit
	}
	if params.Limit > 100 {
		params.Limit = 100
	}
	if params.Query == "" && params.BillID == "" && params.Stage == "" {
		return nil, domainerrors.Validation("search requires a query or a filter")
	}

	return s.index.Search(ctx, params)
}

// Reindex rebuilds the search index from the store. Used at startup when
// the index was rebuilt for a mapping change, and exposed for manual
// recovery.
func (s *SearchService) Reindex(ctx context.Context) (int, error) {
	if err := s.index.Rebuild(); err != nil {
		return 0, err
	}

	bills, err := s.store.ListBills(ctx)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, bill := range bills {
		for _, stage := range bill.Stages {
			sections, err := s.store.ListSectionsByStage(ctx, bill.ID, stage)
			if err != nil {
				return 0, err
			}
			if err := s.index.IndexSections(sections); err != nil {
				return 0, err
			}
			total += len(sections)
		}
	}

	s.logger.Info("reindexed sections", "count", total)
	return total, nil
}
