package service

import (
	"context"
	"log/slog"
	"sort"

	"github.com/billtrace/billtrace-server/internal/domain"
	domainerrors "github.com/billtrace/billtrace-server/internal/errors"
	"github.com/billtrace/billtrace-server/internal/store"
)

// BillService serves bill, section, trace, and amendment reads.
type BillService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewBillService creates a new bill service.
func NewBillService(store *store.Store, logger *slog.Logger) *BillService {
	return &BillService{store: store, logger: logger}
}

// ListBills returns all bills ordered by number.
func (s *BillService) ListBills(ctx context.Context) ([]*domain.Bill, error) {
	bills, err := s.store.ListBills(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(bills, func(i, j int) bool {
		return bills[i].Number < bills[j].Number
	})
	return bills, nil
}

// GetBill resolves a bill by ID first, then by citation number. The review
// UI links bills by number; the API uses IDs.
func (s *BillService) GetBill(ctx context.Context, ref string) (*domain.Bill, error) {
	bill, err := s.store.Bills.Get(ctx, ref)
	if err == nil {
		return bill, nil
	}
	if !domainerrors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}
	return s.store.GetBillByNumber(ctx, ref)
}

// GetSection retrieves a section by ID.
func (s *BillService) GetSection(ctx context.Context, id string) (*domain.Section, error) {
	return s.store.GetSection(ctx, id)
}

// ListSections returns a bill's sections at one stage, in section order.
func (s *BillService) ListSections(ctx context.Context, billRef string, stage domain.Stage) ([]*domain.Section, error) {
	if !stage.Valid() {
		return nil, domainerrors.Validationf("unknown stage %q", stage)
	}

	bill, err := s.GetBill(ctx, billRef)
	if err != nil {
		return nil, err
	}

	return s.store.ListSectionsByStage(ctx, bill.ID, stage)
}

// ListTraces returns all traces for a bill.
func (s *BillService) ListTraces(ctx context.Context, billRef string) ([]*domain.Trace, error) {
	bill, err := s.GetBill(ctx, billRef)
	if err != nil {
		return nil, err
	}
	return s.store.ListTracesByBill(ctx, bill.ID)
}

// GetTrace retrieves a trace by ID.
func (s *BillService) GetTrace(ctx context.Context, id string) (*domain.Trace, error) {
	return s.store.GetTrace(ctx, id)
}

// ListAmendments returns all amendments for a bill, ordered by amendment
// number.
func (s *BillService) ListAmendments(ctx context.Context, billRef string) ([]*domain.Amendment, error) {
	bill, err := s.GetBill(ctx, billRef)
	if err != nil {
		return nil, err
	}

	amendments, err := s.store.ListAmendmentsByBill(ctx, bill.ID)
	if err != nil {
		return nil, err
	}
	sort.Slice(amendments, func(i, j int) bool {
		return amendments[i].Number < amendments[j].Number
	})
	return amendments, nil
}

// GetAmendment looks up one of a bill's amendments by amendment number.
func (s *BillService) GetAmendment(ctx context.Context, billRef string, number int) (*domain.Amendment, error) {
	amendments, err := s.ListAmendments(ctx, billRef)
	if err != nil {
		return nil, err
	}
	for _, a := range amendments {
		if a.Number == number {
			return a, nil
		}
	}
	return nil, domainerrors.NotFoundf("amendment %d not found", number)
}

// SectionTrace is one row of a bill's stage-to-stage review: a section, the
// trace carrying it forward, and where it landed.
type SectionTrace struct {
	Section   *domain.Section   `json:"section"`
	Trace     *domain.Trace     `json:"trace,omitempty"`
	Matched   *domain.Section   `json:"matched,omitempty"`
	Amendment *domain.Amendment `json:"amendment,omitempty"`
}

// StageReview builds the review rows for one stage pair: every left-stage
// section with its forward trace, plus any amendment matched to it.
func (s *BillService) StageReview(ctx context.Context, billRef string, leftStage, rightStage domain.Stage) ([]SectionTrace, error) {
	if !leftStage.Valid() || !rightStage.Valid() {
		return nil, domainerrors.Validation("unknown stage")
	}

	bill, err := s.GetBill(ctx, billRef)
	if err != nil {
		return nil, err
	}

	sections, err := s.store.ListSectionsByStage(ctx, bill.ID, leftStage)
	if err != nil {
		return nil, err
	}

	amendments, err := s.store.ListAmendmentsByBill(ctx, bill.ID)
	if err != nil {
		return nil, err
	}
	amendmentBySection := make(map[int]*domain.Amendment, len(amendments))
	for _, a := range amendments {
		if a.MatchedSectionNumber != 0 {
			amendmentBySection[a.MatchedSectionNumber] = a
		}
	}

	rows := make([]SectionTrace, 0, len(sections))
	for _, section := range sections {
		row := SectionTrace{
			Section:   section,
			Amendment: amendmentBySection[section.Number],
		}

		trace, err := s.store.GetTraceByLeftSection(ctx, section.ID, rightStage)
		switch {
		case err == nil:
			row.Trace = trace
			matched, err := s.store.GetSection(ctx, trace.RightSectionID)
			if err != nil {
				return nil, err
			}
			row.Matched = matched
		case !domainerrors.Is(err, domainerrors.ErrNotFound):
			return nil, err
		}

		rows = append(rows, row)
	}

	return rows, nil
}
