package store

import (
	"context"
	"strings"

	"github.com/billtrace/billtrace-server/internal/domain"
)

// normalizeBillNumber canonicalizes a bill citation for index lookups.
// "H.R. 8070", "hr 8070", and "HR8070" all resolve to the same bill.
func normalizeBillNumber(number string) string {
	var b strings.Builder
	for _, r := range number {
		switch r {
		case ' ', '.', '-':
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

// GetBillByNumber retrieves a bill by its citation number, e.g. "HR8070".
// Returns ErrNotFound if no bill with that number has been ingested.
func (s *Store) GetBillByNumber(ctx context.Context, number string) (*domain.Bill, error) {
	return s.Bills.GetByIndex(ctx, "number", number)
}

// ListBills returns all ingested bills.
func (s *Store) ListBills(ctx context.Context) ([]*domain.Bill, error) {
	var bills []*domain.Bill
	for bill, err := range s.Bills.List(ctx) {
		if err != nil {
			return nil, err
		}
		bills = append(bills, bill)
	}
	return bills, nil
}

// ListAmendmentsByBill returns all amendments recorded for a bill, in
// amendment number order as stored.
func (s *Store) ListAmendmentsByBill(ctx context.Context, billID string) ([]*domain.Amendment, error) {
	var amendments []*domain.Amendment
	for a, err := range s.Amendments.List(ctx) {
		if err != nil {
			return nil, err
		}
		if a.BillID == billID {
			amendments = append(amendments, a)
		}
	}
	return amendments, nil
}
