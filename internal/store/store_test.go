package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billtrace/billtrace-server/internal/domain"
	domainerrors "github.com/billtrace/billtrace-server/internal/errors"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(t.TempDir(), nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

func TestBills_CreateAndGet(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	bill := &domain.Bill{Number: "HR8070", Congress: 118, Title: "Defense Authorization"}
	bill.ID = "bill_1"
	bill.InitTimestamps()

	require.NoError(t, s.Bills.Create(ctx, bill.ID, bill))

	got, err := s.Bills.Get(ctx, "bill_1")
	require.NoError(t, err)
	assert.Equal(t, "HR8070", got.Number)
	assert.Equal(t, 118, got.Congress)
}

func TestBills_CreateDuplicateID(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	bill := &domain.Bill{Number: "HR8070"}
	bill.ID = "bill_1"

	require.NoError(t, s.Bills.Create(ctx, bill.ID, bill))

	other := &domain.Bill{Number: "HR9999"}
	other.ID = "bill_1"
	err := s.Bills.Create(ctx, other.ID, other)
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestBills_NumberIndexNormalization(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	bill := &domain.Bill{Number: "HR8070"}
	bill.ID = "bill_1"
	require.NoError(t, s.Bills.Create(ctx, bill.ID, bill))

	// Lookups tolerate citation formatting differences.
	for _, lookup := range []string{"HR8070", "hr8070", "H.R. 8070", "hr 8070"} {
		got, err := s.GetBillByNumber(ctx, lookup)
		require.NoError(t, err, "lookup %q", lookup)
		assert.Equal(t, "bill_1", got.ID)
	}

	// A second bill with a colliding normalized number is rejected.
	dup := &domain.Bill{Number: "H.R. 8070"}
	dup.ID = "bill_2"
	err := s.Bills.Create(ctx, dup.ID, dup)
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestBills_GetNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.Bills.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = s.GetBillByNumber(context.Background(), "HR1")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestBills_UpdateMovesIndex(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	bill := &domain.Bill{Number: "HR8070"}
	bill.ID = "bill_1"
	require.NoError(t, s.Bills.Create(ctx, bill.ID, bill))

	bill.Number = "HR8071"
	require.NoError(t, s.Bills.Update(ctx, bill.ID, bill))

	_, err := s.GetBillByNumber(ctx, "HR8070")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	got, err := s.GetBillByNumber(ctx, "HR8071")
	require.NoError(t, err)
	assert.Equal(t, "bill_1", got.ID)
}

func TestBills_DeleteIdempotent(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	bill := &domain.Bill{Number: "HR8070"}
	bill.ID = "bill_1"
	require.NoError(t, s.Bills.Create(ctx, bill.ID, bill))

	require.NoError(t, s.Bills.Delete(ctx, "bill_1"))
	require.NoError(t, s.Bills.Delete(ctx, "bill_1"))

	_, err := s.GetBillByNumber(ctx, "HR8070")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestBills_List(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	for _, number := range []string{"HR1", "HR2", "HR3"} {
		bill := &domain.Bill{Number: number}
		bill.ID = "bill_" + number
		require.NoError(t, s.Bills.Create(ctx, bill.ID, bill))
	}

	bills, err := s.ListBills(ctx)
	require.NoError(t, err)
	assert.Len(t, bills, 3)
}

func TestAmendments_NumberScopedToBill(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	a1 := &domain.Amendment{BillID: "bill_1", Number: 12, Sponsors: "Yoho"}
	a1.ID = "amd_1"
	require.NoError(t, s.Amendments.Create(ctx, a1.ID, a1))

	// Same number on a different bill does not conflict.
	a2 := &domain.Amendment{BillID: "bill_2", Number: 12}
	a2.ID = "amd_2"
	require.NoError(t, s.Amendments.Create(ctx, a2.ID, a2))

	// Same number on the same bill does.
	a3 := &domain.Amendment{BillID: "bill_1", Number: 12}
	a3.ID = "amd_3"
	err := s.Amendments.Create(ctx, a3.ID, a3)
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)

	got, err := s.ListAmendmentsByBill(ctx, "bill_1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Yoho", got[0].Sponsors)
}
