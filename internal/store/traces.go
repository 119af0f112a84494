package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/billtrace/billtrace-server/internal/domain"
	domainerrors "github.com/billtrace/billtrace-server/internal/errors"
)

// Key prefixes for trace storage.
const (
	tracePrefix       = "trace:"
	traceByLeftPrefix = "idx:trace:left:" // leftSectionID:rightStage -> trace ID
	traceByBillPrefix = "idx:trace:bill:" // billID:traceID -> empty
)

// CreateTrace stores a new trace and its index entries. A left section may
// trace to at most one section per target stage.
func (s *Store) CreateTrace(ctx context.Context, trace *domain.Trace) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := []byte(tracePrefix + trace.ID)
	leftIdx := []byte(leftIndexKey(trace.LeftSectionID, trace.RightStage))
	billIdx := []byte(traceByBillPrefix + trace.BillID + ":" + trace.ID)

	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err == nil {
			return domainerrors.ErrAlreadyExists
		}
		if _, err := txn.Get(leftIdx); err == nil {
			return domainerrors.AlreadyExists(
				fmt.Sprintf("section %s already traced to stage %s", trace.LeftSectionID, trace.RightStage))
		}

		data, err := json.Marshal(trace)
		if err != nil {
			return fmt.Errorf("marshal trace: %w", err)
		}
		if err := txn.Set(key, data); err != nil {
			return err
		}
		if err := txn.Set(leftIdx, []byte(trace.ID)); err != nil {
			return err
		}
		return txn.Set(billIdx, nil)
	})
}

// GetTrace retrieves a trace by ID.
func (s *Store) GetTrace(ctx context.Context, id string) (*domain.Trace, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var trace domain.Trace
	err := s.get([]byte(tracePrefix+id), &trace)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, domainerrors.NotFoundf("trace %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &trace, nil
}

// GetTraceByLeftSection retrieves the trace that carries a section forward
// to the given stage.
func (s *Store) GetTraceByLeftSection(ctx context.Context, leftSectionID string, rightStage domain.Stage) (*domain.Trace, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var id string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(leftIndexKey(leftSectionID, rightStage)))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return domainerrors.NotFoundf("no trace from section %s to stage %s", leftSectionID, rightStage)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			id = string(val)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return s.GetTrace(ctx, id)
}

// ListTracesByBill returns every trace recorded for a bill.
func (s *Store) ListTracesByBill(ctx context.Context, billID string) ([]*domain.Trace, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := []byte(traceByBillPrefix + billID + ":")

	var ids []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().Key()
			ids = append(ids, string(key[len(prefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	traces := make([]*domain.Trace, 0, len(ids))
	for _, id := range ids {
		trace, err := s.GetTrace(ctx, id)
		if err != nil {
			return nil, err
		}
		traces = append(traces, trace)
	}

	return traces, nil
}

// DeleteTracesByBill removes every trace recorded for a bill. Used when a
// stage is re-ingested and matches must be recomputed.
func (s *Store) DeleteTracesByBill(ctx context.Context, billID string) (int, error) {
	traces, err := s.ListTracesByBill(ctx, billID)
	if err != nil {
		return 0, err
	}

	for _, trace := range traces {
		err := s.db.Update(func(txn *badger.Txn) error {
			if err := txn.Delete([]byte(tracePrefix + trace.ID)); err != nil {
				return err
			}
			if err := txn.Delete([]byte(leftIndexKey(trace.LeftSectionID, trace.RightStage))); err != nil {
				return err
			}
			return txn.Delete([]byte(traceByBillPrefix + trace.BillID + ":" + trace.ID))
		})
		if err != nil {
			return 0, err
		}
	}

	return len(traces), nil
}

func leftIndexKey(leftSectionID string, rightStage domain.Stage) string {
	return traceByLeftPrefix + leftSectionID + ":" + string(rightStage)
}
