// Package store persists bills, sections, traces, and amendments in a
// Badger key-value database. Values are JSON; secondary indexes are
// plain keys pointing at primary IDs.
package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/billtrace/billtrace-server/internal/domain"
)

// SearchIndexer keeps the search index in sync with store changes.
// Store uses this interface so it never depends on the search implementation.
type SearchIndexer interface {
	IndexSection(ctx context.Context, section *domain.Section) error
	DeleteSection(ctx context.Context, sectionID string) error
}

// NoopSearchIndexer is a no-op implementation for testing.
type NoopSearchIndexer struct{}

// IndexSection is a no-op.
func (NoopSearchIndexer) IndexSection(context.Context, *domain.Section) error { return nil }

// DeleteSection is a no-op.
func (NoopSearchIndexer) DeleteSection(context.Context, string) error { return nil }

// NewNoopSearchIndexer creates a new no-op search indexer for testing.
func NewNoopSearchIndexer() SearchIndexer {
	return NoopSearchIndexer{}
}

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	// Search indexer for keeping search in sync with store changes.
	// Set via SetSearchIndexer after store creation to avoid circular dependencies.
	searchIndexer SearchIndexer

	// Generic entities
	Bills      *Entity[domain.Bill]
	Amendments *Entity[domain.Amendment]
}

// New creates a new Store instance with the given database path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	store := &Store{
		db:     db,
		logger: logger,
	}

	// Initialize generic entities
	store.initBills()
	store.initAmendments()

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", path)
	}

	return store, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}

// SetSearchIndexer sets the search indexer for keeping search in sync.
// This is set after store creation to avoid circular dependencies
// (store needs to exist before search service can be created).
func (s *Store) SetSearchIndexer(indexer SearchIndexer) {
	s.searchIndexer = indexer
}

// Helper methods for database operations.

// get retrieves a value by key.
func (s *Store) get(key []byte, dest any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dest)
		})
	})
}

// set stores a value by key.
func (s *Store) set(key []byte, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// delete removes a key from the database.
func (s *Store) delete(key []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

// exists checks if a key exists.
func (s *Store) exists(key []byte) (bool, error) {
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		return err
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// initBills initializes the Bills entity on the store.
// Bills are indexed by their citation number so ingest can find an
// existing bill without knowing its ID.
func (s *Store) initBills() {
	s.Bills = NewEntity[domain.Bill](s, "bill:").
		WithIndex("number", func(b *domain.Bill) []string {
			return []string{normalizeBillNumber(b.Number)}
		}, normalizeBillNumber)
}

// initAmendments initializes the Amendments entity on the store.
// The number index is scoped to the bill since amendment numbering
// restarts for every bill.
func (s *Store) initAmendments() {
	s.Amendments = NewEntity[domain.Amendment](s, "amendment:").
		WithIndex("number", func(a *domain.Amendment) []string {
			return []string{fmt.Sprintf("%s:%d", a.BillID, a.Number)}
		}, nil)
}
