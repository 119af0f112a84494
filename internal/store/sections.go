package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"

	"github.com/billtrace/billtrace-server/internal/domain"
	domainerrors "github.com/billtrace/billtrace-server/internal/errors"
)

// Key prefixes for section storage.
const (
	sectionPrefix        = "section:"
	sectionByKeyPrefix   = "idx:section:key:"   // billID/stage/number -> section ID
	sectionByStagePrefix = "idx:section:stage:" // billID:stage:sectionID -> empty
)

// CreateSection stores a new section and its index entries, then pushes it
// to the search index.
func (s *Store) CreateSection(ctx context.Context, section *domain.Section) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := []byte(sectionPrefix + section.ID)
	keyIdx := []byte(sectionByKeyPrefix + section.Key())
	stageIdx := []byte(stageIndexKey(section.BillID, section.Stage, section.ID))

	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err == nil {
			return domainerrors.ErrAlreadyExists
		}
		if _, err := txn.Get(keyIdx); err == nil {
			return domainerrors.AlreadyExists(fmt.Sprintf("section %s already ingested", section.Key()))
		}

		data, err := json.Marshal(section)
		if err != nil {
			return fmt.Errorf("marshal section: %w", err)
		}
		if err := txn.Set(key, data); err != nil {
			return err
		}
		if err := txn.Set(keyIdx, []byte(section.ID)); err != nil {
			return err
		}
		return txn.Set(stageIdx, nil)
	})
	if err != nil {
		return err
	}

	if s.searchIndexer != nil {
		if err := s.searchIndexer.IndexSection(ctx, section); err != nil && s.logger != nil {
			s.logger.Warn("failed to index section", "section_id", section.ID, "error", err)
		}
	}

	return nil
}

// GetSection retrieves a section by ID.
func (s *Store) GetSection(ctx context.Context, id string) (*domain.Section, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var section domain.Section
	err := s.get([]byte(sectionPrefix+id), &section)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, domainerrors.NotFoundf("section %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &section, nil
}

// GetSectionByKey retrieves a section by its bill/stage/number coordinate.
func (s *Store) GetSectionByKey(ctx context.Context, billID string, stage domain.Stage, number int) (*domain.Section, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	idxKey := []byte(fmt.Sprintf("%s%s/%s/%d", sectionByKeyPrefix, billID, stage, number))

	var id string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(idxKey)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return domainerrors.NotFoundf("section %d not found for stage %s", number, stage)
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

	return s.GetSection(ctx, id)
}

// ListSectionsByStage returns all sections of a bill at one stage, ordered
// by section number.
func (s *Store) ListSectionsByStage(ctx context.Context, billID string, stage domain.Stage) ([]*domain.Section, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := []byte(sectionByStagePrefix + billID + ":" + string(stage) + ":")

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

	sections := make([]*domain.Section, 0, len(ids))
	for _, id := range ids {
		section, err := s.GetSection(ctx, id)
		if err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}

	sort.Slice(sections, func(i, j int) bool {
		return sections[i].Number < sections[j].Number
	})

	return sections, nil
}

// DeleteSectionsByStage removes every section of a bill at one stage.
// Used when a dataset is re-ingested. Returns the number of sections removed.
func (s *Store) DeleteSectionsByStage(ctx context.Context, billID string, stage domain.Stage) (int, error) {
	sections, err := s.ListSectionsByStage(ctx, billID, stage)
	if err != nil {
		return 0, err
	}

	for _, section := range sections {
		err := s.db.Update(func(txn *badger.Txn) error {
			if err := txn.Delete([]byte(sectionPrefix + section.ID)); err != nil {
				return err
			}
			if err := txn.Delete([]byte(sectionByKeyPrefix + section.Key())); err != nil {
				return err
			}
			return txn.Delete([]byte(stageIndexKey(section.BillID, section.Stage, section.ID)))
		})
		if err != nil {
			return 0, err
		}

		if s.searchIndexer != nil {
			if err := s.searchIndexer.DeleteSection(ctx, section.ID); err != nil && s.logger != nil {
				s.logger.Warn("failed to remove section from index", "section_id", section.ID, "error", err)
			}
		}
	}

	return len(sections), nil
}

func stageIndexKey(billID string, stage domain.Stage, sectionID string) string {
	return sectionByStagePrefix + billID + ":" + string(stage) + ":" + sectionID
}
