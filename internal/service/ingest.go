// Package service implements the application services that sit between the
// HTTP layer and the store.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/billtrace/billtrace-server/internal/domain"
	domainerrors "github.com/billtrace/billtrace-server/internal/errors"
	"github.com/billtrace/billtrace-server/internal/id"
	"github.com/billtrace/billtrace-server/internal/ingest"
	"github.com/billtrace/billtrace-server/internal/match"
	"github.com/billtrace/billtrace-server/internal/store"
)

// IngestService loads section and amendment datasets into the store and
// rebuilds traces afterwards.
type IngestService struct {
	store   *store.Store
	matcher *match.Matcher
	logger  *slog.Logger
}

// NewIngestService creates a new ingest service.
func NewIngestService(store *store.Store, matcher *match.Matcher, logger *slog.Logger) *IngestService {
	return &IngestService{
		store:   store,
		matcher: matcher,
		logger:  logger,
	}
}

// IngestSummary reports what one ingest run changed.
type IngestSummary struct {
	BillNumber  string       `json:"bill_number"`
	Stage       domain.Stage `json:"stage,omitempty"`
	Kind        ingest.Kind  `json:"kind"`
	Sections    int          `json:"sections,omitempty"`
	Amendments  int          `json:"amendments,omitempty"`
	Traces      int          `json:"traces,omitempty"`
	SkippedRows []int        `json:"skipped_rows,omitempty"`
}

// IngestFile loads one dataset file. The filename determines the bill,
// stage, and dataset kind. Re-ingesting a stage replaces its sections and
// recomputes the bill's traces.
func (s *IngestService) IngestFile(ctx context.Context, path string) (*IngestSummary, error) {
	info, err := ingest.ParseDatasetName(path)
	if err != nil {
		return nil, domainerrors.Validation(err.Error())
	}

	switch info.Kind {
	case ingest.KindAmendments:
		return s.ingestAmendments(ctx, info)
	default:
		return s.ingestSections(ctx, info)
	}
}

// IngestDir loads every supported dataset file in a directory. Files that
// fail to parse are logged and skipped; the run continues.
func (s *IngestService) IngestDir(ctx context.Context, dir string) ([]*IngestSummary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dataset dir: %w", err)
	}

	// Sections before amendments, stages in legislative order, so
	// amendment matching always sees the sections it refers to.
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !ingest.SupportedExt(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Slice(paths, func(i, j int) bool {
		return ingestOrder(paths[i]) < ingestOrder(paths[j])
	})

	var summaries []*IngestSummary
	for _, path := range paths {
		summary, err := s.IngestFile(ctx, path)
		if err != nil {
			s.logger.Warn("skipping dataset", "path", path, "error", err)
			continue
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

func ingestOrder(path string) int {
	info, err := ingest.ParseDatasetName(path)
	if err != nil {
		return 100
	}
	if info.Kind == ingest.KindAmendments {
		return 50
	}
	return info.Stage.Ordinal()
}

func (s *IngestService) ingestSections(ctx context.Context, info ingest.DatasetInfo) (*IngestSummary, error) {
	rows, err := ingest.ParseSections(info.Path)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeValidation, fmt.Sprintf("parse %s", filepath.Base(info.Path)))
	}

	bill, err := s.getOrCreateBill(ctx, info.BillNumber)
	if err != nil {
		return nil, err
	}

	// Re-ingest replaces the stage wholesale.
	removed, err := s.store.DeleteSectionsByStage(ctx, bill.ID, info.Stage)
	if err != nil {
		return nil, err
	}
	if removed > 0 {
		s.logger.Info("replacing stage sections", "bill", bill.Number, "stage", info.Stage, "removed", removed)
	}

	sections, skipped := ingest.SectionsFromRows(bill.ID, info.Stage, rows)
	for _, section := range sections {
		section.ID, err = id.Generate(id.PrefixSection)
		if err != nil {
			return nil, err
		}
		section.InitTimestamps()
		if err := s.store.CreateSection(ctx, section); err != nil {
			return nil, fmt.Errorf("store section %d: %w", section.Number, err)
		}
	}

	bill.AddStage(info.Stage)
	bill.Touch()
	if err := s.store.Bills.Update(ctx, bill.ID, bill); err != nil {
		return nil, fmt.Errorf("update bill: %w", err)
	}

	traces, err := s.RebuildTraces(ctx, bill)
	if err != nil {
		return nil, err
	}

	s.logger.Info("ingested sections",
		"bill", bill.Number,
		"stage", info.Stage,
		"sections", len(sections),
		"skipped_rows", len(skipped),
		"traces", traces,
	)

	return &IngestSummary{
		BillNumber:  bill.Number,
		Stage:       info.Stage,
		Kind:        ingest.KindSections,
		Sections:    len(sections),
		Traces:      traces,
		SkippedRows: skipped,
	}, nil
}

func (s *IngestService) ingestAmendments(ctx context.Context, info ingest.DatasetInfo) (*IngestSummary, error) {
	bill, err := s.getOrCreateBill(ctx, info.BillNumber)
	if err != nil {
		return nil, err
	}

	amendments, err := ingest.ParseAmendments(info.Path, bill.ID)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeValidation, fmt.Sprintf("parse %s", filepath.Base(info.Path)))
	}

	stored := 0
	for _, a := range amendments {
		// Re-ingest updates in place: same amendment number on the same
		// bill overwrites the previous record.
		existing, err := s.store.Amendments.GetByIndex(ctx, "number", fmt.Sprintf("%s:%d", bill.ID, a.Number))
		if err == nil {
			a.Tracked = existing.Tracked
			a.Touch()
			if err := s.store.Amendments.Update(ctx, a.ID, a); err != nil {
				return nil, fmt.Errorf("update amendment %d: %w", a.Number, err)
			}
			stored++
			continue
		}
		if !domainerrors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}

		a.ID, err = id.Generate(id.PrefixAmendment)
		if err != nil {
			return nil, err
		}
		a.InitTimestamps()
		if err := s.store.Amendments.Create(ctx, a.ID, a); err != nil {
			return nil, fmt.Errorf("store amendment %d: %w", a.Number, err)
		}
		stored++
	}

	s.logger.Info("ingested amendments", "bill", bill.Number, "amendments", stored)

	return &IngestSummary{
		BillNumber: bill.Number,
		Kind:       ingest.KindAmendments,
		Amendments: stored,
	}, nil
}

func (s *IngestService) getOrCreateBill(ctx context.Context, number string) (*domain.Bill, error) {
	bill, err := s.store.GetBillByNumber(ctx, number)
	if err == nil {
		return bill, nil
	}
	if !domainerrors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	bill = &domain.Bill{Number: number}
	bill.ID, err = id.Generate(id.PrefixBill)
	if err != nil {
		return nil, err
	}
	bill.InitTimestamps()

	if err := s.store.Bills.Create(ctx, bill.ID, bill); err != nil {
		return nil, fmt.Errorf("create bill: %w", err)
	}

	s.logger.Info("registered bill", "bill", number, "id", bill.ID)
	return bill, nil
}

// RebuildTraces recomputes all traces for a bill from its current sections.
// Each consecutive stage pair is matched independently. Returns the number
// of traces written.
func (s *IngestService) RebuildTraces(ctx context.Context, bill *domain.Bill) (int, error) {
	if _, err := s.store.DeleteTracesByBill(ctx, bill.ID); err != nil {
		return 0, err
	}

	stages := append([]domain.Stage(nil), bill.Stages...)
	sort.Slice(stages, func(i, j int) bool {
		return stages[i].Ordinal() < stages[j].Ordinal()
	})

	total := 0
	for i := 0; i+1 < len(stages); i++ {
		leftStage, rightStage := stages[i], stages[i+1]

		left, err := s.store.ListSectionsByStage(ctx, bill.ID, leftStage)
		if err != nil {
			return 0, err
		}
		right, err := s.store.ListSectionsByStage(ctx, bill.ID, rightStage)
		if err != nil {
			return 0, err
		}

		matches, err := s.matcher.Run(ctx, left, right)
		if err != nil {
			return 0, err
		}

		for _, m := range matches {
			trace := &domain.Trace{
				BillID:          bill.ID,
				LeftSectionID:   m.Left.ID,
				RightSectionID:  m.Right.ID,
				LeftStage:       leftStage,
				RightStage:      rightStage,
				TitleSimilarity: m.Score,
			}
			trace.ID, err = id.Generate(id.PrefixTrace)
			if err != nil {
				return 0, err
			}
			trace.InitTimestamps()

			if err := s.store.CreateTrace(ctx, trace); err != nil {
				return 0, fmt.Errorf("store trace %d->%d: %w", m.Left.Number, m.Right.Number, err)
			}
			total++
		}
	}

	return total, nil
}
