// Package processor turns file system events from the dataset watcher into
// ingest runs.
package processor

import (
	"context"
	"log/slog"
	"sync"

	"github.com/billtrace/billtrace-server/internal/ingest"
	"github.com/billtrace/billtrace-server/internal/service"
	"github.com/billtrace/billtrace-server/internal/watcher"
)

// EventProcessor processes file system events and triggers dataset ingest.
//
// Key design principles:
//   - Processes each event immediately (no batching)
//   - Uses per-bill locking to deduplicate concurrent events
//   - Non-blocking (TryLock prevents queueing)
type EventProcessor struct {
	ingester *service.IngestService
	logger   *slog.Logger

	// billLocks provides per-bill mutexes so two datasets for the same
	// bill never ingest concurrently.
	billLocks *SyncMap[string, *sync.Mutex]
}

// NewEventProcessor creates a new EventProcessor instance.
func NewEventProcessor(ingester *service.IngestService, logger *slog.Logger) *EventProcessor {
	return &EventProcessor{
		ingester:  ingester,
		logger:    logger,
		billLocks: NewSyncMap[string, *sync.Mutex](),
	}
}

// ProcessEvent processes a file system event.
//
// Processing flow:
//  1. Check the path is a recognizable dataset file
//  2. Parse the bill number from the dataset name
//  3. Acquire per-bill lock with TryLock (deduplicate concurrent events)
//  4. Re-ingest the dataset
//
// If the bill is already being ingested, the event is skipped. The next
// event for that bill will catch any changes.
func (ep *EventProcessor) ProcessEvent(ctx context.Context, event watcher.Event) error {
	ep.logger.Debug("processing event",
		"type", event.Type.String(),
		"path", event.Path,
	)

	if !ingest.SupportedExt(event.Path) {
		return nil
	}

	info, err := ingest.ParseDatasetName(event.Path)
	if err != nil {
		ep.logger.Debug("ignoring file without dataset name", "path", event.Path)
		return nil
	}

	// Removal of a dataset file does not remove ingested data; the stored
	// sections remain until the stage is re-ingested.
	if event.Type == watcher.EventRemoved {
		ep.logger.Info("dataset file removed, keeping stored data",
			"bill", info.BillNumber,
			"path", event.Path,
		)
		return nil
	}

	lock := ep.getBillLock(info.BillNumber)
	if !lock.TryLock() {
		ep.logger.Debug("bill already being ingested, skipping",
			"bill", info.BillNumber,
			"path", event.Path,
		)
		return nil
	}
	defer lock.Unlock()

	summary, err := ep.ingester.IngestFile(ctx, event.Path)
	if err != nil {
		return err
	}

	ep.logger.Info("ingested dataset from watch event",
		"bill", summary.BillNumber,
		"kind", summary.Kind,
		"sections", summary.Sections,
		"amendments", summary.Amendments,
		"traces", summary.Traces,
	)
	return nil
}

// getBillLock returns the mutex for a bill, creating it if needed.
func (ep *EventProcessor) getBillLock(billNumber string) *sync.Mutex {
	lock, _ := ep.billLocks.LoadOrStore(billNumber, &sync.Mutex{})
	return lock
}
