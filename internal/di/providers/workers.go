package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/billtrace/billtrace-server/internal/config"
	"github.com/billtrace/billtrace-server/internal/logger"
	"github.com/billtrace/billtrace-server/internal/processor"
	"github.com/billtrace/billtrace-server/internal/service"
	"github.com/billtrace/billtrace-server/internal/watcher"
)

// DatasetWatcherHandle wraps the dataset watcher with shutdown capability.
type DatasetWatcherHandle struct {
	*watcher.Watcher
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *DatasetWatcherHandle) Shutdown() error {
	h.cancel()
	if h.Watcher == nil {
		return nil
	}
	return h.Watcher.Stop()
}

// ProvideDatasetWatcher provides the dataset directory watcher. When no
// dataset directory is configured, or watching is disabled, the handle
// carries a nil watcher.
func ProvideDatasetWatcher(i do.Injector) (*DatasetWatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	eventProcessor := do.MustInvoke[*processor.EventProcessor](i)

	ctx, cancel := context.WithCancel(context.Background())

	if cfg.Datasets.Dir == "" || !cfg.Datasets.Watch {
		log.Info("Dataset watching disabled")
		return &DatasetWatcherHandle{cancel: cancel}, nil
	}

	w, err := watcher.New(log.Logger, watcher.Options{IgnoreHidden: true})
	if err != nil {
		cancel()
		return nil, err
	}

	if err := w.Watch(cfg.Datasets.Dir); err != nil {
		cancel()
		_ = w.Stop()
		return nil, err
	}

	go func() {
		if err := w.Start(ctx); err != nil {
			log.Error("Dataset watcher error", "error", err)
		}
	}()

	// Process events in background.
	go func() {
		for {
			select {
			case event := <-w.Events():
				if err := eventProcessor.ProcessEvent(ctx, event); err != nil {
					log.Warn("failed to process dataset event",
						"error", err,
						"type", event.Type,
						"path", event.Path,
					)
				}
			case err := <-w.Errors():
				log.Warn("dataset watcher error", "error", err)
			case <-ctx.Done():
				return
			}
		}
	}()

	log.Info("Dataset watcher started", "dir", cfg.Datasets.Dir)

	return &DatasetWatcherHandle{
		Watcher: w,
		cancel:  cancel,
	}, nil
}

// RunInitialIngest loads every dataset from the configured directory.
// Called once at startup in the background so a fresh server comes up
// already populated.
func RunInitialIngest(i do.Injector) {
	cfg := do.MustInvoke[*config.Config](i)
	if cfg.Datasets.Dir == "" {
		return
	}

	ingestService := do.MustInvoke[*service.IngestService](i)
	log := do.MustInvoke[*logger.Logger](i)

	summaries, err := ingestService.IngestDir(context.Background(), cfg.Datasets.Dir)
	if err != nil {
		log.Error("Initial dataset ingest failed", "error", err)
		return
	}

	total := 0
	for _, s := range summaries {
		total += s.Sections + s.Amendments
	}
	log.Info("Initial dataset ingest completed",
		"datasets", len(summaries),
		"records", total,
	)
}
