// Package main provides a CLI for loading section datasets into the
// BillTrace store without running the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/billtrace/billtrace-server/internal/logger"
	"github.com/billtrace/billtrace-server/internal/match"
	"github.com/billtrace/billtrace-server/internal/search"
	"github.com/billtrace/billtrace-server/internal/service"
	"github.com/billtrace/billtrace-server/internal/store"
)

func main() {
	dataPath := flag.String("data", "", "Base path for database and search index storage (default: ~/BillTrace/data)")
	path := flag.String("path", "", "Dataset file or directory to ingest (required)")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	if *path == "" {
		fmt.Fprintln(os.Stderr, "usage: ingest -path <dataset file or directory> [-data <data path>]")
		os.Exit(1)
	}

	if *dataPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to resolve home directory: %v\n", err)
			os.Exit(1)
		}
		*dataPath = filepath.Join(home, "BillTrace", "data")
	}

	log := logger.New(logger.Config{Level: logger.ParseLevel(*logLevel)})

	if err := run(*dataPath, *path, log); err != nil {
		log.Error("Ingest failed", "error", err)
		os.Exit(1)
	}
}

func run(dataPath, path string, log *logger.Logger) error {
	s, err := store.New(filepath.Join(dataPath, "db"), log.Logger)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer s.Close()

	index, err := search.NewSearchIndex(search.Options{
		DataPath: dataPath,
		Logger:   log.Logger,
	})
	if err != nil {
		return fmt.Errorf("failed to open search index: %w", err)
	}
	defer index.Close()
	s.SetSearchIndexer(index)

	ingester := service.NewIngestService(s, match.NewWithCandidates(index), log.Logger)

	ctx := context.Background()

	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	var summaries []*service.IngestSummary
	if info.IsDir() {
		summaries, err = ingester.IngestDir(ctx, path)
		if err != nil {
			return err
		}
	} else {
		summary, err := ingester.IngestFile(ctx, path)
		if err != nil {
			return err
		}
		summaries = []*service.IngestSummary{summary}
	}

	for _, summary := range summaries {
		log.Info("Ingested dataset",
			"bill", summary.BillNumber,
			"kind", summary.Kind,
			"stage", summary.Stage,
			"sections", summary.Sections,
			"amendments", summary.Amendments,
			"traces", summary.Traces,
			"skipped_rows", len(summary.SkippedRows),
		)
	}

	log.Info("Done", "datasets", len(summaries))
	return nil
}
