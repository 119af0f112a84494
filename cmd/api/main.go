// Package main provides the entry point for the BillTrace server.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/billtrace/billtrace-server/internal/di"
	"github.com/billtrace/billtrace-server/internal/di/providers"
	"github.com/billtrace/billtrace-server/internal/logger"
)

func main() {
	injector := di.NewContainer()

	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap server: %v\n", err)
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	// The container shuts down do.Shutdownable services in reverse order.
	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}

	// The store and search index live behind wrapper handles, close them
	// explicitly so badger and bleve flush to disk.
	closeHandle(log, "database", func() (shutdowner, error) {
		return do.Invoke[*providers.StoreHandle](injector)
	})
	closeHandle(log, "search index", func() (shutdowner, error) {
		return do.Invoke[*providers.SearchIndexHandle](injector)
	})

	log.Info("Server stopped")
}

type shutdowner interface {
	Shutdown() error
}

func closeHandle(log *logger.Logger, name string, invoke func() (shutdowner, error)) {
	handle, err := invoke()
	if err != nil {
		return
	}
	log.Info("Closing " + name)
	if err := handle.Shutdown(); err != nil {
		log.Error("Failed to close "+name, "error", err)
	}
}
