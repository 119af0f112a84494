// Package di provides dependency injection configuration for the BillTrace
// server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/billtrace/billtrace-server/internal/config"
	"github.com/billtrace/billtrace-server/internal/di/providers"
	"github.com/billtrace/billtrace-server/internal/logger"
	"github.com/billtrace/billtrace-server/internal/match"
	"github.com/billtrace/billtrace-server/internal/processor"
	"github.com/billtrace/billtrace-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)
	do.Provide(injector, providers.ProvideSearchService)

	// Business services
	do.Provide(injector, providers.ProvideMatcher)
	do.Provide(injector, providers.ProvideBillService)
	do.Provide(injector, providers.ProvideCompareService)
	do.Provide(injector, providers.ProvideIngestService)
	do.Provide(injector, providers.ProvideEventProcessor)

	// Workers
	do.Provide(injector, providers.ProvideDatasetWatcher)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle
// management. This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*service.SearchService](injector)

	// Business services
	_ = do.MustInvoke[*match.Matcher](injector)
	_ = do.MustInvoke[*service.BillService](injector)
	_ = do.MustInvoke[*service.CompareService](injector)
	_ = do.MustInvoke[*service.IngestService](injector)
	_ = do.MustInvoke[*processor.EventProcessor](injector)

	// Workers
	_ = do.MustInvoke[*providers.DatasetWatcherHandle](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	// Load datasets and rebuild the search index when needed.
	go providers.RunInitialIngest(injector)
	providers.TriggerSearchReindexIfNeeded(injector)

	return nil
}
