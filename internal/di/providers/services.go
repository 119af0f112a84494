package providers

import (
	"github.com/samber/do/v2"

	"github.com/billtrace/billtrace-server/internal/logger"
	"github.com/billtrace/billtrace-server/internal/match"
	"github.com/billtrace/billtrace-server/internal/processor"
	"github.com/billtrace/billtrace-server/internal/service"
)

// ProvideMatcher provides the title matcher, backed by the search index
// for candidate narrowing.
func ProvideMatcher(i do.Injector) (*match.Matcher, error) {
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	return match.NewWithCandidates(indexHandle.SearchIndex), nil
}

// ProvideBillService provides bill, section, and trace reads.
func ProvideBillService(i do.Injector) (*service.BillService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBillService(storeHandle.Store, log.Logger), nil
}

// ProvideCompareService provides section comparison.
func ProvideCompareService(i do.Injector) (*service.CompareService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCompareService(storeHandle.Store, log.Logger), nil
}

// ProvideIngestService provides dataset ingestion.
func ProvideIngestService(i do.Injector) (*service.IngestService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	matcher := do.MustInvoke[*match.Matcher](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewIngestService(storeHandle.Store, matcher, log.Logger), nil
}

// ProvideEventProcessor provides the watch event processor.
func ProvideEventProcessor(i do.Injector) (*processor.EventProcessor, error) {
	ingestService := do.MustInvoke[*service.IngestService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return processor.NewEventProcessor(ingestService, log.Logger), nil
}
