package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/billtrace/billtrace-server/internal/api"
	"github.com/billtrace/billtrace-server/internal/config"
	"github.com/billtrace/billtrace-server/internal/logger"
	"github.com/billtrace/billtrace-server/internal/ratelimit"
	"github.com/billtrace/billtrace-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	billService := do.MustInvoke[*service.BillService](i)
	compareService := do.MustInvoke[*service.CompareService](i)
	searchService := do.MustInvoke[*service.SearchService](i)
	ingestService := do.MustInvoke[*service.IngestService](i)

	limiter := ratelimit.New(cfg.Server.RateLimit, cfg.Server.RateBurst)

	handler := api.NewServer(storeHandle.Store, billService, compareService, searchService, ingestService, limiter, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background.
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr, "name", cfg.Server.Name)

	return &HTTPServerHandle{Server: srv}, nil
}
