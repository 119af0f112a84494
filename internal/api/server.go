// Package api provides the HTTP API server and handlers for the BillTrace
// application.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/billtrace/billtrace-server/internal/logger"
	"github.com/billtrace/billtrace-server/internal/ratelimit"
	"github.com/billtrace/billtrace-server/internal/service"
	"github.com/billtrace/billtrace-server/internal/store"
	"github.com/billtrace/billtrace-server/internal/validation"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store          *store.Store
	billService    *service.BillService
	compareService *service.CompareService
	searchService  *service.SearchService
	ingestService  *service.IngestService
	validator      *validation.Validator
	limiter        *ratelimit.Limiter
	router         *chi.Mux
	logger         *logger.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	store *store.Store,
	billService *service.BillService,
	compareService *service.CompareService,
	searchService *service.SearchService,
	ingestService *service.IngestService,
	limiter *ratelimit.Limiter,
	logger *logger.Logger,
) *Server {
	s := &Server{
		store:          store,
		billService:    billService,
		compareService: compareService,
		searchService:  searchService,
		ingestService:  ingestService,
		validator:      validation.New(),
		limiter:        limiter,
		router:         chi.NewRouter(),
		logger:         logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	if s.limiter != nil {
		s.router.Use(RateLimitMiddleware(s.limiter, s.logger))
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	// Review pages (HTML).
	s.router.Get("/review/{ref}", s.handleReviewPage)
	s.router.Get("/review/{ref}/diff/{traceID}", s.handleDiffPage)

	// API v1.
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Route("/bills", func(r chi.Router) {
			r.Get("/", s.handleListBills)
			r.Get("/{ref}", s.handleGetBill)
			r.Get("/{ref}/sections", s.handleListSections)
			r.Get("/{ref}/traces", s.handleListTraces)
			r.Get("/{ref}/amendments", s.handleListAmendments)
			r.Get("/{ref}/amendments/{number}", s.handleGetAmendment)
			r.Get("/{ref}/review", s.handleStageReview)
		})

		r.Route("/sections", func(r chi.Router) {
			r.Get("/{id}", s.handleGetSection)
		})

		r.Route("/traces", func(r chi.Router) {
			r.Get("/{id}", s.handleGetTrace)
			r.Get("/{id}/diff", s.handleTraceDiff)
		})

		r.Post("/compare", s.handleCompare)
		r.Get("/search", s.handleSearch)

		// Admin endpoints.
		r.Route("/admin", func(r chi.Router) {
			r.Post("/ingest", s.handleIngest)
			r.Post("/reindex", s.handleReindex)
		})
	})
}
