package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/billtrace/billtrace-server/internal/domain"
	domainerrors "github.com/billtrace/billtrace-server/internal/errors"
	"github.com/billtrace/billtrace-server/internal/http/response"
)

// handleListBills returns all ingested bills.
// GET /api/v1/bills
func (s *Server) handleListBills(w http.ResponseWriter, r *http.Request) {
	bills, err := s.billService.ListBills(r.Context())
	if err != nil {
		response.DomainError(w, err, s.logger.Logger)
		return
	}
	response.Success(w, bills, s.logger.Logger)
}

// handleGetBill returns one bill by ID or citation number.
// GET /api/v1/bills/{ref}
func (s *Server) handleGetBill(w http.ResponseWriter, r *http.Request) {
	bill, err := s.billService.GetBill(r.Context(), chi.URLParam(r, "ref"))
	if err != nil {
		response.DomainError(w, err, s.logger.Logger)
		return
	}
	response.Success(w, bill, s.logger.Logger)
}

// handleListSections returns a bill's sections at one stage.
// GET /api/v1/bills/{ref}/sections?stage=ih
func (s *Server) handleListSections(w http.ResponseWriter, r *http.Request) {
	stage := domain.Stage(r.URL.Query().Get("stage"))
	if stage == "" {
		response.BadRequest(w, "stage query parameter is required", s.logger.Logger)
		return
	}

	sections, err := s.billService.ListSections(r.Context(), chi.URLParam(r, "ref"), stage)
	if err != nil {
		response.DomainError(w, err, s.logger.Logger)
		return
	}
	response.Success(w, sections, s.logger.Logger)
}

// handleGetSection returns one section by ID.
// GET /api/v1/sections/{id}
func (s *Server) handleGetSection(w http.ResponseWriter, r *http.Request) {
	section, err := s.billService.GetSection(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.DomainError(w, err, s.logger.Logger)
		return
	}
	response.Success(w, section, s.logger.Logger)
}

// handleListTraces returns all traces for a bill.
// GET /api/v1/bills/{ref}/traces
func (s *Server) handleListTraces(w http.ResponseWriter, r *http.Request) {
	traces, err := s.billService.ListTraces(r.Context(), chi.URLParam(r, "ref"))
	if err != nil {
		response.DomainError(w, err, s.logger.Logger)
		return
	}
	response.Success(w, traces, s.logger.Logger)
}

// handleGetTrace returns one trace by ID.
// GET /api/v1/traces/{id}
func (s *Server) handleGetTrace(w http.ResponseWriter, r *http.Request) {
	trace, err := s.billService.GetTrace(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.DomainError(w, err, s.logger.Logger)
		return
	}
	response.Success(w, trace, s.logger.Logger)
}

// handleListAmendments returns all amendments for a bill.
// GET /api/v1/bills/{ref}/amendments
func (s *Server) handleListAmendments(w http.ResponseWriter, r *http.Request) {
	amendments, err := s.billService.ListAmendments(r.Context(), chi.URLParam(r, "ref"))
	if err != nil {
		response.DomainError(w, err, s.logger.Logger)
		return
	}
	response.Success(w, amendments, s.logger.Logger)
}

// handleGetAmendment returns one of a bill's amendments by number.
// GET /api/v1/bills/{ref}/amendments/{number}
func (s *Server) handleGetAmendment(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil {
		response.BadRequest(w, "amendment number must be an integer", s.logger.Logger)
		return
	}

	amendment, err := s.billService.GetAmendment(r.Context(), chi.URLParam(r, "ref"), number)
	if err != nil {
		response.DomainError(w, err, s.logger.Logger)
		return
	}
	response.Success(w, amendment, s.logger.Logger)
}

// handleStageReview returns trace rows for a stage pair.
// GET /api/v1/bills/{ref}/review?left=ih&right=enr
func (s *Server) handleStageReview(w http.ResponseWriter, r *http.Request) {
	leftStage, rightStage, err := reviewStages(r)
	if err != nil {
		response.DomainError(w, err, s.logger.Logger)
		return
	}

	rows, err := s.billService.StageReview(r.Context(), chi.URLParam(r, "ref"), leftStage, rightStage)
	if err != nil {
		response.DomainError(w, err, s.logger.Logger)
		return
	}
	response.Success(w, rows, s.logger.Logger)
}

// reviewStages reads the left/right stage pair from the query string.
func reviewStages(r *http.Request) (domain.Stage, domain.Stage, error) {
	leftStage := domain.Stage(r.URL.Query().Get("left"))
	rightStage := domain.Stage(r.URL.Query().Get("right"))
	if leftStage == "" || rightStage == "" {
		return "", "", domainerrors.Validation("left and right stage query parameters are required")
	}
	if !leftStage.Valid() || !rightStage.Valid() {
		return "", "", domainerrors.Validationf("unknown stage in %q/%q", leftStage, rightStage)
	}
	if rightStage.Ordinal() <= leftStage.Ordinal() {
		return "", "", domainerrors.Validation("right stage must come after left stage")
	}
	return leftStage, rightStage, nil
}
