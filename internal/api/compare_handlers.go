package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/billtrace/billtrace-server/internal/http/response"
)

// handleTraceDiff returns the rendered diff for a trace.
// GET /api/v1/traces/{id}/diff
func (s *Server) handleTraceDiff(w http.ResponseWriter, r *http.Request) {
	comparison, err := s.compareService.CompareTrace(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.DomainError(w, err, s.logger.Logger)
		return
	}
	response.Success(w, comparison, s.logger.Logger)
}

// CompareRequest is the body for ad hoc comparisons. Callers supply either
// two stored section IDs or two raw texts.
type CompareRequest struct {
	LeftSectionID  string `json:"left_section_id,omitempty" validate:"required_with=RightSectionID"`
	RightSectionID string `json:"right_section_id,omitempty" validate:"required_with=LeftSectionID"`
	LeftText       string `json:"left_text,omitempty"`
	RightText      string `json:"right_text,omitempty"`
}

// handleCompare runs an ad hoc comparison.
// POST /api/v1/compare
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid JSON body", s.logger.Logger)
		return
	}
	if err := s.validator.Validate(req); err != nil {
		response.DomainError(w, err, s.logger.Logger)
		return
	}

	if req.LeftSectionID != "" {
		comparison, err := s.compareService.CompareSections(r.Context(), req.LeftSectionID, req.RightSectionID)
		if err != nil {
			response.DomainError(w, err, s.logger.Logger)
			return
		}
		response.Success(w, comparison, s.logger.Logger)
		return
	}

	response.Success(w, s.compareService.CompareTexts(req.LeftText, req.RightText), s.logger.Logger)
}
