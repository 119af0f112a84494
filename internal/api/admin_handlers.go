package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/billtrace/billtrace-server/internal/http/response"
)

// IngestRequest triggers a dataset ingest. Path may be a single dataset
// file or a directory of datasets.
type IngestRequest struct {
	Path string `json:"path" validate:"required"`
	Dir  bool   `json:"dir,omitempty"`
}

// handleIngest loads datasets from disk.
// POST /api/v1/admin/ingest
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req IngestRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid JSON body", s.logger.Logger)
		return
	}
	if err := s.validator.Validate(req); err != nil {
		response.DomainError(w, err, s.logger.Logger)
		return
	}

	if req.Dir {
		summaries, err := s.ingestService.IngestDir(r.Context(), req.Path)
		if err != nil {
			response.DomainError(w, err, s.logger.Logger)
			return
		}
		response.Success(w, summaries, s.logger.Logger)
		return
	}

	summary, err := s.ingestService.IngestFile(r.Context(), req.Path)
	if err != nil {
		response.DomainError(w, err, s.logger.Logger)
		return
	}
	response.Success(w, summary, s.logger.Logger)
}

// handleReindex rebuilds the search index from the store.
// POST /api/v1/admin/reindex
func (s *Server) handleReindex(w http.ResponseWriter, r *http.Request) {
	count, err := s.searchService.Reindex(r.Context())
	if err != nil {
		response.DomainError(w, err, s.logger.Logger)
		return
	}
	response.Success(w, map[string]int{"indexed": count}, s.logger.Logger)
}
