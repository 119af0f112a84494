package api

import (
	"net/http"
	"strconv"

	"github.com/billtrace/billtrace-server/internal/http/response"
	"github.com/billtrace/billtrace-server/internal/search"
)

// handleSearch runs a section search.
// GET /api/v1/search?q=pay+raise&bill=bill-xxx&stage=enr&limit=20&offset=0
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := search.DefaultSearchParams()
	params.Query = q.Get("q")
	params.BillID = q.Get("bill")
	params.Stage = q.Get("stage")

	if limit := q.Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			response.BadRequest(w, "limit must be a non-negative integer", s.logger.Logger)
			return
		}
		params.Limit = n
	}
	if offset := q.Get("offset"); offset != "" {
		n, err := strconv.Atoi(offset)
		if err != nil || n < 0 {
			response.BadRequest(w, "offset must be a non-negative integer", s.logger.Logger)
			return
		}
		params.Offset = n
	}

	result, err := s.searchService.Search(r.Context(), params)
	if err != nil {
		response.DomainError(w, err, s.logger.Logger)
		return
	}
	response.Success(w, result, s.logger.Logger)
}
