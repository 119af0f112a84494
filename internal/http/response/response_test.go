package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	domainerrors "github.com/billtrace/billtrace-server/internal/errors"
)

func TestJSON_SuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()

	Success(rec, map[string]string{"bill": "HR8070"}, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"success":true`)
	assert.Contains(t, rec.Body.String(), `"bill":"HR8070"`)
}

func TestError_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()

	BadRequest(rec, "missing query", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
	assert.Contains(t, rec.Body.String(), `"error":"missing query"`)
}

func TestNoContent(t *testing.T) {
	rec := httptest.NewRecorder()

	NoContent(rec)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestDomainError_MapsCode(t *testing.T) {
	rec := httptest.NewRecorder()

	DomainError(rec, domainerrors.NotFound("trace not found"), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "trace not found")
}

func TestDomainError_UnknownErrorIs500(t *testing.T) {
	rec := httptest.NewRecorder()

	DomainError(rec, assert.AnError, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal error")
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}
