package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradejournal/internal/domain"
)

func renderDenied(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, DeniedOrErrorResponse(c, err, "Failed"))
	return rec.Code, rec.Body.String()
}

// NotFound and Forbidden must be indistinguishable on the wire, so a failed
// ownership check never reveals whether the entity exists.
func TestDeniedResponsesIdentical(t *testing.T) {
	codeMissing, bodyMissing := renderDenied(t, domain.ErrNotFound)
	codeForeign, bodyForeign := renderDenied(t, domain.ErrForbidden)

	assert.Equal(t, http.StatusNotFound, codeMissing)
	assert.Equal(t, codeMissing, codeForeign)
	assert.Equal(t, bodyMissing, bodyForeign)
}

func TestDeniedOrErrorFallsThrough(t *testing.T) {
	code, body := renderDenied(t, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Contains(t, body, "Failed")
}
