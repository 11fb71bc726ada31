package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newGuardedHandler() http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return APIKeyAuth("api_key", "secret-key")(next)
}

func TestAPIKeyAuth_MissingKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/interest_rate", nil)
	rr := httptest.NewRecorder()

	newGuardedHandler().ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Contains(t, rr.Body.String(), "no API key provided")
}

func TestAPIKeyAuth_InvalidKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/interest_rate", nil)
	req.Header.Set("api_key", "wrong-key")
	rr := httptest.NewRecorder()

	newGuardedHandler().ServeHTTP(rr, req)

	require.Equal(t, http.StatusForbidden, rr.Code)
	require.Contains(t, rr.Body.String(), "invalid API key")
}

func TestAPIKeyAuth_ValidKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/interest_rate", nil)
	req.Header.Set("api_key", "secret-key")
	rr := httptest.NewRecorder()

	newGuardedHandler().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "ok", rr.Body.String())
}

func TestAPIKeyAuth_KeyIsTrimmed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/interest_rate", nil)
	req.Header.Set("api_key", " secret-key ")
	rr := httptest.NewRecorder()

	newGuardedHandler().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
}
