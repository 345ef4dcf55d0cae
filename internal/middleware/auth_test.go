package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testToken = "0123456789abcdef0123456789abcdef"

func authedRequest(t *testing.T, m *APIAuthMiddleware, mutate func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()

	handler := m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/readings/latest", nil)
	if mutate != nil {
		mutate(req)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAPIAuthMiddleware(t *testing.T) {
	t.Run("passes with a valid bearer token", func(t *testing.T) {
		m := NewAPIAuthMiddleware(testToken)
		rec := authedRequest(t, m, func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+testToken)
		})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("passes with a valid query token", func(t *testing.T) {
		m := NewAPIAuthMiddleware(testToken)
		rec := authedRequest(t, m, func(r *http.Request) {
			q := r.URL.Query()
			q.Set("token", testToken)
			r.URL.RawQuery = q.Encode()
		})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects a missing token", func(t *testing.T) {
		m := NewAPIAuthMiddleware(testToken)
		rec := authedRequest(t, m, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
	})

	t.Run("rejects a wrong token", func(t *testing.T) {
		m := NewAPIAuthMiddleware(testToken)
		rec := authedRequest(t, m, func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer wrong-token")
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "INVALID_TOKEN")
	})

	t.Run("disabled when no token is configured", func(t *testing.T) {
		m := NewAPIAuthMiddleware("")
		rec := authedRequest(t, m, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
