package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	apperrors "github.com/openclaw/libresync/internal/errors"
	"github.com/openclaw/libresync/internal/httputil"
	"github.com/openclaw/libresync/internal/util"
)

// APIAuthMiddleware guards the read API with a static bearer token. An empty
// configured token disables the check (local deployments).
type APIAuthMiddleware struct {
	tokenHash string
}

func NewAPIAuthMiddleware(token string) *APIAuthMiddleware {
	m := &APIAuthMiddleware{}
	if token != "" {
		m.tokenHash = util.HashToken(token)
	}
	return m
}

func (m *APIAuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.tokenHash == "" {
			next.ServeHTTP(w, r)
			return
		}

		token := extractToken(r)
		if token == "" {
			httputil.WriteError(w, apperrors.Unauthorized("Missing authentication token"))
			return
		}

		if !util.ConstantTimeEqual(util.HashToken(token), m.tokenHash) {
			log.Warn().Msg("api auth: invalid token attempt")
			httputil.WriteError(w, apperrors.InvalidToken("Invalid token"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func extractToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return r.URL.Query().Get("token")
}
