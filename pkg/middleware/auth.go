package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/taskdeck/taskdeck/pkg/auth"
	"github.com/taskdeck/taskdeck/pkg/httputil"
	"github.com/taskdeck/taskdeck/pkg/observability"
)

// AuthMiddleware is the authentication gate: it runs before every protected
// handler and either binds the resolved identity into the request context or
// terminates the request.
type AuthMiddleware struct {
	verifier auth.Verifier
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(verifier auth.Verifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// Handler wraps an HTTP handler with authentication.
//
// Checks short-circuit on first failure: header present, header shaped
// "Bearer <token>", token non-empty, verifier accepts. Every credential
// failure answers 401 with a generic message so callers cannot distinguish
// missing from malformed from expired. A verifier fault answers 500: the
// gate malfunctioned, the credential was never judged.
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			httputil.WriteUnauthorized(w, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			httputil.WriteUnauthorized(w, "invalid authorization header format")
			return
		}

		token := strings.TrimSpace(parts[1])
		if token == "" {
			httputil.WriteUnauthorized(w, "invalid or expired token")
			return
		}

		identity, err := m.verifier.Verify(r.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrTokenRejected) {
				httputil.WriteUnauthorized(w, "invalid or expired token")
				return
			}
			observability.FromContext(r.Context()).WithError(err).Error("credential verification fault")
			httputil.WriteInternalError(w, "authentication failed")
			return
		}

		ctx := auth.WithIdentity(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireIdentity extracts the identity bound by Handler, answering 401 when
// it is absent. Handlers behind the gate use this instead of reaching into
// the context directly.
func RequireIdentity(w http.ResponseWriter, r *http.Request) (*auth.Identity, bool) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "authentication required")
		return nil, false
	}
	return identity, true
}
