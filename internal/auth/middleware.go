package auth

import (
	"log/slog"
	"net/http"

	"github.com/inkwell-cms/inkwell/internal/platform/httpx"
	"github.com/inkwell-cms/inkwell/internal/shared"
)

// Middleware wires session resolution and authorization for HTTP handlers.
type Middleware struct {
	Logger   *slog.Logger
	Resolver *Resolver
}

// ResolveSession resolves the session exactly once per request, primes the
// ambient cookie jar, and stores the identity (or nil) in context. A store
// outage fails the request rather than failing open.
func (m Middleware) ResolveSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jar := make(map[string]string, len(r.Cookies()))
		for _, cookie := range r.Cookies() {
			jar[cookie.Name] = cookie.Value
		}
		ctx := shared.ContextWithCookieJar(r.Context(), jar)

		identity, err := m.Resolver.Resolve(ctx, RequestSource{Request: r})
		if err != nil {
			if m.Logger != nil {
				m.Logger.Error("resolve session", slog.Any("error", err))
			}
			httpx.Problem(w, http.StatusServiceUnavailable, "Service Unavailable", "session could not be resolved")
			return
		}
		ctx = shared.ContextWithIdentity(ctx, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin gates protected routes on the resolved identity. Absent
// identity yields 401, present but non-administrative yields 403.
func (m Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := shared.IdentityFromContext(r.Context())
		if identity == nil {
			httpx.RespondError(w, httpx.ErrUnauthorized)
			return
		}
		if !shared.IsAdmin(identity) {
			httpx.RespondError(w, httpx.ErrForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
