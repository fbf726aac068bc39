package auth

import (
	"context"
	"net/http"

	"github.com/inkwell-cms/inkwell/internal/shared"
)

// SessionCookieName is the transport cookie carrying the credential.
const SessionCookieName = "session"

// CredentialSource abstracts where the session cookie is read from, so the
// resolver does not care whether the caller holds an explicit request or
// only the ambient request context.
type CredentialSource interface {
	Cookie(name string) (string, bool)
}

// RequestSource reads cookies from an explicit *http.Request.
type RequestSource struct {
	Request *http.Request
}

// Cookie implements CredentialSource.
func (s RequestSource) Cookie(name string) (string, bool) {
	if s.Request == nil {
		return "", false
	}
	cookie, err := s.Request.Cookie(name)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// SourceFromContext returns a CredentialSource backed by the ambient cookie
// jar the session middleware stores per request.
func SourceFromContext(ctx context.Context) CredentialSource {
	return jarSource{jar: shared.CookieJarFromContext(ctx)}
}

type jarSource struct {
	jar map[string]string
}

func (s jarSource) Cookie(name string) (string, bool) {
	value, ok := s.jar[name]
	if !ok || value == "" {
		return "", false
	}
	return value, true
}
