package auth

import (
	"net/http"
	"time"
)

// CookieManager issues and clears the session cookie. It is a pure
// header side effect with no fallible I/O.
type CookieManager struct {
	name   string
	ttl    time.Duration
	secure bool
}

// NewCookieManager constructs a CookieManager. The TTL must match the
// codec's so the cookie and the credential expire together.
func NewCookieManager(ttl time.Duration, secure bool) *CookieManager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CookieManager{name: SessionCookieName, ttl: ttl, secure: secure}
}

// Issue writes the session cookie carrying the credential.
func (m *CookieManager) Issue(w http.ResponseWriter, credential string) {
	cookie := &http.Cookie{
		Name:     m.name,
		Value:    credential,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteStrictMode,
	}
	// net/http has no field for the Priority attribute.
	w.Header().Add("Set-Cookie", cookie.String()+"; Priority=High")
}

// Clear removes the cookie outright so the next request resolves to no identity.
func (m *CookieManager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteStrictMode,
	})
}
