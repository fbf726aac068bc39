package shared

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

const (
	// CSRFHeader is the request header carrying the CSRF token.
	CSRFHeader = "X-CSRF-Token"
	// CSRFFormField is the form field name carrying the CSRF token.
	CSRFFormField = "csrf_token"
)

// CSRFManager issues and verifies CSRF tokens bound to a credential.
// The token is a keyed digest of the session credential, so it needs no
// server-side storage and rotates whenever the credential does.
type CSRFManager struct {
	secret []byte
}

// NewCSRFManager returns a CSRFManager using the provided secret key.
func NewCSRFManager(secret string) *CSRFManager {
	return &CSRFManager{secret: []byte(secret)}
}

// TokenFor derives the CSRF token for the given credential string.
func (m *CSRFManager) TokenFor(credential string) string {
	mac := hmac.New(sha256.New, m.secret)
	_, _ = mac.Write([]byte(credential))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// VerifyToken compares the supplied token with the one derived from the credential.
func (m *CSRFManager) VerifyToken(credential, token string) error {
	if token == "" {
		return ErrCSRFTokenMissing
	}
	expected := m.TokenFor(credential)
	if !hmac.Equal([]byte(expected), []byte(token)) {
		return ErrCSRFTokenMismatch
	}
	return nil
}
