package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/inkwell-cms/inkwell/internal/shared"
)

func adminOnlyServer(store RoleStore, codec *Codec) http.Handler {
	mw := Middleware{Resolver: NewResolver(codec, store, nil)}
	protected := mw.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	return mw.ResolveSession(protected)
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	store := &stubRoleStore{roles: map[string]string{"admin@inkwell.local": shared.RoleAdmin}}
	codec, _ := NewCodec("test-secret", DefaultTTL)
	server := adminOnlyServer(store, codec)

	credential, _ := codec.Issue(testIdentity())
	res := httptest.NewRecorder()
	server.ServeHTTP(res, requestWithCredential(credential))

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
}

func TestRequireAdminRejectsAnonymous(t *testing.T) {
	store := &stubRoleStore{roles: map[string]string{}}
	codec, _ := NewCodec("test-secret", DefaultTTL)
	server := adminOnlyServer(store, codec)

	res := httptest.NewRecorder()
	server.ServeHTTP(res, requestWithCredential(""))

	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.Code)
	}
}

func TestRequireAdminRejectsNonAdmin(t *testing.T) {
	store := &stubRoleStore{roles: map[string]string{"user@inkwell.local": shared.RoleUser}}
	codec, _ := NewCodec("test-secret", DefaultTTL)
	server := adminOnlyServer(store, codec)

	identity := testIdentity()
	identity.Email = "user@inkwell.local"
	identity.Role = shared.RoleUser
	credential, _ := codec.Issue(identity)

	res := httptest.NewRecorder()
	server.ServeHTTP(res, requestWithCredential(credential))

	if res.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", res.Code)
	}
}

// A demoted admin holding a still-valid token must be locked out on the
// next request, not at token expiry.
func TestRequireAdminRejectsStaleAdminToken(t *testing.T) {
	store := &stubRoleStore{roles: map[string]string{"admin@inkwell.local": shared.RoleUser}}
	codec, _ := NewCodec("test-secret", DefaultTTL)
	server := adminOnlyServer(store, codec)

	credential, _ := codec.Issue(testIdentity())
	res := httptest.NewRecorder()
	server.ServeHTTP(res, requestWithCredential(credential))

	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.Code)
	}
}

func TestResolveSessionStoreOutageFailsClosed(t *testing.T) {
	store := &stubRoleStore{err: errors.New("connection refused")}
	codec, _ := NewCodec("test-secret", DefaultTTL)
	server := adminOnlyServer(store, codec)

	credential, _ := codec.Issue(testIdentity())
	res := httptest.NewRecorder()
	server.ServeHTTP(res, requestWithCredential(credential))

	if res.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", res.Code)
	}
}

func TestResolveSessionPrimesAmbientJar(t *testing.T) {
	store := &stubRoleStore{roles: map[string]string{"admin@inkwell.local": shared.RoleAdmin}}
	codec, _ := NewCodec("test-secret", DefaultTTL)
	resolver := NewResolver(codec, store, nil)
	mw := Middleware{Resolver: resolver}

	credential, _ := codec.Issue(testIdentity())
	var ambient *shared.Identity
	var ambientErr error
	server := mw.ResolveSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ambient, ambientErr = resolver.ResolveContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	res := httptest.NewRecorder()
	server.ServeHTTP(res, requestWithCredential(credential))

	if ambientErr != nil || ambient == nil || ambient.Email != "admin@inkwell.local" {
		t.Fatalf("ambient resolution failed: %+v / %v", ambient, ambientErr)
	}
}
