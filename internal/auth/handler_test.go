package auth_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell-cms/inkwell/internal/auth"
	"github.com/inkwell-cms/inkwell/internal/shared"
	_ "github.com/inkwell-cms/inkwell/testing"
)

func slogDiscard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubRepo struct {
	user *auth.User
}

func (s *stubRepo) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	if s.user == nil || s.user.Email != email {
		return nil, shared.ErrNotFound
	}
	return s.user, nil
}

func (s *stubRepo) FindRoleByEmail(ctx context.Context, email string) (string, error) {
	if s.user == nil || s.user.Email != email {
		return "", shared.ErrNotFound
	}
	return s.user.Role, nil
}

func newAuthHandler(t *testing.T, repo auth.Repository) *auth.Handler {
	t.Helper()
	codec, err := auth.NewCodec("secret", time.Hour)
	if err != nil {
		t.Fatalf("codec: %v", err)
	}
	service := auth.NewService(repo, codec, nil)
	cookies := auth.NewCookieManager(codec.TTL(), false)
	csrf := shared.NewCSRFManager("csrfsecret")
	return auth.NewHandler(slogDiscard(), service, cookies, csrf)
}

func activeUser(t *testing.T, password string) *auth.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return &auth.User{
		ID:           "usr-1",
		Email:        "admin@inkwell.local",
		Name:         "Admin",
		Role:         shared.RoleAdmin,
		PasswordHash: string(hash),
		IsActive:     true,
	}
}

func TestLoginSuccess(t *testing.T) {
	handler := newAuthHandler(t, &stubRepo{user: activeUser(t, "correctpass")})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"admin@inkwell.local","password":"correctpass"}`))
	res := httptest.NewRecorder()
	handler.LoginForTest(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}
	setCookie := res.Header().Get("Set-Cookie")
	if !strings.Contains(setCookie, "session=") || !strings.Contains(setCookie, "HttpOnly") {
		t.Fatalf("expected session cookie, got %q", setCookie)
	}
	body := res.Body.String()
	if !strings.Contains(body, `"admin@inkwell.local"`) || !strings.Contains(body, `"csrfToken"`) {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	handler := newAuthHandler(t, &stubRepo{user: activeUser(t, "correctpass")})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"admin@inkwell.local","password":"wrongpassword"}`))
	res := httptest.NewRecorder()
	handler.LoginForTest(res, req)

	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.Code)
	}
	if strings.Contains(res.Header().Get("Set-Cookie"), "session=") {
		t.Fatal("no cookie may be issued on failed login")
	}
}

func TestLoginInactiveUser(t *testing.T) {
	user := activeUser(t, "correctpass")
	user.IsActive = false
	handler := newAuthHandler(t, &stubRepo{user: user})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"admin@inkwell.local","password":"correctpass"}`))
	res := httptest.NewRecorder()
	handler.LoginForTest(res, req)

	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.Code)
	}
}

func TestLoginValidation(t *testing.T) {
	handler := newAuthHandler(t, &stubRepo{})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"not-an-email","password":"short"}`))
	res := httptest.NewRecorder()
	handler.LoginForTest(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	handler := newAuthHandler(t, &stubRepo{})

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	res := httptest.NewRecorder()
	handler.LogoutForTest(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	cookies := res.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != "" || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected cleared session cookie, got %+v", cookies)
	}
}

func TestSessionEchoUnauthenticated(t *testing.T) {
	handler := newAuthHandler(t, &stubRepo{})

	req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	res := httptest.NewRecorder()
	handler.SessionForTest(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), `"identity":null`) {
		t.Fatalf("expected null identity, got %s", res.Body.String())
	}
}
