package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/inkwell-cms/inkwell/internal/platform/httpx"
	"github.com/inkwell-cms/inkwell/internal/shared"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	cookies   *CookieManager
	csrf      *shared.CSRFManager
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, cookies *CookieManager, csrf *shared.CSRFManager) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		cookies:   cookies,
		csrf:      csrf,
		validator: validator.New(),
	}
}

// MountRoutes registers auth routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
	r.Get("/session", h.handleSession)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginResponse struct {
	Identity  *shared.Identity `json:"identity"`
	CSRFToken string           `json:"csrfToken"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}

	identity, credential, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, shared.ErrInvalidCredentials) {
			httpx.RespondError(w, httpx.ErrUnauthorized)
			return
		}
		h.logger.Error("login", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	h.cookies.Issue(w, credential)
	httpx.JSON(w, http.StatusOK, loginResponse{
		Identity:  identity,
		CSRFToken: h.csrf.TokenFor(credential),
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.service.RecordLogout(r.Context(), shared.IdentityFromContext(r.Context()))
	h.cookies.Clear(w)
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// handleSession echoes the identity resolved by the session middleware,
// null when unauthenticated.
func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]*shared.Identity{
		"identity": shared.IdentityFromContext(r.Context()),
	})
}

// LoginForTest exposes the login handler for tests.
func (h *Handler) LoginForTest(w http.ResponseWriter, r *http.Request) {
	h.handleLogin(w, r)
}

// LogoutForTest exposes the logout handler for tests.
func (h *Handler) LogoutForTest(w http.ResponseWriter, r *http.Request) {
	h.handleLogout(w, r)
}

// SessionForTest exposes the session handler for tests.
func (h *Handler) SessionForTest(w http.ResponseWriter, r *http.Request) {
	h.handleSession(w, r)
}
