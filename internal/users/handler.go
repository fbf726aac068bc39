package users

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/inkwell-cms/inkwell/internal/auth"
	"github.com/inkwell-cms/inkwell/internal/platform/httpx"
	"github.com/inkwell-cms/inkwell/internal/shared"
)

// Handler wires admin-only user management endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	authMW    auth.Middleware
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, authMW auth.Middleware) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		authMW:    authMW,
		validator: validator.New(),
	}
}

// MountRoutes registers user routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(h.authMW.RequireAdmin)
	r.Get("/", h.handleList)
	r.Put("/{id}/role", h.handleChangeRole)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("list users", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if users == nil {
		users = []User{}
	}
	httpx.JSON(w, http.StatusOK, map[string][]User{"users": users})
}

type changeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=ADMIN USER"`
}

func (h *Handler) handleChangeRole(w http.ResponseWriter, r *http.Request) {
	var req changeRoleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}

	actor := shared.IdentityFromContext(r.Context())
	user, err := h.service.ChangeRole(r.Context(), actor, chi.URLParam(r, "id"), req.Role)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			httpx.RespondError(w, httpx.ErrNotFound)
			return
		}
		h.logger.Error("change role", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}
