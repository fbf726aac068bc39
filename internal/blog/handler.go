package blog

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/inkwell-cms/inkwell/internal/auth"
	"github.com/inkwell-cms/inkwell/internal/platform/httpx"
	"github.com/inkwell-cms/inkwell/internal/shared"
)

// Handler wires JSON endpoints for the blog module.
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

// MountRoutes registers blog routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Get("/{slug}", h.handleGet)
	r.With(h.authMW.RequireAdmin).Post("/", h.handleCreate)
}

type listResponse struct {
	Blogs      []Blog            `json:"blogs"`
	Pagination shared.Pagination `json:"pagination"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := ListFilter{
		Category:      query.Get("category"),
		Tag:           query.Get("tag"),
		PublishedOnly: !shared.IsAdmin(shared.IdentityFromContext(r.Context())),
	}
	if query.Get("featured") == "true" {
		featured := true
		filter.Featured = &featured
	}
	filter.Page, _ = strconv.Atoi(query.Get("page"))
	filter.Limit, _ = strconv.Atoi(query.Get("limit"))

	records, pagination, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("list blogs", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, listResponse{Blogs: records, Pagination: pagination})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	includeDrafts := shared.IsAdmin(shared.IdentityFromContext(r.Context()))
	record, err := h.service.GetBySlug(r.Context(), slug, includeDrafts)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			httpx.RespondError(w, httpx.ErrNotFound)
			return
		}
		h.logger.Error("get blog", slog.String("slug", slug), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, record)
}

type createRequest struct {
	Title           string   `json:"title" validate:"required,min=1,max=200"`
	Content         string   `json:"content" validate:"required"`
	Excerpt         string   `json:"excerpt"`
	CoverImage      string   `json:"coverImage"`
	Category        string   `json:"category"`
	Tags            []string `json:"tags"`
	MetaDescription string   `json:"metaDescription"`
	Published       bool     `json:"published"`
	Featured        bool     `json:"featured"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}

	identity := shared.IdentityFromContext(r.Context())
	record, err := h.service.Create(r.Context(), identity, CreateInput{
		Title:           req.Title,
		Content:         req.Content,
		Excerpt:         req.Excerpt,
		CoverImage:      req.CoverImage,
		Category:        req.Category,
		Tags:            req.Tags,
		MetaDescription: req.MetaDescription,
		Published:       req.Published,
		Featured:        req.Featured,
	})
	if err != nil {
		if errors.Is(err, shared.ErrSlugExhausted) {
			httpx.RespondError(w, httpx.ErrDuplicate)
			return
		}
		h.logger.Error("create blog", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, record)
}
