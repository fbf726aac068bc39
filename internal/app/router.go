package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/inkwell-cms/inkwell/internal/auth"
	"github.com/inkwell-cms/inkwell/internal/blog"
	"github.com/inkwell-cms/inkwell/internal/observability"
	"github.com/inkwell-cms/inkwell/internal/shared"
	"github.com/inkwell-cms/inkwell/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger      *slog.Logger
	Config      *Config
	AuthMW      auth.Middleware
	CSRFManager *shared.CSRFManager
	AuthHandler *auth.Handler
	BlogHandler *blog.Handler
	UserHandler *users.Handler
	Metrics     *observability.Metrics
}

// NewRouter constructs the chi.Router with Inkwell defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:      params.Logger,
		Config:      params.Config,
		AuthMW:      params.AuthMW,
		CSRFManager: params.CSRFManager,
		Metrics:     params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Handle("/metrics", params.Metrics.Handler())
	}

	r.Route("/auth", params.AuthHandler.MountRoutes)
	r.Route("/api/blogs", params.BlogHandler.MountRoutes)
	if params.UserHandler != nil {
		r.Route("/api/users", params.UserHandler.MountRoutes)
	}

	return r
}
