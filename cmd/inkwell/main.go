package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/inkwell-cms/inkwell/internal/app"
	"github.com/inkwell-cms/inkwell/internal/auth"
	"github.com/inkwell-cms/inkwell/internal/blog"
	"github.com/inkwell-cms/inkwell/internal/observability"
	"github.com/inkwell-cms/inkwell/internal/platform/cache"
	"github.com/inkwell-cms/inkwell/internal/platform/db"
	"github.com/inkwell-cms/inkwell/internal/shared"
	"github.com/inkwell-cms/inkwell/internal/users"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	codec, err := auth.NewCodec(cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		logger.Error("session codec", slog.Any("error", err))
		os.Exit(1)
	}

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	metrics := observability.NewMetrics()
	auditLogger := shared.NewAuditLogger(dbpool)
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)
	cookieManager := auth.NewCookieManager(codec.TTL(), cfg.IsProduction())

	authRepo := auth.NewRepository(dbpool)

	// Redis only fronts the role lookup; resolution degrades to direct
	// store reads when it is absent or the TTL is zero.
	var roles auth.RoleStore = authRepo
	var invalidator users.RoleInvalidator
	if cfg.RoleCacheTTL > 0 {
		redisClient, err := cache.New(ctx, cfg.RedisAddr, cfg.RedisDialTimeout)
		if err != nil {
			logger.Warn("redis unavailable, role cache disabled", slog.Any("error", err))
		} else {
			cached := auth.NewCachedRoleStore(authRepo, redisClient, cfg.RoleCacheTTL)
			roles = cached
			invalidator = cached
			defer func() {
				if err := redisClient.Close(); err != nil {
					logger.Warn("redis close", slog.Any("error", err))
				}
			}()
		}
	}

	resolver := auth.NewResolver(codec, roles, metrics)
	authMW := auth.Middleware{Logger: logger, Resolver: resolver}
	authService := auth.NewService(authRepo, codec, auditLogger)
	authHandler := auth.NewHandler(logger, authService, cookieManager, csrfManager)

	blogRepo := blog.NewRepository(dbpool)
	blogAllocator := blog.NewAllocator(blogRepo, metrics)
	blogService := blog.NewService(blogRepo, blogAllocator, auditLogger)
	blogHandler := blog.NewHandler(logger, blogService, authMW)

	userRepo := users.NewRepository(dbpool)
	userService := users.NewService(userRepo, invalidator, auditLogger)
	userHandler := users.NewHandler(logger, userService, authMW)

	router := app.NewRouter(app.RouterParams{
		Logger:      logger,
		Config:      cfg,
		AuthMW:      authMW,
		CSRFManager: csrfManager,
		AuthHandler: authHandler,
		BlogHandler: blogHandler,
		UserHandler: userHandler,
		Metrics:     metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", slog.Any("error", err))
	}
}
