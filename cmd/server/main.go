// @title         newsdash API
// @version       1.0
// @description   News dashboard backend: headlines with summaries and translations, share links and user sessions.
// @BasePath      /
// @schemes       http
// @host          localhost:5000
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Session token. Sent as the session cookie or as "Bearer <token>".
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	swagger "github.com/gofiber/swagger"
	"go.uber.org/zap"

	_ "github.com/artem13815/newsdash/docs"

	// internal imports
	"github.com/artem13815/newsdash/api/http"
	"github.com/artem13815/newsdash/api/http/handlers"
	"github.com/artem13815/newsdash/api/http/middleware"
	"github.com/artem13815/newsdash/pkg/auth"
	"github.com/artem13815/newsdash/pkg/config"
	"github.com/artem13815/newsdash/pkg/health"
	"github.com/artem13815/newsdash/pkg/logging"
	"github.com/artem13815/newsdash/pkg/preferences"
	"github.com/artem13815/newsdash/pkg/security/jwt"
	"github.com/artem13815/newsdash/pkg/security/password"
	"github.com/artem13815/newsdash/pkg/share"
)

func main() {
	// Load configuration from env/.env and the optional YAML file
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("open storage", zap.Error(err))
	}
	defer st.Close()

	hasher, err := password.New(cfg.Session.Hasher)
	if err != nil {
		logger.Fatal("password hasher", zap.Error(err))
	}
	if cfg.Session.Secret == "dev-secret-change" {
		logger.Warn("SESSION_SECRET is not set, using the development default")
	}

	// Wire dependencies
	jwtGen := jwt.NewGenerator(cfg.Session.Secret, cfg.Session.Issuer, cfg.Session.TTL())
	authUC := auth.NewAuthService(st.users, st.sessions, jwtGen, hasher, cfg.Session.TTL())
	shareUC := share.NewService(st.shares, share.NewDigestGenerator())
	prefsUC := preferences.NewService(st.prefs)
	pipeline := newPipeline(cfg, logger.Named("pipeline"))

	readiness := health.NewService(st.checkers...)

	app := fiber.New(fiber.Config{
		AppName:      "newsdash",
		ErrorHandler: middleware.ErrorHandler(logger.Named("http")),
	})
	middleware.Use(app, logger.Named("http"), cfg.Origins)

	http.Register(app,
		handlers.NewAuthHandler(authUC, cfg.Session.CookieSecure, logger.Named("auth")),
		handlers.NewHealthHandler(readiness),
		handlers.NewNewsHandler(pipeline, cfg.Pipeline.PageSize, cfg.Pipeline.RequestDeadline()),
		handlers.NewShareHandler(shareUC, cfg.PublicBaseURL, logger.Named("share")),
		handlers.NewPreferencesHandler(prefsUC, logger.Named("preferences")),
		jwt.NewAuthMiddleware(authUC),
	)

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("port", cfg.Port))
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	case err := <-errCh:
		logger.Error("server stopped", zap.Error(err))
		st.Close()
		os.Exit(1)
	}
}
