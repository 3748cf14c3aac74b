// Package app assembles the HTTP application: configuration, logging,
// observability, services, routes, and lifecycle.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"xbrlcli/internal/config"
	apierrors "xbrlcli/internal/errors"
	"xbrlcli/internal/infrastructure"
	custommw "xbrlcli/internal/middleware"
	"xbrlcli/internal/services"
	handlers "xbrlcli/internal/transport/http"
)

// Application is the dependency container for the web server.
type Application struct {
	Config     *config.Config
	Logger     *slog.Logger
	Router     *chi.Mux
	Server     *http.Server
	OTel       *infrastructure.OTelProviders
	Extraction *services.ExtractionService
}

// NewApplication wires every component together.
func NewApplication(cfg *config.Config) (*Application, error) {
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	otelProviders, err := infrastructure.InitializeOTel(nil, logger)
	if err != nil {
		return nil, fmt.Errorf("initialize observability: %w", err)
	}

	extractionService, err := services.NewExtractionService(logger, otelProviders.Meter)
	if err != nil {
		return nil, fmt.Errorf("create extraction service: %w", err)
	}

	app := &Application{
		Config:     cfg,
		Logger:     logger,
		OTel:       otelProviders,
		Extraction: extractionService,
	}
	app.Router = app.setupRouter()
	app.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return app, nil
}

func (app *Application) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(custommw.StructuredLogger(app.Logger))
	r.Use(custommw.Recoverer(app.Logger))
	if app.Config.RateLimit.Enabled {
		r.Use(custommw.RateLimit(app.Config.RateLimit.RPS, app.Config.RateLimit.Burst))
	}
	r.Use(render.SetContentType(render.ContentTypeJSON))

	errorHandler := apierrors.NewErrorHandler(app.Logger)
	extractionHandler := handlers.NewExtractionHandler(
		app.Extraction, app.Logger, errorHandler, app.Config.Extraction.MaxUploadBytes)
	healthHandler := handlers.NewHealthHandler()

	r.Route("/api", func(r chi.Router) {
		r.Mount("/extract", extractionHandler.Routes())
		r.Mount("/health", healthHandler.Routes())
	})
	if app.OTel.PrometheusHTTP != nil {
		r.Handle("/metrics", app.OTel.PrometheusHTTP)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Render(w, r, apierrors.NewProblemDetails(
			http.StatusNotFound,
			apierrors.TypeNotFound,
			"Not Found",
			"No route matches the requested path",
			r.URL.Path,
		))
	})

	return r
}

// Run starts the server and blocks until shutdown completes.
func (app *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		app.Logger.Info("server listening",
			slog.String("addr", app.Server.Addr))
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	app.Logger.Info("shutting down")
	return app.Shutdown()
}

// Shutdown stops the server and flushes observability pipelines.
func (app *Application) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), app.Config.Server.ShutdownTimeout)
	defer cancel()

	var firstErr error
	if err := app.Server.Shutdown(ctx); err != nil {
		firstErr = fmt.Errorf("server shutdown: %w", err)
	}
	if err := app.OTel.Shutdown(ctx); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("otel shutdown: %w", err)
	}
	if err := infrastructure.CloseLogFile(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("close log file: %w", err)
	}
	return firstErr
}
