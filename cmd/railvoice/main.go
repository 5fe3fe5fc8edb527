// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/railvoice/railvoice/internal/config"
	"github.com/railvoice/railvoice/internal/gateway"
	"github.com/railvoice/railvoice/internal/handler"
	"github.com/railvoice/railvoice/internal/logging"
	"github.com/railvoice/railvoice/internal/middleware"
	"github.com/railvoice/railvoice/internal/monitor"
	"github.com/railvoice/railvoice/internal/progress"
	"github.com/railvoice/railvoice/internal/render"
	"github.com/railvoice/railvoice/internal/session"
	"github.com/railvoice/railvoice/internal/store"
	"github.com/railvoice/railvoice/internal/version"
	"github.com/railvoice/railvoice/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "RailVoice - Railway announcement administration\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  RAILVOICE_SESSION_SECRET  Session encryption key (required)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  RAILVOICE_BACKEND_URL     Announcement backend origin (default: http://localhost:5001)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  RAILVOICE_DB_PATH         SQLite database path (default: ./data/railvoice.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  RAILVOICE_SERVER_PORT     Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  RAILVOICE_ENV             Environment: development|production (default: development)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("railvoice %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	versionInfo := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	logLevel := logging.ParseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the event log
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	sessionManager := session.New(db, cfg.IsDevelopment())
	slog.Info("session manager initialized")

	backend := gateway.New(cfg.BackendURL,
		gateway.WithStoragePrefix(cfg.MediaStoragePrefix),
	)
	defer func() {
		if err := backend.Close(); err != nil {
			slog.Error("error closing backend client", "error", err)
		}
	}()
	slog.Info("backend gateway initialized", "url", cfg.BackendURL)

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}

	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}
	slog.Info("template renderer initialized")

	runs := progress.NewRegistry(time.Second)

	mon := monitor.New(backend, db, runs, logger)
	if err := mon.Start(); err != nil {
		return fmt.Errorf("starting backend monitor: %w", err)
	}
	defer mon.Stop()
	slog.Info("backend monitor started")

	// Handlers
	authHandler := handler.NewAuthHandler(backend, renderer, sessionManager)
	dashboardHandler := handler.NewDashboardHandler(backend, renderer, mon, db, sessionManager)
	routesHandler := handler.NewRoutesHandler(backend, renderer, cfg.RoutesPerPage)
	translationsHandler := handler.NewTranslationsHandler(backend, renderer, runs, cfg.GroupsPerPage)
	audioHandler := handler.NewAudioHandler(backend, renderer, runs, cfg.GroupsPerPage)
	segmentsHandler := handler.NewSegmentsHandler(backend, renderer, runs, cfg.GroupsPerPage)
	announcementsHandler := handler.NewAnnouncementsHandler(backend, renderer)
	islHandler := handler.NewISLHandler(backend, renderer, cfg.GroupsPerPage)
	pickerHandler := handler.NewPickerHandler(backend, renderer, sessionManager, cfg.RoutesPerPage)
	progressHandler := handler.NewProgressHandler(runs)
	eventsHandler := handler.NewEventsHandler(db, renderer)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(chimw.Timeout(30 * time.Second))

	securityConfig := middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment(), cfg.BackendURL)
	r.Use(middleware.SecurityHeaders(securityConfig))

	r.Use(sessionManager.LoadAndSave)

	csrfConfig := middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment())
	csrfMiddleware := middleware.CSRF(csrfConfig)

	// Static files
	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Public routes
	r.Get(handler.RouteRoot, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, handler.RouteAdmin, http.StatusSeeOther)
	})
	r.Group(func(r chi.Router) {
		r.Use(csrfMiddleware)
		r.Use(middleware.RedirectIfAuthenticated(sessionManager))
		r.Get(handler.RouteLogin, authHandler.LoginForm)
		r.Post(handler.RouteLogin, authHandler.Login)
	})
	r.With(csrfMiddleware).Post(handler.RouteLogout, authHandler.Logout)

	// Admin routes
	r.Route(handler.RouteAdmin, func(r chi.Router) {
		r.Use(csrfMiddleware)
		r.Use(middleware.Auth(sessionManager))

		r.Get("/", dashboardHandler.Dashboard)

		r.Route(handler.RouteRoutes, func(r chi.Router) {
			r.Get("/", routesHandler.List)
			r.Get(handler.RouteSuffixNew, routesHandler.NewForm)
			r.Post("/", routesHandler.Create)
			r.Get("/import", routesHandler.ImportForm)
			r.Post("/import", routesHandler.Import)
			r.Get("/export", routesHandler.Export)
			r.Post("/clear-all", routesHandler.ClearAll)
			r.Get(handler.RouteSuffixEdit, routesHandler.EditForm)
			r.Post(handler.RouteParamID, routesHandler.Update)
			r.Post("/{id}/delete", routesHandler.Delete)
		})

		r.Route(handler.RouteTranslations, func(r chi.Router) {
			r.Get("/", translationsHandler.List)
			r.Post("/generate/{id}", translationsHandler.Generate)
			r.Post("/generate-all", translationsHandler.GenerateBulk)
			r.Post("/clear-all", translationsHandler.ClearAll)
		})

		r.Route(handler.RouteAudio, func(r chi.Router) {
			r.Get("/", audioHandler.List)
			r.Post("/generate/{id}", audioHandler.Generate)
			r.Post("/generate-all", audioHandler.GenerateBulk)
			r.Post("/clear-all", audioHandler.ClearAll)
		})

		r.Route(handler.RouteSegments, func(r chi.Router) {
			r.Get("/", segmentsHandler.List)
			r.Post("/generate-all", segmentsHandler.GenerateBulk)
		})

		r.Route(handler.RouteAnnouncements, func(r chi.Router) {
			r.Get("/", announcementsHandler.List)
			r.Post("/templates/{id}", announcementsHandler.UpdateTemplate)
			r.Post("/seed-translations", announcementsHandler.SeedTranslations)
			r.Get("/generator", announcementsHandler.GeneratorForm)
			r.Post("/generate", announcementsHandler.Generate)
		})

		r.Get(handler.RouteISLVideos, islHandler.List)

		r.Route(handler.RoutePicker, func(r chi.Router) {
			r.Get("/", pickerHandler.List)
			r.Post("/toggle/{id}", pickerHandler.Toggle)
			r.Post("/select-page", pickerHandler.SelectPage)
			r.Post("/deselect-page", pickerHandler.DeselectPage)
			r.Post("/clear", pickerHandler.Clear)
			r.Post("/apply", pickerHandler.Apply)
		})

		r.Get(handler.RouteProgress+handler.RouteParamID, progressHandler.Status)

		r.Get(handler.RouteEvents, eventsHandler.List)
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server",
			"addr", cfg.ServerAddr(),
			"env", cfg.Env,
			"version", versionInfo.String(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
