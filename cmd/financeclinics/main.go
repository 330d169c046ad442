// Copyright (c) 2025-2026 Oleg Ivanchenko
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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/traamakrishna3012/financeclinics/internal/api"
	"github.com/traamakrishna3012/financeclinics/internal/cache"
	"github.com/traamakrishna3012/financeclinics/internal/config"
	"github.com/traamakrishna3012/financeclinics/internal/handler"
	"github.com/traamakrishna3012/financeclinics/internal/logging"
	"github.com/traamakrishna3012/financeclinics/internal/metrics"
	"github.com/traamakrishna3012/financeclinics/internal/middleware"
	"github.com/traamakrishna3012/financeclinics/internal/render"
	"github.com/traamakrishna3012/financeclinics/internal/scheduler"
	"github.com/traamakrishna3012/financeclinics/internal/session"
	"github.com/traamakrishna3012/financeclinics/internal/store"
	"github.com/traamakrishna3012/financeclinics/internal/version"
	"github.com/traamakrishna3012/financeclinics/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// crudHandlers defines the standard CRUD handler methods.
type crudHandlers struct {
	List     http.HandlerFunc
	NewForm  http.HandlerFunc
	Create   http.HandlerFunc
	EditForm http.HandlerFunc
	Update   http.HandlerFunc
	Delete   http.HandlerFunc
}

// registerCRUD registers standard CRUD routes for an admin resource.
// Routes: GET /, GET /new, POST /, GET /{id}, POST /{id}, POST /{id}/delete
func registerCRUD(r chi.Router, base, baseID string, h crudHandlers) {
	r.Get(base, h.List)
	r.Get(base+handler.RouteSuffixNew, h.NewForm)
	r.Post(base, h.Create)
	r.Get(baseID, h.EditForm)
	r.Put(baseID, h.Update)
	r.Post(baseID, h.Update) // HTML forms can't send PUT
	r.Delete(baseID, h.Delete)
	r.Post(baseID+"/delete", h.Delete) // HTML forms can't send DELETE
}

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "FinanceClinics - public site and admin console\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FC_SESSION_SECRET      Session encryption key (required, min %d bytes)\n", config.MinSessionSecretLength)
		_, _ = fmt.Fprintf(os.Stderr, "  FC_API_BASE_URL        FinanceClinics API base URL (default: http://localhost:5000/api)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FC_SESSION_DB_PATH     Session database path (default: ./data/sessions.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FC_SERVER_PORT         Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FC_ENV                 Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FC_REDIS_URL           Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FC_CACHE_WARM_SCHEDULE Cron expression for content cache warming (default: @every 10m)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("financeclinics %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
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

	versionInfo := &version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	logger := logging.Setup(cfg.LogLevel)
	slog.SetDefault(logger)
	slog.Info("starting financeclinics",
		"version", versionInfo.Version,
		"commit", versionInfo.GitCommit,
		"env", cfg.Env,
	)

	// Ensure the session database directory exists
	dbDir := filepath.Dir(cfg.SessionDBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// Initialize the local session database
	slog.Info("initializing session database", "path", cfg.SessionDBPath)
	db, err := store.NewDB(cfg.SessionDBPath)
	if err != nil {
		return fmt.Errorf("initializing session database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing session database", "error", err)
		}
	}(db)

	slog.Info("running session database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("session database ready")

	// Initialize session manager backed by the session database
	sessionManager := session.New(db, cfg.IsDevelopment())
	credentials := session.NewSCSStore(sessionManager)
	slog.Info("session manager initialized")

	// Initialize the upstream API client. The token source reads the
	// access token from the caller's session on every request.
	client := api.New(cfg.APIBaseURL,
		api.WithTokenSource(credentials),
		api.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.APITimeout) * time.Second}),
	)
	slog.Info("API client initialized", "base_url", cfg.APIBaseURL, "timeout_s", cfg.APITimeout)

	// Content cache for public pages, services, posts, and settings
	backend := cache.NewCache(cache.CacheConfig{
		RedisURL:        cfg.RedisURL,
		Prefix:          cfg.CachePrefix,
		DefaultTTL:      time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:         cfg.CacheMaxSize,
		CleanupInterval: time.Minute,
	})
	defer func() { _ = backend.Close() }()
	contentCache := cache.NewContentCache(backend, client, time.Duration(cfg.CacheTTL)*time.Second)
	if cfg.UseRedisCache() {
		slog.Info("content cache initialized", "backend", "redis", "url", cache.SanitizeRedisURL(cfg.RedisURL))
	} else {
		slog.Info("content cache initialized", "backend", "memory", "max_size", cfg.CacheMaxSize)
	}

	// Initialize template renderer from embedded templates
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

	// Start the content cache warmer
	warmer := scheduler.New(contentCache, cfg.WarmSchedule, logger)
	if err := warmer.Start(); err != nil {
		return fmt.Errorf("starting cache warmer: %w", err)
	}
	defer warmer.Stop()
	slog.Info("cache warmer started", "schedule", cfg.WarmSchedule)

	// Authentication against the upstream API, with login protection
	auth := session.NewAuth(client, credentials)
	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	slog.Info("login protection initialized", "max_failed_attempts", 5, "lockout_duration", "15m")

	// Initialize handlers
	authHandler := handler.NewAuthHandler(auth, renderer, loginProtection)
	frontendHandler := handler.NewFrontendHandler(client, contentCache, renderer)
	adminHandler := handler.NewAdminHandler(client, renderer, credentials)
	leadsHandler := handler.NewLeadsHandler(client, renderer, credentials)
	pagesHandler := handler.NewPagesHandler(client, renderer, credentials)
	servicesHandler := handler.NewServicesHandler(client, renderer, credentials)
	blogHandler := handler.NewBlogHandler(client, renderer, credentials)
	usersHandler := handler.NewUsersHandler(client, renderer, credentials)
	settingsHandler := handler.NewSettingsHandler(client, renderer, credentials)
	misHandler := handler.NewMISHandler(client, renderer, credentials)
	healthHandler := handler.NewHealthHandler(db, client)

	// Create router
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.StripTrailingSlash)
	securityCfg := middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())
	securityCfg.ExcludePaths = []string{"/metrics", "/health"}
	r.Use(middleware.SecurityHeaders(securityCfg))
	r.Use(middleware.RequestPath)
	r.Use(metrics.Middleware)

	// Health and metrics endpoints sit outside the session stack
	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// Static assets from the embedded filesystem
	staticFS, err := fs.Sub(web.Static, "static/dist")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	csrfMiddleware := middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment()))
	slog.Info("CSRF protection initialized", "secure", !cfg.IsDevelopment())

	// Public frontend routes
	r.Group(func(r chi.Router) {
		r.Use(sessionManager.LoadAndSave)
		r.Use(csrfMiddleware)
		r.Use(middleware.LoadUser(auth))

		r.Get(handler.RouteRoot, frontendHandler.Home)
		r.Get(handler.RouteServices, frontendHandler.Services)
		r.Get(handler.RouteServicesSlug, frontendHandler.Service)
		r.Get(handler.RouteBlog, frontendHandler.Blog)
		r.Get(handler.RouteBlogSlug, frontendHandler.Post)
		r.Get(handler.RouteContact, frontendHandler.ContactForm)
		r.Post(handler.RouteContact, frontendHandler.Contact)
		// Catch-all for CMS pages (/about, /privacy, ...)
		r.Get(handler.RouteParamSlug, frontendHandler.Page)
	})

	// Admin routes
	r.Route("/admin", func(r chi.Router) {
		r.Use(sessionManager.LoadAndSave)
		r.Use(csrfMiddleware)
		r.Use(middleware.LoadUser(auth))

		// Auth routes (public)
		r.Get(handler.RouteLogin, authHandler.LoginForm)
		r.With(loginProtection.Middleware()).Post(handler.RouteLogin, authHandler.Login)
		r.Get(handler.RouteSignup, authHandler.SignupForm)
		r.With(loginProtection.Middleware()).Post(handler.RouteSignup, authHandler.Signup)
		r.Get(handler.RouteLogout, authHandler.Logout)
		r.Post(handler.RouteLogout, authHandler.Logout)

		// Authenticated routes (editor + admin)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth())

			r.Get(handler.RouteRoot, adminHandler.Dashboard)
			r.Get(handler.RouteChangePassword, authHandler.ChangePasswordForm)
			r.Post(handler.RouteChangePassword, authHandler.ChangePassword)

			// Lead management
			r.Get(handler.RouteLeads, leadsHandler.List)
			r.Get(handler.RouteLeads+"/export", leadsHandler.Export)
			r.Get(handler.RouteLeadsID, leadsHandler.Detail)
			r.Put(handler.RouteLeadsID, leadsHandler.Update)
			r.Post(handler.RouteLeadsID, leadsHandler.Update) // HTML forms can't send PUT
			r.Delete(handler.RouteLeadsID, leadsHandler.Delete)
			r.Post(handler.RouteLeadsID+"/delete", leadsHandler.Delete)

			// Content management
			registerCRUD(r, handler.RoutePages, handler.RoutePagesID, crudHandlers{
				List: pagesHandler.List, NewForm: pagesHandler.NewForm, Create: pagesHandler.Create,
				EditForm: pagesHandler.EditForm, Update: pagesHandler.Update, Delete: pagesHandler.Delete,
			})
			registerCRUD(r, handler.RouteServices, handler.RouteServicesID, crudHandlers{
				List: servicesHandler.List, NewForm: servicesHandler.NewForm, Create: servicesHandler.Create,
				EditForm: servicesHandler.EditForm, Update: servicesHandler.Update, Delete: servicesHandler.Delete,
			})
			registerCRUD(r, handler.RoutePosts, handler.RoutePostsID, crudHandlers{
				List: blogHandler.List, NewForm: blogHandler.NewForm, Create: blogHandler.Create,
				EditForm: blogHandler.EditForm, Update: blogHandler.Update, Delete: blogHandler.Delete,
			})
		})

		// Admin-only routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth())
			r.Use(middleware.RequireAdmin())

			// User management
			registerCRUD(r, handler.RouteUsers, handler.RouteUsersID, crudHandlers{
				List: usersHandler.List, NewForm: usersHandler.NewForm, Create: usersHandler.Create,
				EditForm: usersHandler.EditForm, Update: usersHandler.Update, Delete: usersHandler.Delete,
			})
			r.Post(handler.RouteUsersID+"/approve", usersHandler.Approve)

			// Site settings
			r.Get(handler.RouteSettings, settingsHandler.List)
			r.Put(handler.RouteSettings, settingsHandler.Update)
			r.Post(handler.RouteSettings, settingsHandler.Update) // HTML forms can't send PUT

			// MIS report templates
			registerCRUD(r, handler.RouteMIS, handler.RouteMISID, crudHandlers{
				List: misHandler.List, NewForm: misHandler.NewForm, Create: misHandler.Create,
				EditForm: misHandler.EditForm, Update: misHandler.Update, Delete: misHandler.Delete,
			})
			r.Get(handler.RouteMISID+"/rows", misHandler.Rows)
			r.Post(handler.RouteMISID+"/import", misHandler.Import)
			r.Get(handler.RouteMISID+"/export", misHandler.Export)
		})
	})

	// 404 Not Found handler renders the frontend 404 page. The renderer
	// pops flash messages from the session, so the session middleware
	// has to wrap it here as well.
	r.NotFound(sessionManager.LoadAndSave(http.HandlerFunc(frontendHandler.NotFound)).ServeHTTP)

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
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
