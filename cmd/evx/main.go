// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/events-explorer/internal/cache"
	"github.com/olegiv/events-explorer/internal/catalog"
	"github.com/olegiv/events-explorer/internal/config"
	"github.com/olegiv/events-explorer/internal/export"
	"github.com/olegiv/events-explorer/internal/handler"
	"github.com/olegiv/events-explorer/internal/handler/api"
	"github.com/olegiv/events-explorer/internal/logging"
	"github.com/olegiv/events-explorer/internal/metrics"
	"github.com/olegiv/events-explorer/internal/middleware"
	"github.com/olegiv/events-explorer/internal/render"
	"github.com/olegiv/events-explorer/internal/seo"
	"github.com/olegiv/events-explorer/internal/store"
	"github.com/olegiv/events-explorer/internal/version"
	"github.com/olegiv/events-explorer/web"
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
	exportTarget := flag.String("export", "", "Write a static copy of the site to `TARGET` (directory or .zip) and exit")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "evx - Events Explorer\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  EVX_SERVER_HOST        Listen host (default: localhost)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  EVX_SERVER_PORT        Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  EVX_ENV                Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  EVX_LOG_LEVEL          debug|info|warn|error (default: info)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  EVX_LOG_FORMAT         text|json (default: text)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  EVX_DATA_PATH          Event file (.json, .yaml, .ics); empty uses built-in data\n")
		_, _ = fmt.Fprintf(os.Stderr, "  EVX_SITE_NAME          Site name (default: Events Explorer)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  EVX_SITE_URL           Public base URL (default: http://localhost:8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  EVX_REDIS_URL          Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  EVX_CACHE_TTL          Cache TTL in seconds (default: 3600)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  EVX_RATE_LIMIT         Requests per second per client (default: 10)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}.WithDefaults()
	if *showVersion {
		_, _ = fmt.Printf("evx %s\n", info.String())
		os.Exit(0)
	}

	if err := run(info, *exportTarget); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(info version.Info, exportTarget string) error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, logCounts := logging.New(os.Stdout, logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)
	slog.SetDefault(logger)

	events, err := store.Load(store.Source{Path: cfg.DataPath, Logger: logger})
	if err != nil {
		return fmt.Errorf("loading events: %w", err)
	}
	cat := catalog.New(events)
	slog.Info("catalog loaded", "events", cat.Len(), "locations", len(cat.Locations()))

	renderer, err := render.New(render.Config{
		TemplatesFS: web.TemplateFiles(),
		SiteName:    cfg.SiteName,
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}
	for _, name := range []string{handler.PageHome, handler.PageEvent, handler.PageNotFound} {
		if !renderer.Has(name) {
			return fmt.Errorf("missing page template %q", name)
		}
	}

	site := seo.SiteConfig{SiteName: cfg.SiteName, SiteURL: cfg.SiteURL}
	pages := handler.NewPageBuilder(cat, renderer, site)

	// Development sites keep crawlers out.
	disallowAll := cfg.IsDevelopment()

	if exportTarget != "" {
		return runExport(pages, disallowAll, exportTarget, logger)
	}

	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	cacheCfg := cache.Config{
		Prefix:     cfg.CachePrefix,
		DefaultTTL: cacheTTL,
		MaxSize:    cfg.CacheMaxSize,
	}
	if cfg.UseRedisCache() {
		cacheCfg.RedisURL = cfg.RedisURL
	}
	pageCache := cache.New(cacheCfg, logger)
	defer func() {
		if err := pageCache.Close(); err != nil {
			slog.Warn("closing cache", "error", err)
		}
	}()

	frontendHandler := handler.NewFrontendHandler(pages, pageCache, cacheTTL, logger)
	seoHandler := handler.NewSEOHandler(pages, pageCache, cacheTTL, disallowAll, logger)
	healthHandler := handler.NewHealthHandler(cat, pageCache, logCounts, info)
	apiHandler := api.NewHandler(cat, pageCache, logCounts, info)
	collector := metrics.New(cat, pageCache)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(logging.RequestLogger(logger))
	r.Use(collector.Middleware)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	// HEAD requests come from uptime monitors
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(30*time.Second, logger))
	// Redirect /path/ to /path (301)
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))

	// Probes and metrics stay outside rate limiting for monitors
	r.Get(handler.RouteHealth, healthHandler.Health)
	r.Get(handler.RouteHealthLive, healthHandler.Liveness)
	r.Get(handler.RouteHealthReady, healthHandler.Readiness)
	r.Handle(handler.RouteMetrics, collector.Handler())

	r.Handle(handler.RouteStatic, middleware.StaticCache(31536000)(
		http.StripPrefix("/static/dist/", http.FileServer(http.FS(web.StaticFiles()))),
	))

	publicRateLimiter := middleware.NewGlobalRateLimiter(cfg.RateLimit, cfg.RateBurst, logger)
	slog.Info("public rate limiter initialized", "rate", cfg.RateLimit, "burst", cfg.RateBurst)

	// Public pages
	r.Group(func(r chi.Router) {
		r.Use(publicRateLimiter.HTMLMiddleware())
		r.Use(middleware.CSRF(middleware.DefaultCSRFConfig(cfg.SiteURL, cfg.IsDevelopment()), logger))

		r.With(middleware.NoStore).Post(handler.RouteFilter, frontendHandler.Filter)

		r.Group(func(r chi.Router) {
			r.Use(middleware.PageCache(300))
			r.Get(handler.RouteRoot, frontendHandler.Home)
			r.Get(handler.RouteEvent, frontendHandler.Event)
			r.Get(handler.RouteEventCalendar, frontendHandler.Calendar)
			r.Get(handler.RouteCalendarFeed, frontendHandler.CalendarFeed)
		})
		r.Get(handler.RouteSitemap, seoHandler.Sitemap)
		r.Get(handler.RouteRobots, seoHandler.Robots)
	})

	// REST API v1 routes (read-only)
	r.Route("/api/"+api.Version, func(r chi.Router) {
		r.Use(publicRateLimiter.Middleware())
		r.NotFound(api.NotFound)
		r.MethodNotAllowed(api.MethodNotAllowed)

		r.Get("/status", apiHandler.Status)
		r.Get("/events", apiHandler.ListEvents)
		r.Get("/events/{"+handler.RouteParamID+"}", apiHandler.GetEvent)
		r.Get("/locations", apiHandler.ListLocations)
	})
	slog.Info("REST API mounted", "prefix", "/api/"+api.Version)

	r.NotFound(frontendHandler.NotFound)

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
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", info.Version)
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

// runExport writes the static site and reports what was written.
func runExport(pages *handler.PageBuilder, disallowAll bool, target string, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	exporter := export.NewExporter(pages, web.Static, disallowAll, logger)
	res, err := exporter.ExportTo(ctx, target)
	if err != nil {
		return fmt.Errorf("exporting site: %w", err)
	}

	slog.Info("site exported",
		"target", target,
		"files", res.Files,
		"events", res.Events,
		"calendars", res.Calendars,
		"undated", len(res.Undated),
	)
	return nil
}
