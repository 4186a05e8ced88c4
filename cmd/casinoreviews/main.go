// Package main is the entry point for the casino reviews server.
// It loads configuration, connects to optional services, checks the content
// tree, sets up routing, and starts the HTTP server with graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"casinoreviews/internal/cache"
	"casinoreviews/internal/config"
	"casinoreviews/internal/content"
	"casinoreviews/internal/diagnostics"
	"casinoreviews/internal/handlers"
	"casinoreviews/internal/middleware"
	"casinoreviews/internal/router"
	"casinoreviews/internal/storage"
	"casinoreviews/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"content_dir", cfg.ContentDir,
		"public_dir", cfg.PublicDir,
	)

	dir := store.NewDir(cfg.ContentDir, cfg.PublicDir)
	diag := diagnostics.New(dir)

	// Bring the content tree into shape before serving. Only missing
	// structure is created; entity files are left to the admin repairs.
	res := diag.FixDirectories()
	for _, a := range res.Actions {
		slog.Info("content tree repair", "success", a.Success, "action", a.Message)
	}
	if !res.Success {
		slog.Error("content tree could not be prepared", "content_dir", cfg.ContentDir)
		os.Exit(1)
	}
	if report := diag.Run(); !report.Healthy() {
		slog.Warn("content tree has issues", "count", len(report.Issues), "first", report.Issues[0])
	}

	// Valkey response cache (optional; the API serves from disk without it).
	var responseCache *cache.ResponseCache
	var invalidator content.Invalidator
	if cfg.CacheEnabled() {
		valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword, cfg.ValkeyDB)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
		responseCache = cache.NewResponseCache(valkeyClient, cfg.CacheTTL)
		invalidator = responseCache
		slog.Info("valkey response cache enabled", "host", cfg.ValkeyHost, "db", cfg.ValkeyDB, "ttl", cfg.CacheTTL)
	} else {
		slog.Warn("valkey not configured, api responses are not cached")
	}

	// S3-compatible image mirror (optional).
	var mirror content.Mirror
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3Prefix, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient != nil {
		mirror = storageClient
		slog.Info("s3 image mirror enabled", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	}

	svc := content.NewService(dir, invalidator, mirror)

	limiter := middleware.NewRateLimiter(cfg.AdminRateLimit, time.Minute)
	defer limiter.Stop()

	r := router.New(handlers.NewAPI(svc, responseCache), handlers.NewAdmin(svc, diag), router.Options{
		ImagesDir:         dir.ImagesDir(),
		AdminUser:         cfg.AdminUser,
		AdminPasswordHash: cfg.AdminPasswordHash,
		AdminLimiter:      limiter,
	})

	// ReadTimeout must cover a 5 MB image upload on a slow link.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
