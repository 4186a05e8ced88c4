// Package router sets up all HTTP routes and middleware chains for the
// casino reviews server. It organizes routes into the public API, static
// images, and the authenticated admin group.
package router

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"casinoreviews/internal/handlers"
	"casinoreviews/internal/middleware"
)

// Options configures the parts of the router that depend on deployment.
type Options struct {
	// ImagesDir is served under /images/.
	ImagesDir string

	// AdminUser and AdminPasswordHash guard /admin. An empty hash leaves
	// the admin group open, which Load only permits outside production.
	AdminUser         string
	AdminPasswordHash string

	// AdminLimiter rate-limits the admin group. May be nil.
	AdminLimiter *middleware.RateLimiter
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(api *handlers.API, admin *handlers.Admin, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", healthHandler)

	// Public read API.
	r.Route("/api", func(r chi.Router) {
		r.Get("/casinos", api.Casinos)
		r.Get("/casinos/{id}", api.Casino)
		r.Get("/pages", api.Pages)
		r.Get("/pages/{slug}", api.Page)
		r.Get("/home", api.Home)
	})

	// Uploaded images.
	r.Handle("/images/*", http.StripPrefix("/images/", noDirListing(http.FileServer(http.Dir(opts.ImagesDir)))))

	// Admin back-office.
	r.Route("/admin", func(r chi.Router) {
		if opts.AdminLimiter != nil {
			r.Use(opts.AdminLimiter.Middleware)
		}
		if opts.AdminPasswordHash != "" {
			r.Use(middleware.BasicAuth("admin", opts.AdminUser, opts.AdminPasswordHash))
		} else {
			slog.Warn("admin routes are not password protected")
		}

		r.Get("/", admin.Dashboard)

		r.Route("/casinos", func(r chi.Router) {
			r.Get("/", admin.CasinosList)
			r.Post("/", admin.CasinoCreate)
			r.Get("/{id}", admin.CasinoGet)
			r.Put("/{id}", admin.CasinoUpdate)
			r.Post("/{id}", admin.CasinoUpdate)
			r.Delete("/{id}", admin.CasinoDelete)
		})

		r.Route("/pages", func(r chi.Router) {
			r.Get("/", admin.PagesList)
			r.Post("/", admin.PageCreate)
			r.Get("/{id}", admin.PageGet)
			r.Put("/{id}", admin.PageUpdate)
			r.Post("/{id}", admin.PageUpdate)
			r.Delete("/{id}", admin.PageDelete)
		})

		r.Route("/media", func(r chi.Router) {
			r.Get("/", admin.MediaList)
			r.Post("/", admin.MediaUpload)
			r.Delete("/{name}", admin.MediaDelete)
		})

		r.Route("/diagnostics", func(r chi.Router) {
			r.Get("/", admin.Diagnostics)
			r.Post("/fix-directories", admin.FixDirectories)
			r.Post("/fix-slugs", admin.FixSlugs)
			r.Post("/sync-media", admin.SyncMedia)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Not found"}`))
	})

	return r
}

// noDirListing answers 404 for directory paths instead of listing them.
func noDirListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
