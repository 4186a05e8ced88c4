// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the HTTP routing configuration, middleware
// chains, and the health endpoint.
package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"casinoreviews/internal/content"
	"casinoreviews/internal/diagnostics"
	"casinoreviews/internal/handlers"
	"casinoreviews/internal/middleware"
	"casinoreviews/internal/store"
)

func newTestRouter(t *testing.T, opts Options) (http.Handler, *store.Dir) {
	t.Helper()
	root := t.TempDir()
	dir := store.NewDir(filepath.Join(root, "content"), filepath.Join(root, "public"))
	svc := content.NewService(dir, nil, nil)
	opts.ImagesDir = dir.ImagesDir()
	r := New(handlers.NewAPI(svc, nil), handlers.NewAdmin(svc, diagnostics.New(dir)), opts)
	return r, dir
}

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)

	healthHandler(w, r)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("content-type: got %q, want %q", ct, "application/json")
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want %q", body["status"], "ok")
	}
}

func TestRouter_PublicRoutes(t *testing.T) {
	r, _ := newTestRouter(t, Options{})

	tests := []struct {
		path string
		want int
	}{
		{"/health", http.StatusOK},
		{"/api/casinos", http.StatusOK},
		{"/api/casinos/missing", http.StatusNotFound},
		{"/api/pages", http.StatusOK},
		{"/api/pages/missing", http.StatusNotFound},
		{"/api/home", http.StatusOK},
		{"/nowhere", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.want {
				t.Errorf("GET %s: got %d, want %d", tt.path, rec.Code, tt.want)
			}
			if rec.Header().Get("X-Request-ID") == "" {
				t.Error("X-Request-ID should be set")
			}
			if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
				t.Error("secure headers should be applied")
			}
		})
	}
}

func TestRouter_NotFoundIsJSON(t *testing.T) {
	r, _ := newTestRouter(t, Options{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	if body := rec.Body.String(); body != `{"error":"Not found"}` {
		t.Errorf("body: got %q", body)
	}
}

func TestRouter_ServesImagesWithoutListing(t *testing.T) {
	r, dir := newTestRouter(t, Options{})
	if err := os.MkdirAll(dir.ImagesDir(), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir.ImagesDir(), "logo.gif"), []byte("GIF89a"), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/images/logo.gif", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "GIF89a" {
		t.Errorf("image: got %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/images/", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("directory listing: got %d, want 404", rec.Code)
	}
}

func TestRouter_AdminRequiresBasicAuth(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	r, _ := newTestRouter(t, Options{AdminUser: "editor", AdminPasswordHash: string(hash)})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/casinos", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: got %d, want 401", rec.Code)
	}
	if rec.Header().Get("Cache-Control") != "no-store" {
		t.Error("admin responses should not be cached")
	}

	form := url.Values{"name": {"Lucky Star"}, "affiliateLink": {"https://example.com"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/casinos", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth("editor", "s3cret")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("authenticated create: got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/casinos/lucky-star", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("public read after create: got %d", rec.Code)
	}
}

func TestRouter_AdminOpenWithoutHash(t *testing.T) {
	r, _ := newTestRouter(t, Options{})

	for _, path := range []string{"/admin", "/admin/", "/admin/pages", "/admin/media", "/admin/diagnostics"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s: got %d, want 200", path, rec.Code)
		}
	}
}

func TestRouter_AdminRateLimited(t *testing.T) {
	rl := middleware.NewRateLimiter(2, time.Minute)
	defer rl.Stop()
	r, _ := newTestRouter(t, Options{AdminLimiter: rl})

	codes := make([]int, 3)
	for i := range codes {
		req := httptest.NewRequest(http.MethodGet, "/admin/casinos", nil)
		req.RemoteAddr = "10.0.0.7:5555"
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		codes[i] = rec.Code
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes: got %v, want [200 200 429]", codes)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/casinos", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("public api should not be limited: got %d", rec.Code)
	}
}
