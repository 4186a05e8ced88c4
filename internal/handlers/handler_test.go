// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Each test gets its own content tree under t.TempDir().
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"casinoreviews/internal/content"
	"casinoreviews/internal/diagnostics"
	"casinoreviews/internal/store"
)

type testEnv struct {
	Dir   *store.Dir
	Svc   *content.Service
	API   *API
	Admin *Admin
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()
	dir := store.NewDir(filepath.Join(root, "content"), filepath.Join(root, "public"))
	svc := content.NewService(dir, nil, nil)
	return &testEnv{
		Dir:   dir,
		Svc:   svc,
		API:   NewAPI(svc, nil),
		Admin: NewAdmin(svc, diagnostics.New(dir)),
	}
}

// withParams attaches chi URL parameters to the request, as the router would.
func withParams(r *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) content.Result {
	t.Helper()
	var res content.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode result %q: %v", rec.Body.String(), err)
	}
	return res
}

// mustCreateCasino creates a casino through the service and returns its ID.
func mustCreateCasino(t *testing.T, env *testEnv, name, slug string) string {
	t.Helper()
	res := env.Svc.CreateCasino(context.Background(), content.CasinoInput{
		Name:          &name,
		Slug:          &slug,
		AffiliateLink: ptr("https://example.com/" + slug),
		Rating:        ptr("4.5"),
	})
	if !res.Success {
		t.Fatalf("create casino %q: %s", name, res.Message)
	}
	return res.ID
}

// mustCreatePage creates a page through the service and returns its ID.
func mustCreatePage(t *testing.T, env *testEnv, title, slug, sections string, homepage bool) string {
	t.Helper()
	in := content.PageInput{Title: &title, Slug: &slug}
	if sections != "" {
		in.Sections = &sections
	}
	if homepage {
		in.IsHomepage = ptr("true")
	}
	res := env.Svc.CreatePage(context.Background(), in)
	if !res.Success {
		t.Fatalf("create page %q: %s", title, res.Message)
	}
	return res.ID
}

func ptr(s string) *string { return &s }

// pngBytes encodes a small solid PNG.
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}
