// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"casinoreviews/internal/cache"
	"casinoreviews/internal/content"
	"casinoreviews/internal/models"
)

// API groups the public read-only JSON endpoints. Successful responses are
// cached in Valkey by request path when a response cache is configured.
type API struct {
	svc   *content.Service
	cache *cache.ResponseCache
}

// NewAPI creates the public API handler group. responseCache may be nil.
func NewAPI(svc *content.Service, responseCache *cache.ResponseCache) *API {
	return &API{svc: svc, cache: responseCache}
}

// pageView is a page together with the casinos its casino_list sections
// reference, keyed by the ID used in the section.
type pageView struct {
	Page    *models.Page              `json:"page"`
	Casinos map[string]*models.Casino `json:"casinos"`
}

// Casinos lists the casino index.
func (a *API) Casinos(w http.ResponseWriter, r *http.Request) {
	a.serveCached(w, r, "", func() (any, bool) {
		return a.svc.ListCasinos(), true
	})
}

// Casino returns one casino by ID or slug.
func (a *API) Casino(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "id")
	a.serveCached(w, r, "Casino not found", func() (any, bool) {
		c := a.svc.GetCasino(key)
		return c, c != nil
	})
}

// Pages lists the page index.
func (a *API) Pages(w http.ResponseWriter, r *http.Request) {
	a.serveCached(w, r, "", func() (any, bool) {
		return a.svc.ListPages(), true
	})
}

// Page returns one page by slug with its referenced casinos resolved.
func (a *API) Page(w http.ResponseWriter, r *http.Request) {
	slugParam := chi.URLParam(r, "slug")
	a.serveCached(w, r, "Page not found", func() (any, bool) {
		p := a.svc.GetPage(slugParam)
		if p == nil {
			return nil, false
		}
		return a.view(p), true
	})
}

// Home returns the homepage with its referenced casinos resolved.
func (a *API) Home(w http.ResponseWriter, r *http.Request) {
	a.serveCached(w, r, "Page not found", func() (any, bool) {
		p := a.svc.GetHomePage()
		if p == nil {
			return nil, false
		}
		return a.view(p), true
	})
}

func (a *API) view(p *models.Page) pageView {
	var ids []string
	for _, s := range p.Sections {
		if list, ok := s.(*models.CasinoListSection); ok {
			ids = append(ids, list.CasinoIDs...)
		}
	}
	v := pageView{Page: p, Casinos: make(map[string]*models.Casino, len(ids))}
	for _, c := range a.svc.ListCasinosByIDs(ids) {
		v.Casinos[c.ID] = c
	}
	// Sections may reference a casino by slug.
	for _, id := range ids {
		if _, ok := v.Casinos[id]; ok {
			continue
		}
		for _, c := range v.Casinos {
			if c.Slug == id {
				v.Casinos[id] = c
				break
			}
		}
	}
	return v
}

// serveCached answers from the response cache when possible. On a miss it
// builds the body; a false result becomes an uncached 404 carrying notFound.
func (a *API) serveCached(w http.ResponseWriter, r *http.Request, notFound string, build func() (any, bool)) {
	ctx := r.Context()
	path := r.URL.Path

	if a.cache != nil {
		if body, ok := a.cache.Get(ctx, path); ok {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.Header().Set("X-Cache", "HIT")
			w.Write(body)
			return
		}
	}

	data, ok := build()
	if !ok {
		writeError(w, http.StatusNotFound, notFound)
		return
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		slog.Error("failed to encode api response", "path", path, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	if a.cache != nil {
		a.cache.Set(ctx, path, buf.Bytes())
		w.Header().Set("X-Cache", "MISS")
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write(buf.Bytes())
}
