// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"casinoreviews/internal/content"
	"casinoreviews/internal/diagnostics"
)

// Admin groups the back-office endpoints. Every write goes through the
// content service and answers with its Result.
type Admin struct {
	svc  *content.Service
	diag *diagnostics.Tool
}

// NewAdmin creates the admin handler group.
func NewAdmin(svc *content.Service, diag *diagnostics.Tool) *Admin {
	return &Admin{svc: svc, diag: diag}
}

// dashboardView summarizes the content tree for the admin landing page.
type dashboardView struct {
	Casinos int  `json:"casinos"`
	Pages   int  `json:"pages"`
	Images  int  `json:"images"`
	Issues  int  `json:"issues"`
	Healthy bool `json:"healthy"`
}

// Dashboard reports entity counts and the number of diagnostics issues.
func (a *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	report := a.diag.Run()
	writeJSON(w, http.StatusOK, dashboardView{
		Casinos: len(a.svc.ListCasinos()),
		Pages:   len(a.svc.ListPages()),
		Images:  len(a.svc.ListImages()),
		Issues:  len(report.Issues),
		Healthy: report.Healthy(),
	})
}

// --- Casinos ---

// CasinosList returns the casino index.
func (a *Admin) CasinosList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.svc.ListCasinos())
}

// CasinoGet returns the full casino record.
func (a *Admin) CasinoGet(w http.ResponseWriter, r *http.Request) {
	c := a.svc.GetCasino(chi.URLParam(r, "id"))
	if c == nil {
		writeError(w, http.StatusNotFound, "Casino not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// CasinoCreate handles the casino create form.
func (a *Admin) CasinoCreate(w http.ResponseWriter, r *http.Request) {
	form, ok := a.form(w, r, casinoLimits)
	if !ok {
		return
	}
	writeResult(w, a.svc.CreateCasino(r.Context(), content.CasinoInputFromForm(form)))
}

// CasinoUpdate handles the casino edit form. Omitted fields keep their
// stored values.
func (a *Admin) CasinoUpdate(w http.ResponseWriter, r *http.Request) {
	form, ok := a.form(w, r, casinoLimits)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	writeResult(w, a.svc.UpdateCasino(r.Context(), id, content.CasinoInputFromForm(form)))
}

// CasinoDelete removes a casino.
func (a *Admin) CasinoDelete(w http.ResponseWriter, r *http.Request) {
	writeResult(w, a.svc.DeleteCasino(r.Context(), chi.URLParam(r, "id")))
}

// --- Pages ---

// PagesList returns the page index.
func (a *Admin) PagesList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.svc.ListPages())
}

// PageGet returns the full page record by ID.
func (a *Admin) PageGet(w http.ResponseWriter, r *http.Request) {
	p := a.svc.GetPageByID(chi.URLParam(r, "id"))
	if p == nil {
		writeError(w, http.StatusNotFound, "Page not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// PageCreate handles the page create form.
func (a *Admin) PageCreate(w http.ResponseWriter, r *http.Request) {
	form, ok := a.form(w, r, pageLimits)
	if !ok {
		return
	}
	writeResult(w, a.svc.CreatePage(r.Context(), content.PageInputFromForm(form)))
}

// PageUpdate handles the page edit form.
func (a *Admin) PageUpdate(w http.ResponseWriter, r *http.Request) {
	form, ok := a.form(w, r, pageLimits)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	writeResult(w, a.svc.UpdatePage(r.Context(), id, content.PageInputFromForm(form)))
}

// PageDelete removes a page. The homepage cannot be deleted.
func (a *Admin) PageDelete(w http.ResponseWriter, r *http.Request) {
	writeResult(w, a.svc.DeletePage(r.Context(), chi.URLParam(r, "id")))
}

// form reads the write body and enforces field length limits. On failure it
// writes a 400 Result and reports false.
func (a *Admin) form(w http.ResponseWriter, r *http.Request, limits []fieldLimit) (map[string][]string, bool) {
	form, err := readForm(w, r)
	if err != nil {
		slog.Debug("rejected admin form", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusBadRequest, content.Result{Message: formErrorMessage(err)})
		return nil, false
	}
	if msg := validateLengths(form, limits); msg != "" {
		writeJSON(w, http.StatusBadRequest, content.Result{Message: msg})
		return nil, false
	}
	return form, true
}
