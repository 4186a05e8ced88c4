package handlers

import (
	"net/http"

	"casinoreviews/internal/diagnostics"
)

// Diagnostics returns the read-only health report of the content tree.
func (a *Admin) Diagnostics(w http.ResponseWriter, r *http.Request) {
	report := a.diag.Run()
	writeJSON(w, http.StatusOK, report)
}

// FixDirectories creates missing directories and index files.
func (a *Admin) FixDirectories(w http.ResponseWriter, r *http.Request) {
	a.repair(w, r, a.diag.FixDirectories)
}

// FixSlugs reconciles the page index with the page files.
func (a *Admin) FixSlugs(w http.ResponseWriter, r *http.Request) {
	a.repair(w, r, a.diag.FixPageSlugs)
}

// SyncMedia reconciles the media registry with the images directory.
func (a *Admin) SyncMedia(w http.ResponseWriter, r *http.Request) {
	a.repair(w, r, a.diag.SyncMedia)
}

// repair runs one repair step. Repairs may touch any entity, so the whole
// response cache is dropped when anything changed.
func (a *Admin) repair(w http.ResponseWriter, r *http.Request, run func() *diagnostics.Result) {
	res := run()
	if len(res.Actions) > 0 {
		a.svc.InvalidateAll(r.Context())
	}
	status := http.StatusOK
	if !res.Success {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, res)
}
