// Package handlers implements the HTTP surface: the public read-only JSON API
// and the admin endpoints that drive the content write actions and the
// diagnostics tool.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"casinoreviews/internal/content"
)

// writeJSON serializes data as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("failed to encode response", "error", err)
	}
}

// writeError sends {"error": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeResult sends a write action's Result with a status derived from it.
func writeResult(w http.ResponseWriter, res content.Result) {
	writeJSON(w, statusFor(res), res)
}

func statusFor(res content.Result) int {
	if res.Success {
		return http.StatusOK
	}
	switch res.Status {
	case content.StatusInvalid:
		return http.StatusBadRequest
	case content.StatusNotFound:
		return http.StatusNotFound
	case content.StatusConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
