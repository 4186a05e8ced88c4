// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

// BasicAuth guards the admin surface with HTTP basic auth. The password is
// checked against a bcrypt hash; the username comparison is constant-time
// and bcrypt runs even on a username mismatch.
func BasicAuth(realm, user, passwordHash string) func(http.Handler) http.Handler {
	challenge := `Basic realm="` + realm + `", charset="UTF-8"`
	hash := []byte(passwordHash)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUser, gotPass, ok := r.BasicAuth()
			if ok {
				userOK := subtle.ConstantTimeCompare([]byte(gotUser), []byte(user)) == 1
				passOK := bcrypt.CompareHashAndPassword(hash, []byte(gotPass)) == nil
				if userOK && passOK {
					next.ServeHTTP(w, r)
					return
				}
				slog.Warn("admin auth failed",
					"user", gotUser,
					"remote", clientIP(r),
					"path", r.URL.Path,
				)
			}

			w.Header().Set("WWW-Authenticate", challenge)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Unauthorized"}` + "\n"))
		})
	}
}
