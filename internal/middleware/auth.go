// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication and
// request logging.
package middleware

import (
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"

	"github.com/railvoice/railvoice/internal/session"
)

// Auth creates middleware that requires an authenticated session.
// Browser requests without a backend token are redirected to the login
// page; JSON requests get a plain 401 instead.
func Auth(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sm.GetString(r.Context(), session.KeyAuthToken)
			if token == "" {
				if wantsJSON(r) {
					http.Error(w, `{"error":"authentication required"}`, http.StatusUnauthorized)
					return
				}
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RedirectIfAuthenticated sends logged-in operators from the login page
// straight to the dashboard.
func RedirectIfAuthenticated(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sm.GetString(r.Context(), session.KeyAuthToken) != "" {
				http.Redirect(w, r, "/admin", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func wantsJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") ||
		r.Header.Get("X-Requested-With") == "XMLHttpRequest"
}
