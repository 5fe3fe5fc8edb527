// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures the server-side session store. Sessions hold
// the backend bearer token, the operator's flash messages and the current
// route selection, so they must survive restarts.
package session

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// Session keys used across handlers and middleware.
const (
	KeyAuthToken      = "auth_token"
	KeyAuthUser       = "auth_user"
	KeyRouteSelection = "route_selection"
	KeyFlash          = "flash"
	KeyFlashType      = "flash_type"
)

// New creates a session manager backed by the local SQLite database.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()
	sm.Store = sqlite3store.New(db)

	sm.Lifetime = 24 * time.Hour
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev // Secure cookies in production only

	return sm
}
