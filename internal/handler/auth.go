// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler contains the HTTP handlers for every dashboard view.
// Handlers hold no entity state: each request fetches what it needs from
// the announcement backend, derives the view model and renders.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/railvoice/railvoice/internal/gateway"
	"github.com/railvoice/railvoice/internal/render"
	"github.com/railvoice/railvoice/internal/session"
)

// AuthHandler handles login and logout against the backend auth API.
type AuthHandler struct {
	backend        *gateway.Client
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(backend *gateway.Client, renderer *render.Renderer, sm *scs.SessionManager) *AuthHandler {
	return &AuthHandler{
		backend:        backend,
		renderer:       renderer,
		sessionManager: sm,
	}
}

// LoginForm renders the login page.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	err := h.renderer.Render(w, r, "auth/login", render.TemplateData{
		Title: "Sign In",
	})
	if err != nil {
		logAndInternalError(w, "failed to render login page", "error", err)
	}
}

// Login handles the login form submission. The backend issues the bearer
// token; the dashboard only stores it in the session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectLogin) {
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")
	if username == "" || password == "" {
		flashError(w, r, h.renderer, redirectLogin, "Username and password are required")
		return
	}

	token, err := h.backend.Login(r.Context(), username, password)
	if err != nil {
		slog.Warn("login failed", "username", username, "error", err, "category", "auth")
		flashError(w, r, h.renderer, redirectLogin, gateway.UserMessage(err))
		return
	}

	// Renew the session token on privilege change
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		logAndInternalError(w, "failed to renew session token", "error", err)
		return
	}

	h.sessionManager.Put(r.Context(), session.KeyAuthToken, token.AccessToken)
	h.sessionManager.Put(r.Context(), session.KeyAuthUser, username)
	h.backend.SetToken(token.AccessToken)

	slog.Info("operator logged in", "username", username)
	http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
}

// Logout destroys the session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	username := h.sessionManager.GetString(r.Context(), session.KeyAuthUser)

	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		logAndInternalError(w, "failed to destroy session", "error", err)
		return
	}

	slog.Info("operator logged out", "username", username)
	http.Redirect(w, r, redirectLogin, http.StatusSeeOther)
}
