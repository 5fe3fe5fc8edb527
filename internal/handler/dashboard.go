// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"golang.org/x/sync/errgroup"

	"github.com/railvoice/railvoice/internal/gateway"
	"github.com/railvoice/railvoice/internal/model"
	"github.com/railvoice/railvoice/internal/monitor"
	"github.com/railvoice/railvoice/internal/render"
	"github.com/railvoice/railvoice/internal/store"
)

// DashboardHandler renders the admin landing page.
type DashboardHandler struct {
	backend        *gateway.Client
	renderer       *render.Renderer
	monitor        *monitor.Monitor
	queries        *store.Queries
	sessionManager *scs.SessionManager
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(backend *gateway.Client, renderer *render.Renderer, m *monitor.Monitor, db *sql.DB, sm *scs.SessionManager) *DashboardHandler {
	return &DashboardHandler{
		backend:        backend,
		renderer:       renderer,
		monitor:        m,
		queries:        store.New(db),
		sessionManager: sm,
	}
}

// DashboardData feeds the dashboard template.
type DashboardData struct {
	RouteCount        int
	TranslationCount  int
	AudioFileCount    int
	SegmentCount      int
	Backend           monitor.Status
	RecentEvents      []model.Event
	CountsUnavailable bool
}

// Dashboard renders entity counts, the backend status badge and recent
// event log entries. Counts come from four concurrent backend fetches;
// when any of them fails the tiles degrade instead of failing the page.
//
// The session token is re-verified against the backend first: an expired
// token would otherwise surface as a wall of gateway errors on every
// page. A transport failure skips the check; the status badge already
// tells the operator the backend is down.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	verify, err := h.backend.Verify(r.Context())
	if (err == nil && !verify.Valid) || (err != nil && !gateway.IsTransport(err)) {
		slog.Warn("session token no longer valid, signing out", "category", "auth")
		if err := h.sessionManager.Destroy(r.Context()); err != nil {
			slog.Error("failed to destroy session", "error", err)
		}
		http.Redirect(w, r, redirectLogin, http.StatusSeeOther)
		return
	}

	data := DashboardData{Backend: h.monitor.Status()}

	g, gctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		page, err := h.backend.ListRoutes(gctx, 1, 1)
		if err == nil {
			data.RouteCount = page.Total
		}
		return err
	})
	g.Go(func() error {
		translations, err := h.backend.AllTranslations(gctx)
		if err == nil {
			data.TranslationCount = len(translations)
		}
		return err
	})
	g.Go(func() error {
		files, err := h.backend.AudioFiles(gctx)
		if err == nil {
			data.AudioFileCount = len(files)
		}
		return err
	})
	g.Go(func() error {
		segments, err := h.backend.AudioSegments(gctx)
		if err == nil {
			data.SegmentCount = len(segments)
		}
		return err
	})
	if err := g.Wait(); err != nil {
		slog.Warn("dashboard counts unavailable", "error", err, "category", "gateway")
		data.CountsUnavailable = true
	}

	events, err := h.queries.ListEvents(r.Context(), store.ListEventsParams{Limit: 5})
	if err != nil {
		slog.Error("failed to load recent events", "error", err)
	}
	data.RecentEvents = events

	err = h.renderer.Render(w, r, "admin/dashboard", render.TemplateData{
		Title:     "Dashboard",
		ActiveNav: "dashboard",
		Data:      data,
	})
	if err != nil {
		logAndInternalError(w, "failed to render dashboard", "error", err)
	}
}
