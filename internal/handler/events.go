// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"
	"net/url"

	"github.com/railvoice/railvoice/internal/model"
	"github.com/railvoice/railvoice/internal/render"
	"github.com/railvoice/railvoice/internal/store"
	"github.com/railvoice/railvoice/internal/viewmodel"
)

const eventsPerPage = 25

// EventsHandler renders the local event log.
type EventsHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
}

// NewEventsHandler creates an EventsHandler.
func NewEventsHandler(db *sql.DB, renderer *render.Renderer) *EventsHandler {
	return &EventsHandler{
		queries:  store.New(db),
		renderer: renderer,
	}
}

// EventsData feeds the event log template.
type EventsData struct {
	Events     []model.Event
	Level      string
	Levels     []string
	Pagination viewmodel.Pagination
}

// List renders event log entries, newest first, with an optional level
// filter.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	level := r.URL.Query().Get("level")
	switch level {
	case model.EventLevelInfo, model.EventLevelWarning, model.EventLevelError:
	default:
		level = ""
	}
	page := viewmodel.ParsePageParam(r)

	total, err := h.queries.CountEvents(r.Context(), level)
	if err != nil {
		logAndInternalError(w, "failed to count events", "error", err)
		return
	}

	page, _ = viewmodel.NormalizePagination(page, total, eventsPerPage)
	events, err := h.queries.ListEvents(r.Context(), store.ListEventsParams{
		Level:  level,
		Limit:  eventsPerPage,
		Offset: (page - 1) * eventsPerPage,
	})
	if err != nil {
		logAndInternalError(w, "failed to list events", "error", err)
		return
	}

	params := url.Values{}
	if level != "" {
		params.Set("level", level)
	}

	data := EventsData{
		Events:     events,
		Level:      level,
		Levels:     []string{model.EventLevelInfo, model.EventLevelWarning, model.EventLevelError},
		Pagination: viewmodel.BuildPagination(page, total, eventsPerPage, "/admin/events", params),
	}

	err = h.renderer.Render(w, r, "admin/events", render.TemplateData{
		Title:     "Event Log",
		ActiveNav: "events",
		Data:      data,
	})
	if err != nil {
		logAndInternalError(w, "failed to render event log", "error", err)
	}
}
