// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/alexedwards/scs/v2"

	"github.com/railvoice/railvoice/internal/gateway"
	"github.com/railvoice/railvoice/internal/model"
	"github.com/railvoice/railvoice/internal/render"
	"github.com/railvoice/railvoice/internal/viewmodel"
)

// resolveBatchSize is how many selected routes are re-fetched per batch
// when a selection is applied. Batches fail independently.
const resolveBatchSize = 10

// PickerHandler handles the route picker: a paginated, searchable route
// list with checkbox selection that survives page changes.
type PickerHandler struct {
	backend        *gateway.Client
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
	perPage        int
}

// NewPickerHandler creates a PickerHandler.
func NewPickerHandler(backend *gateway.Client, renderer *render.Renderer, sm *scs.SessionManager, perPage int) *PickerHandler {
	return &PickerHandler{
		backend:        backend,
		renderer:       renderer,
		sessionManager: sm,
		perPage:        perPage,
	}
}

// PickerData feeds the picker template.
type PickerData struct {
	Routes          []model.TrainRoute
	Selected        map[int64]bool
	SelectedCount   int
	AllPageSelected bool
	Query           string
	Pagination      viewmodel.Pagination
}

// List renders the picker page. The stored selection is pruned against
// the live collection first, so deleted routes can never stay selected.
func (h *PickerHandler) List(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	page := viewmodel.ParsePageParam(r)

	routes, err := h.fetchRoutes(r.Context(), query)
	if err != nil {
		flashGatewayError(w, r, h.renderer, redirectAdmin, err, "picker listing failed")
		return
	}

	sel := loadSelection(r.Context(), h.sessionManager)
	sel.Prune(routeIDs(routes))
	saveSelection(r.Context(), h.sessionManager, sel)

	page, _ = viewmodel.NormalizePagination(page, len(routes), h.perPage)
	pageRoutes := viewmodel.PageSlice(routes, page, h.perPage)
	pageIDs := routeIDs(pageRoutes)

	selected := make(map[int64]bool, len(pageIDs))
	for _, id := range pageIDs {
		selected[id] = sel.Contains(id)
	}

	params := url.Values{}
	if query != "" {
		params.Set("query", query)
	}

	data := PickerData{
		Routes:          pageRoutes,
		Selected:        selected,
		SelectedCount:   sel.Len(),
		AllPageSelected: sel.AllOnPageSelected(pageIDs),
		Query:           query,
		Pagination:      viewmodel.BuildPagination(page, len(routes), h.perPage, redirectPicker, params),
	}

	err = h.renderer.Render(w, r, "admin/picker", render.TemplateData{
		Title:     "Select Routes",
		ActiveNav: "picker",
		Data:      data,
	})
	if err != nil {
		logAndInternalError(w, "failed to render picker", "error", err)
	}
}

// Toggle flips one route's selection and returns the new state as JSON.
func (h *PickerHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid route id"})
		return
	}

	sel := loadSelection(r.Context(), h.sessionManager)
	sel.Toggle(id)
	saveSelection(r.Context(), h.sessionManager, sel)

	writeJSON(w, http.StatusOK, map[string]any{
		"selected": sel.Contains(id),
		"count":    sel.Len(),
	})
}

// SelectPage adds every id posted for the current page to the selection.
func (h *PickerHandler) SelectPage(w http.ResponseWriter, r *http.Request) {
	h.updatePage(w, r, func(sel *viewmodel.Selection, ids []int64) {
		sel.SelectPage(ids)
	})
}

// DeselectPage removes every id posted for the current page.
func (h *PickerHandler) DeselectPage(w http.ResponseWriter, r *http.Request) {
	h.updatePage(w, r, func(sel *viewmodel.Selection, ids []int64) {
		sel.DeselectPage(ids)
	})
}

func (h *PickerHandler) updatePage(w http.ResponseWriter, r *http.Request, apply func(*viewmodel.Selection, []int64)) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid form data"})
		return
	}

	var ids []int64
	for _, raw := range r.Form["ids"] {
		if id := int64(parseIntOr(raw, 0)); id > 0 {
			ids = append(ids, id)
		}
	}

	sel := loadSelection(r.Context(), h.sessionManager)
	apply(sel, ids)
	saveSelection(r.Context(), h.sessionManager, sel)

	writeJSON(w, http.StatusOK, map[string]any{"count": sel.Len()})
}

// Clear empties the selection.
func (h *PickerHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sel := loadSelection(r.Context(), h.sessionManager)
	sel.Clear()
	saveSelection(r.Context(), h.sessionManager, sel)

	flashSuccess(w, r, h.renderer, redirectPicker, "Selection cleared")
}

// ApplyData feeds the apply result page.
type ApplyData struct {
	Requested int
	Resolved  []model.TrainRoute
	Skipped   int
}

// Apply resolves the selection to full route records by re-fetching them
// in independent batches, renders the resolved set and clears the
// selection. A failed batch is logged and skipped; the rest still apply.
func (h *PickerHandler) Apply(w http.ResponseWriter, r *http.Request) {
	sel := loadSelection(r.Context(), h.sessionManager)
	if sel.Len() == 0 {
		flashError(w, r, h.renderer, redirectPicker, "No routes selected")
		return
	}
	requested := sel.Len()

	resolved := viewmodel.ResolveSelection(r.Context(), sel, resolveBatchSize,
		func(ctx context.Context, ids []int64) ([]model.TrainRoute, error) {
			routes := make([]model.TrainRoute, 0, len(ids))
			for _, id := range ids {
				route, err := h.backend.GetRoute(ctx, id)
				if err != nil {
					return nil, err
				}
				routes = append(routes, route)
			}
			return routes, nil
		})

	sel.Clear()
	saveSelection(r.Context(), h.sessionManager, sel)

	data := ApplyData{
		Requested: requested,
		Resolved:  resolved,
		Skipped:   requested - len(resolved),
	}
	if data.Skipped > 0 {
		h.renderer.SetFlash(r,
			fmt.Sprintf("%d of %d selected routes could not be resolved", data.Skipped, requested),
			"warning")
	}

	err := h.renderer.Render(w, r, "admin/picker_apply", render.TemplateData{
		Title:     "Selected Routes",
		ActiveNav: "picker",
		Data:      data,
	})
	if err != nil {
		logAndInternalError(w, "failed to render picker result", "error", err)
	}
}

// fetchRoutes returns the full route collection, or the search result set
// when a query is present.
func (h *PickerHandler) fetchRoutes(ctx context.Context, query string) ([]model.TrainRoute, error) {
	if query != "" {
		return h.backend.SearchRoutes(ctx, query)
	}
	routePage, err := h.backend.ListRoutes(ctx, 1, 1000)
	if err != nil {
		return nil, err
	}
	return routePage.Routes, nil
}

func routeIDs(routes []model.TrainRoute) []int64 {
	ids := make([]int64, 0, len(routes))
	for _, route := range routes {
		ids = append(ids, route.ID)
	}
	return ids
}
