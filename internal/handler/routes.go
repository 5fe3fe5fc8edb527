// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/railvoice/railvoice/internal/gateway"
	"github.com/railvoice/railvoice/internal/model"
	"github.com/railvoice/railvoice/internal/render"
	"github.com/railvoice/railvoice/internal/viewmodel"
)

// maxImportSize caps uploaded CSV files at 5 MB.
const maxImportSize = 5 << 20

// importColumns are the CSV headers a route import must carry. The check
// runs before any network call so a malformed file never reaches the
// backend.
var importColumns = []string{
	"train_number",
	"train_name_en",
	"start_station_en",
	"start_station_code",
	"end_station_en",
	"end_station_code",
}

// RoutesHandler handles the train route table and its mutations.
type RoutesHandler struct {
	backend  *gateway.Client
	renderer *render.Renderer
	validate *validator.Validate
	perPage  int
}

// NewRoutesHandler creates a RoutesHandler. perPage is the route table
// page size.
func NewRoutesHandler(backend *gateway.Client, renderer *render.Renderer, perPage int) *RoutesHandler {
	return &RoutesHandler{
		backend:  backend,
		renderer: renderer,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		perPage:  perPage,
	}
}

// RoutesListData feeds the route table template.
type RoutesListData struct {
	Routes     []model.TrainRoute
	Statuses   map[int64]model.RouteStatus
	Query      string
	Pagination viewmodel.Pagination
}

// List renders the route table. With a search query the backend returns
// the full filtered set and pagination is computed locally over it; the
// query change itself resets to page 1 because page links carry the query.
func (h *RoutesHandler) List(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	page := viewmodel.ParsePageParam(r)

	var (
		pageRoutes []model.TrainRoute
		allRoutes  []model.TrainRoute
		total      int
	)
	if query != "" {
		matched, err := h.backend.SearchRoutes(r.Context(), query)
		if err != nil {
			flashGatewayError(w, r, h.renderer, redirectAdmin, err, "route search failed")
			return
		}
		total = len(matched)
		page = viewmodel.ClampPage(page, viewmodel.CalculateTotalPages(total, h.perPage))
		pageRoutes = viewmodel.PageSlice(matched, page, h.perPage)
		allRoutes = matched
	} else {
		routePage, err := h.backend.ListRoutes(r.Context(), page, h.perPage)
		if err != nil {
			flashGatewayError(w, r, h.renderer, redirectAdmin, err, "route listing failed")
			return
		}
		total = routePage.Total
		clamped := viewmodel.ClampPage(page, viewmodel.CalculateTotalPages(total, h.perPage))
		if clamped != page {
			// Past-the-end page, refetch the last valid one
			routePage, err = h.backend.ListRoutes(r.Context(), clamped, h.perPage)
			if err != nil {
				flashGatewayError(w, r, h.renderer, redirectAdmin, err, "route listing failed")
				return
			}
			page = clamped
		}
		pageRoutes = routePage.Routes
		allRoutes = routePage.Routes
	}

	statuses, err := routeStatuses(r.Context(), h.backend, allRoutes)
	if err != nil {
		// Badges degrade, the table itself still renders
		slog.Warn("route status badges unavailable", "error", err, "category", "gateway")
		statuses = map[int64]model.RouteStatus{}
	}

	params := url.Values{}
	if query != "" {
		params.Set("query", query)
	}

	data := RoutesListData{
		Routes:     pageRoutes,
		Statuses:   statuses,
		Query:      query,
		Pagination: viewmodel.BuildPagination(page, total, h.perPage, redirectRoutes, params),
	}

	err = h.renderer.Render(w, r, "admin/routes", render.TemplateData{
		Title:     "Train Routes",
		ActiveNav: "routes",
		Data:      data,
	})
	if err != nil {
		logAndInternalError(w, "failed to render routes", "error", err)
	}
}

// RouteFormData feeds the route create/edit form.
type RouteFormData struct {
	Route  *model.TrainRoute
	Input  model.TrainRouteInput
	Errors map[string]string
	IsEdit bool
}

// NewForm renders the empty route form.
func (h *RoutesHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, RouteFormData{})
}

// EditForm renders the form pre-filled from the backend's copy.
func (h *RoutesHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectRoutes, "Invalid route id")
		return
	}

	route, err := h.backend.GetRoute(r.Context(), id)
	if err != nil {
		flashGatewayError(w, r, h.renderer, redirectRoutes, err, "route fetch failed")
		return
	}

	h.renderForm(w, r, RouteFormData{
		Route:  &route,
		Input:  routeToInput(route),
		IsEdit: true,
	})
}

// Create validates the form client-side, then posts it to the backend.
func (h *RoutesHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectRoutes) {
		return
	}

	input := routeInputFromForm(r)
	if errs := h.validateInput(input); len(errs) > 0 {
		h.renderForm(w, r, RouteFormData{Input: input, Errors: errs})
		return
	}

	route, err := h.backend.CreateRoute(r.Context(), input)
	if err != nil {
		flashGatewayError(w, r, h.renderer, redirectRoutes, err, "route create failed")
		return
	}

	flashSuccess(w, r, h.renderer, redirectRoutes,
		fmt.Sprintf("Route %s created", route.TrainNumber))
}

// Update validates the form, then puts it to the backend.
func (h *RoutesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectRoutes, "Invalid route id")
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectRoutes) {
		return
	}

	input := routeInputFromForm(r)
	if errs := h.validateInput(input); len(errs) > 0 {
		route, getErr := h.backend.GetRoute(r.Context(), id)
		data := RouteFormData{Input: input, Errors: errs, IsEdit: true}
		if getErr == nil {
			data.Route = &route
		}
		h.renderForm(w, r, data)
		return
	}

	if _, err := h.backend.UpdateRoute(r.Context(), id, input); err != nil {
		flashGatewayError(w, r, h.renderer, redirectRoutes, err, "route update failed")
		return
	}

	flashSuccess(w, r, h.renderer, redirectRoutes, "Route updated")
}

// Delete removes one route.
func (h *RoutesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectRoutes, "Invalid route id")
		return
	}

	if err := h.backend.DeleteRoute(r.Context(), id); err != nil {
		flashGatewayError(w, r, h.renderer, redirectRoutes, err, "route delete failed")
		return
	}

	flashSuccess(w, r, h.renderer, redirectRoutes, "Route deleted")
}

// ClearAll deletes every route. The form must carry confirm=yes, set by
// the typed confirmation dialog; without it no backend call is made.
func (h *RoutesHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectRoutes) {
		return
	}
	if r.FormValue("confirm") != "yes" {
		flashError(w, r, h.renderer, redirectRoutes, "Clear all was not confirmed")
		return
	}

	msg, err := h.backend.ClearAllRoutes(r.Context())
	if err != nil {
		flashGatewayError(w, r, h.renderer, redirectRoutes, err, "clear all routes failed")
		return
	}

	slog.Info("cleared all routes", "message", msg.Message)
	flashSuccess(w, r, h.renderer, redirectRoutes, msg.Message)
}

// ImportForm renders the CSV upload form.
func (h *RoutesHandler) ImportForm(w http.ResponseWriter, r *http.Request) {
	err := h.renderer.Render(w, r, "admin/routes_import", render.TemplateData{
		Title:     "Import Routes",
		ActiveNav: "routes",
		Data:      importColumns,
	})
	if err != nil {
		logAndInternalError(w, "failed to render import form", "error", err)
	}
}

// Import validates the uploaded CSV's header locally, then forwards the
// file to the backend.
func (h *RoutesHandler) Import(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		flashError(w, r, h.renderer, redirectRoutes+"/import", "Invalid upload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		flashError(w, r, h.renderer, redirectRoutes+"/import", "A CSV file is required")
		return
	}
	defer func() { _ = file.Close() }()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		flashError(w, r, h.renderer, redirectRoutes+"/import", "Only .csv files are accepted")
		return
	}

	content, err := io.ReadAll(io.LimitReader(file, maxImportSize))
	if err != nil {
		flashError(w, r, h.renderer, redirectRoutes+"/import", "Could not read the uploaded file")
		return
	}

	if missing := missingImportColumns(content); len(missing) > 0 {
		slog.Warn("route import rejected", "missing_columns", missing, "category", "import")
		flashError(w, r, h.renderer, redirectRoutes+"/import",
			"CSV is missing required columns: "+strings.Join(missing, ", "))
		return
	}

	summary, err := h.backend.ImportRoutes(r.Context(), header.Filename, bytes.NewReader(content))
	if err != nil {
		flashGatewayError(w, r, h.renderer, redirectRoutes+"/import", err, "route import failed")
		return
	}

	slog.Info("routes imported", "imported", summary.Imported, "category", "import")
	flashSuccess(w, r, h.renderer, redirectRoutes,
		fmt.Sprintf("Imported %d routes", summary.Imported))
}

// Export streams the full route collection as CSV.
func (h *RoutesHandler) Export(w http.ResponseWriter, r *http.Request) {
	var routes []model.TrainRoute
	page := 1
	for {
		routePage, err := h.backend.ListRoutes(r.Context(), page, 100)
		if err != nil {
			flashGatewayError(w, r, h.renderer, redirectRoutes, err, "route export failed")
			return
		}
		routes = append(routes, routePage.Routes...)
		if len(routes) >= routePage.Total || len(routePage.Routes) == 0 {
			break
		}
		page++
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="train_routes.csv"`)

	cw := csv.NewWriter(w)
	_ = cw.Write(importColumns)
	for _, route := range routes {
		_ = cw.Write([]string{
			route.TrainNumber,
			route.TrainNameEN,
			route.StartStationEN,
			route.StartStationCode,
			route.EndStationEN,
			route.EndStationCode,
		})
	}
	cw.Flush()
}

func (h *RoutesHandler) renderForm(w http.ResponseWriter, r *http.Request, data RouteFormData) {
	title := "New Route"
	if data.IsEdit {
		title = "Edit Route"
	}
	err := h.renderer.Render(w, r, "admin/route_form", render.TemplateData{
		Title:     title,
		ActiveNav: "routes",
		Data:      data,
	})
	if err != nil {
		logAndInternalError(w, "failed to render route form", "error", err)
	}
}

// validateInput runs the struct tags and flattens failures for the form
// template.
func (h *RoutesHandler) validateInput(input model.TrainRouteInput) map[string]string {
	err := h.validate.Struct(input)
	if err == nil {
		return nil
	}
	return validationMessages(err)
}

func routeInputFromForm(r *http.Request) model.TrainRouteInput {
	return model.TrainRouteInput{
		TrainNumber:      strings.TrimSpace(r.FormValue("train_number")),
		TrainNameEN:      strings.TrimSpace(r.FormValue("train_name_en")),
		StartStationEN:   strings.TrimSpace(r.FormValue("start_station_en")),
		StartStationCode: strings.ToUpper(strings.TrimSpace(r.FormValue("start_station_code"))),
		EndStationEN:     strings.TrimSpace(r.FormValue("end_station_en")),
		EndStationCode:   strings.ToUpper(strings.TrimSpace(r.FormValue("end_station_code"))),
	}
}

func routeToInput(route model.TrainRoute) model.TrainRouteInput {
	return model.TrainRouteInput{
		TrainNumber:      route.TrainNumber,
		TrainNameEN:      route.TrainNameEN,
		StartStationEN:   route.StartStationEN,
		StartStationCode: route.StartStationCode,
		EndStationEN:     route.EndStationEN,
		EndStationCode:   route.EndStationCode,
	}
}

// missingImportColumns parses the CSV header row and reports required
// columns that are absent. Header names are matched case-insensitively.
func missingImportColumns(content []byte) []string {
	reader := csv.NewReader(bytes.NewReader(content))
	header, err := reader.Read()
	if err != nil {
		return importColumns
	}

	present := make(map[string]bool, len(header))
	for _, col := range header {
		present[strings.ToLower(strings.TrimSpace(col))] = true
	}

	var missing []string
	for _, col := range importColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}

func parseIntOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
