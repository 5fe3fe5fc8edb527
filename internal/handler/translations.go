// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/railvoice/railvoice/internal/gateway"
	"github.com/railvoice/railvoice/internal/model"
	"github.com/railvoice/railvoice/internal/progress"
	"github.com/railvoice/railvoice/internal/render"
	"github.com/railvoice/railvoice/internal/viewmodel"
)

var translationStages = []string{
	"Collecting route data",
	"Generating translations",
	"Saving results",
}

// TranslationsHandler handles the grouped translation browser.
type TranslationsHandler struct {
	backend  *gateway.Client
	renderer *render.Renderer
	runs     *progress.Registry
	perPage  int
}

// NewTranslationsHandler creates a TranslationsHandler. perPage is the
// number of route groups per page.
func NewTranslationsHandler(backend *gateway.Client, renderer *render.Renderer, runs *progress.Registry, perPage int) *TranslationsHandler {
	return &TranslationsHandler{
		backend:  backend,
		renderer: renderer,
		runs:     runs,
		perPage:  perPage,
	}
}

// TranslationsListData feeds the translation browser template.
type TranslationsListData struct {
	Groups     []viewmodel.TranslationGroup
	Query      string
	Pagination viewmodel.Pagination
	Languages  []string
}

// List renders translation cards grouped by route. Grouping, filtering
// and pagination all happen locally over the full fetched collection:
// group first, filter group keys, then paginate the surviving keys.
func (h *TranslationsHandler) List(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	page := viewmodel.ParsePageParam(r)

	var (
		translations []model.Translation
		routes       []model.TrainRoute
	)
	g, gctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		translations, err = h.backend.AllTranslations(gctx)
		return err
	})
	g.Go(func() error {
		routePage, err := h.backend.ListRoutes(gctx, 1, 1000)
		if err == nil {
			routes = routePage.Routes
		}
		return err
	})
	if err := g.Wait(); err != nil {
		flashGatewayError(w, r, h.renderer, redirectAdmin, err, "translation listing failed")
		return
	}

	grouped := viewmodel.GroupBy(translations, func(t model.Translation) int64 {
		return t.TrainRouteID
	})
	match := viewmodel.TextMatcher(query, func(t model.Translation) []string {
		return []string{t.TrainNumber, t.TrainName, t.StartStationName, t.EndStationName}
	})
	keys := grouped.FilterKeys(match)

	page, _ = viewmodel.NormalizePagination(page, len(keys), h.perPage)
	pageKeys := viewmodel.PageSlice(keys, page, h.perPage)

	params := url.Values{}
	if query != "" {
		params.Set("query", query)
	}

	data := TranslationsListData{
		Groups:     viewmodel.BindTranslationGroups(grouped, pageKeys, routesByID(routes)),
		Query:      query,
		Pagination: viewmodel.BuildPagination(page, len(keys), h.perPage, redirectTranslations, params),
		Languages:  model.AllLanguages,
	}

	err := h.renderer.Render(w, r, "admin/translations", render.TemplateData{
		Title:     "Text Translations",
		ActiveNav: "translations",
		Data:      data,
	})
	if err != nil {
		logAndInternalError(w, "failed to render translations", "error", err)
	}
}

// Generate creates translations for a single route.
func (h *TranslationsHandler) Generate(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectTranslations, "Invalid route id")
		return
	}

	if err := h.backend.GenerateTranslation(r.Context(), id); err != nil {
		flashGatewayError(w, r, h.renderer, redirectTranslations, err, "translation generation failed")
		return
	}

	flashSuccess(w, r, h.renderer, redirectTranslations, "Translations generated")
}

// GenerateBulk starts a staged run that translates every route, and
// returns the run id for polling. The stage indicators tick on a timer;
// the outcome comes from the single backend call.
func (h *TranslationsHandler) GenerateBulk(w http.ResponseWriter, r *http.Request) {
	sourceLanguage := r.FormValue("source_language")
	if sourceLanguage == "" {
		sourceLanguage = model.DefaultLanguage
	}

	run := h.runs.Start(context.Background(), translationStages, func(ctx context.Context) (any, error) {
		summary, err := h.backend.GenerateTranslationsBulk(ctx, sourceLanguage)
		if err != nil {
			return nil, err
		}
		return summary, nil
	})

	writeJSON(w, http.StatusAccepted, map[string]string{"run_id": run.ID()})
}

// ClearAll deletes every translation. Requires the confirm field like the
// route table's clear-all.
func (h *TranslationsHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectTranslations) {
		return
	}
	if r.FormValue("confirm") != "yes" {
		flashError(w, r, h.renderer, redirectTranslations, "Clear all was not confirmed")
		return
	}

	msg, err := h.backend.ClearAllTranslations(r.Context())
	if err != nil {
		flashGatewayError(w, r, h.renderer, redirectTranslations, err, "clear all translations failed")
		return
	}

	flashSuccess(w, r, h.renderer, redirectTranslations, msg.Message)
}
