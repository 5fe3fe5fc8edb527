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

var audioStages = []string{
	"Collecting translations",
	"Synthesizing audio",
	"Saving audio files",
}

// AudioHandler handles the grouped generated-audio browser.
type AudioHandler struct {
	backend  *gateway.Client
	renderer *render.Renderer
	runs     *progress.Registry
	perPage  int
}

// NewAudioHandler creates an AudioHandler.
func NewAudioHandler(backend *gateway.Client, renderer *render.Renderer, runs *progress.Registry, perPage int) *AudioHandler {
	return &AudioHandler{
		backend:  backend,
		renderer: renderer,
		runs:     runs,
		perPage:  perPage,
	}
}

// AudioListData feeds the audio browser template.
type AudioListData struct {
	Groups     []viewmodel.AudioGroup
	URLs       map[int64]string
	Query      string
	Pagination viewmodel.Pagination
	Languages  []string
}

// List renders audio cards grouped by route, with playable URLs derived
// from the stored backend paths.
func (h *AudioHandler) List(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	page := viewmodel.ParsePageParam(r)

	var (
		files  []model.AudioFile
		routes []model.TrainRoute
	)
	g, gctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		files, err = h.backend.AudioFiles(gctx)
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
		flashGatewayError(w, r, h.renderer, redirectAdmin, err, "audio listing failed")
		return
	}

	routeIndex := routesByID(routes)

	grouped := viewmodel.GroupBy(files, func(f model.AudioFile) int64 {
		return f.TrainRouteID
	})
	match := viewmodel.TextMatcher(query, func(f model.AudioFile) []string {
		fields := []string{f.AudioType, f.LanguageCode}
		if route, ok := routeIndex[f.TrainRouteID]; ok {
			fields = append(fields, route.TrainNumber, route.TrainNameEN)
		}
		return fields
	})
	keys := grouped.FilterKeys(match)

	page, _ = viewmodel.NormalizePagination(page, len(keys), h.perPage)
	pageKeys := viewmodel.PageSlice(keys, page, h.perPage)

	urls := make(map[int64]string, len(files))
	for _, f := range files {
		urls[f.ID] = h.backend.AudioURL(f.AudioFilePath)
	}

	params := url.Values{}
	if query != "" {
		params.Set("query", query)
	}

	data := AudioListData{
		Groups:     viewmodel.BindAudioGroups(grouped, pageKeys, routeIndex),
		URLs:       urls,
		Query:      query,
		Pagination: viewmodel.BuildPagination(page, len(keys), h.perPage, redirectAudio, params),
		Languages:  model.AllLanguages,
	}

	err := h.renderer.Render(w, r, "admin/audio", render.TemplateData{
		Title:     "Audio Translations",
		ActiveNav: "audio",
		Data:      data,
	})
	if err != nil {
		logAndInternalError(w, "failed to render audio browser", "error", err)
	}
}

// Generate synthesizes audio for a single route in the selected
// languages. An empty selection means all supported languages.
func (h *AudioHandler) Generate(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAudio, "Invalid route id")
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectAudio) {
		return
	}

	languages := r.Form["languages"]
	if len(languages) == 0 {
		languages = model.AllLanguages
	}

	if err := h.backend.GenerateAudio(r.Context(), id, languages); err != nil {
		flashGatewayError(w, r, h.renderer, redirectAudio, err, "audio generation failed")
		return
	}

	flashSuccess(w, r, h.renderer, redirectAudio, "Audio generated")
}

// GenerateBulk starts a staged run that synthesizes audio for every
// translated route.
func (h *AudioHandler) GenerateBulk(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid form data"})
		return
	}

	languages := r.Form["languages"]
	if len(languages) == 0 {
		languages = model.AllLanguages
	}
	overwrite := r.FormValue("overwrite") == "yes"

	run := h.runs.Start(context.Background(), audioStages, func(ctx context.Context) (any, error) {
		summary, err := h.backend.GenerateAudioBulk(ctx, languages, overwrite)
		if err != nil {
			return nil, err
		}
		return summary, nil
	})

	writeJSON(w, http.StatusAccepted, map[string]string{"run_id": run.ID()})
}

// ClearAll deletes every generated audio file. Requires the confirm
// field like the route table's clear-all.
func (h *AudioHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAudio) {
		return
	}
	if r.FormValue("confirm") != "yes" {
		flashError(w, r, h.renderer, redirectAudio, "Clear all was not confirmed")
		return
	}

	msg, err := h.backend.ClearAllAudio(r.Context())
	if err != nil {
		flashGatewayError(w, r, h.renderer, redirectAudio, err, "clear all audio failed")
		return
	}

	flashSuccess(w, r, h.renderer, redirectAudio, msg.Message)
}
