// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/railvoice/railvoice/internal/gateway"
	"github.com/railvoice/railvoice/internal/model"
	"github.com/railvoice/railvoice/internal/progress"
	"github.com/railvoice/railvoice/internal/render"
	"github.com/railvoice/railvoice/internal/viewmodel"
)

var segmentStages = []string{
	"Collecting announcement categories",
	"Synthesizing segment audio",
	"Saving segments",
}

// Default pacing for bulk segment synthesis; the backend sleeps these
// intervals between TTS calls to respect provider rate limits.
const (
	defaultSegmentRequestDelay  = 2 * time.Second
	defaultSegmentCategoryDelay = 5 * time.Second
)

// playbackGap is the pause between consecutive clips when a composed
// announcement is played back to back.
const playbackGap = 300 * time.Millisecond

// SegmentsHandler handles the grouped audio-segment browser.
type SegmentsHandler struct {
	backend  *gateway.Client
	renderer *render.Renderer
	runs     *progress.Registry
	perPage  int
}

// NewSegmentsHandler creates a SegmentsHandler.
func NewSegmentsHandler(backend *gateway.Client, renderer *render.Renderer, runs *progress.Registry, perPage int) *SegmentsHandler {
	return &SegmentsHandler{
		backend:  backend,
		renderer: renderer,
		runs:     runs,
		perPage:  perPage,
	}
}

// SegmentsListData feeds the segment browser template.
type SegmentsListData struct {
	Groups     []viewmodel.SegmentGroup
	URLs       map[int64]string
	Texts      map[int64]string // composed announcement text per category
	Schedules  map[int64][]viewmodel.PlaybackStep
	Query      string
	Pagination viewmodel.Pagination
	Languages  []string
}

// List renders segment cards grouped by announcement category, ordered
// within each card by slot (prefix, from, to, suffix).
func (h *SegmentsHandler) List(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	page := viewmodel.ParsePageParam(r)

	var (
		segments   []model.AudioSegment
		categories []model.AnnouncementCategory
	)
	g, gctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		segments, err = h.backend.AudioSegments(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = h.backend.AnnouncementCategories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		flashGatewayError(w, r, h.renderer, redirectAdmin, err, "segment listing failed")
		return
	}

	catIndex := categoriesByID(categories)

	grouped := viewmodel.GroupBy(segments, func(s model.AudioSegment) int64 {
		return s.CategoryID
	})
	match := viewmodel.TextMatcher(query, func(s model.AudioSegment) []string {
		fields := []string{s.SegmentName, s.SegmentText, s.LanguageCode}
		if cat, ok := catIndex[s.CategoryID]; ok {
			fields = append(fields, cat.CategoryCode, cat.Description)
		}
		return fields
	})
	keys := grouped.FilterKeys(match)

	page, _ = viewmodel.NormalizePagination(page, len(keys), h.perPage)
	pageKeys := viewmodel.PageSlice(keys, page, h.perPage)

	urls := make(map[int64]string, len(segments))
	for _, s := range segments {
		urls[s.ID] = h.backend.SegmentAudioURL(s.AudioFilePath)
	}

	groups := viewmodel.BindSegmentGroups(grouped, pageKeys, catIndex)
	texts := make(map[int64]string, len(groups))
	schedules := make(map[int64][]viewmodel.PlaybackStep, len(groups))
	for _, grp := range groups {
		texts[grp.CategoryID] = viewmodel.AnnouncementText(grp.EnglishSegments)
		schedules[grp.CategoryID] = viewmodel.PlaybackSchedule(grp.EnglishSegments, playbackGap)
	}

	params := url.Values{}
	if query != "" {
		params.Set("query", query)
	}

	data := SegmentsListData{
		Groups:     groups,
		URLs:       urls,
		Texts:      texts,
		Schedules:  schedules,
		Query:      query,
		Pagination: viewmodel.BuildPagination(page, len(keys), h.perPage, redirectSegments, params),
		Languages:  model.AllLanguages,
	}

	err := h.renderer.Render(w, r, "admin/segments", render.TemplateData{
		Title:     "Audio Segments",
		ActiveNav: "segments",
		Data:      data,
	})
	if err != nil {
		logAndInternalError(w, "failed to render segment browser", "error", err)
	}
}

// GenerateBulk starts a staged run synthesizing segments for every
// category, paced with the configured delays.
func (h *SegmentsHandler) GenerateBulk(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid form data"})
		return
	}

	languages := r.Form["languages"]
	if len(languages) == 0 {
		languages = model.AllLanguages
	}
	overwrite := r.FormValue("overwrite") == "yes"

	requestDelay := defaultSegmentRequestDelay
	if ms := parseIntOr(r.FormValue("request_delay_ms"), 0); ms > 0 {
		requestDelay = time.Duration(ms) * time.Millisecond
	}
	categoryDelay := defaultSegmentCategoryDelay
	if ms := parseIntOr(r.FormValue("category_delay_ms"), 0); ms > 0 {
		categoryDelay = time.Duration(ms) * time.Millisecond
	}

	run := h.runs.Start(context.Background(), segmentStages, func(ctx context.Context) (any, error) {
		summary, err := h.backend.GenerateSegmentsBulk(ctx, languages, overwrite, requestDelay, categoryDelay)
		if err != nil {
			return nil, err
		}
		return summary, nil
	})

	writeJSON(w, http.StatusAccepted, map[string]string{"run_id": run.ID()})
}
