// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/railvoice/railvoice/internal/gateway"
	"github.com/railvoice/railvoice/internal/model"
	"github.com/railvoice/railvoice/internal/render"
	"github.com/railvoice/railvoice/internal/viewmodel"
)

// ISLHandler handles the sign-language video browser.
type ISLHandler struct {
	backend  *gateway.Client
	renderer *render.Renderer
	perPage  int
}

// NewISLHandler creates an ISLHandler.
func NewISLHandler(backend *gateway.Client, renderer *render.Renderer, perPage int) *ISLHandler {
	return &ISLHandler{
		backend:  backend,
		renderer: renderer,
		perPage:  perPage,
	}
}

// ISLListData feeds the video browser template.
type ISLListData struct {
	Videos     []model.ISLVideo
	URLs       map[string]string // video path to playable URL
	Categories []string
	Category   string
	Query      string
	Pagination viewmodel.Pagination
}

// List renders the video table with category and free-text filters.
// Filtering and pagination happen locally over the full dataset.
func (h *ISLHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	page := viewmodel.ParsePageParam(r)

	dataset, err := h.backend.ISLVideos(r.Context())
	if err != nil {
		flashGatewayError(w, r, h.renderer, redirectAdmin, err, "video listing failed")
		return
	}

	videos := dataset.Videos
	if category != "" {
		videos = viewmodel.Filter(videos, func(v model.ISLVideo) bool {
			return v.Category == category
		})
	}
	videos = viewmodel.Filter(videos, viewmodel.TextMatcher(query, func(v model.ISLVideo) []string {
		return []string{v.Name, v.Filename, v.Category}
	}))

	page, _ = viewmodel.NormalizePagination(page, len(videos), h.perPage)
	pageVideos := viewmodel.PageSlice(videos, page, h.perPage)

	urls := make(map[string]string, len(pageVideos))
	for _, v := range pageVideos {
		urls[v.Path] = h.backend.ISLVideoURL(v.Path)
	}

	params := url.Values{}
	if category != "" {
		params.Set("category", category)
	}
	if query != "" {
		params.Set("query", query)
	}

	data := ISLListData{
		Videos:     pageVideos,
		URLs:       urls,
		Categories: dataset.Categories,
		Category:   category,
		Query:      query,
		Pagination: viewmodel.BuildPagination(page, len(videos), h.perPage, "/admin/isl-videos", params),
	}

	err = h.renderer.Render(w, r, "admin/isl_videos", render.TemplateData{
		Title:     "Sign Language Videos",
		ActiveNav: "isl-videos",
		Data:      data,
	})
	if err != nil {
		logAndInternalError(w, "failed to render video browser", "error", err)
	}
}
