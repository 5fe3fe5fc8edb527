// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/railvoice/railvoice/internal/gateway"
	"github.com/railvoice/railvoice/internal/model"
	"github.com/railvoice/railvoice/internal/render"
)

// AnnouncementsHandler handles the template editor and the announcement
// generator.
type AnnouncementsHandler struct {
	backend  *gateway.Client
	renderer *render.Renderer
	validate *validator.Validate
}

// NewAnnouncementsHandler creates an AnnouncementsHandler.
func NewAnnouncementsHandler(backend *gateway.Client, renderer *render.Renderer) *AnnouncementsHandler {
	return &AnnouncementsHandler{
		backend:  backend,
		renderer: renderer,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// CategoryView pairs a category with its templates for the editor.
type CategoryView struct {
	Category  model.AnnouncementCategory
	Name      string
	Templates []model.AnnouncementTemplate
}

// AnnouncementsData feeds the template editor page.
type AnnouncementsData struct {
	Categories []CategoryView
	Languages  []string
}

// List renders every category with its language templates.
func (h *AnnouncementsHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		categories []model.AnnouncementCategory
		templates  []model.AnnouncementTemplate
	)
	g, gctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		categories, err = h.backend.AnnouncementCategories(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		templates, err = h.backend.AllTemplates(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		flashGatewayError(w, r, h.renderer, redirectAdmin, err, "announcement listing failed")
		return
	}

	byCategory := make(map[int64][]model.AnnouncementTemplate)
	for _, t := range templates {
		byCategory[t.CategoryID] = append(byCategory[t.CategoryID], t)
	}

	data := AnnouncementsData{Languages: model.AllLanguages}
	for _, c := range categories {
		data.Categories = append(data.Categories, CategoryView{
			Category:  c,
			Name:      model.CategoryDisplayName(c.CategoryCode),
			Templates: byCategory[c.ID],
		})
	}

	err := h.renderer.Render(w, r, "admin/announcements", render.TemplateData{
		Title:     "Announcements",
		ActiveNav: "announcements",
		Data:      data,
	})
	if err != nil {
		logAndInternalError(w, "failed to render announcements", "error", err)
	}
}

// UpdateTemplate replaces one template's text.
func (h *AnnouncementsHandler) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		flashError(w, r, h.renderer, redirectAnnouncements, "Invalid template id")
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectAnnouncements) {
		return
	}

	text := strings.TrimSpace(r.FormValue("template_text"))
	if text == "" {
		flashError(w, r, h.renderer, redirectAnnouncements, "Template text cannot be empty")
		return
	}

	if err := h.backend.UpdateTemplate(r.Context(), id, text); err != nil {
		flashGatewayError(w, r, h.renderer, redirectAnnouncements, err, "template update failed")
		return
	}

	flashSuccess(w, r, h.renderer, redirectAnnouncements, "Template updated")
}

// SeedTranslations regenerates template translations from the backend's
// seed data.
func (h *AnnouncementsHandler) SeedTranslations(w http.ResponseWriter, r *http.Request) {
	summary, err := h.backend.SeedTemplateTranslations(r.Context())
	if err != nil {
		flashGatewayError(w, r, h.renderer, redirectAnnouncements, err, "template seeding failed")
		return
	}

	slog.Info("seeded template translations", "categories", summary.TotalCategories)
	flashSuccess(w, r, h.renderer, redirectAnnouncements, summary.Message)
}

// GeneratorData feeds the generator form and its result panel.
type GeneratorData struct {
	Categories []string
	Languages  []string
	Category   string
	Language   string
	// TemplateText previews the backend template the chosen category and
	// language will render through. Empty when the lookup fails.
	TemplateText string
	Form         map[string]string
	Errors       map[string]string
	Result       *model.GeneratedAnnouncement
}

// GeneratorForm renders the empty announcement generator.
func (h *AnnouncementsHandler) GeneratorForm(w http.ResponseWriter, r *http.Request) {
	h.renderGenerator(w, r, GeneratorData{
		Category: model.CategoryArriving,
		Language: model.DefaultLanguage,
	})
}

// Generate validates the category-specific parameters locally and, only
// when they pass, asks the backend to compose the announcement. A
// validation failure re-renders the form without any network call.
func (h *AnnouncementsHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAnnouncements+"/generator") {
		return
	}

	category := r.FormValue("category")
	language := r.FormValue("language")
	if language == "" {
		language = model.DefaultLanguage
	}

	data := GeneratorData{
		Category: category,
		Language: language,
		Form:     formValues(r),
	}

	params, errs := h.buildParams(category, r)
	if len(errs) > 0 {
		data.Errors = errs
		h.renderGenerator(w, r, data)
		return
	}

	result, err := h.backend.GenerateAnnouncement(r.Context(), params, language)
	if err != nil {
		flashGatewayError(w, r, h.renderer, redirectAnnouncements+"/generator", err, "announcement generation failed")
		return
	}

	data.Result = &result
	h.renderGenerator(w, r, data)
}

// buildParams maps the form into the tagged parameter variant for the
// chosen category and validates it.
func (h *AnnouncementsHandler) buildParams(category string, r *http.Request) (model.AnnouncementParams, map[string]string) {
	details := model.TrainDetails{
		TrainNumber:  strings.TrimSpace(r.FormValue("train_number")),
		TrainName:    strings.TrimSpace(r.FormValue("train_name")),
		StartStation: strings.TrimSpace(r.FormValue("start_station")),
		EndStation:   strings.TrimSpace(r.FormValue("end_station")),
	}

	var params model.AnnouncementParams
	switch category {
	case model.CategoryArriving:
		params = model.ArrivingParams{
			TrainDetails: details,
			Platform:     strings.TrimSpace(r.FormValue("platform")),
		}
	case model.CategoryDelay:
		params = model.DelayParams{
			TrainDetails: details,
			DelayMinutes: strings.TrimSpace(r.FormValue("delay_time")),
		}
	case model.CategoryCancelled:
		params = model.CancelledParams{TrainDetails: details}
	case model.CategoryPlatformChange:
		params = model.PlatformChangeParams{
			TrainDetails: details,
			Platform:     strings.TrimSpace(r.FormValue("platform")),
		}
	default:
		return nil, map[string]string{"category": "Unknown announcement category"}
	}

	if err := h.validate.Struct(params); err != nil {
		return nil, validationMessages(err)
	}
	return params, nil
}

// templatePreview fetches the template text for a category code and
// language. Best effort: any lookup failure yields an empty preview.
func (h *AnnouncementsHandler) templatePreview(ctx context.Context, categoryCode, language string) string {
	categories, err := h.backend.AnnouncementCategories(ctx)
	if err != nil {
		return ""
	}
	for _, c := range categories {
		if c.CategoryCode != categoryCode {
			continue
		}
		templates, err := h.backend.TemplatesByCategory(ctx, c.ID)
		if err != nil {
			return ""
		}
		for _, t := range templates {
			if t.LanguageCode == language {
				return t.TemplateText
			}
		}
	}
	return ""
}

func (h *AnnouncementsHandler) renderGenerator(w http.ResponseWriter, r *http.Request, data GeneratorData) {
	data.Categories = []string{
		model.CategoryArriving,
		model.CategoryDelay,
		model.CategoryCancelled,
		model.CategoryPlatformChange,
	}
	data.Languages = model.AllLanguages
	data.TemplateText = h.templatePreview(r.Context(), data.Category, data.Language)

	err := h.renderer.Render(w, r, "admin/generator", render.TemplateData{
		Title:     "Announcement Generator",
		ActiveNav: "announcements",
		Data:      data,
	})
	if err != nil {
		logAndInternalError(w, "failed to render generator", "error", err)
	}
}

func formValues(r *http.Request) map[string]string {
	values := make(map[string]string, len(r.Form))
	for key := range r.Form {
		values[key] = r.FormValue(key)
	}
	return values
}
