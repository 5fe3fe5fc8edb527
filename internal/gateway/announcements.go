// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/railvoice/railvoice/internal/model"
)

type categoriesEnvelope struct {
	Categories []model.AnnouncementCategory `json:"categories"`
}

type templatesEnvelope struct {
	Templates []model.AnnouncementTemplate `json:"templates"`
}

// AnnouncementCategories fetches all announcement categories.
func (c *Client) AnnouncementCategories(ctx context.Context) ([]model.AnnouncementCategory, error) {
	var out categoriesEnvelope
	if err := c.do(ctx, http.MethodGet, "/announcements/categories/", nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

// AllTemplates fetches all announcement templates across categories.
func (c *Client) AllTemplates(ctx context.Context) ([]model.AnnouncementTemplate, error) {
	var out templatesEnvelope
	if err := c.do(ctx, http.MethodGet, "/announcements/templates/", nil, &out); err != nil {
		return nil, err
	}
	return out.Templates, nil
}

// TemplatesByCategory fetches the templates of one category.
func (c *Client) TemplatesByCategory(ctx context.Context, categoryID int64) ([]model.AnnouncementTemplate, error) {
	var out templatesEnvelope
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/announcements/templates/%d", categoryID), nil, &out); err != nil {
		return nil, err
	}
	return out.Templates, nil
}

// UpdateTemplate replaces one template's text.
func (c *Client) UpdateTemplate(ctx context.Context, templateID int64, text string) error {
	body := map[string]string{"template_text": text}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/announcements/templates/%d", templateID), body, nil)
}

// SeedSummary is the backend's seed-translation result.
type SeedSummary struct {
	Message         string `json:"message"`
	TotalCategories int    `json:"total_categories"`
}

// SeedTemplateTranslations regenerates template translations from the
// backend's seed database.
func (c *Client) SeedTemplateTranslations(ctx context.Context) (SeedSummary, error) {
	var out SeedSummary
	if err := c.do(ctx, http.MethodPost, "/announcements/seed-translations/", nil, &out); err != nil {
		return SeedSummary{}, err
	}
	return out, nil
}

// GenerateAnnouncement composes a spoken announcement from the category's
// template and the tagged parameter variant.
func (c *Client) GenerateAnnouncement(ctx context.Context, params model.AnnouncementParams, languageCode string) (model.GeneratedAnnouncement, error) {
	var out model.GeneratedAnnouncement
	body := map[string]any{
		"category_code": params.CategoryCode(),
		"language_code": languageCode,
		"parameters":    params.Values(),
	}
	if err := c.do(ctx, http.MethodPost, "/announcements/generate", body, &out); err != nil {
		return model.GeneratedAnnouncement{}, err
	}
	return out, nil
}
