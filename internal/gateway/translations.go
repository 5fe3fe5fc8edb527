// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/railvoice/railvoice/internal/model"
)

type translationEnvelope struct {
	Translations []model.Translation `json:"translations"`
}

// AllTranslations fetches the full translation collection.
func (c *Client) AllTranslations(ctx context.Context) ([]model.Translation, error) {
	var out translationEnvelope
	if err := c.do(ctx, http.MethodGet, "/translate/all", nil, &out); err != nil {
		return nil, err
	}
	return out.Translations, nil
}

// GenerateTranslation generates text translations for one route.
func (c *Client) GenerateTranslation(ctx context.Context, routeID int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/translate/generate/%d", routeID), nil, nil)
}

// BulkTranslationSummary is the backend's bulk-translation result.
type BulkTranslationSummary struct {
	Message          string `json:"message"`
	TotalRoutes      int    `json:"total_routes"`
	TranslatedRoutes int    `json:"translated_routes"`
	FailedRoutes     int    `json:"failed_routes"`
}

// GenerateTranslationsBulk generates translations for every route.
func (c *Client) GenerateTranslationsBulk(ctx context.Context, sourceLanguage string) (BulkTranslationSummary, error) {
	var out BulkTranslationSummary
	body := map[string]string{"source_language": sourceLanguage}
	if err := c.do(ctx, http.MethodPost, "/translate/bulk/", body, &out); err != nil {
		return BulkTranslationSummary{}, err
	}
	return out, nil
}

// ClearAllTranslations deletes every translation record.
func (c *Client) ClearAllTranslations(ctx context.Context) (MessageResponse, error) {
	var out MessageResponse
	if err := c.do(ctx, http.MethodDelete, "/translate/clear-all", nil, &out); err != nil {
		return MessageResponse{}, err
	}
	return out, nil
}
