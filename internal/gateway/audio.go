// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package gateway

import (
	"context"
	"net/http"

	"github.com/railvoice/railvoice/internal/model"
)

type audioFilesEnvelope struct {
	AudioFiles []model.AudioFile `json:"audio_files"`
}

// AudioFiles fetches the full generated-audio collection.
func (c *Client) AudioFiles(ctx context.Context) ([]model.AudioFile, error) {
	var out audioFilesEnvelope
	if err := c.do(ctx, http.MethodGet, "/audio/files/", nil, &out); err != nil {
		return nil, err
	}
	return out.AudioFiles, nil
}

// GenerateAudio synthesizes audio for one route in the given languages.
func (c *Client) GenerateAudio(ctx context.Context, routeID int64, languages []string) error {
	body := map[string]any{
		"train_route_id": routeID,
		"languages":      languages,
	}
	return c.do(ctx, http.MethodPost, "/audio/generate/", body, nil)
}

// BulkAudioSummary is the backend's bulk TTS result.
type BulkAudioSummary struct {
	TotalRoutesProcessed int     `json:"total_routes_processed"`
	FailedRoutes         []int64 `json:"failed_routes"`
	TotalFilesGenerated  int     `json:"total_files_generated"`
}

// GenerateAudioBulk synthesizes audio for every translated route.
func (c *Client) GenerateAudioBulk(ctx context.Context, languages []string, overwrite bool) (BulkAudioSummary, error) {
	var out BulkAudioSummary
	body := map[string]any{
		"languages":          languages,
		"overwrite_existing": overwrite,
	}
	if err := c.do(ctx, http.MethodPost, "/audio/generate-bulk/", body, &out); err != nil {
		return BulkAudioSummary{}, err
	}
	return out, nil
}

// ClearAllAudio deletes every generated audio file.
func (c *Client) ClearAllAudio(ctx context.Context) (MessageResponse, error) {
	var out MessageResponse
	if err := c.do(ctx, http.MethodDelete, "/audio/clear-all/", nil, &out); err != nil {
		return MessageResponse{}, err
	}
	return out, nil
}
