// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/railvoice/railvoice/internal/model"
)

type segmentsEnvelope struct {
	Segments []model.AudioSegment `json:"segments"`
}

// AudioSegments fetches the full audio-segment collection.
func (c *Client) AudioSegments(ctx context.Context) ([]model.AudioSegment, error) {
	var out segmentsEnvelope
	if err := c.do(ctx, http.MethodGet, "/audio-segments/all", nil, &out); err != nil {
		return nil, err
	}
	return out.Segments, nil
}

// SegmentGenerationSummary is the backend's bulk segment-synthesis result.
type SegmentGenerationSummary struct {
	TotalCategories        int `json:"total_categories"`
	TotalSegmentsGenerated int `json:"total_segments_generated"`
}

// GenerateSegmentsBulk synthesizes audio segments for every category. The
// backend paces its TTS calls with the given delays to stay under the
// provider's rate limits.
func (c *Client) GenerateSegmentsBulk(
	ctx context.Context,
	languages []string,
	overwrite bool,
	betweenRequests, betweenCategories time.Duration,
) (SegmentGenerationSummary, error) {
	var out SegmentGenerationSummary
	body := map[string]any{
		"languages":                languages,
		"overwrite_existing":       overwrite,
		"delay_between_requests":   betweenRequests.Milliseconds(),
		"delay_between_categories": betweenCategories.Milliseconds(),
	}
	if err := c.do(ctx, http.MethodPost, "/audio-segments/generate-bulk-with-delays", body, &out); err != nil {
		return SegmentGenerationSummary{}, err
	}
	return out, nil
}
