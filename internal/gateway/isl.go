// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package gateway

import (
	"context"
	"net/http"

	"github.com/railvoice/railvoice/internal/model"
)

// ISLDataset is the backend's sign-language video listing.
type ISLDataset struct {
	Videos     []model.ISLVideo `json:"videos"`
	Total      int              `json:"total"`
	Categories []string         `json:"categories"`
}

// ISLVideos fetches the sign-language video dataset.
func (c *Client) ISLVideos(ctx context.Context) (ISLDataset, error) {
	var out ISLDataset
	if err := c.do(ctx, http.MethodGet, "/isl-videos/", nil, &out); err != nil {
		return ISLDataset{}, err
	}
	return out, nil
}
