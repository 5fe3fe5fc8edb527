// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/railvoice/railvoice/internal/model"
)

// RoutePage is the backend's paginated route envelope.
type RoutePage struct {
	Routes []model.TrainRoute `json:"routes"`
	Total  int                `json:"total"`
}

// ListRoutes fetches one page of routes.
func (c *Client) ListRoutes(ctx context.Context, page, limit int) (RoutePage, error) {
	var out RoutePage
	endpoint := fmt.Sprintf("/train-routes/?page=%d&limit=%d", page, limit)
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return RoutePage{}, err
	}
	return out, nil
}

// SearchRoutes fetches routes matching a free-text query. The backend
// returns the full filtered set, unpaginated.
func (c *Client) SearchRoutes(ctx context.Context, query string) ([]model.TrainRoute, error) {
	var out []model.TrainRoute
	endpoint := "/train-routes/search/?query=" + url.QueryEscape(query)
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetRoute fetches one route by id.
func (c *Client) GetRoute(ctx context.Context, id int64) (model.TrainRoute, error) {
	var out model.TrainRoute
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/train-routes/%d", id), nil, &out); err != nil {
		return model.TrainRoute{}, err
	}
	return out, nil
}

// CreateRoute creates a route and returns the backend's copy.
func (c *Client) CreateRoute(ctx context.Context, input model.TrainRouteInput) (model.TrainRoute, error) {
	var out model.TrainRoute
	if err := c.do(ctx, http.MethodPost, "/train-routes/", input, &out); err != nil {
		return model.TrainRoute{}, err
	}
	return out, nil
}

// UpdateRoute updates a route and returns the backend's copy.
func (c *Client) UpdateRoute(ctx context.Context, id int64, input model.TrainRouteInput) (model.TrainRoute, error) {
	var out model.TrainRoute
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/train-routes/%d", id), input, &out); err != nil {
		return model.TrainRoute{}, err
	}
	return out, nil
}

// DeleteRoute deletes one route.
func (c *Client) DeleteRoute(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/train-routes/%d", id), nil, nil)
}

// MessageResponse is the backend's generic mutation acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// ClearAllRoutes deletes every route. Callers must have confirmed the
// action with the operator before reaching this point.
func (c *Client) ClearAllRoutes(ctx context.Context) (MessageResponse, error) {
	var out MessageResponse
	if err := c.do(ctx, http.MethodDelete, "/train-routes/", nil, &out); err != nil {
		return MessageResponse{}, err
	}
	return out, nil
}

// ImportSummary is the backend's route-import acknowledgement.
type ImportSummary struct {
	Message  string `json:"message"`
	Imported int    `json:"imported"`
}

// ImportRoutes uploads a CSV of routes.
func (c *Client) ImportRoutes(ctx context.Context, filename string, file io.Reader) (ImportSummary, error) {
	var out ImportSummary
	if err := c.upload(ctx, "/train-routes/import/", "file", filename, file, &out); err != nil {
		return ImportSummary{}, err
	}
	return out, nil
}
