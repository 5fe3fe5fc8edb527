// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package gateway wraps the announcement backend's REST API. Every call is
// single-shot and context-aware; the dashboard never caches responses, the
// caller decides when to refetch. Transport and application failures are
// normalized into one tagged Error so handlers can surface a single
// human-readable message while the taxonomy stays available for logging.
package gateway

import (
	"context"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"resty.dev/v3"
)

const apiPrefix = "/api/v1"

// Client talks to the announcement backend.
type Client struct {
	http *resty.Client
	// storagePrefix is the backend's on-disk media root, stripped from
	// stored file paths when deriving public URLs.
	storagePrefix string
	baseOrigin    string
}

// Option configures a Client.
type Option func(*Client)

// WithStoragePrefix overrides the media storage prefix stripped from
// stored audio paths.
func WithStoragePrefix(prefix string) Option {
	return func(c *Client) { c.storagePrefix = prefix }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.SetTimeout(d) }
}

// New creates a Client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	httpClient := resty.New()
	httpClient.SetBaseURL(strings.TrimRight(baseURL, "/"))
	httpClient.SetHeader("Accept", "application/json")
	httpClient.SetTimeout(30 * time.Second)

	c := &Client{
		http:          httpClient,
		storagePrefix: "/var/www/war-ddh/ai-audio-translations/",
		baseOrigin:    strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close releases the underlying HTTP client.
func (c *Client) Close() error {
	return c.http.Close()
}

// SetToken attaches a bearer token to subsequent requests.
func (c *Client) SetToken(token string) {
	c.http.SetHeader("Authorization", "Bearer "+token)
}

// do issues one request and normalizes failures. out, when non-nil,
// receives the decoded 2xx body.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json")
		req.SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}
	var apiErr backendError
	req.SetError(&apiErr)

	res, err := req.Execute(method, apiPrefix+endpoint)
	if err != nil {
		return transportError(method, endpoint, err)
	}
	if res.IsError() {
		return applicationError(method, endpoint, res.StatusCode(), apiErr.Detail)
	}
	return nil
}

// upload posts one multipart file and decodes the 2xx body into out.
func (c *Client) upload(ctx context.Context, endpoint, field, filename string, file io.Reader, out any) error {
	req := c.http.R().
		SetContext(ctx).
		SetFileReader(field, filename, file)
	if out != nil {
		req.SetResult(out)
	}
	var apiErr backendError
	req.SetError(&apiErr)

	res, err := req.Post(apiPrefix + endpoint)
	if err != nil {
		return transportError("POST", endpoint, err)
	}
	if res.IsError() {
		return applicationError("POST", endpoint, res.StatusCode(), apiErr.Detail)
	}
	return nil
}

// Ping checks backend reachability. Any HTTP response counts as
// reachable; only a transport failure does not.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.http.R().SetContext(ctx).Get("/")
	if err != nil {
		return transportError("GET", "/", err)
	}
	return nil
}

// AudioURL derives the public URL for a generated route audio file. Only
// the final path element is meaningful; the backend serves it from its
// /audio mount.
func (c *Client) AudioURL(filePath string) string {
	return c.baseOrigin + "/audio/" + url.PathEscape(path.Base(filePath))
}

// SegmentAudioURL derives the public URL for an audio segment. Stored
// paths are absolute on the backend host; the storage prefix is stripped
// and the remainder served from the /ai-audio-translations mount.
func (c *Client) SegmentAudioURL(filePath string) string {
	rel := strings.TrimPrefix(filePath, c.storagePrefix)
	rel = strings.TrimPrefix(rel, "/")
	return c.baseOrigin + "/ai-audio-translations/" + rel
}

// ISLVideoURL derives the public URL for an ISL dataset clip.
func (c *Client) ISLVideoURL(relPath string) string {
	return c.baseOrigin + "/isl_dataset/" + strings.TrimPrefix(relPath, "/")
}
