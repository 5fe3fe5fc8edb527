// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package gateway

import (
	"context"
	"net/http"
)

// Token is the backend's login response.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login authenticates an operator against the backend.
func (c *Client) Login(ctx context.Context, username, password string) (Token, error) {
	var out Token
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return Token{}, err
	}
	return out, nil
}

// VerifyResponse is the backend's token-verification response.
type VerifyResponse struct {
	Username string `json:"username"`
	Valid    bool   `json:"valid"`
}

// Verify checks a previously issued token.
func (c *Client) Verify(ctx context.Context) (VerifyResponse, error) {
	var out VerifyResponse
	if err := c.do(ctx, http.MethodPost, "/auth/verify", nil, &out); err != nil {
		return VerifyResponse{}, err
	}
	return out, nil
}
