// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railvoice/railvoice/internal/model"
)

func islBackend() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/isl-videos/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"videos": []model.ISLVideo{
				{Category: "stations", Name: "Mumbai Central", Filename: "mumbai.mp4", Path: "stations/mumbai.mp4"},
				{Category: "stations", Name: "Chennai Egmore", Filename: "chennai.mp4", Path: "stations/chennai.mp4"},
				{Category: "numbers", Name: "Platform 4", Filename: "four.mp4", Path: "numbers/four.mp4"},
			},
			"total":      3,
			"categories": []string{"numbers", "stations"},
		})
	})
	return mux
}

func getPage(t *testing.T, handler http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestISLListFilters(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"unfiltered", "/admin/isl-videos"},
		{"by category", "/admin/isl-videos?category=numbers"},
		{"by query", "/admin/isl-videos?query=chennai"},
		{"no matches", "/admin/isl-videos?category=numbers&query=chennai"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := testSessionManager()
			h := NewISLHandler(testGateway(t, islBackend()), testRenderer(t, sm), 10)

			rec := getPage(t, sm.LoadAndSave(http.HandlerFunc(h.List)), tt.target)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), "[Sign Language Videos]")
		})
	}
}

func TestISLListRedirectsWhenBackendDown(t *testing.T) {
	sm := testSessionManager()
	down := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	h := NewISLHandler(testGateway(t, down), testRenderer(t, sm), 10)

	rec := getPage(t, sm.LoadAndSave(http.HandlerFunc(h.List)), "/admin/isl-videos")

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin", rec.Header().Get("Location"))
}
