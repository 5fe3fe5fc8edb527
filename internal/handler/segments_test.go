// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railvoice/railvoice/internal/model"
	"github.com/railvoice/railvoice/internal/progress"
)

func segmentsBackend() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/audio-segments/all", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"segments": []model.AudioSegment{
			{ID: 1, CategoryID: 1, SegmentName: "prefix", SegmentText: "Attention please", LanguageCode: "en", AudioDuration: 1.5},
			{ID: 2, CategoryID: 1, SegmentName: "to", SegmentText: "is arriving at", LanguageCode: "en", AudioDuration: 1.0},
			{ID: 3, CategoryID: 1, SegmentName: "prefix", SegmentText: "कृपया ध्यान दीजिये", LanguageCode: "hi", AudioDuration: 1.8},
			{ID: 4, CategoryID: 2, SegmentName: "prefix", SegmentText: "We regret to inform", LanguageCode: "en", AudioDuration: 2.0},
		}})
	})
	mux.HandleFunc("GET /api/v1/announcements/categories/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"categories": []map[string]any{
			{"id": 1, "category_code": "arriving", "description": "Train arriving"},
			{"id": 2, "category_code": "delay", "description": "Train delayed"},
		}})
	})
	return mux
}

func TestSegmentsListGroupsByCategory(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"unfiltered", "/admin/segments"},
		{"matching query", "/admin/segments?query=arriving"},
		{"no matches", "/admin/segments?query=weather"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := testSessionManager()
			runs := progress.NewRegistry(10 * time.Millisecond)
			h := NewSegmentsHandler(testGateway(t, segmentsBackend()), testRenderer(t, sm), runs, 10)

			rec := getPage(t, sm.LoadAndSave(http.HandlerFunc(h.List)), tt.target)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), "[Audio Segments]")
		})
	}
}

func TestSegmentsListRedirectsWhenBackendDown(t *testing.T) {
	sm := testSessionManager()
	down := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	runs := progress.NewRegistry(10 * time.Millisecond)
	h := NewSegmentsHandler(testGateway(t, down), testRenderer(t, sm), runs, 10)

	rec := getPage(t, sm.LoadAndSave(http.HandlerFunc(h.List)), "/admin/segments")

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin", rec.Header().Get("Location"))
}
