// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/railvoice/railvoice/internal/model"
	"github.com/railvoice/railvoice/internal/monitor"
	"github.com/railvoice/railvoice/internal/store"
)

// dashboardBackend serves the count endpoints plus token verification.
func dashboardBackend(tokenValid bool) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/verify", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"username": "admin", "valid": tokenValid})
	})
	mux.HandleFunc("GET /api/v1/train-routes/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"routes": seedRoutes(4), "total": 4})
	})
	mux.HandleFunc("GET /api/v1/translate/all", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"translations": []model.Translation{
			{ID: 1, TrainRouteID: 1, LanguageCode: "en", TrainName: "Mumbai Express"},
		}})
	})
	mux.HandleFunc("GET /api/v1/audio/files/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"audio_files": []model.AudioFile{
			{ID: 1, TrainRouteID: 1, LanguageCode: "en", AudioType: "arrival"},
		}})
	})
	mux.HandleFunc("GET /api/v1/audio-segments/all", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"segments": []model.AudioSegment{
			{ID: 1, CategoryID: 1, SegmentName: "prefix", LanguageCode: "en"},
		}})
	})
	return mux
}

func testEventsDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db))
	return db
}

func TestDashboardRendersCounts(t *testing.T) {
	sm := testSessionManager()
	db := testEventsDB(t)
	gw := testGateway(t, dashboardBackend(true))
	mon := monitor.New(gw, db, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	h := NewDashboardHandler(gw, testRenderer(t, sm), mon, db, sm)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	sm.LoadAndSave(http.HandlerFunc(h.Dashboard)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "[Dashboard]")
}

func TestDashboardSignsOutOnInvalidToken(t *testing.T) {
	sm := testSessionManager()
	db := testEventsDB(t)
	gw := testGateway(t, dashboardBackend(false))
	mon := monitor.New(gw, db, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	h := NewDashboardHandler(gw, testRenderer(t, sm), mon, db, sm)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	sm.LoadAndSave(http.HandlerFunc(h.Dashboard)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}
