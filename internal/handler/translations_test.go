// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railvoice/railvoice/internal/model"
	"github.com/railvoice/railvoice/internal/progress"
)

func translationsBackend(bulkDelay time.Duration, bulkFails bool) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/translate/all", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"translations": []model.Translation{
			{ID: 1, TrainRouteID: 1, LanguageCode: "en", TrainName: "Mumbai Express"},
			{ID: 2, TrainRouteID: 1, LanguageCode: "hi", TrainName: "मुंबई एक्सप्रेस"},
			{ID: 3, TrainRouteID: 2, LanguageCode: "en", TrainName: "Chennai Mail"},
		}})
	})
	mux.HandleFunc("GET /api/v1/train-routes/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"routes": seedRoutes(2), "total": 2})
	})
	mux.HandleFunc("POST /api/v1/translate/bulk/", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(bulkDelay)
		if bulkFails {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadGateway)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "translation service down"})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message":           "done",
			"total_routes":      2,
			"translated_routes": 2,
			"failed_routes":     0,
		})
	})
	return mux
}

func TestTranslationsListGroupsAndRenders(t *testing.T) {
	sm := testSessionManager()
	runs := progress.NewRegistry(10 * time.Millisecond)
	h := NewTranslationsHandler(testGateway(t, translationsBackend(0, false)), testRenderer(t, sm), runs, 10)

	req := httptest.NewRequest(http.MethodGet, "/admin/translations?query=mumbai", nil)
	rec := httptest.NewRecorder()
	sm.LoadAndSave(http.HandlerFunc(h.List)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "[Text Translations]")
}

func TestGenerateBulkRunReachesSuccess(t *testing.T) {
	sm := testSessionManager()
	runs := progress.NewRegistry(5 * time.Millisecond)
	h := NewTranslationsHandler(testGateway(t, translationsBackend(20*time.Millisecond, false)), testRenderer(t, sm), runs, 10)

	router := chi.NewRouter()
	router.Post("/admin/translations/generate-bulk", h.GenerateBulk)
	router.Get("/admin/progress/{id}", NewProgressHandler(runs).Status)
	wrapped := sm.LoadAndSave(router)

	rec := postForm(t, wrapped, "/admin/translations/generate-bulk", "source_language=en", nil)
	require.Equal(t, http.StatusAccepted, rec.Code)

	var started struct {
		RunID string `json:"run_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &started))
	require.NotEmpty(t, started.RunID)

	snap := pollRun(t, wrapped, started.RunID)
	assert.Equal(t, progress.StateSucceeded, snap.State)
}

func TestGenerateBulkRunFailsFromBackendError(t *testing.T) {
	sm := testSessionManager()
	runs := progress.NewRegistry(5 * time.Millisecond)
	h := NewTranslationsHandler(testGateway(t, translationsBackend(0, true)), testRenderer(t, sm), runs, 10)

	router := chi.NewRouter()
	router.Post("/admin/translations/generate-bulk", h.GenerateBulk)
	router.Get("/admin/progress/{id}", NewProgressHandler(runs).Status)
	wrapped := sm.LoadAndSave(router)

	rec := postForm(t, wrapped, "/admin/translations/generate-bulk", "", nil)
	var started struct {
		RunID string `json:"run_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &started))

	snap := pollRun(t, wrapped, started.RunID)
	assert.Equal(t, progress.StateFailed, snap.State)
	assert.Contains(t, snap.Message, "translation service down")
}

func TestProgressUnknownRun(t *testing.T) {
	runs := progress.NewRegistry(time.Second)
	router := chi.NewRouter()
	router.Get("/admin/progress/{id}", NewProgressHandler(runs).Status)

	req := httptest.NewRequest(http.MethodGet, "/admin/progress/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// pollRun polls the progress endpoint until the run reports done.
func pollRun(t *testing.T, handler http.Handler, runID string) progress.Snapshot {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		req := httptest.NewRequest(http.MethodGet, "/admin/progress/"+runID, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var snap progress.Snapshot
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
		if snap.Done {
			return snap
		}
		select {
		case <-deadline:
			t.Fatalf("run %s never finished: %+v", runID, snap)
		case <-time.After(5 * time.Millisecond):
		}
	}
}
