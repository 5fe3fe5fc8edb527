// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/railvoice/railvoice/internal/progress"
)

// ProgressHandler serves the polling endpoint for staged runs.
type ProgressHandler struct {
	runs *progress.Registry
}

// NewProgressHandler creates a ProgressHandler.
func NewProgressHandler(runs *progress.Registry) *ProgressHandler {
	return &ProgressHandler{runs: runs}
}

// Status returns a run snapshot as JSON. The modal polls this until
// Done is true.
func (h *ProgressHandler) Status(w http.ResponseWriter, r *http.Request) {
	run, ok := h.runs.Get(chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown run"})
		return
	}
	writeJSON(w, http.StatusOK, run.Snapshot())
}
