// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/railvoice/railvoice/internal/gateway"
	"github.com/railvoice/railvoice/internal/model"
	"github.com/railvoice/railvoice/internal/session"
	"github.com/railvoice/railvoice/internal/viewmodel"
)

// parseIDParam extracts the {id} URL parameter as int64.
func parseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// routesByID indexes a route slice for group binding.
func routesByID(routes []model.TrainRoute) map[int64]model.TrainRoute {
	m := make(map[int64]model.TrainRoute, len(routes))
	for _, route := range routes {
		m[route.ID] = route
	}
	return m
}

// categoriesByID indexes categories for segment group binding.
func categoriesByID(categories []model.AnnouncementCategory) map[int64]model.AnnouncementCategory {
	m := make(map[int64]model.AnnouncementCategory, len(categories))
	for _, c := range categories {
		m[c.ID] = c
	}
	return m
}

// loadSelection reads the picker selection from the session. Selections
// are stored as a JSON id array; a missing or corrupt value yields an
// empty selection.
func loadSelection(ctx context.Context, sm *scs.SessionManager) *viewmodel.Selection {
	raw := sm.GetString(ctx, session.KeyRouteSelection)
	if raw == "" {
		return viewmodel.NewSelection()
	}
	var ids []int64
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return viewmodel.NewSelection()
	}
	return viewmodel.NewSelectionFrom(ids)
}

// saveSelection writes the picker selection back to the session.
func saveSelection(ctx context.Context, sm *scs.SessionManager, sel *viewmodel.Selection) {
	data, _ := json.Marshal(sel.IDs())
	sm.Put(ctx, session.KeyRouteSelection, string(data))
}

// validationMessages flattens validator failures into field-keyed
// messages for form templates.
func validationMessages(err error) map[string]string {
	errs := make(map[string]string)
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		errs["form"] = "Invalid form data"
		return errs
	}
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			errs[fe.Field()] = "This field is required"
		case "max":
			errs[fe.Field()] = "Must be at most " + fe.Param() + " characters"
		default:
			errs[fe.Field()] = "Invalid value"
		}
	}
	return errs
}

// routeStatuses derives per-route artifact badges from concurrent
// translations and audio fetches. Routes absent from both collections get
// a zero-value status.
func routeStatuses(ctx context.Context, backend *gateway.Client, routes []model.TrainRoute) (map[int64]model.RouteStatus, error) {
	var (
		translations []model.Translation
		audioFiles   []model.AudioFile
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		translations, err = backend.AllTranslations(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		audioFiles, err = backend.AudioFiles(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	statuses := make(map[int64]model.RouteStatus, len(routes))
	for _, route := range routes {
		statuses[route.ID] = model.RouteStatus{RouteID: route.ID}
	}
	for _, t := range translations {
		if s, ok := statuses[t.TrainRouteID]; ok {
			s.HasTextTranslation = true
			statuses[t.TrainRouteID] = s
		}
	}
	for _, a := range audioFiles {
		if s, ok := statuses[a.TrainRouteID]; ok {
			s.HasAudioTranslation = true
			statuses[a.TrainRouteID] = s
		}
	}
	return statuses, nil
}
