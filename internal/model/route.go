// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// TrainRoute represents a train route owned by the backend. The dashboard
// holds transient copies only; every mutation goes through the gateway and
// is followed by a full refetch.
type TrainRoute struct {
	ID               int64      `json:"id"`
	TrainNumber      string     `json:"train_number"`
	TrainNameEN      string     `json:"train_name_en"`
	StartStationEN   string     `json:"start_station_en"`
	StartStationCode string     `json:"start_station_code"`
	EndStationEN     string     `json:"end_station_en"`
	EndStationCode   string     `json:"end_station_code"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

// TrainRouteInput is the payload for creating or updating a route.
type TrainRouteInput struct {
	TrainNumber      string `json:"train_number" validate:"required,max=10"`
	TrainNameEN      string `json:"train_name_en" validate:"required,max=120"`
	StartStationEN   string `json:"start_station_en" validate:"required,max=120"`
	StartStationCode string `json:"start_station_code" validate:"required,max=10"`
	EndStationEN     string `json:"end_station_en" validate:"required,max=120"`
	EndStationCode   string `json:"end_station_code" validate:"required,max=10"`
}

// RouteStatus tracks whether generated artifacts exist for a route.
type RouteStatus struct {
	RouteID             int64
	HasTextTranslation  bool
	HasAudioTranslation bool
}
