// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// ISLVideo is one Indian Sign Language clip from the backend's video
// dataset. Videos are grouped by category in the browser.
type ISLVideo struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Size     int64  `json:"size"`
}
