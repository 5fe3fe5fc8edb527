// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	RouteRoot   = "/"
	RouteLogin  = "/login"
	RouteLogout = "/logout"

	RouteAdmin         = "/admin"
	RouteRoutes        = "/routes"
	RouteTranslations  = "/translations"
	RouteAudio         = "/audio"
	RouteSegments      = "/segments"
	RouteAnnouncements = "/announcements"
	RouteISLVideos     = "/isl-videos"
	RoutePicker        = "/picker"
	RouteEvents        = "/events"
	RouteProgress      = "/progress"

	RouteParamID    = "/{id}"
	RouteSuffixNew  = "/new"
	RouteSuffixEdit = "/{id}/edit"
)

// Redirect targets.
const (
	redirectLogin         = "/login"
	redirectAdmin         = "/admin"
	redirectRoutes        = "/admin/routes"
	redirectTranslations  = "/admin/translations"
	redirectAudio         = "/admin/audio"
	redirectSegments      = "/admin/segments"
	redirectAnnouncements = "/admin/announcements"
	redirectPicker        = "/admin/picker"
)
