// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Announcement category codes.
const (
	CategoryArriving       = "arriving"
	CategoryDelay          = "delay"
	CategoryCancelled      = "cancelled"
	CategoryPlatformChange = "platform_change"
)

var categoryNames = map[string]string{
	CategoryArriving:       "Arriving",
	CategoryDelay:          "Delay",
	CategoryCancelled:      "Cancelled",
	CategoryPlatformChange: "Platform Change",
}

// CategoryDisplayName returns the display name for a category code.
func CategoryDisplayName(code string) string {
	if name, ok := categoryNames[code]; ok {
		return name
	}
	return code
}

// AnnouncementCategory groups templates and audio segments.
type AnnouncementCategory struct {
	ID           int64     `json:"id"`
	CategoryCode string    `json:"category_code"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AnnouncementTemplate is a language-specific announcement text with
// placeholders, belonging to one category.
type AnnouncementTemplate struct {
	ID           int64     `json:"id"`
	CategoryID   int64     `json:"category_id"`
	LanguageCode string    `json:"language_code"`
	TemplateText string    `json:"template_text"`
	HasAudio     bool      `json:"has_audio"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AnnouncementParams is the per-category parameter variant for the
// announcement generator. Each variant carries only the fields its
// category requires; the loose key/value bag the backend accepts is built
// from the variant, never edited directly.
type AnnouncementParams interface {
	CategoryCode() string
	// Values returns the category-specific parameters merged into the
	// generator payload.
	Values() map[string]string
}

// TrainDetails are the route fields common to every generator category.
type TrainDetails struct {
	TrainNumber  string `validate:"required,max=10"`
	TrainName    string `validate:"required,max=120"`
	StartStation string `validate:"required,max=120"`
	EndStation   string `validate:"required,max=120"`
}

// ArrivingParams announces a train arriving on a platform.
type ArrivingParams struct {
	TrainDetails
	Platform string `validate:"required,max=5"`
}

func (ArrivingParams) CategoryCode() string { return CategoryArriving }

func (p ArrivingParams) Values() map[string]string {
	v := p.TrainDetails.values()
	v["platform"] = p.Platform
	return v
}

// DelayParams announces a delayed train.
type DelayParams struct {
	TrainDetails
	DelayMinutes string `validate:"required,max=5"`
}

func (DelayParams) CategoryCode() string { return CategoryDelay }

func (p DelayParams) Values() map[string]string {
	v := p.TrainDetails.values()
	v["delay_time"] = p.DelayMinutes
	return v
}

// CancelledParams announces a cancelled train. No extra fields.
type CancelledParams struct {
	TrainDetails
}

func (CancelledParams) CategoryCode() string { return CategoryCancelled }

func (p CancelledParams) Values() map[string]string {
	return p.TrainDetails.values()
}

// PlatformChangeParams announces a platform change.
type PlatformChangeParams struct {
	TrainDetails
	Platform string `validate:"required,max=5"`
}

func (PlatformChangeParams) CategoryCode() string { return CategoryPlatformChange }

func (p PlatformChangeParams) Values() map[string]string {
	v := p.TrainDetails.values()
	v["platform"] = p.Platform
	return v
}

func (d TrainDetails) values() map[string]string {
	return map[string]string{
		"train_number":  d.TrainNumber,
		"train_name":    d.TrainName,
		"start_station": d.StartStation,
		"end_station":   d.EndStation,
	}
}

// GeneratedAnnouncement is the backend's response to a generator request.
type GeneratedAnnouncement struct {
	AnnouncementText string `json:"announcement_text"`
	AudioURL         string `json:"audio_url,omitempty"`
}
