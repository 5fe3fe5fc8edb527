// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Audio types generated per route translation.
const (
	AudioTypeTrainNumberWords = "train_number_words"
	AudioTypeTrainName        = "train_name"
	AudioTypeStartStation     = "start_station_name"
	AudioTypeEndStation       = "end_station_name"
)

var audioTypeNames = map[string]string{
	AudioTypeTrainNumberWords: "Train Number (Words)",
	AudioTypeTrainName:        "Train Name",
	AudioTypeStartStation:     "Start Station",
	AudioTypeEndStation:       "End Station",
}

// AudioTypeName returns the display name for an audio type.
func AudioTypeName(audioType string) string {
	if name, ok := audioTypeNames[audioType]; ok {
		return name
	}
	return audioType
}

// AudioFile is one synthesized audio asset for a route, many-to-one with
// TrainRoute.
type AudioFile struct {
	ID            int64     `json:"id"`
	TrainRouteID  int64     `json:"train_route_id"`
	LanguageCode  string    `json:"language_code"`
	AudioType     string    `json:"audio_type"`
	AudioFilePath string    `json:"audio_file_path"`
	CreatedAt     time.Time `json:"created_at"`
}

// SegmentSlot is the position of an audio segment within a composed
// announcement. The total order defined here is the single source of truth
// for display, text concatenation and sequential playback.
type SegmentSlot int

const (
	SlotPrefix SegmentSlot = iota
	SlotFrom
	SlotTo
	SlotSuffix
	slotUnknown
)

var slotsByName = map[string]SegmentSlot{
	"prefix": SlotPrefix,
	"from":   SlotFrom,
	"to":     SlotTo,
	"suffix": SlotSuffix,
}

var slotDisplayNames = map[SegmentSlot]string{
	SlotPrefix: "Prefix",
	SlotFrom:   "From",
	SlotTo:     "To",
	SlotSuffix: "Suffix",
}

// ParseSegmentSlot maps a backend segment name to its slot. Unknown names
// sort after all known slots.
func ParseSegmentSlot(name string) SegmentSlot {
	if slot, ok := slotsByName[name]; ok {
		return slot
	}
	return slotUnknown
}

// String returns the display name of the slot.
func (s SegmentSlot) String() string {
	if name, ok := slotDisplayNames[s]; ok {
		return name
	}
	return "Unknown"
}

// AudioSegment is one reusable announcement building block, many-to-one
// with AnnouncementCategory.
type AudioSegment struct {
	ID            int64     `json:"id"`
	CategoryID    int64     `json:"category_id"`
	SegmentName   string    `json:"segment_name"`
	SegmentText   string    `json:"segment_text"`
	LanguageCode  string    `json:"language_code"`
	AudioFilePath string    `json:"audio_file_path"`
	AudioDuration float64   `json:"audio_duration"`
	CreatedAt     time.Time `json:"created_at"`
}

// Slot returns the ordering slot of this segment.
func (s AudioSegment) Slot() SegmentSlot {
	return ParseSegmentSlot(s.SegmentName)
}
