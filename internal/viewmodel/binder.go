// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package viewmodel

import (
	"sort"
	"strings"
	"time"

	"github.com/railvoice/railvoice/internal/model"
)

// TranslationGroup is one renderable card in the translation browser: all
// translation records of a route, with the default-language record singled
// out for prominent display.
type TranslationGroup struct {
	RouteID int64
	Route   *model.TrainRoute
	Records []model.Translation
	// English is the first record with the default language code, nil when
	// the group has none.
	English        *model.Translation
	OtherLanguages []string
}

// BindTranslationGroups maps the paged group keys into renderable cards.
// routes indexes the route collection by id; a missing route leaves the
// card's Route nil and the raw id is displayed instead.
func BindTranslationGroups(
	grouped Grouped[int64, model.Translation],
	pageKeys []int64,
	routes map[int64]model.TrainRoute,
) []TranslationGroup {
	cards := make([]TranslationGroup, 0, len(pageKeys))
	for _, routeID := range pageKeys {
		records := grouped.Groups[routeID]
		card := TranslationGroup{
			RouteID: routeID,
			Records: records,
		}
		if route, ok := routes[routeID]; ok {
			r := route
			card.Route = &r
		}
		for i := range records {
			if records[i].LanguageCode == model.DefaultLanguage {
				card.English = &records[i]
				break
			}
		}
		card.OtherLanguages = secondaryLanguages(records, func(t model.Translation) string {
			return t.LanguageCode
		})
		cards = append(cards, card)
	}
	return cards
}

// AudioGroup is one renderable card in the audio browser: all audio files
// of a route, English files listed up front.
type AudioGroup struct {
	RouteID        int64
	Route          *model.TrainRoute
	Files          []model.AudioFile
	EnglishFiles   []model.AudioFile
	OtherLanguages []string
}

// FilesFor returns the group's files for one language, preserving order.
func (g AudioGroup) FilesFor(lang string) []model.AudioFile {
	var files []model.AudioFile
	for _, f := range g.Files {
		if f.LanguageCode == lang {
			files = append(files, f)
		}
	}
	return files
}

// BindAudioGroups maps the paged group keys into renderable audio cards.
func BindAudioGroups(
	grouped Grouped[int64, model.AudioFile],
	pageKeys []int64,
	routes map[int64]model.TrainRoute,
) []AudioGroup {
	cards := make([]AudioGroup, 0, len(pageKeys))
	for _, routeID := range pageKeys {
		files := grouped.Groups[routeID]
		card := AudioGroup{
			RouteID: routeID,
			Files:   files,
		}
		if route, ok := routes[routeID]; ok {
			r := route
			card.Route = &r
		}
		for _, f := range files {
			if f.LanguageCode == model.DefaultLanguage {
				card.EnglishFiles = append(card.EnglishFiles, f)
			}
		}
		card.OtherLanguages = secondaryLanguages(files, func(f model.AudioFile) string {
			return f.LanguageCode
		})
		cards = append(cards, card)
	}
	return cards
}

// SegmentGroup is one renderable card in the segment browser: all audio
// segments of an announcement category.
type SegmentGroup struct {
	CategoryID      int64
	Category        *model.AnnouncementCategory
	Segments        []model.AudioSegment
	EnglishSegments []model.AudioSegment
	OtherLanguages  []string
}

// SegmentsFor returns the group's segments for one language in slot order.
func (g SegmentGroup) SegmentsFor(lang string) []model.AudioSegment {
	var segments []model.AudioSegment
	for _, s := range g.Segments {
		if s.LanguageCode == lang {
			segments = append(segments, s)
		}
	}
	return SortSegments(segments)
}

// BindSegmentGroups maps the paged group keys into renderable segment cards.
func BindSegmentGroups(
	grouped Grouped[int64, model.AudioSegment],
	pageKeys []int64,
	categories map[int64]model.AnnouncementCategory,
) []SegmentGroup {
	cards := make([]SegmentGroup, 0, len(pageKeys))
	for _, categoryID := range pageKeys {
		segments := grouped.Groups[categoryID]
		card := SegmentGroup{
			CategoryID: categoryID,
			Segments:   segments,
		}
		if cat, ok := categories[categoryID]; ok {
			c := cat
			card.Category = &c
		}
		card.EnglishSegments = SortSegments(card.SegmentsFor(model.DefaultLanguage))
		card.OtherLanguages = secondaryLanguages(segments, func(s model.AudioSegment) string {
			return s.LanguageCode
		})
		cards = append(cards, card)
	}
	return cards
}

// SortSegments returns the segments ordered by their slot (prefix, from,
// to, suffix). The sort is stable so duplicate slots keep insertion order.
func SortSegments(segments []model.AudioSegment) []model.AudioSegment {
	sorted := make([]model.AudioSegment, len(segments))
	copy(sorted, segments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Slot() < sorted[j].Slot()
	})
	return sorted
}

// AnnouncementText concatenates segment texts in slot order into the full
// spoken announcement.
func AnnouncementText(segments []model.AudioSegment) string {
	sorted := SortSegments(segments)
	parts := make([]string, 0, len(sorted))
	for _, s := range sorted {
		if text := strings.TrimSpace(s.SegmentText); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// PlaybackStep schedules one segment in a sequential playback of a
// composed announcement.
type PlaybackStep struct {
	Segment model.AudioSegment
	Offset  time.Duration
}

// OffsetMillis returns the start offset in milliseconds, for embedding in
// markup consumed by the playback script.
func (s PlaybackStep) OffsetMillis() int64 {
	return s.Offset.Milliseconds()
}

// PlaybackSchedule orders segments by slot and assigns each a start
// offset: the previous segment's reported audio duration plus a fixed gap
// between consecutive segments.
func PlaybackSchedule(segments []model.AudioSegment, gap time.Duration) []PlaybackStep {
	sorted := SortSegments(segments)
	steps := make([]PlaybackStep, 0, len(sorted))
	offset := time.Duration(0)
	for _, s := range sorted {
		steps = append(steps, PlaybackStep{Segment: s, Offset: offset})
		offset += time.Duration(s.AudioDuration*float64(time.Second)) + gap
	}
	return steps
}

// secondaryLanguages returns the distinct non-default language codes
// present in records, ordered by the canonical language list with unknown
// codes appended in first-seen order.
func secondaryLanguages[T any](records []T, lang func(T) string) []string {
	present := make(map[string]bool)
	var extras []string
	for _, rec := range records {
		code := lang(rec)
		if code == model.DefaultLanguage || present[code] {
			continue
		}
		present[code] = true
		known := false
		for _, l := range model.AllLanguages {
			if l == code {
				known = true
				break
			}
		}
		if !known {
			extras = append(extras, code)
		}
	}
	var out []string
	for _, l := range model.AllLanguages {
		if l != model.DefaultLanguage && present[l] {
			out = append(out, l)
		}
	}
	return append(out, extras...)
}
