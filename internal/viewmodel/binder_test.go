// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package viewmodel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railvoice/railvoice/internal/model"
)

func seg(id int64, name, text, lang string) model.AudioSegment {
	return model.AudioSegment{
		ID:           id,
		CategoryID:   1,
		SegmentName:  name,
		SegmentText:  text,
		LanguageCode: lang,
	}
}

func TestSortSegmentsSlotOrder(t *testing.T) {
	segments := []model.AudioSegment{
		seg(1, "suffix", "will arrive shortly", "en"),
		seg(2, "to", "to Mumbai Central", "en"),
		seg(3, "prefix", "Attention please, train", "en"),
		seg(4, "from", "from New Delhi", "en"),
	}

	sorted := SortSegments(segments)
	var names []string
	for _, s := range sorted {
		names = append(names, s.SegmentName)
	}
	assert.Equal(t, []string{"prefix", "from", "to", "suffix"}, names)

	// Input untouched
	assert.Equal(t, "suffix", segments[0].SegmentName)
}

func TestSortSegmentsUnknownSlotLast(t *testing.T) {
	segments := []model.AudioSegment{
		seg(1, "jingle", "ding dong", "en"),
		seg(2, "prefix", "Attention", "en"),
	}
	sorted := SortSegments(segments)
	assert.Equal(t, "prefix", sorted[0].SegmentName)
	assert.Equal(t, "jingle", sorted[1].SegmentName)
}

func TestAnnouncementText(t *testing.T) {
	segments := []model.AudioSegment{
		seg(1, "to", "to Mumbai Central", "en"),
		seg(2, "prefix", "Attention please, train 12951", "en"),
		seg(3, "suffix", "will arrive shortly", "en"),
		seg(4, "from", "from New Delhi", "en"),
	}
	want := "Attention please, train 12951 from New Delhi to Mumbai Central will arrive shortly"
	assert.Equal(t, want, AnnouncementText(segments))

	assert.Equal(t, "", AnnouncementText(nil))
}

func TestPlaybackSchedule(t *testing.T) {
	segments := []model.AudioSegment{
		seg(1, "suffix", "c", "en"),
		seg(2, "prefix", "a", "en"),
		seg(3, "from", "b", "en"),
	}

	steps := PlaybackSchedule(segments, time.Second)
	require.Len(t, steps, 3)
	assert.Equal(t, "prefix", steps[0].Segment.SegmentName)
	assert.Equal(t, time.Duration(0), steps[0].Offset)
	assert.Equal(t, "from", steps[1].Segment.SegmentName)
	assert.Equal(t, time.Second, steps[1].Offset)
	assert.Equal(t, "suffix", steps[2].Segment.SegmentName)
	assert.Equal(t, 2*time.Second, steps[2].Offset)
}

func TestPlaybackScheduleAccountsForDurations(t *testing.T) {
	first := seg(1, "prefix", "a", "en")
	first.AudioDuration = 2.5
	second := seg(2, "to", "b", "en")
	second.AudioDuration = 1.0

	steps := PlaybackSchedule([]model.AudioSegment{second, first}, 300*time.Millisecond)
	require.Len(t, steps, 2)
	assert.Equal(t, time.Duration(0), steps[0].Offset)
	assert.Equal(t, 2800*time.Millisecond, steps[1].Offset)
	assert.Equal(t, int64(2800), steps[1].OffsetMillis())
}

func TestBindAudioGroups(t *testing.T) {
	files := []model.AudioFile{
		{ID: 1, TrainRouteID: 10, LanguageCode: "en", AudioType: model.AudioTypeTrainName},
		{ID: 2, TrainRouteID: 10, LanguageCode: "hi", AudioType: model.AudioTypeTrainName},
		{ID: 3, TrainRouteID: 10, LanguageCode: "en", AudioType: model.AudioTypeStartStation},
		{ID: 4, TrainRouteID: 20, LanguageCode: "gu", AudioType: model.AudioTypeTrainName},
	}
	routes := map[int64]model.TrainRoute{
		10: {ID: 10, TrainNumber: "12951", TrainNameEN: "Mumbai Rajdhani"},
	}

	grouped := GroupBy(files, func(f model.AudioFile) int64 { return f.TrainRouteID })
	cards := BindAudioGroups(grouped, grouped.Keys, routes)
	require.Len(t, cards, 2)

	first := cards[0]
	require.NotNil(t, first.Route)
	assert.Equal(t, "12951", first.Route.TrainNumber)
	assert.Len(t, first.EnglishFiles, 2)
	assert.Equal(t, []string{"hi"}, first.OtherLanguages)
	assert.Len(t, first.FilesFor("hi"), 1)

	// Route 20 is unknown to the route index: card renders by raw id
	second := cards[1]
	assert.Nil(t, second.Route)
	assert.Equal(t, int64(20), second.RouteID)
	assert.Empty(t, second.EnglishFiles)
	assert.Equal(t, []string{"gu"}, second.OtherLanguages)
}

func TestBindSegmentGroups(t *testing.T) {
	segments := []model.AudioSegment{
		seg(1, "from", "from A", "en"),
		seg(2, "prefix", "Attention", "en"),
		seg(3, "prefix", "ध्यान दें", "hi"),
	}
	categories := map[int64]model.AnnouncementCategory{
		1: {ID: 1, CategoryCode: model.CategoryArriving},
	}

	grouped := GroupBy(segments, func(s model.AudioSegment) int64 { return s.CategoryID })
	cards := BindSegmentGroups(grouped, grouped.Keys, categories)
	require.Len(t, cards, 1)

	card := cards[0]
	require.NotNil(t, card.Category)
	assert.Equal(t, model.CategoryArriving, card.Category.CategoryCode)
	require.Len(t, card.EnglishSegments, 2)
	assert.Equal(t, "prefix", card.EnglishSegments[0].SegmentName, "English segments come back slot-ordered")
	assert.Equal(t, []string{"hi"}, card.OtherLanguages)
}
