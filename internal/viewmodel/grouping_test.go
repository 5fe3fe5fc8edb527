// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package viewmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railvoice/railvoice/internal/model"
)

func tr(id, routeID int64, lang, trainName string) model.Translation {
	return model.Translation{
		ID:           id,
		TrainRouteID: routeID,
		LanguageCode: lang,
		TrainName:    trainName,
	}
}

func TestGroupByPartitionsDisjointly(t *testing.T) {
	records := []model.Translation{
		tr(1, 10, "en", "Mumbai Express"),
		tr(2, 20, "en", "Rajdhani Express"),
		tr(3, 10, "hi", "Mumbai Express"),
		tr(4, 20, "hi", "Rajdhani Express"),
		tr(5, 10, "mr", "Mumbai Express"),
	}

	grouped := GroupBy(records, func(t model.Translation) int64 { return t.TrainRouteID })

	// Keys preserve first-seen order
	assert.Equal(t, []int64{10, 20}, grouped.Keys)

	// Union of groups equals the input, each record exactly once
	total := 0
	seen := make(map[int64]bool)
	for _, key := range grouped.Keys {
		for _, rec := range grouped.Groups[key] {
			require.Equal(t, key, rec.TrainRouteID)
			require.False(t, seen[rec.ID], "record %d duplicated", rec.ID)
			seen[rec.ID] = true
			total++
		}
	}
	assert.Equal(t, len(records), total)

	// Insertion order within a group
	assert.Equal(t, []int64{1, 3, 5}, []int64{
		grouped.Groups[10][0].ID, grouped.Groups[10][1].ID, grouped.Groups[10][2].ID,
	})
}

// Five records for route 10 including a duplicate English record collapse
// into one group of size 5; the prominent record is the first en occurrence.
func TestGroupByDuplicateEnglish(t *testing.T) {
	records := []model.Translation{
		tr(1, 10, "en", "Deccan Queen"),
		tr(2, 10, "hi", "Deccan Queen"),
		tr(3, 10, "mr", "Deccan Queen"),
		tr(4, 10, "gu", "Deccan Queen"),
		tr(5, 10, "en", "Deccan Queen (retranslated)"),
	}

	grouped := GroupBy(records, func(t model.Translation) int64 { return t.TrainRouteID })
	require.Equal(t, []int64{10}, grouped.Keys)
	require.Len(t, grouped.Groups[10], 5)

	cards := BindTranslationGroups(grouped, grouped.Keys, nil)
	require.Len(t, cards, 1)
	require.NotNil(t, cards[0].English)
	assert.Equal(t, int64(1), cards[0].English.ID, "first en occurrence wins")
	assert.Equal(t, []string{"hi", "mr", "gu"}, cards[0].OtherLanguages)
}

func TestFilterKeysGroupLevelInclusion(t *testing.T) {
	records := []model.Translation{
		tr(1, 10, "en", "Mumbai Express"),
		tr(2, 10, "hi", "मुंबई एक्सप्रेस"),
		tr(3, 20, "en", "Howrah Mail"),
		tr(4, 30, "en", "Gujarat Express"),
	}
	grouped := GroupBy(records, func(t model.Translation) int64 { return t.TrainRouteID })

	match := TextMatcher("mumbai", func(t model.Translation) []string {
		return []string{t.TrainName}
	})
	keys := grouped.FilterKeys(match)

	// Only route 10 has a matching record, and the whole group stays intact
	assert.Equal(t, []int64{10}, keys)
	assert.Len(t, grouped.Groups[10], 2, "non-matching siblings remain visible")

	// Empty query matches everything
	assert.Equal(t, grouped.Keys, grouped.FilterKeys(TextMatcher[model.Translation]("", nil)))

	// No match yields no keys
	assert.Empty(t, grouped.FilterKeys(TextMatcher("shatabdi", func(t model.Translation) []string {
		return []string{t.TrainName}
	})))
}

func TestTextMatcherCaseInsensitive(t *testing.T) {
	match := TextMatcher("  EXPRESS ", func(s string) []string { return []string{s} })
	require.NotNil(t, match)
	assert.True(t, match("Mumbai Express"))
	assert.True(t, match("express special"))
	assert.False(t, match("Howrah Mail"))
}

func TestFilter(t *testing.T) {
	records := []int{1, 2, 3, 4, 5}
	got := Filter(records, func(v int) bool { return v%2 == 0 })
	assert.Equal(t, []int{2, 4}, got)
	assert.Equal(t, records, Filter(records, nil))
}
