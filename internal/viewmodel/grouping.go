// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package viewmodel implements the list-group-paginate-select core shared
// by the route, translation, audio and segment browsers. It holds no
// network or rendering concerns: flat collections fetched by the gateway
// go in, filtered/grouped/paged rows come out.
package viewmodel

import "strings"

// Grouped is the result of partitioning a flat collection by a parent key.
// Keys preserves first-seen order; records within a group preserve the
// input order. Every input record belongs to exactly one group.
type Grouped[K comparable, T any] struct {
	Keys   []K
	Groups map[K][]T
}

// GroupBy partitions records by key. Duplicate keys merge into one group;
// an unknown or dangling foreign key still forms its own group under the
// raw key value.
func GroupBy[K comparable, T any](records []T, key func(T) K) Grouped[K, T] {
	g := Grouped[K, T]{Groups: make(map[K][]T)}
	for _, rec := range records {
		k := key(rec)
		if _, seen := g.Groups[k]; !seen {
			g.Keys = append(g.Keys, k)
		}
		g.Groups[k] = append(g.Groups[k], rec)
	}
	return g
}

// FilterKeys returns the group keys, in order, whose group contains at
// least one record matching the predicate. Matching is decided per record
// but inclusion is reported per group: all records of an included group
// stay visible so the operator sees the full context.
func (g Grouped[K, T]) FilterKeys(match func(T) bool) []K {
	if match == nil {
		return g.Keys
	}
	var keys []K
	for _, k := range g.Keys {
		for _, rec := range g.Groups[k] {
			if match(rec) {
				keys = append(keys, k)
				break
			}
		}
	}
	return keys
}

// TextMatcher builds a record predicate from a free-text query and the
// record's searchable fields. The query is compared case-insensitively as
// a substring against each field; an empty query matches everything.
func TextMatcher[T any](query string, fields func(T) []string) func(T) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	return func(rec T) bool {
		for _, f := range fields(rec) {
			if strings.Contains(strings.ToLower(f), query) {
				return true
			}
		}
		return false
	}
}

// Filter returns the records matching the predicate, preserving order.
// A nil predicate keeps everything.
func Filter[T any](records []T, match func(T) bool) []T {
	if match == nil {
		return records
	}
	var out []T
	for _, rec := range records {
		if match(rec) {
			out = append(out, rec)
		}
	}
	return out
}
