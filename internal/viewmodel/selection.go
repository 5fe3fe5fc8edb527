// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package viewmodel

import "sort"

// Selection tracks entity ids checked across paginated views. It lives for
// one picker-modal session: created empty on open, cleared on close or
// apply, never persisted beyond the operator's session.
type Selection struct {
	ids map[int64]struct{}
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[int64]struct{})}
}

// NewSelectionFrom returns a selection pre-populated with ids, for
// round-tripping through session storage.
func NewSelectionFrom(ids []int64) *Selection {
	s := NewSelection()
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Toggle flips membership of id. Toggling twice restores the prior state.
func (s *Selection) Toggle(id int64) {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

// Contains reports whether id is selected.
func (s *Selection) Contains(id int64) bool {
	_, ok := s.ids[id]
	return ok
}

// SelectPage adds every id on the current page. Idempotent union.
func (s *Selection) SelectPage(pageIDs []int64) {
	for _, id := range pageIDs {
		s.ids[id] = struct{}{}
	}
}

// DeselectPage removes every id on the current page.
func (s *Selection) DeselectPage(pageIDs []int64) {
	for _, id := range pageIDs {
		delete(s.ids, id)
	}
}

// AllOnPageSelected reports whether the page's ids are all selected. An
// empty page is never "all selected"; this drives the select-all checkbox
// tri-state.
func (s *Selection) AllOnPageSelected(pageIDs []int64) bool {
	if len(pageIDs) == 0 {
		return false
	}
	for _, id := range pageIDs {
		if !s.Contains(id) {
			return false
		}
	}
	return true
}

// Prune drops selected ids that are no longer part of the live collection,
// so a refresh cannot leave deleted entities silently selected.
func (s *Selection) Prune(liveIDs []int64) {
	live := make(map[int64]struct{}, len(liveIDs))
	for _, id := range liveIDs {
		live[id] = struct{}{}
	}
	for id := range s.ids {
		if _, ok := live[id]; !ok {
			delete(s.ids, id)
		}
	}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.ids = make(map[int64]struct{})
}

// Len returns the number of selected ids.
func (s *Selection) Len() int {
	return len(s.ids)
}

// IDs returns the selected ids in ascending order.
func (s *Selection) IDs() []int64 {
	ids := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
