// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package viewmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionToggleIdempotence(t *testing.T) {
	sel := NewSelection()

	sel.Toggle(7)
	assert.True(t, sel.Contains(7))
	sel.Toggle(7)
	assert.False(t, sel.Contains(7))
	assert.Equal(t, 0, sel.Len())
}

func TestSelectionPageOperations(t *testing.T) {
	sel := NewSelection()
	page := []int64{1, 2, 3}

	assert.False(t, sel.AllOnPageSelected(page))

	sel.SelectPage(page)
	assert.True(t, sel.AllOnPageSelected(page))
	assert.Equal(t, 3, sel.Len())

	// Union is idempotent
	sel.SelectPage(page)
	assert.Equal(t, 3, sel.Len())

	// Selection accumulates across pages
	sel.SelectPage([]int64{4, 5})
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, sel.IDs())
	assert.True(t, sel.AllOnPageSelected(page))

	sel.DeselectPage(page)
	assert.False(t, sel.AllOnPageSelected(page))
	assert.Equal(t, []int64{4, 5}, sel.IDs())
}

func TestSelectionEmptyPageNeverAllSelected(t *testing.T) {
	sel := NewSelection()
	sel.SelectPage([]int64{1})
	assert.False(t, sel.AllOnPageSelected(nil))
	assert.False(t, sel.AllOnPageSelected([]int64{}))
}

func TestSelectionPrune(t *testing.T) {
	sel := NewSelectionFrom([]int64{1, 2, 3, 4})

	// Entity 3 was deleted on the backend between fetches
	sel.Prune([]int64{1, 2, 4, 9})
	assert.Equal(t, []int64{1, 2, 4}, sel.IDs())

	sel.Prune(nil)
	assert.Equal(t, 0, sel.Len())
}

func TestSelectionClear(t *testing.T) {
	sel := NewSelectionFrom([]int64{1, 2})
	sel.Clear()
	assert.Equal(t, 0, sel.Len())
	sel.Toggle(5)
	assert.Equal(t, []int64{5}, sel.IDs())
}
