// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package viewmodel

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveSelectionBatches(t *testing.T) {
	sel := NewSelectionFrom([]int64{1, 2, 3, 4, 5, 6, 7})

	var batches [][]int64
	resolved := ResolveSelection(context.Background(), sel, 3,
		func(_ context.Context, ids []int64) ([]int64, error) {
			batches = append(batches, ids)
			return ids, nil
		})

	assert.Equal(t, [][]int64{{1, 2, 3}, {4, 5, 6}, {7}}, batches)
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6, 7}, resolved)
}

// A failed batch is skipped; already-resolved batches and later batches
// survive.
func TestResolveSelectionPartialFailure(t *testing.T) {
	sel := NewSelectionFrom([]int64{1, 2, 3, 4, 5, 6})

	call := 0
	resolved := ResolveSelection(context.Background(), sel, 2,
		func(_ context.Context, ids []int64) ([]int64, error) {
			call++
			if call == 2 {
				return nil, errors.New("backend unavailable")
			}
			return ids, nil
		})

	assert.Equal(t, 3, call)
	assert.Equal(t, []int64{1, 2, 5, 6}, resolved)
}

func TestResolveSelectionEmpty(t *testing.T) {
	resolved := ResolveSelection(context.Background(), NewSelection(), 10,
		func(_ context.Context, ids []int64) ([]int64, error) {
			t.Fatal("fetch should not be called for an empty selection")
			return nil, nil
		})
	assert.Empty(t, resolved)
}

func TestResolveSelectionBadBatchSize(t *testing.T) {
	sel := NewSelectionFrom([]int64{1, 2})
	var batches int
	ResolveSelection(context.Background(), sel, 0,
		func(_ context.Context, ids []int64) ([]int64, error) {
			batches++
			assert.Len(t, ids, 1)
			return ids, nil
		})
	assert.Equal(t, 2, batches)
}
