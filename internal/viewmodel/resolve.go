// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package viewmodel

import (
	"context"
	"log/slog"
)

// ResolveSelection resolves selected ids to full entities by re-querying
// the backend in batches of batchSize. Batches are independent: a failed
// batch is logged and skipped, and entities already resolved are kept, so
// applying a large selection degrades to best effort instead of failing
// outright.
func ResolveSelection[T any](
	ctx context.Context,
	sel *Selection,
	batchSize int,
	fetch func(ctx context.Context, ids []int64) ([]T, error),
) []T {
	if batchSize <= 0 {
		batchSize = 1
	}
	ids := sel.IDs()

	var resolved []T
	for start := 0; start < len(ids); start += batchSize {
		end := start + batchSize
		if end > len(ids) {
			end = len(ids)
		}
		batch := ids[start:end]

		entities, err := fetch(ctx, batch)
		if err != nil {
			slog.Warn("selection batch resolution failed, skipping batch",
				"error", err, "batch_start", start, "batch_size", len(batch))
			continue
		}
		resolved = append(resolved, entities...)
	}
	return resolved
}
