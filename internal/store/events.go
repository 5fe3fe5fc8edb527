// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/railvoice/railvoice/internal/model"
)

// Queries provides access to the local state database.
type Queries struct {
	db *sql.DB
}

// New creates a Queries instance backed by db.
func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

// CreateEventParams are the fields for a new event log entry.
type CreateEventParams struct {
	Level     string
	Category  string
	Message   string
	Metadata  string
	CreatedAt time.Time
}

// CreateEvent inserts one event log entry.
func (q *Queries) CreateEvent(ctx context.Context, params CreateEventParams) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO events (level, category, message, metadata, created_at) VALUES (?, ?, ?, ?, ?)`,
		params.Level, params.Category, params.Message, params.Metadata, params.CreatedAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListEventsParams filter and page the event log.
type ListEventsParams struct {
	Level  string // empty matches all levels
	Limit  int
	Offset int
}

// ListEvents returns event log entries, newest first.
func (q *Queries) ListEvents(ctx context.Context, params ListEventsParams) ([]model.Event, error) {
	query := `SELECT id, level, category, message, metadata, created_at FROM events`
	args := []any{}
	if params.Level != "" {
		query += ` WHERE level = ?`
		args = append(args, params.Level)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, params.Limit, params.Offset)

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// CountEvents returns the number of events, optionally filtered by level.
func (q *Queries) CountEvents(ctx context.Context, level string) (int, error) {
	query := `SELECT COUNT(*) FROM events`
	args := []any{}
	if level != "" {
		query += ` WHERE level = ?`
		args = append(args, level)
	}
	var count int
	err := q.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

// PruneEvents deletes events older than the cutoff and returns how many
// were removed.
func (q *Queries) PruneEvents(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM events WHERE created_at < ?`, olderThan)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
