// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package monitor runs the background jobs: a periodic backend
// reachability probe feeding the dashboard status badge, plus event log
// and progress run cleanup.
package monitor

import (
	"context"
	"database/sql"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/railvoice/railvoice/internal/gateway"
	"github.com/railvoice/railvoice/internal/progress"
	"github.com/railvoice/railvoice/internal/store"
)

const (
	eventRetention = 30 * 24 * time.Hour
	runRetention   = time.Hour
	probeTimeout   = 10 * time.Second
)

// Status is the last probe result.
type Status struct {
	Reachable bool
	CheckedAt time.Time
	Error     string
}

// Monitor owns the cron schedule and the current backend status.
type Monitor struct {
	backend *gateway.Client
	queries *store.Queries
	runs    *progress.Registry
	cron    *cron.Cron
	logger  *slog.Logger

	mu     sync.RWMutex
	status Status
}

// New creates a Monitor. Pass nil runs to skip progress pruning.
func New(backend *gateway.Client, db *sql.DB, runs *progress.Registry, logger *slog.Logger) *Monitor {
	return &Monitor{
		backend: backend,
		queries: store.New(db),
		runs:    runs,
		cron:    cron.New(),
		logger:  logger,
	}
}

// Start probes once immediately, then schedules the probe every minute
// and cleanup hourly.
func (m *Monitor) Start() error {
	m.probe()

	if _, err := m.cron.AddFunc("* * * * *", m.probe); err != nil {
		return err
	}
	if _, err := m.cron.AddFunc("@hourly", m.cleanup); err != nil {
		return err
	}

	m.cron.Start()
	m.logger.Info("monitor started", "jobs", len(m.cron.Entries()))
	return nil
}

// Stop waits for running jobs to finish.
func (m *Monitor) Stop() {
	ctx := m.cron.Stop()
	<-ctx.Done()
	m.logger.Info("monitor stopped")
}

// Status returns the last probe result.
func (m *Monitor) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) probe() {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	err := m.backend.Ping(ctx)

	m.mu.Lock()
	wasReachable := m.status.Reachable
	m.status = Status{
		Reachable: err == nil,
		CheckedAt: time.Now(),
	}
	if err != nil {
		m.status.Error = gateway.UserMessage(err)
	}
	m.mu.Unlock()

	// Log transitions only, a flapping backend would flood the event log
	if err != nil && wasReachable {
		m.logger.Warn("backend became unreachable", "error", err)
	} else if err == nil && !wasReachable {
		m.logger.Info("backend reachable")
	}
}

func (m *Monitor) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	pruned, err := m.queries.PruneEvents(ctx, time.Now().Add(-eventRetention))
	if err != nil {
		m.logger.Error("event log cleanup failed", "error", err)
	} else if pruned > 0 {
		m.logger.Info("pruned event log", "removed", pruned)
	}

	if m.runs != nil {
		if removed := m.runs.Prune(runRetention); removed > 0 {
			m.logger.Info("pruned finished progress runs", "removed", removed)
		}
	}
}
