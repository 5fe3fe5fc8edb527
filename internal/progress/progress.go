// Copyright (c) 2025-2026 RailVoice Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package progress tracks staged progress for long-running generation
// jobs. The stage indicators advance on a fixed timer for user feedback,
// but the terminal state comes strictly from the real backend call's
// outcome, never from the timer.
package progress

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// State is the lifecycle state of a run. Runs are born running; there is
// no pending state because Start enters the first stage immediately.
type State string

const (
	StateRunning   State = "running"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
)

// Run is one staged job. The stage list is fixed at start; the current
// stage index advances on the timer and holds at the last stage until
// the backend call finishes.
type Run struct {
	mu sync.Mutex

	id         string
	stages     []string
	current    int // -1 before the first stage is entered
	state      State
	message    string
	result     any
	startedAt  time.Time
	finishedAt time.Time
}

// Snapshot is a point-in-time copy of a run, safe to serialize for the
// polling endpoint.
type Snapshot struct {
	ID           string   `json:"id"`
	State        State    `json:"state"`
	Stages       []string `json:"stages"`
	CurrentStage int      `json:"current_stage"`
	Message      string   `json:"message,omitempty"`
	Result       any      `json:"result,omitempty"`
	Done         bool     `json:"done"`
}

// ID returns the run identifier.
func (r *Run) ID() string {
	return r.id
}

// Snapshot returns the current run state.
func (r *Run) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Snapshot{
		ID:           r.id,
		State:        r.state,
		Stages:       r.stages,
		CurrentStage: r.current,
		Message:      r.message,
		Result:       r.result,
		Done:         r.state == StateSucceeded || r.state == StateFailed,
	}
	return s
}

// advance moves to the next stage. It never moves past the last stage;
// the run holds there until the real call completes.
func (r *Run) advance() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateRunning {
		return
	}
	if r.current < len(r.stages)-1 {
		r.current++
	}
}

// finish records the real outcome. On success all stages are marked
// complete regardless of how far the timer got.
func (r *Run) finish(result any, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StateSucceeded || r.state == StateFailed {
		return
	}
	r.finishedAt = time.Now()
	if err != nil {
		r.state = StateFailed
		r.message = err.Error()
		return
	}
	r.state = StateSucceeded
	r.current = len(r.stages) - 1
	r.result = result
}

func (r *Run) finishedBefore(cutoff time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	done := r.state == StateSucceeded || r.state == StateFailed
	return done && r.finishedAt.Before(cutoff)
}

// Registry holds active and recently finished runs, keyed by run ID.
type Registry struct {
	mu            sync.Mutex
	runs          map[string]*Run
	stageInterval time.Duration
}

// NewRegistry creates a Registry. stageInterval is how often the stage
// indicator advances while the real call is in flight.
func NewRegistry(stageInterval time.Duration) *Registry {
	return &Registry{
		runs:          make(map[string]*Run),
		stageInterval: stageInterval,
	}
}

// Start launches a run: the stage timer and the single real call begin
// together, and the run finishes when the call returns or ctx is
// cancelled. The returned run can be polled immediately.
func (reg *Registry) Start(ctx context.Context, stages []string, work func(context.Context) (any, error)) *Run {
	r := &Run{
		id:        uuid.NewString(),
		stages:    stages,
		current:   -1,
		state:     StateRunning,
		startedAt: time.Now(),
	}
	r.advance() // enter the first stage right away

	reg.mu.Lock()
	reg.runs[r.id] = r
	reg.mu.Unlock()

	go reg.drive(ctx, r, work)

	return r
}

func (reg *Registry) drive(ctx context.Context, r *Run, work func(context.Context) (any, error)) {
	done := make(chan struct{})
	var (
		result any
		err    error
	)
	go func() {
		result, err = work(ctx)
		close(done)
	}()

	ticker := time.NewTicker(reg.stageInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			r.finish(result, err)
			return
		case <-ctx.Done():
			r.finish(nil, ctx.Err())
			return
		case <-ticker.C:
			r.advance()
		}
	}
}

// Get returns a run by ID.
func (reg *Registry) Get(id string) (*Run, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	r, ok := reg.runs[id]
	return r, ok
}

// Prune drops runs that finished before the cutoff and returns how many
// were removed. Active runs are never pruned.
func (reg *Registry) Prune(olderThan time.Duration) int {
	cutoff := time.Now().Add(-olderThan)

	reg.mu.Lock()
	defer reg.mu.Unlock()

	removed := 0
	for id, r := range reg.runs {
		if r.finishedBefore(cutoff) {
			delete(reg.runs, id)
			removed++
		}
	}
	return removed
}
