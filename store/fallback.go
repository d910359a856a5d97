// Copyright (c) 2025 Mythenpark.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/mythenpark/parkvote/models"
)

// DefaultProbeInterval is how long a degraded Fallback waits before
// letting a request try the primary again.
const DefaultProbeInterval = 30 * time.Second

// Fallback supervises a primary store and degrades to an ephemeral
// in-memory store while the primary is unreachable, so the service
// keeps answering during an outage instead of failing every request.
//
// The switch is a recorded transition, not a silent global: both the
// degradation and the recovery are logged. Data written while
// degraded lives only in memory and is not guaranteed to survive a
// process restart.
type Fallback struct {
	primary Store
	memory  *Memory
	probe   time.Duration

	mu        sync.Mutex
	degraded  bool
	lastProbe time.Time
}

func NewFallback(primary Store) *Fallback {
	return &Fallback{
		primary: primary,
		memory:  NewMemory(),
		probe:   DefaultProbeInterval,
	}
}

// Degraded reports whether requests are currently served from the
// in-memory fallback.
func (f *Fallback) Degraded() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.degraded
}

// target picks the store for this operation. While degraded, one
// request per probe interval is allowed through to the primary.
func (f *Fallback) target() (Store, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.degraded {
		return f.primary, false
	}
	if time.Since(f.lastProbe) >= f.probe {
		f.lastProbe = time.Now()
		return f.primary, true
	}
	return f.memory, false
}

func (f *Fallback) noteOutage(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.degraded {
		slog.Warn("primary storage unavailable, degrading to in-memory fallback", "error", err)
	}
	f.degraded = true
	f.lastProbe = time.Now()
}

func (f *Fallback) noteRecovery() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.degraded {
		slog.Info("primary storage recovered, leaving in-memory fallback")
		f.degraded = false
	}
}

// exec runs op against the chosen store. An infrastructure failure on
// the primary records the outage and replays the operation on the
// in-memory fallback; a success on the primary clears any degradation.
// A canceled caller context passes through untouched: the client went
// away, the primary is not implicated.
func (f *Fallback) exec(op func(Store) error) error {
	target, _ := f.target()
	err := op(target)
	if target == Store(f.memory) {
		return err
	}
	switch {
	case err == nil || IsSemantic(err):
		f.noteRecovery()
		return err
	case errors.Is(err, context.Canceled):
		return err
	default:
		f.noteOutage(err)
		return op(f.memory)
	}
}

func (f *Fallback) Exists(ctx context.Context, eventID int, deviceID string) (exists bool, err error) {
	err = f.exec(func(s Store) error {
		var opErr error
		exists, opErr = s.Exists(ctx, eventID, deviceID)
		return opErr
	})
	return exists, err
}

func (f *Fallback) Insert(ctx context.Context, rec models.VoteRecord) error {
	return f.exec(func(s Store) error {
		return s.Insert(ctx, rec)
	})
}

func (f *Fallback) Delete(ctx context.Context, eventID int, deviceID string) error {
	return f.exec(func(s Store) error {
		return s.Delete(ctx, eventID, deviceID)
	})
}

func (f *Fallback) IncrementCount(ctx context.Context, eventID, delta int, eventTitle string) (count int, err error) {
	err = f.exec(func(s Store) error {
		var opErr error
		count, opErr = s.IncrementCount(ctx, eventID, delta, eventTitle)
		return opErr
	})
	return count, err
}

func (f *Fallback) ListCounts(ctx context.Context) (counts map[int]int, err error) {
	err = f.exec(func(s Store) error {
		var opErr error
		counts, opErr = s.ListCounts(ctx)
		return opErr
	})
	return counts, err
}

func (f *Fallback) ListVotedEvents(ctx context.Context, deviceID string) (events []int, err error) {
	err = f.exec(func(s Store) error {
		var opErr error
		events, opErr = s.ListVotedEvents(ctx, deviceID)
		return opErr
	})
	return events, err
}

func (f *Fallback) Close() error {
	return f.primary.Close()
}
