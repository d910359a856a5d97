// Copyright (c) 2025 Mythenpark.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"

	"github.com/mythenpark/parkvote/models"
)

// Semantic errors every variant maps its native failures onto.
// Anything else returned from a Store method is treated as an
// infrastructure failure by the fallback supervisor.
var (
	// ErrConflict - a live vote record already exists for the pair.
	ErrConflict = errors.New("vote record already exists")

	// ErrNotFound - no live vote record exists for the pair.
	ErrNotFound = errors.New("vote record not found")
)

// Store is the contract every backend variant satisfies. One variant
// is selected at process start from configuration; variants are never
// mixed at runtime.
//
// IncrementCount must never produce a negative count: a delta of -1
// against a zero count clamps to 0. Insert and Delete reject
// duplicates and missing records with ErrConflict and ErrNotFound.
type Store interface {
	// Exists reports whether a live vote record exists for the pair.
	Exists(ctx context.Context, eventID int, deviceID string) (bool, error)

	// Insert creates a vote record. Returns ErrConflict if one
	// already exists for (EventID, DeviceID).
	Insert(ctx context.Context, rec models.VoteRecord) error

	// Delete removes the vote record for the pair. Returns
	// ErrNotFound if none exists.
	Delete(ctx context.Context, eventID int, deviceID string) error

	// IncrementCount adjusts the aggregate join count by delta,
	// clamped at zero, and returns the new count. eventTitle is a
	// best-effort denormalized label; empty keeps any existing title.
	IncrementCount(ctx context.Context, eventID, delta int, eventTitle string) (int, error)

	// ListCounts returns the join count for every event known to the
	// backend.
	ListCounts(ctx context.Context) (map[int]int, error)

	// ListVotedEvents returns the event ids the device currently
	// holds live vote records for.
	ListVotedEvents(ctx context.Context, deviceID string) ([]int, error)

	Close() error
}

// IsSemantic reports whether err is one of the contract's expected
// outcomes rather than an infrastructure failure.
func IsSemantic(err error) bool {
	return errors.Is(err, ErrConflict) || errors.Is(err, ErrNotFound)
}
