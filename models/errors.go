// Copyright (c) 2025 Mythenpark.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "errors"

// Ledger error taxonomy. Storage-level errors are translated into
// these before they cross the ledger boundary; handlers and the
// participation client never see raw driver errors.
var (
	// ErrAlreadyVoted - the device already holds a live vote for the event.
	ErrAlreadyVoted = errors.New("already participating")

	// ErrNotVoted - retraction without a live vote.
	ErrNotVoted = errors.New("not participating")

	// ErrBackendUnavailable - the durable backend could not be reached
	// and the fallback also failed.
	ErrBackendUnavailable = errors.New("storage backend unavailable")

	// ErrMalformedRequest - a required field is missing or invalid.
	// Rejected before any storage access.
	ErrMalformedRequest = errors.New("malformed request")
)
