// Copyright (c) 2025 Mythenpark.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mythenpark/parkvote/models"
)

// ErrRequestInFlight - a vote for this event is already on the wire.
// The control should be disabled rather than queueing a second
// request; the caller gets this error if it races anyway.
var ErrRequestInFlight = errors.New("vote request already in flight for event")

// Participant holds the local view of the ledger and applies the
// optimistic-update contract: flip immediately, reconcile with the
// authoritative response, roll back on transport failure.
//
// Per-action flow for one event: optimistic → confirmed | rolled-back.
// At most one request per event is in flight at a time.
type Participant struct {
	api *API

	mu       sync.Mutex
	counts   map[int]int
	voted    map[int]bool
	inFlight map[int]bool
}

func NewParticipant(api *API) *Participant {
	return &Participant{
		api:      api,
		counts:   make(map[int]int),
		voted:    make(map[int]bool),
		inFlight: make(map[int]bool),
	}
}

// Refresh replaces the local view with the server's authoritative
// state. This is also the recovery path after an unknown outcome
// (e.g. a timed-out write): read, don't blindly retry the write.
func (p *Participant) Refresh(ctx context.Context) error {
	state, err := p.api.FetchState(ctx)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.counts = make(map[int]int, len(state.Votes))
	for id, n := range state.Votes {
		p.counts[id] = n
	}
	p.voted = make(map[int]bool, len(state.UserVotes))
	for _, id := range state.UserVotes {
		p.voted[id] = true
	}
	return nil
}

// Count returns the currently displayed count for the event.
func (p *Participant) Count(eventID int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.counts[eventID]
}

// Voted reports whether this device currently considers itself joined.
func (p *Participant) Voted(eventID int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.voted[eventID]
}

// InFlight reports whether a request for the event is outstanding;
// the UI disables the control while true.
func (p *Participant) InFlight(eventID int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inFlight[eventID]
}

// Toggle joins the event if not joined, retracts otherwise. The local
// view updates immediately; the server response then confirms,
// reconciles, or rolls it back:
//
//   - success: the server count wins, the confirmed flag is kept
//   - state mismatch: the flag snaps to the server-implied truth and
//     the *StateMismatchError is returned so the UI can show a
//     distinguishable, non-alarming message
//   - transport failure: count and flag are restored to their
//     pre-action snapshot and a generic retryable error is returned;
//     the true outcome is unknown until the next Refresh
func (p *Participant) Toggle(ctx context.Context, eventID int) error {
	p.mu.Lock()
	if p.inFlight[eventID] {
		p.mu.Unlock()
		return ErrRequestInFlight
	}

	prevCount := p.counts[eventID]
	prevVoted := p.voted[eventID]

	action := models.ActionUpvote
	optimistic := prevCount + 1
	if prevVoted {
		action = models.ActionDownvote
		optimistic = prevCount - 1
		if optimistic < 0 {
			optimistic = 0
		}
	}

	p.counts[eventID] = optimistic
	p.voted[eventID] = !prevVoted
	p.inFlight[eventID] = true
	p.mu.Unlock()

	resp, err := p.api.SendVote(ctx, eventID, action)

	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.inFlight, eventID)

	var mismatch *StateMismatchError
	switch {
	case err == nil:
		// Server wins on the number; the flag was just confirmed.
		p.counts[eventID] = resp.Votes
		return nil

	case errors.As(err, &mismatch):
		p.voted[eventID] = mismatch.AlreadyVoted
		p.counts[eventID] = mismatch.Votes
		return mismatch

	default:
		p.counts[eventID] = prevCount
		p.voted[eventID] = prevVoted
		return fmt.Errorf("vote not confirmed, try again: %w", err)
	}
}
