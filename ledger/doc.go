// Copyright (c) 2025 Mythenpark.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger implements the vote ledger service.

# Invariant

At most one live vote record exists per (event, device) pair, and the
aggregate join count tracks the live record population. The pair's
state machine has exactly two states and four edges:

	NoVote → Cast → Voted → Retract → NoVote

Cast on Voted fails with models.ErrAlreadyVoted (carrying the current
count); Retract on NoVote fails with models.ErrNotVoted.

# Concurrency

Operations on the same pair serialize on a sharded keyed mutex; this
is the deliberate serialization point that makes check-then-act safe
on backends without native uniqueness, and a known scalability bound.
Unrelated pairs proceed in parallel. Aggregate increments for
distinct devices on the same event go through the backend's atomic
increment, never read-modify-write.

Every storage call carries a bounded timeout. Storage failures are
logged and crossed to callers only as models.ErrBackendUnavailable.
*/
package ledger
