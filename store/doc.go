// Copyright (c) 2025 Mythenpark.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store provides the interchangeable storage backends for the
vote ledger.

# Contract

Every variant implements Store: Exists, Insert (ErrConflict on
duplicates), Delete (ErrNotFound when absent), IncrementCount
(clamped at zero, returns the new count), ListCounts and
ListVotedEvents. One variant is selected at process start via
configuration and never swapped at runtime:

	st, err := store.Open(ctx, cfg)

# Variants

  - Memory: mutex-guarded in-process maps; ephemeral; local dev and
    the automatic fallback.
  - SQL: PostgreSQL or SQLite via database/sql. The UNIQUE primary
    key on (event_id, device_id) rejects duplicates atomically, and
    the counter is an INSERT … ON CONFLICT arithmetic upsert, so the
    database itself guarantees the invariants.
  - Mongo: event_votes / event_statistics collections with a unique
    compound index. No multi-document transactions are used;
    cross-document consistency relies on the ledger's per-pair
    critical section. Counter updates are a single
    FindOneAndUpdate pipeline with a $max clamp.
  - Bolt: embedded bbolt file, one transaction per operation.

# Fallback

Durable variants are wrapped in a Fallback supervisor: when the
primary is unreachable, requests are served from an ephemeral
in-memory store and the degradation is logged. One request per probe
interval retries the primary; outage-window writes do not survive a
restart.
*/
package store
