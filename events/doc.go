// Copyright (c) 2025 Mythenpark.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package events holds the static event catalog.

The catalog backs two things: the GET /api/events listing and the
best-effort title lookup the ledger attaches to vote records. It is
loaded once at startup from a JSON file (EVENTS_FILE / -events) or
falls back to the built-in park schedule:

	dir, err := events.Load(cfg.EventsFile)

A missing title never blocks a vote; the ledger treats the lookup as
optional.
*/
package events
