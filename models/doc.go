// Copyright (c) 2025 Mythenpark.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models contains the request/response types, domain types and
error taxonomy shared across the parkvote server and client.

# Domain Types

  - VoteRecord: one device's live participation in one event. At most
    one record exists per (event, device) pair.
  - EventStat: the derived aggregate join count per event.
  - Event: a catalog entry used for denormalized titles.

# Wire Types

The HTTP contract uses camelCase field names matching the website's
fetch calls:

	GET  /api/votes?deviceId=…  → StateResponse
	POST /api/votes             → VoteResponse | VoteConflictResponse

# Error Taxonomy

ErrAlreadyVoted and ErrNotVoted are the two expected, user-recoverable
outcomes of a vote write. ErrBackendUnavailable and
ErrMalformedRequest cover infrastructure failure and client mistakes.
Raw storage errors never cross the ledger boundary.
*/
package models
