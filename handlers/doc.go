// Copyright (c) 2025 Mythenpark.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the parkvote API.

# Endpoints

	GET  /api/votes?deviceId=…  → GetState
	POST /api/votes             → Vote (cast or retract)
	GET  /api/events            → List

GetState returns every event's join count; when deviceId is present
it also returns that device's vote set. deviceId is optional for
reads but mandatory for writes - a write without it is rejected with
400 before any storage access.

# Vote Responses

A successful write returns the authoritative count:

	{"eventId": 42, "votes": 7, "alreadyVoted": false}

An expected state mismatch (already joined / not joined) is a 400
with a distinguishable body, still carrying the count so the client
reconciles without a second round trip:

	{"error": "Already participating", "alreadyVoted": true, "votes": 7}

Infrastructure failure surfaces as 503 only when the in-memory
fallback has also failed; a degraded-but-serving backend is invisible
here.
*/
package handlers
