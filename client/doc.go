// Copyright (c) 2025 Mythenpark.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package client is the Go participation client: the reference
implementation of the optimistic-update contract the website's vote
buttons follow.

# Flow

Each action on an event runs optimistic → confirmed | rolled-back:

	p := client.NewParticipant(client.NewAPI(baseURL, deviceID))
	_ = p.Refresh(ctx)
	err := p.Toggle(ctx, 42)

Toggle flips the local voted flag and count immediately, then issues
the write. On success the server's count overwrites the local one; on
a state mismatch (*StateMismatchError) the flag snaps to the
server-implied truth; on transport failure the pre-action snapshot is
restored and the outcome stays unknown until the next Refresh.

Only one request per event may be in flight; Toggle returns
ErrRequestInFlight instead of queueing, so callers disable the
control rather than race it.
*/
package client
