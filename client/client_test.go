// Copyright (c) 2025 Mythenpark.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/mythenpark/parkvote/events"
	"github.com/mythenpark/parkvote/router"
	"github.com/mythenpark/parkvote/testutil"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	svc, _ := testutil.NewMemoryLedger(t)
	srv := httptest.NewServer(router.NewRouter(svc, events.NewDirectory(nil), testutil.GetTestConfig()))
	t.Cleanup(srv.Close)
	return srv
}

func TestToggleCastsAndConfirms(t *testing.T) {
	srv := newTestServer(t)
	p := NewParticipant(NewAPI(srv.URL, "abc"))

	if err := p.Toggle(context.Background(), 42); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if !p.Voted(42) {
		t.Error("Expected voted flag after confirmed cast")
	}
	if p.Count(42) != 1 {
		t.Errorf("Expected server count 1, got %d", p.Count(42))
	}

	// Toggle again retracts
	if err := p.Toggle(context.Background(), 42); err != nil {
		t.Fatalf("Retract toggle failed: %v", err)
	}
	if p.Voted(42) {
		t.Error("Expected voted flag cleared after retract")
	}
	if p.Count(42) != 0 {
		t.Errorf("Expected count 0, got %d", p.Count(42))
	}
}

// TestRollbackOnTransportFailure: displayed count 5, no prior vote,
// optimistic bump to 6, network failure, restore to 5 and voted=false.
func TestRollbackOnTransportFailure(t *testing.T) {
	srv := newTestServer(t)
	api := NewAPI(srv.URL, "abc")
	p := NewParticipant(api)

	// Pre-seed a displayed count of 5 with no local vote
	p.counts[42] = 5

	// Kill the server so the write fails in transport
	srv.Close()

	err := p.Toggle(context.Background(), 42)
	if err == nil {
		t.Fatal("Expected a transport error")
	}
	var mismatch *StateMismatchError
	if errors.As(err, &mismatch) {
		t.Fatalf("Expected a generic error, got state mismatch: %v", err)
	}

	if p.Count(42) != 5 {
		t.Errorf("Expected rollback to 5, got %d", p.Count(42))
	}
	if p.Voted(42) {
		t.Error("Expected voted flag rolled back to false")
	}
	if p.InFlight(42) {
		t.Error("Expected in-flight flag cleared")
	}
}

// TestStateMismatchReconciliation simulates the second-tab case: the
// server already has the vote, the local view does not.
func TestStateMismatchReconciliation(t *testing.T) {
	srv := newTestServer(t)

	// Another tab votes first with the same device id
	otherTab := NewParticipant(NewAPI(srv.URL, "abc"))
	if err := otherTab.Toggle(context.Background(), 42); err != nil {
		t.Fatalf("Setup toggle failed: %v", err)
	}

	p := NewParticipant(NewAPI(srv.URL, "abc"))
	err := p.Toggle(context.Background(), 42)

	var mismatch *StateMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("Expected StateMismatchError, got %v", err)
	}
	if !mismatch.AlreadyVoted {
		t.Error("Expected server-implied truth alreadyVoted=true")
	}
	// Flag snaps to the server's truth, count to the server's count
	if !p.Voted(42) {
		t.Error("Expected local flag reconciled to voted")
	}
	if p.Count(42) != 1 {
		t.Errorf("Expected reconciled count 1, got %d", p.Count(42))
	}
}

func TestToggleRejectsWhileInFlight(t *testing.T) {
	srv := newTestServer(t)
	p := NewParticipant(NewAPI(srv.URL, "abc"))

	p.mu.Lock()
	p.inFlight[42] = true
	p.mu.Unlock()

	if err := p.Toggle(context.Background(), 42); !errors.Is(err, ErrRequestInFlight) {
		t.Errorf("Expected ErrRequestInFlight, got %v", err)
	}
}

func TestRefreshAdoptsServerState(t *testing.T) {
	srv := newTestServer(t)

	seeder := NewParticipant(NewAPI(srv.URL, "abc"))
	seeder.Toggle(context.Background(), 42)
	seeder.Toggle(context.Background(), 7)

	p := NewParticipant(NewAPI(srv.URL, "abc"))
	if err := p.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if p.Count(42) != 1 || p.Count(7) != 1 {
		t.Errorf("Expected counts 1/1, got %d/%d", p.Count(42), p.Count(7))
	}
	if !p.Voted(42) || !p.Voted(7) {
		t.Error("Expected both events in the device's vote set")
	}
}
