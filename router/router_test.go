// Copyright (c) 2025 Mythenpark.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mythenpark/parkvote/events"
	"github.com/mythenpark/parkvote/models"
	"github.com/mythenpark/parkvote/testutil"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	svc, _ := testutil.NewMemoryLedger(t)
	return NewRouter(svc, events.NewDirectory(nil), testutil.GetTestConfig())
}

func TestRoutes(t *testing.T) {
	mux := newTestRouter(t)

	tests := []struct {
		method string
		path   string
		body   any
		want   int
	}{
		{"GET", "/health", nil, http.StatusOK},
		{"GET", "/api/events", nil, http.StatusOK},
		{"GET", "/api/votes", nil, http.StatusOK},
		{"POST", "/api/votes", models.VoteRequest{EventID: 42, Action: models.ActionUpvote, DeviceID: "abc"}, http.StatusOK},
		{"GET", "/", nil, http.StatusOK},
		{"DELETE", "/api/votes", nil, http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := testutil.MakeRequest(tt.method, tt.path, tt.body, nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, w.Code)
			}
		})
	}
}

func TestVoteRoundTripThroughRouter(t *testing.T) {
	mux := newTestRouter(t)

	req := testutil.MakeRequest("POST", "/api/votes", models.VoteRequest{
		EventID: 42, Action: models.ActionUpvote, DeviceID: "abc",
	}, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	req = testutil.MakeRequest("GET", "/api/votes?deviceId=abc", nil, nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	var state models.StateResponse
	testutil.AssertJSON(t, w, &state)
	if state.Votes[42] != 1 {
		t.Errorf("Expected count 1 for event 42, got %d", state.Votes[42])
	}
	if len(state.UserVotes) != 1 || state.UserVotes[0] != 42 {
		t.Errorf("Expected userVotes [42], got %v", state.UserVotes)
	}
}
