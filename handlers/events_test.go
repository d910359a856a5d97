// Copyright (c) 2025 Mythenpark.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mythenpark/parkvote/events"
	"github.com/mythenpark/parkvote/models"
	"github.com/mythenpark/parkvote/testutil"
)

func TestEventsList(t *testing.T) {
	dir := events.NewDirectory([]models.Event{
		{ID: 2, Title: "Night Ride Special"},
		{ID: 1, Title: "Kids Snow Day"},
	})
	h := NewEventHandler(dir)

	req := testutil.MakeRequest("GET", "/api/events", nil, nil)
	w := httptest.NewRecorder()
	h.List(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.EventsResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(resp.Events))
	}
	// id order, regardless of input order
	if resp.Events[0].ID != 1 || resp.Events[1].ID != 2 {
		t.Errorf("Expected events in id order, got %+v", resp.Events)
	}
}
