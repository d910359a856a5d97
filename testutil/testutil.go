// Copyright (c) 2025 Mythenpark.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mythenpark/parkvote/cliparse"
	"github.com/mythenpark/parkvote/events"
	"github.com/mythenpark/parkvote/ledger"
	"github.com/mythenpark/parkvote/models"
	"github.com/mythenpark/parkvote/store"
)

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         8090,
		StoreType:    cliparse.StoreMemory,
		IPHashSalt:   "test-ip-salt",
		StoreTimeout: 2 * time.Second,
	}
}

// NewMemoryLedger creates a ledger over a fresh in-memory store with
// the built-in event catalog.
func NewMemoryLedger(t *testing.T) (*ledger.Service, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	dir := events.NewDirectory([]models.Event{
		{ID: 1, Title: "Winter Snowboard Championship"},
		{ID: 42, Title: "Freestyle Workshop"},
	})
	return ledger.New(mem, dir, 2*time.Second), mem
}

// SeedVote casts a vote directly against the store, bypassing the
// ledger, for test setup.
func SeedVote(t *testing.T, st store.Store, eventID int, deviceID string) {
	t.Helper()
	ctx := context.Background()
	err := st.Insert(ctx, models.VoteRecord{
		EventID:   eventID,
		DeviceID:  deviceID,
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("Failed to seed vote: %v", err)
	}
	if _, err := st.IncrementCount(ctx, eventID, 1, ""); err != nil {
		t.Fatalf("Failed to seed count: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
