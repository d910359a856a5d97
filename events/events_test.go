// Copyright (c) 2025 Mythenpark.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package events

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mythenpark/parkvote/models"
)

func TestLoadDefaults(t *testing.T) {
	dir, err := Load("")
	if err != nil {
		t.Fatalf("Load with empty path failed: %v", err)
	}
	list := dir.List()
	if len(list) != 4 {
		t.Fatalf("Expected 4 built-in events, got %d", len(list))
	}
	if title, ok := dir.Title(1); !ok || title != "Winter Snowboard Championship" {
		t.Errorf("Unexpected title for event 1: %q (ok=%v)", title, ok)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	content := `[
		{"id": 7, "title": "Slopestyle Open", "date": "2026-03-01", "location": "Main Slope"},
		{"id": 3, "title": "Rail Jam", "date": "2026-03-08", "location": "Rail Garden"}
	]`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	dir, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	list := dir.List()
	if len(list) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(list))
	}
	// id order, not file order
	if list[0].ID != 3 || list[1].ID != 7 {
		t.Errorf("Expected id order [3 7], got %+v", list)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Expected an error for a missing events file")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected an error for a malformed events file")
	}
}

func TestTitleUnknownEvent(t *testing.T) {
	dir := NewDirectory([]models.Event{{ID: 1, Title: "Kids Snow Day"}})
	if _, ok := dir.Title(99); ok {
		t.Error("Expected ok=false for an unknown event id")
	}
}
