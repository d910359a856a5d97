// Copyright (c) 2025 Mythenpark.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package deviceid

import (
	"os"
	"path/filepath"
	"testing"
)

var testAttrs = Attributes{
	UserAgent:      "Mozilla/5.0 (X11; Linux x86_64)",
	Language:       "de-CH",
	TimezoneOffset: -60,
	ScreenWidth:    1920,
	ScreenHeight:   1080,
	ColorDepth:     24,
}

func TestFingerprintDeterministic(t *testing.T) {
	a := Fingerprint(testAttrs)
	b := Fingerprint(testAttrs)
	if a != b {
		t.Errorf("Expected identical fingerprints, got %q and %q", a, b)
	}

	other := testAttrs
	other.ScreenWidth = 1280
	if Fingerprint(other) == a {
		t.Error("Expected different attributes to produce a different fingerprint")
	}
}

func TestDeviceIDPersistsAcrossProviders(t *testing.T) {
	dir := t.TempDir()

	first := NewProvider(testAttrs, dir).DeviceID()
	if first == "" {
		t.Fatal("Expected a non-empty device id")
	}

	// A new provider over the same cache dir must return the same id
	second := NewProvider(testAttrs, dir).DeviceID()
	if second != first {
		t.Errorf("Expected persisted id %q, got %q", first, second)
	}
}

func TestDeviceIDNeverRegeneratesPersistedValue(t *testing.T) {
	dir := t.TempDir()

	// Simulate an id persisted by an older fingerprint algorithm
	if err := os.WriteFile(filepath.Join(dir, cacheFile), []byte("legacy-id\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	got := NewProvider(testAttrs, dir).DeviceID()
	if got != "legacy-id" {
		t.Errorf("Expected the persisted value back unchanged, got %q", got)
	}
}

func TestDeviceIDDegradedMode(t *testing.T) {
	// A file where the cache dir should be makes persistence impossible
	dir := t.TempDir()
	blocked := filepath.Join(dir, "cache")
	if err := os.WriteFile(blocked, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	p := NewProvider(testAttrs, filepath.Join(blocked, "nested"))
	a := p.DeviceID()
	b := p.DeviceID()
	if a == "" || b == "" {
		t.Fatal("Expected non-empty identifiers in degraded mode")
	}
	if a == b {
		t.Error("Expected a fresh identifier per call when the cache is unusable")
	}
}

func TestHashIP(t *testing.T) {
	a := HashIP("203.0.113.7", "salt-a")
	if a != HashIP("203.0.113.7", "salt-a") {
		t.Error("Expected the same ip+salt to hash identically")
	}
	if a == HashIP("203.0.113.7", "salt-b") {
		t.Error("Expected a different salt to change the hash")
	}
	if a == HashIP("203.0.113.8", "salt-a") {
		t.Error("Expected a different ip to change the hash")
	}
	if len(a) != 16 {
		t.Errorf("Expected a 16-hex-char hash, got %q", a)
	}
}
