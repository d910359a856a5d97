// Copyright (c) 2025 Mythenpark.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"testing"
	"time"
)

// clearEnv blanks every variable ParseFlags reads so ambient values
// cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "STORE_TYPE", "DATABASE_URL", "MONGO_URI", "MONGO_DATABASE",
		"BOLT_PATH", "EVENTS_FILE", "STORE_TIMEOUT_MS", "IP_HASH_SALT",
	} {
		t.Setenv(key, "")
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("IP_HASH_SALT", "test-salt")

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	if cfg.Port != 8090 {
		t.Errorf("Expected default port 8090, got %d", cfg.Port)
	}
	if cfg.StoreType != StoreMemory {
		t.Errorf("Expected default store %q, got %q", StoreMemory, cfg.StoreType)
	}
	if cfg.StoreTimeout != 3*time.Second {
		t.Errorf("Expected default timeout 3s, got %v", cfg.StoreTimeout)
	}
	if cfg.BoltPath != "data/parkvote.db" {
		t.Errorf("Expected default bolt path, got %q", cfg.BoltPath)
	}
	if cfg.MongoDatabase != "parkvote" {
		t.Errorf("Expected default mongo database, got %q", cfg.MongoDatabase)
	}
}

func TestMissingSalt(t *testing.T) {
	clearEnv(t)

	if _, err := ParseFlags(nil); err == nil {
		t.Error("Expected an error when IP_HASH_SALT is absent")
	}
}

func TestPostgresRequiresURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("IP_HASH_SALT", "test-salt")

	if _, err := ParseFlags([]string{"-s", StorePostgres}); err == nil {
		t.Error("Expected an error for postgres without a database URL")
	}
}

func TestMongoRequiresURI(t *testing.T) {
	clearEnv(t)
	t.Setenv("IP_HASH_SALT", "test-salt")

	if _, err := ParseFlags([]string{"-s", StoreMongo}); err == nil {
		t.Error("Expected an error for mongo without a URI")
	}
}

func TestUnknownStoreType(t *testing.T) {
	clearEnv(t)
	t.Setenv("IP_HASH_SALT", "test-salt")

	if _, err := ParseFlags([]string{"-s", "cassandra"}); err == nil {
		t.Error("Expected an error for an unknown store type")
	}
}

func TestFlagsOverrideEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("IP_HASH_SALT", "test-salt")
	t.Setenv("PORT", "9999")
	t.Setenv("STORE_TYPE", StoreMemory)

	cfg, err := ParseFlags([]string{
		"-p", "8081",
		"-s", StoreSQLite,
		"-d", "file:votes.db",
		"-store-timeout-ms", "500",
	})
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	if cfg.Port != 8081 {
		t.Errorf("Expected flag port 8081 to win, got %d", cfg.Port)
	}
	if cfg.StoreType != StoreSQLite {
		t.Errorf("Expected flag store %q to win, got %q", StoreSQLite, cfg.StoreType)
	}
	if cfg.DatabaseURL != "file:votes.db" {
		t.Errorf("Unexpected database URL %q", cfg.DatabaseURL)
	}
	if cfg.StoreTimeout != 500*time.Millisecond {
		t.Errorf("Expected 500ms timeout, got %v", cfg.StoreTimeout)
	}
}

func TestEnvFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("IP_HASH_SALT", "test-salt")
	t.Setenv("PORT", "7070")
	t.Setenv("STORE_TYPE", StoreBolt)
	t.Setenv("BOLT_PATH", "/tmp/votes.db")
	t.Setenv("STORE_TIMEOUT_MS", "1500")

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	if cfg.Port != 7070 || cfg.StoreType != StoreBolt || cfg.BoltPath != "/tmp/votes.db" {
		t.Errorf("Unexpected config: %+v", cfg)
	}
	if cfg.StoreTimeout != 1500*time.Millisecond {
		t.Errorf("Expected 1500ms timeout, got %v", cfg.StoreTimeout)
	}
}

func TestInvalidPortEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("IP_HASH_SALT", "test-salt")
	t.Setenv("PORT", "not-a-number")

	if _, err := ParseFlags(nil); err == nil {
		t.Error("Expected an error for a non-numeric PORT")
	}
}
