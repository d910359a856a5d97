// Copyright (c) 2025 Mythenpark.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/mythenpark/parkvote/cliparse"
)

// Open creates the store variant named by the configuration. Called
// once at process start; the returned handle is shared by all
// requests. Durable variants are wrapped in a Fallback so an outage
// degrades to in-memory serving instead of failing every request.
func Open(ctx context.Context, cfg cliparse.Config) (Store, error) {
	switch cfg.StoreType {
	case cliparse.StoreMemory:
		// Already ephemeral, nothing to fall back to.
		return NewMemory(), nil

	case cliparse.StorePostgres:
		s, err := OpenSQL("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		return NewFallback(s), nil

	case cliparse.StoreSQLite:
		s, err := OpenSQL("sqlite", cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return NewFallback(s), nil

	case cliparse.StoreMongo:
		s, err := OpenMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("open mongo store: %w", err)
		}
		return NewFallback(s), nil

	case cliparse.StoreBolt:
		s, err := OpenBolt(cfg.BoltPath)
		if err != nil {
			return nil, fmt.Errorf("open bolt store: %w", err)
		}
		return NewFallback(s), nil
	}

	return nil, fmt.Errorf("unknown store type %q", cfg.StoreType)
}
