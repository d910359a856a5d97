// Copyright (c) 2025 Mythenpark.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"sync"

	"github.com/mythenpark/parkvote/models"
)

type pairKey struct {
	eventID  int
	deviceID string
}

// Memory is the ephemeral in-process variant: a single mutex around
// two maps. Data is lost on restart. Used for local development and
// as the automatic fallback while the durable backend is down.
type Memory struct {
	mu     sync.Mutex
	votes  map[pairKey]models.VoteRecord
	counts map[int]int
	titles map[int]string
}

func NewMemory() *Memory {
	return &Memory{
		votes:  make(map[pairKey]models.VoteRecord),
		counts: make(map[int]int),
		titles: make(map[int]string),
	}
}

func (m *Memory) Exists(_ context.Context, eventID int, deviceID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.votes[pairKey{eventID, deviceID}]
	return ok, nil
}

func (m *Memory) Insert(_ context.Context, rec models.VoteRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := pairKey{rec.EventID, rec.DeviceID}
	if _, ok := m.votes[key]; ok {
		return ErrConflict
	}
	m.votes[key] = rec
	return nil
}

func (m *Memory) Delete(_ context.Context, eventID int, deviceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := pairKey{eventID, deviceID}
	if _, ok := m.votes[key]; !ok {
		return ErrNotFound
	}
	delete(m.votes, key)
	return nil
}

func (m *Memory) IncrementCount(_ context.Context, eventID, delta int, eventTitle string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := m.counts[eventID] + delta
	if n < 0 {
		n = 0
	}
	m.counts[eventID] = n
	if eventTitle != "" {
		m.titles[eventID] = eventTitle
	}
	return n, nil
}

func (m *Memory) ListCounts(_ context.Context) (map[int]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[int]int, len(m.counts))
	for id, n := range m.counts {
		counts[id] = n
	}
	return counts, nil
}

func (m *Memory) ListVotedEvents(_ context.Context, deviceID string) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	events := []int{}
	for key := range m.votes {
		if key.deviceID == deviceID {
			events = append(events, key.eventID)
		}
	}
	return events, nil
}

func (m *Memory) Close() error {
	return nil
}
