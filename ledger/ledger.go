// Copyright (c) 2025 Mythenpark.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"errors"
	"hash/fnv"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/mythenpark/parkvote/models"
	"github.com/mythenpark/parkvote/store"
)

// DefaultTimeout bounds each storage call when the config does not
// say otherwise.
const DefaultTimeout = 3 * time.Second

// numLockShards sizes the keyed mutex table. Two distinct pairs may
// share a shard; that only costs needless serialization, never
// correctness.
const numLockShards = 64

// TitleLookup resolves an event id to its denormalized title.
// Lookups are best-effort: a miss never blocks a vote.
type TitleLookup interface {
	Title(eventID int) (string, bool)
}

// Service is the vote ledger: it enforces the
// one-vote-per-device-per-event invariant and keeps the aggregate
// join count consistent with the vote record population.
//
// Operations on the same (event, device) pair serialize on a sharded
// pair lock. Holding an in-process lock across storage round trips is
// a deliberate serialization point: it is what makes check-then-act
// safe on backends without native uniqueness (the document store),
// and it bounds the blast radius to one pair's shard. The relational
// backends keep their UNIQUE constraint as a backstop underneath.
type Service struct {
	store   store.Store
	titles  TitleLookup
	timeout time.Duration

	locks [numLockShards]sync.Mutex
}

// New creates a ledger over the given store. titles may be nil.
func New(st store.Store, titles TitleLookup, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{store: st, titles: titles, timeout: timeout}
}

func (s *Service) pairLock(eventID int, deviceID string) *sync.Mutex {
	h := fnv.New32a()
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(eventID >> (8 * i))
	}
	h.Write(buf[:])
	h.Write([]byte(deviceID))
	return &s.locks[h.Sum32()%numLockShards]
}

func (s *Service) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// State returns the aggregate join count for every known event and,
// when deviceID is non-empty, the set of events that device currently
// participates in. No side effects.
func (s *Service) State(ctx context.Context, deviceID string) (models.StateResponse, error) {
	opCtx, cancel := s.opCtx(ctx)
	counts, err := s.store.ListCounts(opCtx)
	cancel()
	if err != nil {
		return models.StateResponse{}, s.infra("list counts", err)
	}

	resp := models.StateResponse{Votes: counts}
	if deviceID == "" {
		return resp, nil
	}

	opCtx, cancel = s.opCtx(ctx)
	voted, err := s.store.ListVotedEvents(opCtx, deviceID)
	cancel()
	if err != nil {
		return models.StateResponse{}, s.infra("list voted events", err)
	}
	sort.Ints(voted)
	resp.UserVotes = voted
	return resp, nil
}

// Cast records one device's participation in one event and returns
// the new join count. Fails with models.ErrAlreadyVoted - carrying
// the current count - when the device already holds a live vote.
func (s *Service) Cast(ctx context.Context, eventID int, deviceID, ipHash string) (int, error) {
	lock := s.pairLock(eventID, deviceID)
	lock.Lock()
	defer lock.Unlock()

	opCtx, cancel := s.opCtx(ctx)
	exists, err := s.store.Exists(opCtx, eventID, deviceID)
	cancel()
	if err != nil {
		return 0, s.infra("existence check", err)
	}
	if exists {
		count, err := s.currentCount(ctx, eventID)
		if err != nil {
			return 0, err
		}
		return count, models.ErrAlreadyVoted
	}

	title := s.lookupTitle(eventID)
	rec := models.VoteRecord{
		EventID:    eventID,
		DeviceID:   deviceID,
		EventTitle: title,
		IPHash:     ipHash,
		CreatedAt:  time.Now().UTC(),
	}

	opCtx, cancel = s.opCtx(ctx)
	err = s.store.Insert(opCtx, rec)
	cancel()
	if errors.Is(err, store.ErrConflict) {
		// Lost a race outside our shard (another process, or a shard
		// collision resolved by the storage constraint).
		count, cerr := s.currentCount(ctx, eventID)
		if cerr != nil {
			return 0, cerr
		}
		return count, models.ErrAlreadyVoted
	}
	if err != nil {
		return 0, s.infra("insert vote", err)
	}

	opCtx, cancel = s.opCtx(ctx)
	count, err := s.store.IncrementCount(opCtx, eventID, 1, title)
	cancel()
	if err != nil {
		return 0, s.infra("increment count", err)
	}
	return count, nil
}

// Retract removes the device's vote and returns the new join count,
// floored at zero. Fails with models.ErrNotVoted when no live vote
// exists.
func (s *Service) Retract(ctx context.Context, eventID int, deviceID string) (int, error) {
	lock := s.pairLock(eventID, deviceID)
	lock.Lock()
	defer lock.Unlock()

	opCtx, cancel := s.opCtx(ctx)
	err := s.store.Delete(opCtx, eventID, deviceID)
	cancel()
	if errors.Is(err, store.ErrNotFound) {
		count, cerr := s.currentCount(ctx, eventID)
		if cerr != nil {
			return 0, cerr
		}
		return count, models.ErrNotVoted
	}
	if err != nil {
		return 0, s.infra("delete vote", err)
	}

	opCtx, cancel = s.opCtx(ctx)
	count, err := s.store.IncrementCount(opCtx, eventID, -1, "")
	cancel()
	if err != nil {
		return 0, s.infra("decrement count", err)
	}
	return count, nil
}

// currentCount reads the aggregate without changing it (a zero
// delta), so conflict responses can carry the authoritative count
// without a second client round trip.
func (s *Service) currentCount(ctx context.Context, eventID int) (int, error) {
	opCtx, cancel := s.opCtx(ctx)
	defer cancel()
	count, err := s.store.IncrementCount(opCtx, eventID, 0, "")
	if err != nil {
		return 0, s.infra("read count", err)
	}
	return count, nil
}

func (s *Service) lookupTitle(eventID int) string {
	if s.titles == nil {
		return ""
	}
	title, ok := s.titles.Title(eventID)
	if !ok {
		return ""
	}
	return title
}

// infra translates a storage failure into the ledger's taxonomy.
// Semantic outcomes are handled before this; whatever reaches here is
// infrastructure trouble the caller only needs to know as
// "backend unavailable".
func (s *Service) infra(op string, err error) error {
	slog.Error("storage operation failed", "op", op, "error", err)
	return models.ErrBackendUnavailable
}
