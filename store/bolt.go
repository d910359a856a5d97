// Copyright (c) 2025 Mythenpark.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"

	"github.com/mythenpark/parkvote/models"
)

var (
	bucketVotes  = []byte("votes")
	bucketCounts = []byte("counts")
)

// Bolt is the embedded file-backed variant: JSON values in two bbolt
// buckets. Every operation runs in a single bbolt transaction, so the
// existence check and the mutation it guards are atomic without any
// service-layer help. Durable across restarts, single-process only.
type Bolt struct {
	db *bolt.DB
}

// OpenBolt opens (or creates) the database file at path, creating
// parent directories as needed.
func OpenBolt(path string) (*Bolt, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "mkdir %s", dir)
		}
	}
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, errors.Wrap(err, "open bolt db")
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, b := range [][]byte{bucketVotes, bucketCounts} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create buckets")
	}
	return &Bolt{db: db}, nil
}

func voteKey(eventID int, deviceID string) []byte {
	return []byte(fmt.Sprintf("%d|%s", eventID, deviceID))
}

func countKey(eventID int) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(eventID))
	return b
}

func (s *Bolt) Exists(_ context.Context, eventID int, deviceID string) (bool, error) {
	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		found = tx.Bucket(bucketVotes).Get(voteKey(eventID, deviceID)) != nil
		return nil
	})
	return found, errors.Wrap(err, "read vote record")
}

func (s *Bolt) Insert(_ context.Context, rec models.VoteRecord) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketVotes)
		key := voteKey(rec.EventID, rec.DeviceID)
		if b.Get(key) != nil {
			return ErrConflict
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return b.Put(key, data)
	})
	if err == ErrConflict {
		return err
	}
	return errors.Wrap(err, "insert vote record")
}

func (s *Bolt) Delete(_ context.Context, eventID int, deviceID string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketVotes)
		key := voteKey(eventID, deviceID)
		if b.Get(key) == nil {
			return ErrNotFound
		}
		return b.Delete(key)
	})
	if err == ErrNotFound {
		return err
	}
	return errors.Wrap(err, "delete vote record")
}

func (s *Bolt) IncrementCount(_ context.Context, eventID, delta int, eventTitle string) (int, error) {
	var count int
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketCounts)
		key := countKey(eventID)

		var stat models.EventStat
		if v := b.Get(key); v != nil {
			if err := json.Unmarshal(v, &stat); err != nil {
				return err
			}
		}
		stat.EventID = eventID
		stat.JoinCount += delta
		if stat.JoinCount < 0 {
			stat.JoinCount = 0
		}
		if eventTitle != "" {
			stat.EventTitle = eventTitle
		}

		data, err := json.Marshal(stat)
		if err != nil {
			return err
		}
		if err := b.Put(key, data); err != nil {
			return err
		}
		count = stat.JoinCount
		return nil
	})
	if err != nil {
		return 0, errors.Wrap(err, "upsert statistic")
	}
	return count, nil
}

func (s *Bolt) ListCounts(_ context.Context) (map[int]int, error) {
	counts := make(map[int]int)
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketCounts).ForEach(func(_, v []byte) error {
			var stat models.EventStat
			if err := json.Unmarshal(v, &stat); err != nil {
				return err
			}
			counts[stat.EventID] = stat.JoinCount
			return nil
		})
	})
	return counts, errors.Wrap(err, "read statistics")
}

func (s *Bolt) ListVotedEvents(_ context.Context, deviceID string) ([]int, error) {
	events := []int{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketVotes).ForEach(func(_, v []byte) error {
			var rec models.VoteRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			if rec.DeviceID == deviceID {
				events = append(events, rec.EventID)
			}
			return nil
		})
	})
	return events, errors.Wrap(err, "read vote records")
}

func (s *Bolt) Close() error {
	return s.db.Close()
}
