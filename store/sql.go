// Copyright (c) 2025 Mythenpark.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pkg/errors"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/mythenpark/parkvote/models"
)

// SQL is the relational variant. The vote table carries a UNIQUE
// primary key on (event_id, device_id) so duplicate inserts are
// rejected atomically at the storage layer, and IncrementCount uses
// an arithmetic upsert rather than read-then-write so concurrent
// increments for distinct devices are never lost.
//
// Works against PostgreSQL (lib/pq) and SQLite (modernc.org/sqlite);
// both understand $N placeholders and ON CONFLICT upserts. The only
// dialect split is the zero-clamp function (GREATEST vs scalar MAX).
type SQL struct {
	db       *sql.DB
	greatest string
}

const sqlSchema = `
CREATE TABLE IF NOT EXISTS event_vote (
    event_id INTEGER NOT NULL,
    device_id TEXT NOT NULL,
    event_title TEXT,
    ip_hash TEXT,
    created_at TIMESTAMP NOT NULL,
    PRIMARY KEY (event_id, device_id)
);

CREATE INDEX IF NOT EXISTS idx_event_vote_device ON event_vote(device_id);

CREATE TABLE IF NOT EXISTS event_statistic (
    event_id INTEGER PRIMARY KEY,
    event_title TEXT,
    join_count INTEGER NOT NULL DEFAULT 0
);
`

// OpenSQL connects to the relational backend, verifies the
// connection and creates the schema. driver is "postgres" or
// "sqlite". The returned handle is process-wide and reused for every
// request.
func OpenSQL(driver, url string) (*SQL, error) {
	db, err := sql.Open(driver, url)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ping database")
	}
	if _, err := db.Exec(sqlSchema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create schema")
	}

	greatest := "GREATEST"
	if driver == "sqlite" {
		greatest = "MAX" // scalar two-argument max
	}
	return &SQL{db: db, greatest: greatest}, nil
}

func (s *SQL) Exists(ctx context.Context, eventID int, deviceID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM event_vote WHERE event_id = $1 AND device_id = $2
		)
	`, eventID, deviceID).Scan(&exists)
	if err != nil {
		return false, errors.Wrap(err, "query vote record")
	}
	return exists, nil
}

func (s *SQL) Insert(ctx context.Context, rec models.VoteRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO event_vote (event_id, device_id, event_title, ip_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, rec.EventID, rec.DeviceID, rec.EventTitle, rec.IPHash, rec.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return errors.Wrap(err, "insert vote record")
	}
	return nil
}

func (s *SQL) Delete(ctx context.Context, eventID int, deviceID string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM event_vote WHERE event_id = $1 AND device_id = $2
	`, eventID, deviceID)
	if err != nil {
		return errors.Wrap(err, "delete vote record")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQL) IncrementCount(ctx context.Context, eventID, delta int, eventTitle string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO event_statistic (event_id, event_title, join_count)
		VALUES ($1, NULLIF($2, ''), `+s.greatest+`(0, $3))
		ON CONFLICT (event_id) DO UPDATE SET
			join_count = `+s.greatest+`(0, event_statistic.join_count + $3),
			event_title = COALESCE(NULLIF($2, ''), event_statistic.event_title)
		RETURNING join_count
	`, eventID, eventTitle, delta).Scan(&count)
	if err != nil {
		return 0, errors.Wrap(err, "upsert statistic")
	}
	return count, nil
}

func (s *SQL) ListCounts(ctx context.Context) (map[int]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT event_id, join_count FROM event_statistic
	`)
	if err != nil {
		return nil, errors.Wrap(err, "query statistics")
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var id, n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, errors.Wrap(err, "scan statistic")
		}
		counts[id] = n
	}
	return counts, errors.Wrap(rows.Err(), "iterate statistics")
}

func (s *SQL) ListVotedEvents(ctx context.Context, deviceID string) ([]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT event_id FROM event_vote WHERE device_id = $1
	`, deviceID)
	if err != nil {
		return nil, errors.Wrap(err, "query voted events")
	}
	defer rows.Close()

	events := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrap(err, "scan voted event")
		}
		events = append(events, id)
	}
	return events, errors.Wrap(rows.Err(), "iterate voted events")
}

func (s *SQL) Close() error {
	return s.db.Close()
}

// isUniqueViolation matches the duplicate-key errors of both drivers.
// lib/pq: `pq: duplicate key value violates unique constraint …`
// modernc sqlite: `… UNIQUE constraint failed: event_vote.event_id …`
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
