// Package snapstore archives the day's portal payloads so repeated
// runs within the same calendar day skip the remote fetch. It is an
// opportunistic memoization, never a source of truth: a miss or a
// corrupt row just means "fetch it live".
package snapstore

import (
	"context"
	"database/sql"
	"errors"
	"time"
	"wardreport/lib/sqliteutil"
	"wardreport/lib/timezone"

	_ "embed"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

var ErrNoSnapshot = errors.New("no snapshot for this day")

const (
	KindMembership = "membership"
	KindRecommends = "recommends"
)

type Store struct {
	db *sql.DB
}

func Open(path string) (Store, error) {
	db, err := sqliteutil.OpenDB(Schema, path)
	if err != nil {
		return Store{}, err
	}
	return Store{db: db}, nil
}

func NewStore(db *sql.DB) Store {
	return Store{db: db}
}

func (s Store) Close() error {
	return s.db.Close()
}

// dayKey formats the archive key for a moment in time.
func dayKey(t time.Time) string {
	return t.In(timezone.Location).Format("20060102")
}

// Get returns the payload archived for the calendar day of `day`.
// ErrNoSnapshot covers both "nothing stored" and "stored but
// unreadable" so callers re-fetch in either case.
func (s Store) Get(ctx context.Context, day time.Time, kind string) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(
		ctx,
		`SELECT payload FROM snapshots WHERE day = ? AND kind = ?`,
		dayKey(day), kind,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, ErrNoSnapshot
	}
	return payload, nil
}

// Put archives a payload under the calendar day of `day`, replacing
// any earlier snapshot from the same day.
func (s Store) Put(ctx context.Context, day time.Time, kind string, payload []byte) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO snapshots (day, kind, payload, fetched_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (day, kind) DO UPDATE SET
		   payload = excluded.payload,
		   fetched_at = excluded.fetched_at`,
		dayKey(day), kind, payload, timezone.Now().Unix(),
	)
	return err
}
