package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/guilherme-santos/meetsync/internal"
)

const DriverName = "sqlite3"

// Storage is the sync journal: an audit log of every outcome. It is never
// used to decide whether an event exists.
type Storage struct {
	db *sqlx.DB
}

func Open(filename string) (*Storage, error) {
	db, err := sqlx.Open(DriverName, filename)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening %s: %v", filename, err)
	}
	s, err := NewStorage(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func NewStorage(db *sqlx.DB) (*Storage, error) {
	// A single connection, so ":memory:" databases are shared.
	db.SetMaxOpenConns(1)

	s := &Storage{db: db}
	if err := s.RunMigrations(); err != nil {
		return nil, fmt.Errorf("sqlite: running migrations: %v", err)
	}
	return s, nil
}

func (s Storage) Close() error {
	return s.db.Close()
}

func (s Storage) RecordOutcome(ctx context.Context, cal *internal.Calendar, o *internal.Outcome) error {
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO sync_log (calendar_id, fingerprint, meeting_date, location, address, meeting_time, status, event_id, error, synced_at)
		VALUES (:calendar_id, :fingerprint, :meeting_date, :location, :address, :meeting_time, :status, :event_id, :error, :synced_at)
	`, newEntry(cal, o))
	return err
}

// History returns the last limit entries, newest first. limit <= 0 returns
// every entry.
func (s Storage) History(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1
	}

	var entries []Entry
	err := s.db.SelectContext(ctx, &entries, `
		SELECT id, calendar_id, fingerprint, meeting_date, location, address, meeting_time, status, event_id, error, synced_at
		FROM sync_log
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	return entries, nil
}
