package draft

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"shiftdeck/internal/roster"
)

// ErrNoDraft means the store holds no saved document.
var ErrNoDraft = errors.New("no draft saved")

// Store keeps the working schedule on disk between editor sessions. The
// server stays the system of record; a draft only protects unsaved edits.
type Store struct {
	path string
}

// Open prepares a store at path, creating parent directories. The database
// file itself is created lazily on first use.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("draft: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create draft dir: %w", err)
	}
	return &Store{path: path}, nil
}

func (s *Store) openDB(ctx context.Context) (*sql.DB, error) {
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, err
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS drafts (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		json TEXT NOT NULL,
		saved_at_unixms INTEGER NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Save replaces the stored draft with the given document.
func (s *Store) Save(ctx context.Context, sched *roster.Schedule) error {
	if sched == nil {
		return errors.New("draft: nil schedule")
	}
	db, err := s.openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	raw, err := json.Marshal(sched)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	_, err = db.ExecContext(ctx,
		`INSERT OR REPLACE INTO drafts(id, json, saved_at_unixms) VALUES(1, ?, ?)`,
		string(raw), time.Now().UTC().UnixMilli())
	return err
}

// Load returns the stored draft and when it was saved, or ErrNoDraft.
func (s *Store) Load(ctx context.Context) (*roster.Schedule, time.Time, error) {
	db, err := s.openDB(ctx)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer db.Close()

	var raw string
	var savedMs int64
	err = db.QueryRowContext(ctx, `SELECT json, saved_at_unixms FROM drafts WHERE id = 1`).Scan(&raw, &savedMs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, ErrNoDraft
	}
	if err != nil {
		return nil, time.Time{}, err
	}

	var sched roster.Schedule
	if err := json.Unmarshal([]byte(raw), &sched); err != nil {
		return nil, time.Time{}, fmt.Errorf("decode draft: %w", err)
	}
	sched.Normalize()
	return &sched, time.UnixMilli(savedMs).UTC(), nil
}

// Clear drops the stored draft. Clearing an empty store is fine.
func (s *Store) Clear(ctx context.Context) error {
	db, err := s.openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	_, err = db.ExecContext(ctx, `DELETE FROM drafts`)
	return err
}

// Ping verifies the database opens and migrates. Used by doctor.
func (s *Store) Ping(ctx context.Context) error {
	db, err := s.openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.PingContext(ctx)
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}
