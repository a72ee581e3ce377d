// Package sqlite implements a SQLite persistence backend. The snapshot is
// stored whole as a JSON body in a single-row table; a second table holds
// the pre-write backup copy. Like the file backend, backup errors propagate.
package sqlite

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/larder/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// Backend persists snapshots to a SQLite database file.
type Backend struct {
	db   *sql.DB
	path string
}

// New opens (or creates) the database at path and ensures the schema.
func New(path string) (*Backend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Backend{db: db, path: path}, nil
}

// Close releases the database handle.
func (b *Backend) Close() error {
	return b.db.Close()
}

// Path returns the database file path.
func (b *Backend) Path() string { return b.path }

// Read returns the persisted snapshot, or an empty initialized snapshot when
// none has been written.
func (b *Backend) Read() (*types.Snapshot, error) {
	var body string
	err := b.db.QueryRow("SELECT body FROM snapshot WHERE id = 1").Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return types.NewSnapshot(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snap types.Snapshot
	if err := json.Unmarshal([]byte(body), &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	snap.Normalize()
	return &snap, nil
}

// Write replaces the persisted snapshot. SQLite's journal makes the single
// upsert durable and atomic; no temp-file dance is needed here.
func (b *Backend) Write(snap *types.Snapshot) error {
	body, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	_, err = b.db.Exec(`
		INSERT INTO snapshot (id, body, written_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET body = excluded.body, written_at = excluded.written_at`,
		string(body), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Exists reports whether a snapshot has ever been written.
func (b *Backend) Exists() (bool, error) {
	var n int
	if err := b.db.QueryRow("SELECT COUNT(*) FROM snapshot").Scan(&n); err != nil {
		return false, fmt.Errorf("count snapshots: %w", err)
	}
	return n > 0, nil
}

// Backup copies the current snapshot row into the backup table. A no-op
// when nothing has been written yet.
func (b *Backend) Backup() error {
	_, err := b.db.Exec(`
		INSERT INTO snapshot_backup (id, body, backed_at)
		SELECT 1, body, ? FROM snapshot WHERE id = 1
		ON CONFLICT(id) DO UPDATE SET body = excluded.body, backed_at = excluded.backed_at`,
		time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("backup snapshot: %w", err)
	}
	return nil
}

// ReadBackup returns the backed-up snapshot, or nil when no backup exists.
func (b *Backend) ReadBackup() (*types.Snapshot, error) {
	var body string
	err := b.db.QueryRow("SELECT body FROM snapshot_backup WHERE id = 1").Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read backup: %w", err)
	}

	var snap types.Snapshot
	if err := json.Unmarshal([]byte(body), &snap); err != nil {
		return nil, fmt.Errorf("decode backup: %w", err)
	}
	snap.Normalize()
	return &snap, nil
}
