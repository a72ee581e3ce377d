// Package file implements the local-file persistence backend: the whole
// snapshot serialized as one JSON document, written with the temp-file,
// fsync, atomic-rename pattern and a bounded rename retry.
package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/larder/pkg/types"
)

// Rename retry policy: renameAttempts tries with linearly increasing delay
// (attempt * renameDelay) between them.
const (
	renameAttempts = 5
	renameDelay    = 100 * time.Millisecond
)

// BackupSuffix is appended to the snapshot path for the backup copy.
const BackupSuffix = ".bak"

// Backend persists snapshots to a single JSON file.
type Backend struct {
	path string
	log  *zap.SugaredLogger
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the backend logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(b *Backend) { b.log = log }
}

// New creates a file backend writing to path. The parent directory is
// created if missing.
func New(path string, opts ...Option) (*Backend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	b := &Backend{path: path, log: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Path returns the snapshot file path.
func (b *Backend) Path() string { return b.path }

// Read returns the last written snapshot, or an empty initialized snapshot
// when the file does not exist. A missing file is never an error.
func (b *Backend) Read() (*types.Snapshot, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.NewSnapshot(), nil
		}
		return nil, fmt.Errorf("reading %s: %w", b.path, err)
	}

	var snap types.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", b.path, err)
	}
	snap.Normalize()
	return &snap, nil
}

// Write durably persists the snapshot: encode to a temp file in the target
// directory, fsync, then rename into place. Rename failures are retried
// with linearly increasing delay before giving up.
func (b *Backend) Write(snap *types.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return writeAtomic(b.path, append(data, '\n'))
}

// Exists reports whether a snapshot has ever been written.
func (b *Backend) Exists() (bool, error) {
	_, err := os.Stat(b.path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("stat %s: %w", b.path, err)
}

// Backup copies the currently persisted snapshot to the backup path, so the
// last known-good state survives a failed write. Errors propagate; for the
// local-file backend the backup is not best-effort. A missing snapshot file
// makes Backup a no-op.
func (b *Backend) Backup() error {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", b.path, err)
	}
	if err := writeAtomic(b.path+BackupSuffix, data); err != nil {
		return err
	}
	b.log.Debugw("snapshot backed up", "path", b.path+BackupSuffix)
	return nil
}

// writeAtomic writes data to path via temp file, fsync, and rename with the
// bounded retry policy.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		return discardTemp(fmt.Errorf("writing snapshot: %w", err), tmp)
	}
	if err := tmp.Sync(); err != nil {
		return discardTemp(fmt.Errorf("syncing temp file: %w", err), tmp)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := renameWithRetry(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// discardTemp closes and removes a failed temp file, folding any teardown
// error into the primary one.
func discardTemp(primary error, tmp *os.File) error {
	err := multierr.Append(primary, tmp.Close())
	if rmErr := os.Remove(tmp.Name()); rmErr != nil {
		err = multierr.Append(err, rmErr)
	}
	return err
}

// renameWithRetry renames src to dst, retrying transient failures with
// linearly increasing delay.
func renameWithRetry(src, dst string) error {
	var err error
	for attempt := 1; attempt <= renameAttempts; attempt++ {
		if err = os.Rename(src, dst); err == nil {
			return nil
		}
		if attempt < renameAttempts {
			time.Sleep(time.Duration(attempt) * renameDelay)
		}
	}
	return fmt.Errorf("renaming temp file after %d attempts: %w", renameAttempts, err)
}
