// Package memory implements an in-process persistence backend for tests and
// ephemeral stores. Snapshots are deep-copied on every read and write so the
// backend never shares state with the engine.
package memory

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mesh-intelligence/larder/pkg/types"
)

// Backend keeps the persisted snapshot and its backup in memory.
type Backend struct {
	mu      sync.Mutex
	current []byte
	backup  []byte
}

// New creates an empty memory backend.
func New() *Backend {
	return &Backend{}
}

// Read returns a copy of the persisted snapshot, or an empty initialized
// snapshot when nothing has been written.
func (b *Backend) Read() (*types.Snapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current == nil {
		return types.NewSnapshot(), nil
	}
	return decode(b.current)
}

// Write persists a copy of the snapshot.
func (b *Backend) Write(snap *types.Snapshot) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	data, err := encode(snap)
	if err != nil {
		return err
	}
	b.current = data
	return nil
}

// Exists reports whether a snapshot has ever been written.
func (b *Backend) Exists() (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current != nil, nil
}

// Backup preserves the currently persisted snapshot in a secondary slot.
func (b *Backend) Backup() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current == nil {
		return nil
	}
	cp := make([]byte, len(b.current))
	copy(cp, b.current)
	b.backup = cp
	return nil
}

// RestoreBackup returns the backed-up snapshot, or nil when no backup has
// been taken. Exposed for tests exercising the backup protocol.
func (b *Backend) RestoreBackup() (*types.Snapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.backup == nil {
		return nil, nil
	}
	return decode(b.backup)
}

// Serializing through JSON keeps the stored snapshot fully detached from
// the snapshots the engine hands in and out.

func encode(snap *types.Snapshot) ([]byte, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}

func decode(data []byte) (*types.Snapshot, error) {
	var snap types.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	snap.Normalize()
	return &snap, nil
}
