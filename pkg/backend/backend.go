// Package backend selects and constructs persistence backends. Environment
// and configuration concerns live here; the engine itself only ever sees the
// types.Backend contract.
package backend

import (
	"fmt"
	"path/filepath"

	"github.com/mesh-intelligence/larder/pkg/backend/file"
	"github.com/mesh-intelligence/larder/pkg/backend/memory"
	"github.com/mesh-intelligence/larder/pkg/backend/sqlite"
	"github.com/mesh-intelligence/larder/pkg/types"
)

// Default file names inside the data directory.
const (
	SnapshotFileName = "larder.json"
	DatabaseFileName = "larder.db"
)

// Open constructs the backend described by cfg. An empty backend name
// defaults to the local file backend.
func Open(cfg types.Config) (types.Backend, error) {
	if cfg.Backend == "" {
		cfg.Backend = types.BackendFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "."
	}

	switch cfg.Backend {
	case types.BackendFile:
		return file.New(filepath.Join(dataDir, SnapshotFileName))
	case types.BackendMemory:
		return memory.New(), nil
	case types.BackendSQLite:
		return sqlite.New(filepath.Join(dataDir, DatabaseFileName))
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrBackendUnknown, cfg.Backend)
	}
}
