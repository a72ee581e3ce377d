// Package store implements the Larder document-store engine: collections of
// schema-less records with auto-assigned ordered ids, unique indices,
// cross-collection relations, grouped transactions, and snapshot persistence
// through a pluggable backend.
package store

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/larder/internal/deep"
	"github.com/mesh-intelligence/larder/pkg/types"
)

// Options tunes a Store.
type Options struct {
	// Logger receives structured engine logs. Defaults to a no-op logger.
	Logger *zap.SugaredLogger

	// DisableBackups skips the backend backup step before each write.
	DisableBackups bool
}

// Store is the top-level engine. It owns the active root (the live snapshot,
// or the transaction sandbox while one is open), allocates id serials, caches
// collection handles, and drives persistence through the backend.
//
// A Store is safe for use from multiple goroutines, but the design assumes
// callers serialize logical operations: interleaved mutations are applied in
// lock-acquisition order with no further coordination.
type Store struct {
	mu      sync.RWMutex
	backend types.Backend
	log     *zap.SugaredLogger
	backups bool

	snapshot *types.Snapshot
	sandbox  *types.Snapshot
	inTx     bool
	txID     string

	collections map[string]*Collection
}

// New creates a Store over the given backend. Call Load before use, or use
// Open which does both.
func New(backend types.Backend, opts *Options) *Store {
	if opts == nil {
		opts = &Options{}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Store{
		backend:     backend,
		log:         log,
		backups:     !opts.DisableBackups,
		snapshot:    types.NewSnapshot(),
		collections: make(map[string]*Collection),
	}
}

// Open creates a Store and loads the persisted snapshot.
func Open(backend types.Backend, opts *Options) (*Store, error) {
	s := New(backend, opts)
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load fetches the snapshot from the backend, replacing the in-memory state.
// A backend with no prior snapshot yields an empty initialized one; this is
// never an error.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.backend.Read()
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	if snap == nil {
		snap = types.NewSnapshot()
	}
	snap.Normalize()
	s.snapshot = snap
	return nil
}

// Collection returns a stable handle for the named collection, creating and
// caching it on first call. The collection need not hold any data yet.
func (s *Store) Collection(name string) *Collection {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.collections[name]; ok {
		return c
	}
	c := &Collection{store: s, name: name, hooks: make(map[Event][]Hook)}
	s.collections[name] = c
	return c
}

// Collections returns the names of collections holding data in the active
// root, in no particular order.
func (s *Store) Collections() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	root := s.root()
	names := make([]string, 0, len(root.Data))
	for name := range root.Data {
		names = append(names, name)
	}
	return names
}

// CreateIndex idempotently registers or overwrites an index definition on
// the active root and persists the change (persistence is a no-op inside a
// transaction, where the definition lives in the sandbox until commit).
func (s *Store) CreateIndex(collection, field string, def types.IndexDefinition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.root().SetIndex(collection, field, def)
	s.log.Debugw("index registered", "collection", collection, "field", field, "unique", def.Unique)
	return s.save()
}

// DefineRelation idempotently registers or overwrites a relation definition
// on the active root and persists the change. An empty referenced field
// defaults to "id".
func (s *Store) DefineRelation(collection, field string, def types.RelationDefinition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.root().SetRelation(collection, field, def)
	s.log.Debugw("relation registered",
		"collection", collection, "field", field, "ref", def.Ref, "refField", def.Field)
	return s.save()
}

// Begin opens a transaction: it reloads the snapshot from the backend to
// avoid operating on stale state, then installs a deep copy of it as the
// sandbox. All collection operations read and mutate the sandbox until
// Commit or Rollback. Returns ErrTransactionOpen if a sandbox is already
// open; nested transactions are not supported.
func (s *Store) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inTx {
		return types.ErrTransactionOpen
	}

	snap, err := s.backend.Read()
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	if snap == nil {
		snap = types.NewSnapshot()
	}
	snap.Normalize()

	s.snapshot = snap
	s.sandbox = cloneSnapshot(snap)
	s.inTx = true
	s.txID = newTxID()
	s.log.Debugw("transaction begun", "tx", s.txID)
	return nil
}

// Commit promotes the sandbox to be the live snapshot and persists it.
// A no-op when no transaction is open.
func (s *Store) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.inTx {
		return nil
	}
	s.snapshot = s.sandbox
	s.sandbox = nil
	s.inTx = false
	txID := s.txID
	s.txID = ""

	if err := s.save(); err != nil {
		return err
	}
	s.log.Debugw("transaction committed", "tx", txID)
	return nil
}

// Rollback discards the sandbox. The live snapshot is unaffected and nothing
// is persisted. A no-op when no transaction is open.
func (s *Store) Rollback() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.inTx {
		return nil
	}
	s.sandbox = nil
	s.inTx = false
	s.log.Debugw("transaction rolled back", "tx", s.txID)
	s.txID = ""
	return nil
}

// Flush persists the live snapshot immediately, running the full
// backup-then-write protocol. Outside a transaction every mutation already
// persists; Flush exists to materialize a store that has no data yet.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// Backend returns the persistence backend the store writes through.
func (s *Store) Backend() types.Backend {
	return s.backend
}

// InTransaction reports whether a sandbox is currently open.
func (s *Store) InTransaction() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inTx
}

// root returns the active root: the sandbox while a transaction is open,
// the live snapshot otherwise. Caller must hold s.mu.
func (s *Store) root() *types.Snapshot {
	if s.inTx {
		return s.sandbox
	}
	return s.snapshot
}

// save persists the live snapshot: backup of the currently persisted state
// first (when backups are enabled and a prior snapshot exists), then the
// write. A no-op while a transaction is open; sandbox mutations reach the
// backend only through Commit. Caller must hold s.mu.
func (s *Store) save() error {
	if s.inTx {
		return nil
	}
	if s.backups {
		exists, err := s.backend.Exists()
		if err != nil {
			return fmt.Errorf("check snapshot: %w", err)
		}
		if exists {
			if err := s.backend.Backup(); err != nil {
				return fmt.Errorf("backup snapshot: %w", err)
			}
		}
	}
	if err := s.backend.Write(s.snapshot); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// newTxID returns a sortable transaction id for log correlation.
func newTxID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// cloneRecord deep-copies a record.
func cloneRecord(r types.Record) types.Record {
	if r == nil {
		return nil
	}
	out := make(types.Record, len(r))
	for k, v := range r {
		out[k] = deep.Clone(v)
	}
	return out
}

// cloneSnapshot deep-copies a snapshot, metadata included.
func cloneSnapshot(s *types.Snapshot) *types.Snapshot {
	out := types.NewSnapshot()
	out.Metadata.Serial = s.Metadata.Serial
	for coll, fields := range s.Metadata.Indices {
		for field, def := range fields {
			out.SetIndex(coll, field, def)
		}
	}
	for coll, fields := range s.Metadata.Relations {
		for field, def := range fields {
			out.SetRelation(coll, field, def)
		}
	}
	for coll, records := range s.Data {
		cloned := make([]types.Record, len(records))
		for i, r := range records {
			cloned[i] = cloneRecord(r)
		}
		out.Data[coll] = cloned
	}
	return out
}
