// Package larder is the top-level entry point for the Larder embedded
// document store: collections of schema-less records with globally ordered
// ids, unique indices, cross-collection relations, grouped transactions,
// and crash-safe snapshot persistence.
//
// Typical usage:
//
//	db, err := larder.Open(types.Config{Backend: types.BackendFile, DataDir: ".larder-db"}, nil)
//	if err != nil { ... }
//	users := db.Collection("users")
//	rec, err := users.Insert(types.Record{"email": "a@x.com"})
package larder

import (
	"github.com/mesh-intelligence/larder/pkg/backend"
	"github.com/mesh-intelligence/larder/pkg/store"
	"github.com/mesh-intelligence/larder/pkg/types"
)

// Version is the current Larder release.
const Version = "0.3.0"

// Open constructs the backend described by cfg, creates a store over it, and
// loads the persisted snapshot.
func Open(cfg types.Config, opts *store.Options) (*store.Store, error) {
	b, err := backend.Open(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.DisableBackups {
		if opts == nil {
			opts = &store.Options{}
		}
		opts.DisableBackups = true
	}
	return store.Open(b, opts)
}
