// Package integration exercises the full stack: larder.Open over real
// backends, the store engine, and the persisted snapshot files.
package integration

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/larder/pkg/larder"
	"github.com/mesh-intelligence/larder/pkg/store"
	"github.com/mesh-intelligence/larder/pkg/types"
)

// openStore opens a store over the named backend in an isolated temp
// directory. Each test gets its own directory for isolation.
func openStore(t *testing.T, backend string) (*store.Store, string) {
	t.Helper()
	dir := t.TempDir()
	st, err := larder.Open(types.Config{Backend: backend, DataDir: dir}, nil)
	require.NoError(t, err, "opening %s store", backend)
	return st, dir
}

// reopen opens a second store over the same data directory, simulating a
// separate process reading the persisted state.
func reopen(t *testing.T, backend, dir string) *store.Store {
	t.Helper()
	st, err := larder.Open(types.Config{Backend: backend, DataDir: dir}, nil)
	require.NoError(t, err, "reopening %s store", backend)
	return st
}

// seedUsers inserts n users named user0..user(n-1) and returns their ids.
func seedUsers(t *testing.T, st *store.Store, n int) []string {
	t.Helper()
	users := st.Collection("users")
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		rec, err := users.Insert(types.Record{"name": fmt.Sprintf("user%d", i)})
		require.NoError(t, err)
		ids = append(ids, rec.ID())
	}
	return ids
}
