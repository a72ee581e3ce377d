// End-to-end lifecycle over the file backend: records inserted, queried,
// updated, and removed through larder.Open survive a reopen from the same
// data directory.
package integration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/larder/pkg/backend"
	"github.com/mesh-intelligence/larder/pkg/types"
)

func TestLifecycle_InsertAssignsOrderedIDs(t *testing.T) {
	st, _ := openStore(t, types.BackendFile)

	ids := seedUsers(t, st, 3)
	assert.Equal(t, []string{"000001_users", "000002_users", "000003_users"}, ids)

	// The serial counter is global: the next record in any collection
	// continues the sequence.
	rec, err := st.Collection("posts").Insert(types.Record{"title": "t"})
	require.NoError(t, err)
	assert.Equal(t, "000004_posts", rec.ID())
}

func TestLifecycle_PersistedStateSurvivesReopen(t *testing.T) {
	st, dir := openStore(t, types.BackendFile)
	seedUsers(t, st, 2)
	_, err := st.Collection("users").Update(types.Where{"name": "user0"}, types.Record{"role": "admin"})
	require.NoError(t, err)

	st2 := reopen(t, types.BackendFile, dir)
	records, err := st2.Collection("users").Find(nil, nil)
	require.NoError(t, err)
	require.Len(t, records, 2)

	admin, err := st2.Collection("users").FindOne(types.Where{"role": "admin"}, nil)
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, "user0", admin["name"])
	assert.Equal(t, "000001_users", admin.ID())

	// Serial continues where the first process left off.
	rec, err := st2.Collection("users").Insert(types.Record{"name": "user2"})
	require.NoError(t, err)
	assert.Equal(t, "000003_users", rec.ID())
}

func TestLifecycle_RemoveShrinksCollectionDurably(t *testing.T) {
	st, dir := openStore(t, types.BackendFile)
	seedUsers(t, st, 3)

	count, err := st.Collection("users").Remove(types.Where{"name": "user1"})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	st2 := reopen(t, types.BackendFile, dir)
	n, err := st2.Collection("users").Count(nil)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	gone, err := st2.Collection("users").FindOne(types.Where{"name": "user1"}, nil)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestLifecycle_SnapshotFileIsHumanReadableJSON(t *testing.T) {
	st, dir := openStore(t, types.BackendFile)
	seedUsers(t, st, 1)

	data, err := os.ReadFile(filepath.Join(dir, backend.SnapshotFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "000001_users")
	assert.Contains(t, string(data), "\n")
}

func TestLifecycle_TimestampsAdvanceOnUpdate(t *testing.T) {
	st, _ := openStore(t, types.BackendFile)
	users := st.Collection("users")

	rec, err := users.Insert(types.Record{"name": "ada"})
	require.NoError(t, err)

	_, err = users.Update(types.Where{types.FieldID: rec.ID()}, types.Record{"name": "ada lovelace"})
	require.NoError(t, err)

	got, err := users.FindOne(types.Where{types.FieldID: rec.ID()}, nil)
	require.NoError(t, err)
	created, err := time.Parse(time.RFC3339Nano, got[types.FieldCreatedAt].(string))
	require.NoError(t, err)
	updated, err := time.Parse(time.RFC3339Nano, got[types.FieldUpdatedAt].(string))
	require.NoError(t, err)
	assert.True(t, updated.After(created), "updated_at must move past created_at")
}
