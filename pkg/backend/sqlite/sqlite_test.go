package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/mesh-intelligence/larder/pkg/types"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	b, err := New(filepath.Join(t.TempDir(), "larder.db"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return b
}

func sampleSnapshot(serial int64) *types.Snapshot {
	snap := types.NewSnapshot()
	snap.Metadata.Serial = serial
	snap.Data["users"] = []types.Record{{types.FieldID: "000001_users", "name": "ada"}}
	return snap
}

func TestReadBeforeWriteReturnsEmptySnapshot(t *testing.T) {
	b := newTestBackend(t)

	snap, err := b.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if snap.Metadata.Serial != 0 || len(snap.Data) != 0 {
		t.Errorf("fresh database not empty: %+v", snap)
	}
	if ok, _ := b.Exists(); ok {
		t.Errorf("Exists true before any write")
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	b := newTestBackend(t)
	if err := b.Write(sampleSnapshot(1)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := b.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got.Metadata.Serial != 1 || got.Data["users"][0]["name"] != "ada" {
		t.Errorf("snapshot did not round-trip: %+v", got)
	}
	if ok, _ := b.Exists(); !ok {
		t.Errorf("Exists false after write")
	}
}

func TestWriteReplacesSingleRow(t *testing.T) {
	b := newTestBackend(t)
	b.Write(sampleSnapshot(1))
	if err := b.Write(sampleSnapshot(7)); err != nil {
		t.Fatalf("second Write failed: %v", err)
	}

	got, _ := b.Read()
	if got.Metadata.Serial != 7 {
		t.Errorf("serial = %d, want 7", got.Metadata.Serial)
	}
}

func TestBackupPreservesPreWriteState(t *testing.T) {
	b := newTestBackend(t)
	b.Write(sampleSnapshot(1))
	if err := b.Backup(); err != nil {
		t.Fatalf("Backup failed: %v", err)
	}
	b.Write(sampleSnapshot(2))

	bak, err := b.ReadBackup()
	if err != nil {
		t.Fatalf("ReadBackup failed: %v", err)
	}
	if bak == nil || bak.Metadata.Serial != 1 {
		t.Errorf("backup = %+v, want serial 1", bak)
	}
}

func TestBackupBeforeWriteIsNoop(t *testing.T) {
	b := newTestBackend(t)
	if err := b.Backup(); err != nil {
		t.Fatalf("Backup failed: %v", err)
	}
	if bak, _ := b.ReadBackup(); bak != nil {
		t.Errorf("backup exists for empty database")
	}
}

func TestReopenSeesPersistedSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "larder.db")
	b, err := New(path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	b.Write(sampleSnapshot(3))
	if err := b.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	b2, err := New(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer b2.Close()

	got, _ := b2.Read()
	if got.Metadata.Serial != 3 {
		t.Errorf("reopened serial = %d, want 3", got.Metadata.Serial)
	}
}
