package types

// Backend is the persistence contract consumed by the store. A backend
// persists whole snapshots; the store never issues partial writes.
//
// Read must return an empty initialized snapshot, not an error, when nothing
// has ever been written. Write must be crash-safe for file-like backends
// (temp location, then atomic rename, with bounded retry). Backup preserves
// the currently persisted state at a secondary location before the next
// write overwrites it.
type Backend interface {
	Read() (*Snapshot, error)
	Write(snapshot *Snapshot) error
	Exists() (bool, error)
	Backup() error
}

// Supported backend names.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendFile:   true,
	BackendMemory: true,
	BackendSQLite: true,
}

// Config holds backend selection and parameters for opening a store.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// DisableBackups turns off the pre-write backup step. Backups are on by
	// default.
	DisableBackups bool `json:"disable_backups" yaml:"disable_backups"`
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	return nil
}
