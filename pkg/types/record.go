package types

import (
	"fmt"
	"strings"
)

// Record is a single schema-less document: field name to JSON-shaped value
// (string, number, boolean, nil, slice, or nested map).
type Record map[string]any

// System fields stamped onto every record by the engine. They are never
// accepted from caller payloads and never overwritten by update patches.
const (
	FieldID        = "id"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
)

// SystemFields lists the engine-owned record fields.
var SystemFields = []string{FieldID, FieldCreatedAt, FieldUpdatedAt}

// serialWidth is the zero-padded width of the serial prefix in record ids.
// Six digits keep ids lexicographically ordered up to a million records.
const serialWidth = 6

// FormatID builds a record id from a serial and the owning collection name,
// e.g. FormatID(1, "users") == "000001_users". Ids sort lexicographically in
// insertion order and are unique across all collections of one store.
func FormatID(serial int64, collection string) string {
	return fmt.Sprintf("%0*d_%s", serialWidth, serial, collection)
}

// CollectionOfID extracts the owning collection name encoded in a record id.
// Returns "" if the id does not carry a collection suffix.
func CollectionOfID(id string) string {
	_, name, ok := strings.Cut(id, "_")
	if !ok {
		return ""
	}
	return name
}

// ID returns the record's id, or "" if the record has none yet.
func (r Record) ID() string {
	id, _ := r[FieldID].(string)
	return id
}
