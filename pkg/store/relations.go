package store

import (
	"github.com/mesh-intelligence/larder/internal/deep"
	"github.com/mesh-intelligence/larder/pkg/types"
)

// checkRelations verifies that every relation field present and non-nil on
// doc resolves to a record in the referenced collection. Lookups run against
// the given root, which is the active root of the store, so inside a
// transaction references to records inserted earlier in the same sandbox
// resolve. Caller must hold the store lock.
func (s *Store) checkRelations(root *types.Snapshot, collection string, doc types.Record) error {
	for field, def := range root.Relations(collection) {
		v, ok := doc[field]
		if !ok || v == nil {
			continue
		}
		refField := def.Field
		if refField == "" {
			refField = types.FieldID
		}
		if findByField(root.Data[def.Ref], refField, v) == nil {
			return &types.RelationError{
				Collection: collection,
				Field:      field,
				Value:      v,
				Ref:        def.Ref,
				RefField:   refField,
			}
		}
	}
	return nil
}

// populate returns a clone of doc with every resolvable relation field
// replaced by a clone of the first referenced record whose referenced field
// equals the raw value. Unresolvable values are left raw. Caller must hold
// the store lock.
func (s *Store) populate(root *types.Snapshot, collection string, doc types.Record) types.Record {
	out := cloneRecord(doc)
	for field, def := range root.Relations(collection) {
		v, ok := out[field]
		if !ok || v == nil {
			continue
		}
		refField := def.Field
		if refField == "" {
			refField = types.FieldID
		}
		if ref := findByField(root.Data[def.Ref], refField, v); ref != nil {
			out[field] = cloneRecord(ref)
		}
	}
	return out
}

// findByField returns the first record whose field equals value, or nil.
func findByField(records []types.Record, field string, value any) types.Record {
	for _, rec := range records {
		if rv, ok := rec[field]; ok && deep.Equal(rv, value) {
			return rec
		}
	}
	return nil
}
