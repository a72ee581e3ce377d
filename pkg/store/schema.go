package store

import (
	"reflect"

	"github.com/mesh-intelligence/larder/pkg/types"
)

// Schema infers a structural description of the collection by inspecting
// every record: each field's type (a mix of types across records becomes
// "any"), whether it appears in every record at its nesting level, and for
// object fields the nested schema. System fields are excluded at the top
// level only. Read-only introspection; CRUD paths never consult it.
func (c *Collection) Schema() types.Schema {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	records := c.store.root().Data[c.name]
	docs := make([]map[string]any, len(records))
	for i, rec := range records {
		docs[i] = rec
	}
	return inferSchema(docs, true)
}

// fieldStats accumulates per-field observations across documents.
type fieldStats struct {
	count   int              // documents containing the field
	types   map[string]bool  // distinct inferred types seen
	objects []map[string]any // object values, for nested inference
}

func inferSchema(docs []map[string]any, topLevel bool) types.Schema {
	stats := make(map[string]*fieldStats)
	for _, doc := range docs {
		for field, value := range doc {
			if topLevel && isSystemField(field) {
				continue
			}
			st := stats[field]
			if st == nil {
				st = &fieldStats{types: make(map[string]bool)}
				stats[field] = st
			}
			st.count++
			t := valueType(value)
			st.types[t] = true
			if t == types.TypeObject {
				st.objects = append(st.objects, asStringMap(value))
			}
		}
	}

	schema := make(types.Schema, len(stats))
	for field, st := range stats {
		fs := types.FieldSchema{
			Type:     singleType(st.types),
			Required: st.count == len(docs) && len(docs) > 0,
		}
		if fs.Type == types.TypeObject {
			fs.Fields = inferSchema(st.objects, false)
		}
		schema[field] = fs
	}
	return schema
}

// singleType collapses the observed type set: one type stays itself, a mix
// becomes "any".
func singleType(seen map[string]bool) string {
	if len(seen) == 1 {
		for t := range seen {
			return t
		}
	}
	return types.TypeAny
}

// valueType maps a value to its inferred schema type name.
func valueType(v any) string {
	if v == nil {
		return types.TypeNull
	}
	switch v.(type) {
	case string:
		return types.TypeString
	case bool:
		return types.TypeBoolean
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return types.TypeNumber
	case reflect.Slice, reflect.Array:
		return types.TypeArray
	case reflect.Map:
		return types.TypeObject
	default:
		return types.TypeAny
	}
}

// asStringMap converts any string-keyed map value to map[string]any.
func asStringMap(v any) map[string]any {
	switch m := v.(type) {
	case map[string]any:
		return m
	case types.Record:
		return m
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out
}

func isSystemField(field string) bool {
	for _, f := range types.SystemFields {
		if field == f {
			return true
		}
	}
	return false
}
