// Package deep provides deep cloning and deep equality over JSON-shaped
// values: string-keyed maps, slices, numbers, strings, booleans, and nil.
// Numeric kinds are normalized so values decoded from JSON (float64) compare
// equal to native Go integers holding the same value.
package deep

import (
	"fmt"
	"reflect"
	"strings"
)

// Clone returns a deep copy of a JSON-shaped value. Maps and slices are
// copied recursively, preserving their concrete types; scalars are returned
// as-is.
func Clone(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = Clone(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Clone(e)
		}
		return out
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), cloneAs(iter.Value().Interface(), rv.Type().Elem()))
		}
		return out.Interface()
	case reflect.Slice:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out.Index(i).Set(cloneAs(rv.Index(i).Interface(), rv.Type().Elem()))
		}
		return out.Interface()
	default:
		return v
	}
}

// cloneAs deep-clones v and wraps it in a reflect.Value assignable to typ.
func cloneAs(v any, typ reflect.Type) reflect.Value {
	cloned := Clone(v)
	if cloned == nil {
		return reflect.Zero(typ)
	}
	return reflect.ValueOf(cloned)
}

// Equal reports deep equality of two JSON-shaped values. Object keys are
// order-insensitive; slices are order-sensitive; numeric values compare by
// value regardless of kind.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if fa, ok := asFloat(a); ok {
		fb, ok := asFloat(b)
		return ok && fa == fb
	}

	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch ra.Kind() {
	case reflect.String:
		return rb.Kind() == reflect.String && ra.String() == rb.String()
	case reflect.Bool:
		return rb.Kind() == reflect.Bool && ra.Bool() == rb.Bool()
	case reflect.Slice, reflect.Array:
		if rb.Kind() != reflect.Slice && rb.Kind() != reflect.Array {
			return false
		}
		if ra.Len() != rb.Len() {
			return false
		}
		for i := 0; i < ra.Len(); i++ {
			if !Equal(ra.Index(i).Interface(), rb.Index(i).Interface()) {
				return false
			}
		}
		return true
	case reflect.Map:
		if rb.Kind() != reflect.Map || ra.Len() != rb.Len() {
			return false
		}
		if ra.Type().Key().Kind() != reflect.String || rb.Type().Key().Kind() != reflect.String {
			return reflect.DeepEqual(a, b)
		}
		iter := ra.MapRange()
		for iter.Next() {
			bv := rb.MapIndex(reflect.ValueOf(iter.Key().String()).Convert(rb.Type().Key()))
			if !bv.IsValid() {
				return false
			}
			if !Equal(iter.Value().Interface(), bv.Interface()) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(a, b)
	}
}

// asFloat normalizes any numeric kind to float64.
func asFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

// Compare orders two JSON-shaped values: nil first, then numbers, booleans
// (false before true), and strings by their natural order. Values of
// differing or unordered types fall back to comparing their printed forms.
func Compare(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if fa, ok := asFloat(a); ok {
		if fb, ok := asFloat(b); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			default:
				return 0
			}
		}
	}
	if sa, ok := a.(string); ok {
		if sb, ok := b.(string); ok {
			return strings.Compare(sa, sb)
		}
	}
	if ba, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			switch {
			case ba == bb:
				return 0
			case bb:
				return -1
			default:
				return 1
			}
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}
