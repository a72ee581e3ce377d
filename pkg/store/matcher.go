package store

import (
	"github.com/mesh-intelligence/larder/internal/deep"
	"github.com/mesh-intelligence/larder/pkg/types"
)

// matches evaluates a query against a document. The query is nil (match
// all), a whole-document predicate, or a string-keyed map of per-field
// conditions; anything else yields ErrInvalidQuery.
func matches(query any, doc types.Record) (bool, error) {
	switch q := query.(type) {
	case nil:
		return true, nil
	case types.Match:
		return q(doc), nil
	case func(types.Record) bool:
		return q(doc), nil
	case types.Where:
		return matchWhere(q, doc), nil
	case map[string]any:
		return matchWhere(q, doc), nil
	case types.Record:
		return matchWhere(map[string]any(q), doc), nil
	default:
		return false, types.ErrInvalidQuery
	}
}

// matchWhere checks every field condition; a document matches iff all hold.
func matchWhere(where map[string]any, doc types.Record) bool {
	for field, want := range where {
		got, present := doc[field]
		if !matchValue(want, got, present) {
			return false
		}
	}
	return true
}

// matchValue dispatches a single field condition over its three variants:
// predicate, structural object equality, or literal value equality.
// deep.Equal covers both non-predicate variants: object keys compare
// order-insensitively, array elements order-sensitively. Absent fields never
// match a concrete value; a predicate sees nil for absent fields and may
// deliberately match absence.
func matchValue(want, got any, present bool) bool {
	switch p := want.(type) {
	case types.FieldPredicate:
		return p(got)
	case func(any) bool:
		return p(got)
	}
	return present && deep.Equal(got, want)
}
