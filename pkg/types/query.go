package types

// A query passed to Find, FindOne, Update, Remove, or Count is one of:
//
//   - nil: matches every record.
//   - Where (or any string-keyed map): per-field matching. Each value is a
//     literal (compared by value), a nested map (compared structurally), or
//     a FieldPredicate.
//   - Match: a whole-document predicate.
//
// The matcher dispatches on these three variants explicitly; anything else
// is rejected with ErrInvalidQuery.

// Where maps field names to expected values.
type Where map[string]any

// FieldPredicate tests a single field value. Missing fields are presented
// as nil with a false "present" flag folded away: a predicate is the only
// query form that can deliberately match absence.
type FieldPredicate func(value any) bool

// Match is a whole-document predicate query.
type Match func(doc Record) bool

// Sort directions.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Sort orders find results by a single field. Order is SortAsc or SortDesc;
// empty means ascending. Ties keep their prior relative order.
type Sort struct {
	Field string
	Order string
}

// FindOptions tunes Find and FindOne.
type FindOptions struct {
	// Sort orders results by a field before returning them.
	Sort *Sort
	// Populate resolves relation fields to the referenced records.
	Populate bool
}
