package types

import (
	"errors"
	"fmt"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

// Store and collection operation errors.
var (
	// ErrTransactionOpen is returned by Begin while a sandbox is already open.
	ErrTransactionOpen = errors.New("transaction already open")
	// ErrInvalidQuery is returned when a query is neither nil, a map, nor a
	// predicate.
	ErrInvalidQuery = errors.New("invalid query type")
	// ErrInvalidID is returned when an operation requires a non-empty id.
	ErrInvalidID = errors.New("invalid record id")
	// ErrNotImplemented is returned by backends for capabilities the current
	// environment does not support.
	ErrNotImplemented = errors.New("not implemented")
)

// UniquenessError reports that an insert or update would duplicate a value
// on a field with a unique index.
type UniquenessError struct {
	Collection string
	Field      string
	Value      any
}

func (e *UniquenessError) Error() string {
	return fmt.Sprintf("unique constraint violated: %s.%s already holds %v", e.Collection, e.Field, e.Value)
}

// RelationError reports that a relation field's value has no matching record
// in the referenced collection.
type RelationError struct {
	Collection string
	Field      string
	Value      any
	Ref        string
	RefField   string
}

func (e *RelationError) Error() string {
	return fmt.Sprintf("relation violated: %s.%s = %v has no match in %s.%s",
		e.Collection, e.Field, e.Value, e.Ref, e.RefField)
}

// IsUniqueness reports whether err is a uniqueness violation.
func IsUniqueness(err error) bool {
	var ue *UniquenessError
	return errors.As(err, &ue)
}

// IsRelation reports whether err is a relation-integrity violation.
func IsRelation(err error) bool {
	var re *RelationError
	return errors.As(err, &re)
}
