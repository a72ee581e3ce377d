package store

import (
	"strings"
	"testing"

	"github.com/mesh-intelligence/larder/pkg/types"
)

func mustMatch(t *testing.T, query any, doc types.Record) bool {
	t.Helper()
	ok, err := matches(query, doc)
	if err != nil {
		t.Fatalf("matches returned error: %v", err)
	}
	return ok
}

func TestMatchNilQueryMatchesEverything(t *testing.T) {
	if !mustMatch(t, nil, types.Record{"a": 1}) {
		t.Errorf("nil query did not match")
	}
	if !mustMatch(t, nil, types.Record{}) {
		t.Errorf("nil query did not match empty record")
	}
}

func TestMatchLiteralEquality(t *testing.T) {
	doc := types.Record{"name": "ada", "age": float64(36)}

	if !mustMatch(t, types.Where{"name": "ada"}, doc) {
		t.Errorf("literal string did not match")
	}
	// Query ints compare equal to JSON-decoded floats.
	if !mustMatch(t, types.Where{"age": 36}, doc) {
		t.Errorf("numeric literal did not match across kinds")
	}
	if mustMatch(t, types.Where{"name": "bob"}, doc) {
		t.Errorf("mismatched literal matched")
	}
}

func TestMatchMissingFieldNeverEqualsConcreteValue(t *testing.T) {
	doc := types.Record{"name": "ada"}
	if mustMatch(t, types.Where{"ghost": "x"}, doc) {
		t.Errorf("missing field matched a concrete value")
	}
	if mustMatch(t, types.Where{"ghost": nil}, doc) {
		t.Errorf("missing field matched nil literal")
	}
}

func TestMatchStructuralObject(t *testing.T) {
	doc := types.Record{"address": map[string]any{"city": "Rome", "zip": float64(100)}}

	// Key order of the query object is irrelevant.
	q := types.Where{"address": map[string]any{"zip": 100, "city": "Rome"}}
	if !mustMatch(t, q, doc) {
		t.Errorf("structurally equal object did not match")
	}

	q = types.Where{"address": map[string]any{"city": "Rome"}}
	if mustMatch(t, q, doc) {
		t.Errorf("partial object matched; structural equality must be total")
	}
}

func TestMatchFieldPredicate(t *testing.T) {
	doc := types.Record{"age": float64(36)}
	over30 := types.FieldPredicate(func(v any) bool {
		f, ok := v.(float64)
		return ok && f > 30
	})
	if !mustMatch(t, types.Where{"age": over30}, doc) {
		t.Errorf("predicate did not match")
	}

	// A predicate can deliberately match absence.
	absent := types.FieldPredicate(func(v any) bool { return v == nil })
	if !mustMatch(t, types.Where{"ghost": absent}, doc) {
		t.Errorf("absence predicate did not match missing field")
	}
}

func TestMatchWholeDocumentPredicate(t *testing.T) {
	doc := types.Record{"name": "ada lovelace"}
	q := types.Match(func(d types.Record) bool {
		name, _ := d["name"].(string)
		return strings.Contains(name, "lovelace")
	})
	if !mustMatch(t, q, doc) {
		t.Errorf("whole-document predicate did not match")
	}
}

func TestMatchArraysOrderSensitive(t *testing.T) {
	doc := types.Record{"tags": []any{"a", "b"}}
	if !mustMatch(t, types.Where{"tags": []any{"a", "b"}}, doc) {
		t.Errorf("equal arrays did not match")
	}
	if mustMatch(t, types.Where{"tags": []any{"b", "a"}}, doc) {
		t.Errorf("reordered arrays matched")
	}
}

func TestMatchInvalidQueryType(t *testing.T) {
	_, err := matches(42, types.Record{})
	if err != types.ErrInvalidQuery {
		t.Errorf("got %v, want ErrInvalidQuery", err)
	}
}
