// Output formatting for the larder CLI: pretty JSON in --json mode, aligned
// human-readable text otherwise.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/mesh-intelligence/larder/pkg/types"
)

// printJSON writes v as pretty-printed JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printRecord writes a single record: JSON in --json mode, otherwise one
// "field: value" line per field with system fields first.
func printRecord(rec types.Record) error {
	if flagJSON {
		return printJSON(rec)
	}
	for _, field := range orderedFields(rec) {
		fmt.Printf("%s: %v\n", field, rec[field])
	}
	return nil
}

// printRecords writes a record list, blank-line separated in text mode.
func printRecords(records []types.Record) error {
	if flagJSON {
		return printJSON(records)
	}
	for i, rec := range records {
		if i > 0 {
			fmt.Println()
		}
		if err := printRecord(rec); err != nil {
			return err
		}
	}
	return nil
}

// orderedFields returns the record's field names with the system fields
// first and the rest sorted.
func orderedFields(rec types.Record) []string {
	fields := make([]string, 0, len(rec))
	for _, f := range types.SystemFields {
		if _, ok := rec[f]; ok {
			fields = append(fields, f)
		}
	}
	var rest []string
	for f := range rec {
		if !isSystem(f) {
			rest = append(rest, f)
		}
	}
	sort.Strings(rest)
	return append(fields, rest...)
}

func isSystem(field string) bool {
	for _, f := range types.SystemFields {
		if field == f {
			return true
		}
	}
	return false
}
