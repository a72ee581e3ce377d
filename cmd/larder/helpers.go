// Shared argument parsing helpers for larder subcommands.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/larder/pkg/types"
)

// parseRecord decodes a JSON object argument into a record.
func parseRecord(arg string) (types.Record, error) {
	var rec types.Record
	if err := json.Unmarshal([]byte(arg), &rec); err != nil {
		return nil, fmt.Errorf("invalid JSON document: %w", err)
	}
	return rec, nil
}

// parseQuery decodes an optional JSON object argument into a query. An
// empty argument matches everything.
func parseQuery(arg string) (types.Where, error) {
	if arg == "" {
		return nil, nil
	}
	var where types.Where
	if err := json.Unmarshal([]byte(arg), &where); err != nil {
		return nil, fmt.Errorf("invalid JSON query: %w", err)
	}
	return where, nil
}
