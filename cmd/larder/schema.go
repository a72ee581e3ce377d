package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/larder/pkg/types"
)

var schemaCmd = &cobra.Command{
	Use:   "schema <collection>",
	Short: "Infer the structural schema of a collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		schema := st.Collection(args[0]).Schema()
		if flagJSON {
			return printJSON(schema)
		}
		printSchema(schema, "")
		return nil
	},
}

// printSchema writes an indented text rendering of an inferred schema.
func printSchema(schema types.Schema, indent string) {
	fields := make([]string, 0, len(schema))
	for f := range schema {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	for _, f := range fields {
		fs := schema[f]
		required := ""
		if fs.Required {
			required = " (required)"
		}
		fmt.Printf("%s%s: %s%s\n", indent, f, fs.Type, required)
		if len(fs.Fields) > 0 {
			printSchema(fs.Fields, indent+"  ")
		}
	}
}
