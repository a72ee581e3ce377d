package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/larder/internal/ui"
)

var updateCmd = &cobra.Command{
	Use:   "update <collection> <query-json> <patch-json>",
	Short: "Update records matching a query",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		query, err := parseQuery(args[1])
		if err != nil {
			return err
		}
		patch, err := parseRecord(args[2])
		if err != nil {
			return err
		}

		st, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		count, err := st.Collection(args[0]).Update(query, patch)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(map[string]int{"updated": count})
		}
		ui.Successf("updated %d record(s)", count)
		return nil
	},
}
