package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/larder/internal/ui"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <collection> <query-json>",
	Short: "Delete records matching a query",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		query, err := parseQuery(args[1])
		if err != nil {
			return err
		}

		st, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		count, err := st.Collection(args[0]).Remove(query)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(map[string]int{"removed": count})
		}
		ui.Successf("removed %d record(s)", count)
		return nil
	},
}
