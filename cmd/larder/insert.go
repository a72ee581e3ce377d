package main

import (
	"github.com/spf13/cobra"
)

var insertCmd = &cobra.Command{
	Use:   "insert <collection> <json>",
	Short: "Insert a record into a collection",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := parseRecord(args[1])
		if err != nil {
			return err
		}

		st, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		rec, err := st.Collection(args[0]).Insert(payload)
		if err != nil {
			return err
		}
		return printRecord(rec)
	},
}
