package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/larder/internal/ui"
	"github.com/mesh-intelligence/larder/pkg/types"
)

var indexUnique bool

var indexCmd = &cobra.Command{
	Use:   "index <collection> <field>",
	Short: "Register an index on a collection field",
	Long:  "Register an index definition. With --unique, inserts and updates that would duplicate the field's value fail.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		def := types.IndexDefinition{Unique: indexUnique}
		if err := st.CreateIndex(args[0], args[1], def); err != nil {
			return err
		}
		ui.Successf("indexed %s.%s (unique: %v)", args[0], args[1], indexUnique)
		return nil
	},
}

func init() {
	indexCmd.Flags().BoolVar(&indexUnique, "unique", false, "enforce value uniqueness on this field")
}
