package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/larder/internal/ui"
	"github.com/mesh-intelligence/larder/pkg/types"
)

var relateField string

var relateCmd = &cobra.Command{
	Use:   "relate <collection> <field> <ref-collection>",
	Short: "Declare a relation from a field to another collection",
	Long: `Declare that <collection>.<field> references records of <ref-collection>.
Inserts and updates fail when the field's value has no matching record.
By default the value is matched against the referenced collection's id;
use --ref-field to match another field.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		def := types.RelationDefinition{Ref: args[2], Field: relateField}
		if err := st.DefineRelation(args[0], args[1], def); err != nil {
			return err
		}
		ui.Successf("related %s.%s -> %s", args[0], args[1], args[2])
		return nil
	},
}

func init() {
	relateCmd.Flags().StringVar(&relateField, "ref-field", "", "referenced field (default: id)")
}
