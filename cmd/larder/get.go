package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/larder/pkg/types"
)

var getPopulate bool

var getCmd = &cobra.Command{
	Use:   "get <collection> <id>",
	Short: "Get a record by id",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if args[1] == "" {
			return types.ErrInvalidID
		}

		st, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		opts := &types.FindOptions{Populate: getPopulate}
		rec, err := st.Collection(args[0]).FindOne(types.Where{types.FieldID: args[1]}, opts)
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("no record %q in %s", args[1], args[0])
		}
		return printRecord(rec)
	},
}

func init() {
	getCmd.Flags().BoolVar(&getPopulate, "populate", false, "resolve relation fields to referenced records")
}
