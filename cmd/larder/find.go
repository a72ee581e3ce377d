package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/larder/pkg/types"
)

var (
	findSort     string
	findDesc     bool
	findPopulate bool
)

var findCmd = &cobra.Command{
	Use:   "find <collection> [query-json]",
	Short: "Find records matching a query",
	Long:  "Find records matching a JSON query object. Omitting the query matches every record.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var queryArg string
		if len(args) == 2 {
			queryArg = args[1]
		}
		query, err := parseQuery(queryArg)
		if err != nil {
			return err
		}

		st, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		opts := &types.FindOptions{Populate: findPopulate}
		if findSort != "" {
			order := types.SortAsc
			if findDesc {
				order = types.SortDesc
			}
			opts.Sort = &types.Sort{Field: findSort, Order: order}
		}

		records, err := st.Collection(args[0]).Find(query, opts)
		if err != nil {
			return err
		}
		return printRecords(records)
	},
}

func init() {
	findCmd.Flags().StringVar(&findSort, "sort", "", "sort results by this field")
	findCmd.Flags().BoolVar(&findDesc, "desc", false, "sort in descending order")
	findCmd.Flags().BoolVar(&findPopulate, "populate", false, "resolve relation fields to referenced records")
}
