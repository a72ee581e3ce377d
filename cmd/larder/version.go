package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/larder/pkg/larder"
)

const modulePath = "github.com/mesh-intelligence/larder"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the larder version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "larder v%s\nmodule: %s\n", larder.Version, modulePath)
		return nil
	},
}
