package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/larder/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize larder storage",
	Long:  "Create the configuration and data directories and write an empty snapshot.",
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	dataDir, err := resolveDataDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	// Materialize the backing file so later commands find an existing store.
	if err := st.Flush(); err != nil {
		return err
	}

	ui.Successf("Larder initialized")
	ui.Dimf("data: %s", dataDir)
	return nil
}
