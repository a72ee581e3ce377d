package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// effectiveConfig is the resolved configuration after flags, environment,
// and config.yaml are merged.
type effectiveConfig struct {
	ConfigDir      string `yaml:"config_dir" json:"config_dir"`
	DataDir        string `yaml:"data_dir" json:"data_dir"`
	Backend        string `yaml:"backend" json:"backend"`
	DisableBackups bool   `yaml:"disable_backups" json:"disable_backups"`
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long:  "Print the configuration larder resolved from flags, environment variables, and config.yaml, as YAML.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}
		dataDir, err := resolveDataDir()
		if err != nil {
			return err
		}

		cfg := effectiveConfig{
			ConfigDir:      configDir,
			DataDir:        dataDir,
			Backend:        configBackend,
			DisableBackups: configDisableBackups,
		}
		if flagJSON {
			return printJSON(cfg)
		}
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	},
}
