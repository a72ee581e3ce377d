// Config loading for the larder CLI.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/larder/pkg/larder"
	"github.com/mesh-intelligence/larder/pkg/store"
	"github.com/mesh-intelligence/larder/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Config keys.
	cfgKeyBackend        = "backend"
	cfgKeyDataDir        = "data_dir"
	cfgKeyDisableBackups = "disable_backups"

	defaultBackend = types.BackendFile
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Larder CLI configuration

# Backend selection: file, sqlite, or memory
backend: file

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Skip the pre-write backup copy
# disable_backups: false
`

// loadConfig reads config.yaml from the resolved config directory using
// Viper, creating the directory and a default config.yaml on first run.
// A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// openStore builds the configured backend and loads the store over it.
// The returned closer releases backend resources (a no-op for backends
// without any).
func openStore() (*store.Store, func() error, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, nil, err
	}

	cfg := types.Config{
		Backend:        configBackend,
		DataDir:        dataDir,
		DisableBackups: configDisableBackups,
	}

	var opts *store.Options
	if flagVerbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			return nil, nil, fmt.Errorf("init logger: %w", err)
		}
		opts = &store.Options{Logger: log.Sugar()}
	}

	st, err := larder.Open(cfg, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	return st, func() error { return closeBackend(st) }, nil
}

// closeBackend closes the store's backend when it holds releasable
// resources (the SQLite backend does; file and memory do not).
func closeBackend(st *store.Store) error {
	if c, ok := st.Backend().(io.Closer); ok {
		return c.Close()
	}
	return nil
}
