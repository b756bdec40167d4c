package config

import (
	"fmt"
	"path/filepath"
)

// Configuration backends selectable with -config-backend
const (
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
)

// NewProvider opens the configuration source at path with the named backend
func NewProvider(path, backend string) (ConfigProvider, error) {
	filename, _ := filepath.Abs(path)

	switch backend {
	case BackendYAML, "":
		return NewYAMLProvider(filename), nil
	case BackendSQLite:
		provider, err := NewSQLiteProvider(filename)
		if err != nil {
			return nil, fmt.Errorf("error creating SQLite provider: %w", err)
		}
		return provider, nil
	}
	return nil, fmt.Errorf("unsupported configuration backend: %s. Use 'yaml' or 'sqlite'", backend)
}

// Load reads the complete configuration from path
func Load(path, backend string) (*ConfigData, error) {
	provider, err := NewProvider(path, backend)
	if err != nil {
		return nil, err
	}
	defer provider.Close()

	cfgData, err := provider.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error reading config file. Did you pass the -config flag? Run with -h for help: %w", err)
	}

	return cfgData, nil
}
