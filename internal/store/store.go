// Package store manages the MISTAKES_HOME directory: the config.yaml and
// the flat pipe-delimited data file that holds every logged mistake.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// StorageConfig holds persistence settings.
type StorageConfig struct {
	DataFile     string `yaml:"data_file"`
	BackupOnSave bool   `yaml:"backup_on_save"`
}

// Config holds the tool configuration.
type Config struct {
	Version string        `yaml:"version"`
	Storage StorageConfig `yaml:"storage"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Version: "1",
		Storage: StorageConfig{
			DataFile:     "mistakes_data.txt",
			BackupOnSave: true,
		},
	}
}

// Store represents a loaded MISTAKES_HOME.
type Store struct {
	Home   string
	Config Config
}

// Issue represents a health check finding.
type Issue struct {
	Severity string // "warning" or "error"
	Message  string
}

// Home returns the MISTAKES_HOME path, respecting the MISTAKES_HOME env var.
func Home() string {
	if h := os.Getenv("MISTAKES_HOME"); h != "" {
		return h
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".mistakes")
	}
	return filepath.Join(home, ".mistakes")
}

// Init creates the MISTAKES_HOME directory and a default config.
func Init(home string, force bool) error {
	if _, err := os.Stat(home); err == nil && !force {
		return fmt.Errorf("MISTAKES_HOME already exists at %s (use --force to reinitialize)", home)
	}

	if err := os.MkdirAll(home, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", home, err)
	}

	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	cfgPath := filepath.Join(home, "config.yaml")
	if err := os.WriteFile(cfgPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Load reads and validates an existing MISTAKES_HOME.
// Missing config fields are filled from defaults.
func Load(home string) (*Store, error) {
	cfgPath := filepath.Join(home, "config.yaml")
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("cannot read MISTAKES_HOME config at %s: %w (run 'mistakes init' first)", cfgPath, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config.yaml: %w", err)
	}
	return &Store{Home: home, Config: cfg}, nil
}

// SaveConfig writes the current config to config.yaml.
func (s *Store) SaveConfig() error {
	data, err := yaml.Marshal(s.Config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	cfgPath := filepath.Join(s.Home, "config.yaml")
	if err := os.WriteFile(cfgPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// SetConfigValue sets a config value by dot-path key (e.g. "storage.data_file").
func (s *Store) SetConfigValue(key, value string) error {
	switch key {
	case "storage.data_file":
		if value == "" {
			return fmt.Errorf("storage.data_file cannot be empty")
		}
		s.Config.Storage.DataFile = value
	case "storage.backup_on_save":
		s.Config.Storage.BackupOnSave = value == "true"
	default:
		return fmt.Errorf("unknown config key: %s\nValid keys: storage.data_file, storage.backup_on_save", key)
	}
	return s.SaveConfig()
}

// Path resolves a path within MISTAKES_HOME.
func (s *Store) Path(parts ...string) string {
	all := append([]string{s.Home}, parts...)
	return filepath.Join(all...)
}

// DataPath returns the absolute path of the mistake data file.
func (s *Store) DataPath() string {
	if filepath.IsAbs(s.Config.Storage.DataFile) {
		return s.Config.Storage.DataFile
	}
	return s.Path(s.Config.Storage.DataFile)
}
