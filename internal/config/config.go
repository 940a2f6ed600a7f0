package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config is the application configuration. Distinct from the durable state
// store: this file is for operator-editable knobs, not user data.
type Config struct {
	Version     int    `toml:"version"`
	DataDir     string `toml:"data_dir"`     // where store.json lives
	DatasetsDir string `toml:"datasets_dir"` // country emissions CSVs
	LogLevel    string `toml:"log_level"`
	Analytics   struct {
		DefaultCountry string `toml:"default_country"`
	} `toml:"analytics"`
}

// Service handles configuration management
type Service interface {
	Load() (*Config, error)
	Save(cfg *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(cfg *Config, path string) error
}

type service struct {
	filePath string
}

// NewService creates a config service rooted in the user config directory.
func NewService() Service {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	appDir := filepath.Join(configDir, "carbontrack")
	os.MkdirAll(appDir, 0755)

	return &service{
		filePath: filepath.Join(appDir, "config.toml"),
	}
}

// Load loads the configuration, returning defaults if no file exists yet.
func (s *service) Load() (*Config, error) {
	if _, err := os.Stat(s.filePath); os.IsNotExist(err) {
		return Default(), nil
	}
	return s.LoadFromPath(s.filePath)
}

// Save saves the configuration to the default location.
func (s *service) Save(cfg *Config) error {
	return s.SaveToPath(cfg, s.filePath)
}

// LoadFromPath loads configuration from a specific path.
func (s *service) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path.
func (s *service) SaveToPath(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Default returns the default configuration.
func Default() *Config {
	cfg := &Config{
		Version:  1,
		LogLevel: "info",
	}
	cfg.Analytics.DefaultCountry = "United_States"
	return cfg
}
