// Package config loads and saves the application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	// Catalog file settings
	Catalog CatalogConfig `toml:"catalog"`

	// Deck database settings
	Database DatabaseConfig `toml:"database"`

	// Deck defaults
	Deck DeckConfig `toml:"deck"`

	// Logging settings
	Log LogConfig `toml:"log"`
}

// CatalogConfig contains card catalog settings.
type CatalogConfig struct {
	Path  string `toml:"path"`  // Path to the catalog JSON file
	Watch bool   `toml:"watch"` // Reload the catalog on external edits
}

// DatabaseConfig contains saved-deck database settings.
type DatabaseConfig struct {
	Path        string `toml:"path"`         // Path to the SQLite database
	AutoMigrate bool   `toml:"auto_migrate"` // Apply schema migrations on open
	BackupDir   string `toml:"backup_dir"`   // Backup directory ("" = next to db)
}

// DeckConfig contains defaults for new decks.
type DeckConfig struct {
	Division    string `toml:"division"`     // Default division for new decks
	StarterCard string `toml:"starter_card"` // Catalog id seeded into a reset deck
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `toml:"level"` // trace, debug, info, warn, error
	JSON  bool   `toml:"json"`  // JSON output instead of console
}

// DefaultConfig returns the default configuration rooted in the user's
// data directory.
func DefaultConfig() *Config {
	dataDir := defaultDataDir()
	return &Config{
		Catalog: CatalogConfig{
			Path:  filepath.Join(dataDir, "catalog.json"),
			Watch: true,
		},
		Database: DatabaseConfig{
			Path:        filepath.Join(dataDir, "decks.db"),
			AutoMigrate: true,
		},
		Deck: DeckConfig{
			Division: "4",
		},
		Log: LogConfig{
			Level: "info",
			JSON:  false,
		},
	}
}

func defaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".garage"
	}
	return filepath.Join(homeDir, ".garage")
}

// configPath returns the path to the configuration file.
func configPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	configDir := filepath.Join(homeDir, ".garage")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// Load loads the configuration from disk. Returns the default config if
// the file doesn't exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile loads the configuration from an explicit path.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return &config, nil
}

// Save saves the configuration to disk.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.Catalog.Path == "" {
		return fmt.Errorf("catalog path cannot be empty")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database path cannot be empty")
	}
	switch c.Log.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	return nil
}
