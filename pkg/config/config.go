// Package config loads orion's runtime configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Storage drivers.
const (
	StorageJSON   = "json"
	StorageSQLite = "sqlite"
)

// DefaultConfigFile is looked up in the working directory when no path is given.
const DefaultConfigFile = "orion.toml"

var (
	ErrInvalidStorage  = errors.New("invalid storage driver")
	ErrInvalidLogLevel = errors.New("invalid log level")
	ErrInvalidFormat   = errors.New("invalid log format")
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv    string
	LogLevel  string
	LogFormat string

	// Storage
	Storage    string
	DataDir    string
	DataFile   string
	SQLitePath string

	// ConfigFile is the TOML file that was read, if any.
	ConfigFile string
}

// fileConfig mirrors the TOML layout.
type fileConfig struct {
	AppEnv string `toml:"app_env"`
	Log    struct {
		Level  string `toml:"level"`
		Format string `toml:"format"`
	} `toml:"log"`
	Storage struct {
		Driver     string `toml:"driver"`
		DataDir    string `toml:"data_dir"`
		DataFile   string `toml:"data_file"`
		SQLitePath string `toml:"sqlite_path"`
	} `toml:"storage"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		AppEnv:     "development",
		LogLevel:   "warn",
		LogFormat:  "text",
		Storage:    StorageJSON,
		DataDir:    "data",
		DataFile:   "orion.json",
		SQLitePath: filepath.Join("data", "orion.db"),
	}
}

// Load builds the configuration from defaults, then the TOML file at path
// (or ORION_CONFIG, or ./orion.toml when present), then .env and the
// environment. An explicitly named file that does not exist is an error.
func Load(path string) (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = os.Getenv("ORION_CONFIG")
		explicit = path != ""
	}
	if !explicit {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	cfg.mergeEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	setIfNotEmpty(&c.AppEnv, fc.AppEnv)
	setIfNotEmpty(&c.LogLevel, fc.Log.Level)
	setIfNotEmpty(&c.LogFormat, fc.Log.Format)
	setIfNotEmpty(&c.Storage, fc.Storage.Driver)
	setIfNotEmpty(&c.DataDir, fc.Storage.DataDir)
	setIfNotEmpty(&c.DataFile, fc.Storage.DataFile)
	setIfNotEmpty(&c.SQLitePath, fc.Storage.SQLitePath)
	c.ConfigFile = path
	return nil
}

func (c *Config) mergeEnv() {
	c.AppEnv = getEnv("APP_ENV", c.AppEnv)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
	c.Storage = getEnv("ORION_STORAGE", c.Storage)
	c.DataDir = getEnv("ORION_DATA_DIR", c.DataDir)
	c.DataFile = getEnv("ORION_DATA_FILE", c.DataFile)
	c.SQLitePath = getEnv("ORION_SQLITE_PATH", c.SQLitePath)
}

// Validate checks the values that cannot be fixed up silently.
func (c *Config) Validate() error {
	c.Storage = strings.ToLower(strings.TrimSpace(c.Storage))
	switch c.Storage {
	case StorageJSON, StorageSQLite:
	default:
		return fmt.Errorf("%w: %q (want %q or %q)", ErrInvalidStorage, c.Storage, StorageJSON, StorageSQLite)
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.LogFormat)
	}

	if strings.TrimSpace(c.DataFile) == "" {
		return errors.New("data file name cannot be empty")
	}
	return nil
}

// DataPath is the full path of the JSON task document.
func (c *Config) DataPath() string {
	return filepath.Join(c.DataDir, c.DataFile)
}

// StoragePath is where the selected driver keeps tasks.
func (c *Config) StoragePath() string {
	if c.Storage == StorageSQLite {
		return c.SQLitePath
	}
	return c.DataPath()
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func setIfNotEmpty(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
