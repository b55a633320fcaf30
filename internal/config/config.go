// Package config loads brickmath settings from a TOML file, a .env file and
// BRICKMATH_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/brickmath/internal/problemgen"
)

// Environment variables that override file settings.
const (
	EnvDB       = "BRICKMATH_DB"
	EnvLogLevel = "BRICKMATH_LOG_LEVEL"
	EnvLogFile  = "BRICKMATH_LOG_FILE"
	EnvAutosave = "BRICKMATH_AUTOSAVE_SECONDS"
)

// DefaultAutosaveSeconds is the autosave interval when none is configured.
const DefaultAutosaveSeconds = 30

// Config holds all user settings.
type Config struct {
	// DBPath is the sqlite file. Empty means the default data location.
	DBPath string `toml:"db_path"`

	AutosaveSeconds int `toml:"autosave_seconds"`

	// DefaultTables seeds the table selection of a new profile.
	DefaultTables []int `toml:"default_tables"`

	Log LogConfig `toml:"log"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		AutosaveSeconds: DefaultAutosaveSeconds,
		Log:             LogConfig{Level: "info"},
	}
}

// AutosaveInterval returns the autosave period.
func (c *Config) AutosaveInterval() time.Duration {
	return time.Duration(c.AutosaveSeconds) * time.Second
}

// DefaultPath resolves the config file location:
// $XDG_CONFIG_HOME/brickmath/config.toml, else ~/.config/brickmath/config.toml.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "brickmath", "config.toml"), nil
}

// Load reads the config file at path (the default location if empty),
// then applies environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	if err := cfg.readFile(path); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDotEnv loads variables from the given .env files (".env" if none)
// without overriding the existing environment. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

func (c *Config) readFile(path string) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	if err := toml.NewDecoder(f).Decode(c); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvDB); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv(EnvAutosave); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvAutosave, err)
		}
		c.AutosaveSeconds = n
	}
	return nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.AutosaveSeconds <= 0 {
		return fmt.Errorf("autosave_seconds must be positive, got %d", c.AutosaveSeconds)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	for _, n := range c.DefaultTables {
		if !problemgen.ValidTable(n) {
			return fmt.Errorf("default_tables: %d is outside %d-%d", n, problemgen.MinTable, problemgen.MaxTable)
		}
	}
	return nil
}
