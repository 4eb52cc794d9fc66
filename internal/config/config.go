// Package config resolves runtime settings from flags, the environment, an
// optional .env file and an optional TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the resolved configuration.
type Config struct {
	// DBPath is the SQLite database file.
	DBPath string `env:"HEALTHQUEST_DB"`

	// CatalogPath is a JSON catalog replacing the embedded one. Empty
	// means the embedded catalog.
	CatalogPath string `env:"HEALTHQUEST_CATALOG"`

	// Seed fixes the random source. Zero means a fresh seed per run.
	Seed int64 `env:"HEALTHQUEST_SEED"`

	// ConfigPath is the TOML file that was consulted.
	ConfigPath string `env:"HEALTHQUEST_CONFIG"`
}

// Overrides carries command-line flag values. Zero values are unset.
type Overrides struct {
	DBPath      string
	CatalogPath string
	Seed        int64
}

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Storage StorageConfig `toml:"storage"`
	Content ContentConfig `toml:"content"`
}

// StorageConfig maps storage settings.
type StorageConfig struct {
	DB *string `toml:"db"`
}

// ContentConfig maps catalog and randomness settings.
type ContentConfig struct {
	Catalog *string `toml:"catalog"`
	Seed    *int64  `toml:"seed"`
}

// Load resolves the configuration using .env in the working directory.
func Load(flags Overrides) (*Config, error) {
	return LoadFrom(".env", flags)
}

// LoadFrom resolves the configuration. Flags win over the environment,
// which wins over the TOML file, which wins over defaults. Variables from
// dotenvPath never replace variables already set in the process.
func LoadFrom(dotenvPath string, flags Overrides) (*Config, error) {
	if err := LoadDotEnv(dotenvPath); err != nil {
		return nil, err
	}

	var fromEnv Config
	if err := env.Parse(&fromEnv); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg := &Config{ConfigPath: fromEnv.ConfigPath}
	if cfg.ConfigPath == "" {
		cfg.ConfigPath = DefaultConfigPath()
	}
	file, err := LoadFile(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}

	if file.Storage.DB != nil {
		cfg.DBPath = *file.Storage.DB
	}
	if file.Content.Catalog != nil {
		cfg.CatalogPath = *file.Content.Catalog
	}
	if file.Content.Seed != nil {
		cfg.Seed = *file.Content.Seed
	}

	cfg.apply(Overrides{DBPath: fromEnv.DBPath, CatalogPath: fromEnv.CatalogPath, Seed: fromEnv.Seed})
	cfg.apply(flags)

	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBPath()
	}
	return cfg, nil
}

func (c *Config) apply(o Overrides) {
	if o.DBPath != "" {
		c.DBPath = o.DBPath
	}
	if o.CatalogPath != "" {
		c.CatalogPath = o.CatalogPath
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
}

// LoadDotEnv loads variables from path. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// LoadFile reads a TOML config from the given path. Missing file is not an error.
func LoadFile(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("stat config: %w", err)
	}
	var fc FileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return FileConfig{}, fmt.Errorf("decode config: %w", err)
	}
	return fc, nil
}
