// Package config resolves runtime settings from the environment, an optional
// .env file and command-line overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/keyring"
	"github.com/julianstephens/daybook/internal/storage"
	"github.com/julianstephens/daybook/internal/storage/postgres"
	"github.com/julianstephens/daybook/internal/utils"
)

type Config struct {
	// Store is a file path, a postgres:// or redis:// URL, "memory:", or
	// one of the keywords "postgres" / "redis" to build the URL from the
	// dedicated settings below.
	Store     string `env:"DAYBOOK_STORE" envDefault:"~/.config/daybook/daybook.db"`
	ConfigDir string `env:"DAYBOOK_CONFIG_DIR"`
	Debug     bool   `env:"DAYBOOK_DEBUG"`
	Timezone  string `env:"DAYBOOK_TIMEZONE" envDefault:"Local"`

	DBConnection string `env:"DAYBOOK_DB_CONNECTION"`

	RedisAddr     string `env:"DAYBOOK_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"DAYBOOK_REDIS_PASSWORD"`
	RedisDB       int    `env:"DAYBOOK_REDIS_DB"`
	RedisPrefix   string `env:"DAYBOOK_REDIS_PREFIX" envDefault:"daybook:"`
}

// Load reads envFile (if present) into the process environment without
// overriding variables that are already set, then parses Config.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Overrides are command-line values; empty fields keep the loaded value.
type Overrides struct {
	Store    string
	Timezone string
	Debug    bool
}

func (c Config) With(o Overrides) Config {
	if o.Store != "" {
		c.Store = o.Store
	}
	if o.Timezone != "" {
		c.Timezone = o.Timezone
	}
	if o.Debug {
		c.Debug = true
	}
	return c
}

// Dir returns the directory for logs, backups and the notifier lockfile.
func (c Config) Dir() (string, error) {
	if c.ConfigDir != "" {
		return ExpandHome(c.ConfigDir)
	}
	path, err := ExpandHome(constants.DefaultConfigPath)
	if err != nil {
		return "", err
	}
	return filepath.Dir(path), nil
}

func (c Config) Location() (*time.Location, error) {
	return utils.LoadLocation(c.Timezone)
}

// StoreOptions resolves Store into storage options, pulling secrets from
// the environment or the OS keyring.
func (c Config) StoreOptions() (storage.Options, error) {
	opts := storage.Options{
		Locator:       c.Store,
		RedisPassword: c.RedisPassword,
		RedisDB:       c.RedisDB,
		RedisPrefix:   c.RedisPrefix,
	}

	switch strings.ToLower(c.Store) {
	case "postgres", "postgresql":
		connStr := c.DBConnection
		if connStr == "" {
			var err error
			connStr, err = keyring.Get(keyring.ConnectionString)
			if err != nil {
				return storage.Options{}, fmt.Errorf("no PostgreSQL connection string: set DAYBOOK_DB_CONNECTION or run 'daybook config set connection-string': %w", err)
			}
		}
		opts.Locator = connStr
	case "redis":
		opts.Locator = "redis://" + c.RedisAddr
	}

	switch storage.KindOf(opts.Locator) {
	case storage.KindPostgres:
		// Inline credentials are only accepted from the environment or keyring
		if opts.Locator == c.Store {
			if err := postgres.ValidateConnString(opts.Locator); err != nil {
				return storage.Options{}, err
			}
		}
	case storage.KindRedis:
		if opts.RedisPassword == "" {
			if pw, err := keyring.Get(keyring.RedisPassword); err == nil {
				opts.RedisPassword = pw
			}
		}
	case storage.KindSQLite, storage.KindJSON:
		path, err := ExpandHome(opts.Locator)
		if err != nil {
			return storage.Options{}, err
		}
		opts.Locator = path
	}

	return opts, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
