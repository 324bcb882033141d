// Package config resolves server configuration from defaults, an optional
// YAML file and environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// PathEnvVar names the environment variable holding the config file path
const PathEnvVar = "EGGBREAKER_CONFIG"

// Storage backends
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
	StorageNone   = "none"

	LocalMemory = "memory"
	LocalSQLite = "sqlite"
)

// Config is the server configuration
type Config struct {
	Host string `yaml:"host" env:"HOST"`
	Port int    `yaml:"port" env:"PORT"`

	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT"`

	// StorageType selects the remote store: memory, redis, or none
	StorageType   string `yaml:"storage_type" env:"STORAGE_TYPE"`
	RedisURL      string `yaml:"redis_url" env:"REDIS_URL"`
	RedisPoolSize int    `yaml:"redis_pool_size" env:"REDIS_POOL_SIZE"`

	// LocalStorage selects the local store used in demo mode: memory or sqlite
	LocalStorage string `yaml:"local_storage" env:"LOCAL_STORAGE"`
	LocalDBPath  string `yaml:"local_db_path" env:"LOCAL_DB_PATH"`

	SaveDebounce      time.Duration `yaml:"save_debounce" env:"SAVE_DEBOUNCE"`
	SessionDuration   time.Duration `yaml:"session_duration" env:"SESSION_DURATION"`
	MinPasswordLength int           `yaml:"min_password_length" env:"MIN_PASSWORD_LENGTH"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Host:              "",
		Port:              8080,
		LogLevel:          "info",
		LogFormat:         "json",
		StorageType:       StorageMemory,
		RedisPoolSize:     10,
		LocalStorage:      LocalMemory,
		LocalDBPath:       "~/.eggbreaker/local.db",
		SaveDebounce:      time.Second,
		SessionDuration:   24 * time.Hour,
		MinPasswordLength: 6,
	}
}

// Load resolves the configuration. An empty path falls back to
// EGGBREAKER_CONFIG; when neither is set no file is read.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(PathEnvVar)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable
func (c Config) Validate() error {
	var errs []error

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port out of range: %d", c.Port))
	}
	switch c.StorageType {
	case StorageMemory, StorageNone:
	case StorageRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("redis_url required when storage_type is redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("invalid storage_type %q: must be memory, redis or none", c.StorageType))
	}
	switch c.LocalStorage {
	case LocalMemory:
	case LocalSQLite:
		if c.LocalDBPath == "" {
			errs = append(errs, errors.New("local_db_path required when local_storage is sqlite"))
		}
	default:
		errs = append(errs, fmt.Errorf("invalid local_storage %q: must be memory or sqlite", c.LocalStorage))
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("invalid log_format %q: must be json or text", c.LogFormat))
	}
	if c.SaveDebounce <= 0 {
		errs = append(errs, errors.New("save_debounce must be positive"))
	}
	if c.SessionDuration <= 0 {
		errs = append(errs, errors.New("session_duration must be positive"))
	}

	return errors.Join(errs...)
}

// Addr returns the listen address
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
