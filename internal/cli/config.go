package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Environment variables read by the CLI
const (
	EnvServer    = "EGGBREAKER_SERVER"
	EnvToken     = "EGGBREAKER_TOKEN"
	EnvTokenFile = "EGGBREAKER_TOKEN_FILE"
	EnvOutput    = "EGGBREAKER_OUTPUT"
)

// Config holds CLI settings. Flags override the environment.
type Config struct {
	ServerURL string
	Token     string
	TokenFile string
	Output    string
}

// DefaultConfig reads the EGGBREAKER_* environment over built-in defaults
func DefaultConfig() *Config {
	return &Config{
		ServerURL: envOr(EnvServer, "http://localhost:8080"),
		Token:     os.Getenv(EnvToken),
		TokenFile: envOr(EnvTokenFile, defaultTokenFile()),
		Output:    envOr(EnvOutput, "text"),
	}
}

// Validate checks the output format
func (c *Config) Validate() error {
	switch c.Output {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("invalid output format %q: must be text or json", c.Output)
	}
}

// LoadToken reads the token file unless a token was given explicitly.
// A missing file means no session.
func (c *Config) LoadToken() error {
	if c.Token != "" {
		return nil
	}

	data, err := os.ReadFile(c.TokenFile)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil
	case err != nil:
		return fmt.Errorf("read token file: %w", err)
	}

	c.Token = strings.TrimSpace(string(data))
	return nil
}

// SaveToken remembers the session token for later commands
func (c *Config) SaveToken(token string) error {
	c.Token = token
	if err := os.MkdirAll(filepath.Dir(c.TokenFile), 0o700); err != nil {
		return err
	}
	return os.WriteFile(c.TokenFile, []byte(token), 0o600)
}

// ClearToken forgets the session token
func (c *Config) ClearToken() error {
	c.Token = ""
	err := os.Remove(c.TokenFile)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func defaultTokenFile() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".eggbreaker", "token")
	}
	return filepath.Join(".eggbreaker", "token")
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
