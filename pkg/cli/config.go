package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/metaforge-io/metaforge/pkg/constants"
	"github.com/metaforge-io/metaforge/pkg/logger"
)

var configLog = logger.New("cli:config")

// Config holds the connection settings the CLI persists between runs.
// Precedence when building a client is flags > environment > config file.
type Config struct {
	URL      string `yaml:"url,omitempty"`
	Server   string `yaml:"server,omitempty"`
	User     string `yaml:"user,omitempty"`
	Token    string `yaml:"token,omitempty"`
	Password string `yaml:"-"` // never persisted
}

// DefaultConfigPath returns the per-user config file location.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(dir, "metaforge", "config.yml"), nil
}

// LoadConfig reads a config file. A missing file yields an empty config, not
// an error, so first runs work with flags alone.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			configLog.Printf("No config file at %s", path)
			return cfg, nil
		}
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("cannot parse config file %s: %w", path, err)
	}
	configLog.Printf("Loaded config from %s", path)
	return cfg, nil
}

// ApplyEnv overlays METAFORGE_* environment variables onto the config.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(constants.EnvURL); v != "" {
		c.URL = v
	}
	if v := os.Getenv(constants.EnvServer); v != "" {
		c.Server = v
	}
	if v := os.Getenv(constants.EnvUser); v != "" {
		c.User = v
	}
	if v := os.Getenv(constants.EnvToken); v != "" {
		c.Token = v
	}
	if v := os.Getenv(constants.EnvPassword); v != "" {
		c.Password = v
	}
}

// Save writes the config file with owner-only permissions, creating the
// parent directory as needed. The token is the only secret ever persisted.
func (c *Config) Save(path string) error {
	raw, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("cannot encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}
	if err := os.WriteFile(path, raw, 0600); err != nil {
		return fmt.Errorf("cannot write config file %s: %w", path, err)
	}
	configLog.Printf("Saved config to %s", path)
	return nil
}

// Validate checks that enough settings are present to build a client.
func (c *Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("no platform URL configured: pass --url, set %s, or run '%s login'",
			constants.EnvURL, constants.CLIName)
	}
	if c.Server == "" {
		return fmt.Errorf("no view server configured: pass --server or set %s", constants.EnvServer)
	}
	return nil
}
