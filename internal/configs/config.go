package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	kerrors "github.com/PolarWolf314/lockbox/internal/errors"
)

type Config struct {
	// Database overrides the default database location.
	Database string      `toml:"database,omitempty"`
	Audit    AuditConfig `toml:"audit"`
}

type AuditConfig struct {
	Disabled bool `toml:"disabled"`
}

// LoadConfig loads the config file at path. A missing file yields the
// default configuration.
func LoadConfig(path string) (*Config, error) {
	config := &Config{}

	undecoded, err := LoadTOML(path, config)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", kerrors.ErrInvalidConfig, path, err)
	}

	if len(undecoded) > 0 {
		sort.Strings(undecoded)
		return nil, fmt.Errorf("%w: %s: unknown keys %s",
			kerrors.ErrInvalidConfig, path, strings.Join(undecoded, ", "))
	}

	return config, nil
}

// SaveConfig writes config to path, creating parent directories.
func SaveConfig(path string, config *Config) error {
	if err := SaveTOML(path, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// ConfigKeys lists the keys accepted by Set, in file order.
var ConfigKeys = []string{"database", "audit.disabled"}

// Set assigns a single key from its string form. An empty database value
// restores the default location.
func (c *Config) Set(key, value string) error {
	switch key {
	case "database":
		c.Database = strings.TrimSpace(value)
	case "audit.disabled":
		disabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: audit.disabled must be true or false, got %q", kerrors.ErrInvalidConfig, value)
		}
		c.Audit.Disabled = disabled
	default:
		return fmt.Errorf("%w: %q (expected one of %s)", kerrors.ErrUnknownConfigKey, key, strings.Join(ConfigKeys, ", "))
	}
	return nil
}
