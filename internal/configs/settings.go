package configs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kerrors "github.com/PolarWolf314/lockbox/internal/errors"
)

const (
	appName = "lockbox"

	// DatabaseEnvVar overrides the configured database path.
	DatabaseEnvVar = "LOCKBOX_DATABASE"

	defaultDatabaseName = "secrets.sqlite3"
	auditLogName        = "audit.jsonl"
)

type Settings struct {
	ConfigDir           string
	ConfigPath          string
	DataDir             string
	DefaultDatabasePath string
}

// NewSettings computes the standard paths from the environment.
func NewSettings() (*Settings, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", kerrors.ErrDataDirUnavailable, err)
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", kerrors.ErrDataDirUnavailable, err)
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	lockboxConfigDir := filepath.Join(configDir, appName)
	lockboxDataDir := filepath.Join(dataDir, appName)

	return &Settings{
		ConfigDir:           lockboxConfigDir,
		ConfigPath:          filepath.Join(lockboxConfigDir, "config.toml"),
		DataDir:             lockboxDataDir,
		DefaultDatabasePath: filepath.Join(lockboxDataDir, defaultDatabaseName),
	}, nil
}

// ResolveDatabasePath returns the database path to use. flagValue wins,
// then $LOCKBOX_DATABASE, then the config file, then the default.
func ResolveDatabasePath(flagValue string, config *Config, settings *Settings) (string, error) {
	candidates := []string{flagValue, os.Getenv(DatabaseEnvVar)}
	if config != nil {
		candidates = append(candidates, config.Database)
	}

	for _, candidate := range candidates {
		if strings.TrimSpace(candidate) == "" {
			continue
		}
		return expandHome(candidate)
	}

	if settings == nil {
		return "", kerrors.ErrDataDirUnavailable
	}
	return settings.DefaultDatabasePath, nil
}

// AuditLogPath returns the audit log kept alongside databasePath.
func AuditLogPath(databasePath string) string {
	return filepath.Join(filepath.Dir(databasePath), auditLogName)
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %w", kerrors.ErrDataDirUnavailable, err)
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~")), nil
}
