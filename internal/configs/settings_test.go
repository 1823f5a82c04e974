package configs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewSettingsUsesXDGDataHome(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)

	settings, err := NewSettings()
	if err != nil {
		t.Fatalf("NewSettings failed: %v", err)
	}

	expected := filepath.Join(dataHome, "lockbox", "secrets.sqlite3")
	if settings.DefaultDatabasePath != expected {
		t.Errorf("Expected %s, got %s", expected, settings.DefaultDatabasePath)
	}

	if filepath.Base(settings.ConfigPath) != "config.toml" {
		t.Errorf("Expected config.toml, got %s", settings.ConfigPath)
	}

	if filepath.Base(settings.ConfigDir) != "lockbox" {
		t.Errorf("Expected config dir named lockbox, got %s", settings.ConfigDir)
	}
}

func TestNewSettingsFallsBackToHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("HOME", home)

	settings, err := NewSettings()
	if err != nil {
		t.Fatalf("NewSettings failed: %v", err)
	}

	expected := filepath.Join(home, ".local", "share", "lockbox")
	if settings.DataDir != expected {
		t.Errorf("Expected %s, got %s", expected, settings.DataDir)
	}
}

func TestResolveDatabasePathPrecedence(t *testing.T) {
	settings := &Settings{DefaultDatabasePath: "/default/secrets.sqlite3"}
	config := &Config{Database: "/config/secrets.sqlite3"}

	tests := []struct {
		name     string
		flag     string
		env      string
		config   *Config
		expected string
	}{
		{"flag wins", "/flag/db", "/env/db", config, "/flag/db"},
		{"env beats config", "", "/env/db", config, "/env/db"},
		{"config beats default", "", "", config, "/config/secrets.sqlite3"},
		{"default", "", "", &Config{}, "/default/secrets.sqlite3"},
		{"nil config", "", "", nil, "/default/secrets.sqlite3"},
		{"blank flag ignored", "   ", "", config, "/config/secrets.sqlite3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(DatabaseEnvVar, tt.env)

			got, err := ResolveDatabasePath(tt.flag, tt.config, settings)
			if err != nil {
				t.Fatalf("ResolveDatabasePath failed: %v", err)
			}

			if got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestResolveDatabasePathExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(DatabaseEnvVar, "")

	got, err := ResolveDatabasePath("~/vault/secrets.sqlite3", nil, nil)
	if err != nil {
		t.Fatalf("ResolveDatabasePath failed: %v", err)
	}

	expected := filepath.Join(home, "vault", "secrets.sqlite3")
	if got != expected {
		t.Errorf("Expected %s, got %s", expected, got)
	}
}

func TestAuditLogPath(t *testing.T) {
	got := AuditLogPath(filepath.Join(string(os.PathSeparator)+"data", "secrets.sqlite3"))
	expected := filepath.Join(string(os.PathSeparator)+"data", "audit.jsonl")
	if got != expected {
		t.Errorf("Expected %s, got %s", expected, got)
	}
}
