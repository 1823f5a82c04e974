package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/lockbox/internal/audit"
	kerrors "github.com/PolarWolf314/lockbox/internal/errors"
	"github.com/PolarWolf314/lockbox/internal/store"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

func addItem(t *testing.T, db, label, account, secret, password string) {
	t.Helper()
	usePasswords(t, password, password)
	args := []string{"add", label, "--stdin", "--database", db}
	if account != "" {
		args = append(args, "--account", account)
	}
	output, err := runCLI(t, secret, args...)
	if err != nil {
		t.Fatalf("add %q failed: %v\nOutput: %s", label, err, output)
	}
	if !strings.Contains(output, "Stored") {
		t.Fatalf("expected success message, got: %s", output)
	}
}

func TestAddThenCopyToStdout(t *testing.T) {
	db := setupTestEnvironment(t)
	addItem(t, db, "email", "bob@example.com", "hunter2\n", "correct horse")

	usePasswords(t, "correct horse")
	output, err := runCLI(t, "", "copy", "1", "--stdout", "--database", db)
	if err != nil {
		t.Fatalf("copy failed: %v\nOutput: %s", err, output)
	}
	if output != "hunter2" {
		t.Errorf("expected the secret without its trailing newline, got %q", output)
	}
}

func TestAddKeepsMultiLineSecrets(t *testing.T) {
	db := setupTestEnvironment(t)
	secret := "-----BEGIN KEY-----\nabc\ndef\n-----END KEY-----"
	addItem(t, db, "deploy-key", "", secret+"\n", "pw")

	usePasswords(t, "pw")
	output, err := runCLI(t, "", "copy", "#1", "--stdout", "--database", db)
	if err != nil {
		t.Fatalf("copy failed: %v", err)
	}
	if output != secret {
		t.Errorf("expected %q, got %q", secret, output)
	}
}

func TestAddRejectsMismatchedPasswords(t *testing.T) {
	db := setupTestEnvironment(t)

	usePasswords(t, "one", "two")
	output, err := runCLI(t, "s3cret", "add", "email", "--stdin", "--database", db)
	if !errors.Is(err, kerrors.ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
	if !strings.Contains(output, "do not match") {
		t.Errorf("expected mismatch message, got: %s", output)
	}

	output, err = runCLI(t, "", "list", "--database", db)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(output, "No items stored yet") {
		t.Errorf("expected empty vault, got: %s", output)
	}
}

func TestAddRejectsDuplicateLabel(t *testing.T) {
	db := setupTestEnvironment(t)
	addItem(t, db, "email", "", "first", "pw")

	usePasswords(t, "pw", "pw")
	output, err := runCLI(t, "second", "add", "email", "--stdin", "--database", db)
	if !store.IsConstraintViolation(err) {
		t.Fatalf("expected constraint violation, got %v", err)
	}
	if !strings.Contains(output, "already exists") {
		t.Errorf("expected duplicate label message, got: %s", output)
	}
}

func TestAddRejectsEmptySecret(t *testing.T) {
	db := setupTestEnvironment(t)

	usePasswords(t, "pw", "pw")
	_, err := runCLI(t, "\n", "add", "email", "--stdin", "--database", db)
	if !errors.Is(err, kerrors.ErrSecretRequired) {
		t.Fatalf("expected ErrSecretRequired, got %v", err)
	}
}

func TestCopyWrongPassword(t *testing.T) {
	db := setupTestEnvironment(t)
	addItem(t, db, "email", "", "hunter2", "right")

	usePasswords(t, "wrong")
	output, err := runCLI(t, "", "copy", "1", "--stdout", "--database", db)
	if !errors.Is(err, kerrors.ErrAuthenticationFailed) {
		t.Fatalf("expected ErrAuthenticationFailed, got %v", err)
	}
	if strings.Contains(output, "hunter2") {
		t.Errorf("secret leaked on failure: %s", output)
	}
	if !strings.Contains(output, "Wrong password or corrupted data") {
		t.Errorf("expected generic failure message, got: %s", output)
	}
}

func TestCopyUnknownAndInvalidUID(t *testing.T) {
	db := setupTestEnvironment(t)

	usePasswords(t, "pw")
	output, err := runCLI(t, "", "copy", "42", "--stdout", "--database", db)
	if !errors.Is(err, kerrors.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
	if !strings.Contains(output, "No item with id #42") {
		t.Errorf("unexpected output: %s", output)
	}

	_, err = runCLI(t, "", "copy", "abc", "--database", db)
	if !errors.Is(err, kerrors.ErrInvalidUID) {
		t.Fatalf("expected ErrInvalidUID, got %v", err)
	}
}

func TestListFiltersAndHidesSecrets(t *testing.T) {
	db := setupTestEnvironment(t)
	addItem(t, db, "email", "bob@example.com", "hunter2", "pw")
	addItem(t, db, "bank", "", "0000", "pw")

	output, err := runCLI(t, "", "list", "--database", db)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, want := range []string{"UID", "LABEL", "email", "bob@example.com", "bank"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output: %s", want, output)
		}
	}
	if strings.Contains(output, "hunter2") || strings.Contains(output, "0000") {
		t.Errorf("list output contains a secret: %s", output)
	}

	output, err = runCLI(t, "", "list", "mail", "--database", db)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(output, "email") || strings.Contains(output, "bank") {
		t.Errorf("unexpected filtered output: %s", output)
	}

	output, err = runCLI(t, "", "list", "MAIL", "--database", db)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(output, "No items match") {
		t.Errorf("expected case-sensitive search, got: %s", output)
	}
}

func TestRemove(t *testing.T) {
	db := setupTestEnvironment(t)
	addItem(t, db, "email", "", "hunter2", "pw")
	addItem(t, db, "bank", "", "0000", "pw")

	output, err := runCLI(t, "n\n", "remove", "1", "--database", db)
	if !errors.Is(err, kerrors.ErrConfirmationRequired) {
		t.Fatalf("expected ErrConfirmationRequired, got %v", err)
	}
	if !strings.Contains(output, "Nothing removed") {
		t.Errorf("unexpected output: %s", output)
	}

	output, err = runCLI(t, "y\n", "remove", "1", "--database", db)
	if err != nil {
		t.Fatalf("remove failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "Removed #1 'email'") {
		t.Errorf("unexpected output: %s", output)
	}

	_, err = runCLI(t, "", "rm", "1", "--yes", "--database", db)
	if !errors.Is(err, kerrors.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}

	addItem(t, db, "email", "", "again", "pw")
	output, err = runCLI(t, "", "list", "--database", db)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) > 1 && fields[1] == "email" && fields[0] != "3" {
			t.Errorf("expected the re-added item to get a fresh id, got: %s", line)
		}
	}
}

func TestInfo(t *testing.T) {
	db := setupTestEnvironment(t)
	addItem(t, db, "email", "", "hunter2", "pw")

	output, err := runCLI(t, "", "info", "--database", db)
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}
	for _, want := range []string{db, "Schema version: 1 (supported: 1)", "Items:          1", "audit.jsonl"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output: %s", want, output)
		}
	}
}

func TestDatabaseFromEnvironment(t *testing.T) {
	db := setupTestEnvironment(t)
	t.Setenv("LOCKBOX_DATABASE", db)

	output, err := runCLI(t, "", "info")
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}
	if !strings.Contains(output, db) {
		t.Errorf("expected %s in output: %s", db, output)
	}
}

func TestLog(t *testing.T) {
	db := setupTestEnvironment(t)

	output, err := runCLI(t, "", "log", "--database", db)
	if err != nil {
		t.Fatalf("log with no entries should not fail: %v", err)
	}
	if !strings.Contains(output, "No audit log found") {
		t.Errorf("unexpected output: %s", output)
	}

	addItem(t, db, "email", "bob@example.com", "hunter2", "pw")
	usePasswords(t, "pw")
	if _, err := runCLI(t, "", "copy", "1", "--stdout", "--database", db); err != nil {
		t.Fatalf("copy failed: %v", err)
	}
	if _, err := runCLI(t, "", "list", "--database", db); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	output, err = runCLI(t, "", "log", "--operation", "add,reveal", "--database", db)
	if err != nil {
		t.Fatalf("log failed: %v", err)
	}
	if !strings.Contains(output, audit.OpAdd) || !strings.Contains(output, audit.OpReveal) || strings.Contains(output, audit.OpList) {
		t.Errorf("unexpected filtered log: %s", output)
	}

	output, err = runCLI(t, "", "log", "--json", "--database", db)
	if err != nil {
		t.Fatalf("log failed: %v", err)
	}
	if strings.Contains(output, "hunter2") || strings.Contains(output, "bob@example.com") {
		t.Errorf("audit log leaked sensitive data: %s", output)
	}

	_, err = runCLI(t, "", "log", "--since", "yesterday", "--database", db)
	if !errors.Is(err, kerrors.ErrInvalidDateFormat) {
		t.Fatalf("expected ErrInvalidDateFormat, got %v", err)
	}
}

func TestNewerSchemaIsRefused(t *testing.T) {
	db := setupTestEnvironment(t)
	addItem(t, db, "email", "", "hunter2", "pw")

	raw, err := sqlx.Open("sqlite3", db)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if _, err := raw.Exec(`UPDATE metadata SET value = value + 1 WHERE key = 'SchemaVersion'`); err != nil {
		t.Fatalf("bumping schema version failed: %v", err)
	}
	raw.Close()

	output, err := runCLI(t, "", "list", "--database", db)
	if !errors.Is(err, kerrors.ErrSchemaVersionMismatch) {
		t.Fatalf("expected ErrSchemaVersionMismatch, got %v", err)
	}
	if !strings.Contains(output, "Upgrade lockbox") {
		t.Errorf("unexpected output: %s", output)
	}
	if _, err := os.Stat(filepath.Dir(db)); err != nil {
		t.Errorf("database directory vanished: %v", err)
	}
}

func TestConfigSetSelectsDatabase(t *testing.T) {
	db := setupTestEnvironment(t)

	output, err := runCLI(t, "", "config", "set", "database", db)
	if err != nil {
		t.Fatalf("config set failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "Set database") {
		t.Errorf("unexpected output: %s", output)
	}

	output, err = runCLI(t, "", "info")
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}
	if !strings.Contains(output, db) {
		t.Errorf("expected configured database %s in output: %s", db, output)
	}

	output, err = runCLI(t, "", "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if !strings.Contains(output, "Using database:  "+db) {
		t.Errorf("unexpected output: %s", output)
	}
}

func TestConfigSetDisablesAudit(t *testing.T) {
	db := setupTestEnvironment(t)

	if _, err := runCLI(t, "", "config", "set", "audit.disabled", "true"); err != nil {
		t.Fatalf("config set failed: %v", err)
	}

	output, err := runCLI(t, "", "info", "--database", db)
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}
	if !strings.Contains(output, "Audit log:      (disabled)") {
		t.Errorf("expected audit log to be disabled: %s", output)
	}
}

func TestConfigSetRejectsBadInput(t *testing.T) {
	setupTestEnvironment(t)

	output, err := runCLI(t, "", "config", "set", "theme", "dark")
	if !errors.Is(err, kerrors.ErrUnknownConfigKey) {
		t.Fatalf("expected ErrUnknownConfigKey, got %v", err)
	}
	if !strings.Contains(output, "lockbox config --help") {
		t.Errorf("unexpected output: %s", output)
	}

	_, err = runCLI(t, "", "config", "set", "audit.disabled", "maybe")
	if !errors.Is(err, kerrors.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestFormatCopyErrorSeparatesCorruption(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	for _, err := range []error{kerrors.ErrInvalidPadding, kerrors.ErrCorruptItem} {
		msg, ok := formatCopyError(err, "5")
		if !ok {
			t.Fatalf("expected %v to be formatted", err)
		}
		if !strings.Contains(msg, "Item #5 is corrupted") || strings.Contains(msg, "Wrong password") {
			t.Errorf("unexpected message for %v: %s", err, msg)
		}
	}

	msg, _ := formatCopyError(kerrors.ErrAuthenticationFailed, "5")
	if strings.Contains(msg, "corrupted in the database") {
		t.Errorf("authentication failure must not claim corruption: %s", msg)
	}
}
