package store

import (
	"errors"
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/lockbox/internal/errors"
	"github.com/mattn/go-sqlite3"
)

// ConstraintKind names the kind of schema rule an insert broke.
type ConstraintKind string

const (
	ConstraintUnique  ConstraintKind = "unique"
	ConstraintCheck   ConstraintKind = "check"
	ConstraintNotNull ConstraintKind = "not null"
)

// ConstraintError reports a write rejected by a schema constraint. It
// matches kerrors.ErrConstraintViolation under errors.Is.
type ConstraintError struct {
	Kind ConstraintKind
	// Column is the item column the constraint guards, e.g. "label".
	Column string
	Cause  error
}

func (e *ConstraintError) Error() string {
	if e.Kind == ConstraintUnique && e.Column == "label" {
		return fmt.Sprintf("%s: an item with this label already exists", kerrors.ErrConstraintViolation)
	}
	return fmt.Sprintf("%s: %s constraint on %s", kerrors.ErrConstraintViolation, e.Kind, e.Column)
}

func (e *ConstraintError) Is(target error) bool {
	return target == kerrors.ErrConstraintViolation
}

func (e *ConstraintError) Unwrap() error {
	return e.Cause
}

// SchemaVersionError reports a database recorded by a newer build.
type SchemaVersionError struct {
	Stored    int64
	Supported int64
}

func (e *SchemaVersionError) Error() string {
	return fmt.Sprintf("%s: database is at version %d, this build supports up to %d",
		kerrors.ErrSchemaVersionMismatch, e.Stored, e.Supported)
}

func (e *SchemaVersionError) Is(target error) bool {
	return target == kerrors.ErrSchemaVersionMismatch
}

// IsConstraintViolation checks if an error was caused by a schema constraint.
func IsConstraintViolation(err error) bool {
	return errors.Is(err, kerrors.ErrConstraintViolation)
}

// IsNotFound checks if an error is a missing item error.
func IsNotFound(err error) bool {
	return errors.Is(err, kerrors.ErrItemNotFound)
}

// IsSchemaVersionMismatch checks if an error came from the schema version gate.
func IsSchemaVersionMismatch(err error) bool {
	return errors.Is(err, kerrors.ErrSchemaVersionMismatch)
}

// checkConstraintColumns maps named CHECK constraints in schema.sql to the
// column they guard.
var checkConstraintColumns = map[string]string{
	"label_nonempty":          "label",
	"encrypted_secret_length": "encrypted_secret",
	"kdf_salt_length":         "kdf_salt",
	"auth_nonce_length":       "auth_nonce",
}

// asConstraintError converts a SQLite constraint failure into a
// *ConstraintError. Any other error is returned unchanged.
func asConstraintError(err error) error {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) || sqliteErr.Code != sqlite3.ErrConstraint {
		return err
	}

	// Messages look like "UNIQUE constraint failed: item.label" or
	// "CHECK constraint failed: kdf_salt_length".
	_, subject, _ := strings.Cut(sqliteErr.Error(), "failed: ")
	subject = strings.TrimSpace(subject)

	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique:
		return &ConstraintError{Kind: ConstraintUnique, Column: columnName(subject), Cause: err}
	case sqlite3.ErrConstraintCheck:
		column, ok := checkConstraintColumns[subject]
		if !ok {
			column = subject
		}
		return &ConstraintError{Kind: ConstraintCheck, Column: column, Cause: err}
	case sqlite3.ErrConstraintNotNull:
		return &ConstraintError{Kind: ConstraintNotNull, Column: columnName(subject), Cause: err}
	default:
		return &ConstraintError{Kind: ConstraintKind(strings.ToLower(sqliteErr.ExtendedCode.Error())), Column: subject, Cause: err}
	}
}

func columnName(qualified string) string {
	// Composite keys are reported as "item.a, item.b"; the first is enough.
	first, _, _ := strings.Cut(qualified, ",")
	_, column, found := strings.Cut(first, ".")
	if !found {
		return first
	}
	return column
}
