package store

import (
	"errors"
	"fmt"
	"testing"

	kerrors "github.com/PolarWolf314/lockbox/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestConstraintErrorMatching(t *testing.T) {
	cause := errors.New("driver error")
	err := fmt.Errorf("insert: %w", &ConstraintError{Kind: ConstraintUnique, Column: "label", Cause: cause})

	assert.ErrorIs(t, err, kerrors.ErrConstraintViolation)
	assert.ErrorIs(t, err, cause)
	assert.False(t, errors.Is(err, kerrors.ErrItemNotFound))
	assert.Contains(t, err.Error(), "label already exists")
}

func TestSchemaVersionErrorMatching(t *testing.T) {
	err := error(&SchemaVersionError{Stored: 3, Supported: 1})

	assert.ErrorIs(t, err, kerrors.ErrSchemaVersionMismatch)
	assert.Contains(t, err.Error(), "version 3")
}

func TestAsConstraintErrorPassesThroughOtherErrors(t *testing.T) {
	boom := errors.New("disk full")
	assert.Same(t, boom, asConstraintError(boom))
}

func TestColumnName(t *testing.T) {
	assert.Equal(t, "label", columnName("item.label"))
	assert.Equal(t, "kdf_salt", columnName("item.kdf_salt, item.auth_nonce"))
	assert.Equal(t, "bare", columnName("bare"))
}
