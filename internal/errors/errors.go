package errors

import "errors"

// Input errors indicate the user has to re-enter something. They are raised
// before the store or the crypto engine is touched.
var (
	// ErrLabelRequired indicates the label is missing or spans multiple lines.
	ErrLabelRequired = errors.New("label is required and must be a single line")

	// ErrSecretRequired indicates the secret is empty.
	ErrSecretRequired = errors.New("secret is required")

	// ErrPasswordRequired indicates the encryption password is missing or spans multiple lines.
	ErrPasswordRequired = errors.New("encryption password is required and must be a single line")

	// ErrAccountSingleLine indicates the account name spans multiple lines.
	ErrAccountSingleLine = errors.New("account name must be a single line if specified")

	// ErrPasswordMismatch indicates the password confirmation did not match.
	ErrPasswordMismatch = errors.New("encryption passwords do not match")
)

// Cryptographic errors indicate failures while deriving keys or opening secrets.
var (
	// ErrAuthenticationFailed indicates the secret could not be decrypted and verified.
	ErrAuthenticationFailed = errors.New("wrong password or corrupted data")

	// ErrInvalidPadding indicates a verified secret carried malformed padding.
	ErrInvalidPadding = errors.New("invalid padding in decrypted secret")

	// ErrHashing indicates the key derivation function rejected its input.
	ErrHashing = errors.New("password hashing failed")
)

// Store errors indicate the vault file refused or could not serve a request.
var (
	// ErrItemNotFound indicates no item has the requested uid.
	ErrItemNotFound = errors.New("item not found")

	// ErrConstraintViolation indicates an insert collided with a uniqueness or schema constraint.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrSchemaVersionMismatch indicates the vault was written by a newer lockbox.
	ErrSchemaVersionMismatch = errors.New("vault schema version is newer than supported")

	// ErrCorruptItem indicates a stored row does not have the expected shape.
	ErrCorruptItem = errors.New("stored item is corrupted")
)

// Environment errors indicate lockbox cannot find or create its files.
var (
	// ErrDataDirUnavailable indicates no data directory could be determined.
	ErrDataDirUnavailable = errors.New("cannot determine data directory")

	// ErrInvalidConfig indicates the config file is malformed.
	ErrInvalidConfig = errors.New("config file is invalid")

	// ErrUnknownConfigKey indicates a config key that lockbox does not define.
	ErrUnknownConfigKey = errors.New("unknown config key")

	// ErrNoAuditLog indicates the audit log has not been written yet.
	ErrNoAuditLog = errors.New("audit log not found")

	// ErrNotTerminal indicates an interactive prompt was needed without a terminal.
	ErrNotTerminal = errors.New("not a terminal")
)

// Command errors indicate malformed arguments or flags.
var (
	// ErrInvalidUID indicates an item id argument is not a positive integer.
	ErrInvalidUID = errors.New("item id must be a positive integer")

	// ErrInvalidDateFormat indicates a date flag is not YYYY-MM-DD.
	ErrInvalidDateFormat = errors.New("invalid date format")

	// ErrConfirmationRequired indicates a destructive command was not confirmed.
	ErrConfirmationRequired = errors.New("confirmation required")
)

// IsInputValidation reports whether err is one of the recoverable input errors.
func IsInputValidation(err error) bool {
	return errors.Is(err, ErrLabelRequired) ||
		errors.Is(err, ErrSecretRequired) ||
		errors.Is(err, ErrPasswordRequired) ||
		errors.Is(err, ErrAccountSingleLine) ||
		errors.Is(err, ErrPasswordMismatch)
}
