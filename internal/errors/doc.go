// Package errors provides typed error values for lockbox.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Input errors: the add form was incomplete or malformed (ErrLabelRequired)
//   - Crypto errors: decryption or key derivation failed (ErrAuthenticationFailed)
//   - Store errors: the vault file rejected an operation (ErrConstraintViolation)
//
// ErrAuthenticationFailed covers a wrong password, edited label,
// account or timestamp columns, and corrupted ciphertext alike. Never split it
// into finer-grained errors.
//
// # Usage
//
// Return errors from internal packages:
//
//	if label == "" {
//	    return nil, errors.ErrLabelRequired
//	}
//
// Handle errors in the CLI layer:
//
//	secret, err := workflows.Reveal(ctx, vault, opts)
//	if errors.Is(err, kerrors.ErrAuthenticationFailed) {
//	    // Show "wrong password or corrupted data"
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("loading item %d: %w", uid, errors.ErrItemNotFound)
package errors
