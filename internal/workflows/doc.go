// Package workflows provides high-level orchestration for lockbox commands.
//
// Workflows coordinate the store, the encryption pipeline and the audit
// trail to implement complete user-facing features. Each workflow handles
// a single command's business logic, independent of CLI concerns like flag
// parsing, prompts, spinners, and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Prompts for secrets and passwords
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Validating input
//   - Encrypting, storing and decrypting items
//   - Wiping passwords and plaintext on every path
//   - Recording audit trail entries
//
// # Sessions
//
// OpenSession resolves the database path from flags, environment and the
// config file, creates the data directory and opens the store. Every
// workflow takes the resulting *Session.
//
// # Available Workflows
//
//   - Add: validates, encrypts and stores a new item
//   - List: lists items, optionally filtered by a search term
//   - Reveal: decrypts an item's secret
//   - Copy: decrypts an item's secret onto the clipboard
//   - Remove: deletes an item
//   - Info: reports on the open database
//   - Log: reads and filters the audit trail
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package. Use
// errors.Is to check for specific conditions:
//
//	result, err := workflows.Reveal(ctx, session, opts)
//	if errors.Is(err, kerrors.ErrAuthenticationFailed) {
//	    // wrong password or tampered item
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// Key derivation cannot be interrupted, so the context is checked before
// work starts.
package workflows
