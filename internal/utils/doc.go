// Package utils provides terminal, input and filesystem helpers shared by
// lockbox commands.
//
// # Terminal Utilities
//
//   - ReadPassword: reads a hidden line from stdin
//   - ReadPasswordFromTTY: reads a hidden line from /dev/tty, for when stdin
//     carries the secret
//   - IsTerminal: reports whether stdin is a terminal
//
// # I/O Utilities
//
//   - ReadStdin / ReadSecret: read a secret from a pipe
//
// # Validation Utilities
//
//   - IsSingleLine, NormalizeField: field rules for labels and accounts
//
// # Filesystem Utilities
//
//   - EnsurePrivateDir: creates a directory readable only by the owner
package utils
