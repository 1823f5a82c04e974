// Package store persists encrypted items in a SQLite database.
//
// The store never sees plaintext. It holds the ciphertext, salt and nonce
// produced by the secrets package alongside the label, account and
// modification time those were bound to.
//
// Integrity rules live in the schema itself: labels, salts and nonces are
// UNIQUE, and CHECK constraints pin the salt, nonce and ciphertext lengths.
// Violations surface as *ConstraintError.
//
// Opening a database runs a single immediate transaction that creates any
// missing tables and records the schema version if absent. A database
// written by a newer build is refused with *SchemaVersionError and left
// untouched.
package store
