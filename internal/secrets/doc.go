// Package secrets provides the encryption pipeline for lockbox items.
//
// Every item is encrypted under its own key, derived from a password that
// the user supplies on each encrypt and decrypt call. Nothing in this
// package stores or caches that password.
//
// # Encryption Architecture
//
// Encrypting an item runs four steps:
//
//  1. The plaintext is padded to a multiple of 256 bytes (ISO/IEC 7816-4)
//     so ciphertext length only reveals the secret's size bucket
//  2. A fresh random 16-byte salt and 24-byte nonce are drawn
//  3. Argon2id derives a 256-bit key from the password and the salt
//  4. XChaCha20-Poly1305 seals the padded plaintext, authenticating the
//     item's label, account and modification time as associated data
//
// The salt and nonce are generated inside Encrypt and returned with the
// ciphertext. Callers cannot choose them.
//
// # Tamper Detection
//
// Label, account and timestamp are stored in plaintext so they can be
// listed and searched without a password. Because they are bound as
// associated data, editing any of them in the database makes decryption
// fail exactly like a wrong password does. All such failures surface as
// the single ErrAuthenticationFailed.
//
// # Key Derivation Parameters
//
// Argon2id runs with 19 MiB of memory, 2 passes and 1 lane. These values
// are not stored per item, so changing them makes every existing item
// undecryptable.
//
// # Memory Hygiene
//
// Derived keys and padded plaintext live in locked buffers from package
// secure and are wiped before Encrypt or Decrypt returns. Decrypt hands
// the plaintext back as a *secure.Buffer that the caller must Destroy.
package secrets
