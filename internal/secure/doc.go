// Package secure provides short-lived containers for sensitive bytes.
//
// Passwords, derived keys and plaintext secrets must never outlive the
// operation that needs them. Buffers returned by this package live in
// memory that is locked against swapping and overwritten with zeros when
// released.
//
// # Scoped Buffers
//
// Prefer WithSensitiveBuffer when the bytes are only needed inside one
// function. The buffer is wiped on every exit path, including early error
// returns and panics:
//
//	err := secure.WithSensitiveBuffer(32, func(key []byte) error {
//	    return deriveInto(key)
//	})
//
// # Owned Buffers
//
// When sensitive bytes have to be handed to a caller (a decrypted secret,
// for example), return a *Buffer. The receiver owns it and must call
// Destroy once done:
//
//	secret, err := secrets.Decrypt(in, password)
//	if err != nil {
//	    return err
//	}
//	defer secret.Destroy()
//
// Plain slices that cannot be moved into a Buffer (such as a password read
// from the terminal) are cleared with Wipe.
package secure
