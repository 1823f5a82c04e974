package secrets

import (
	"crypto/rand"
	"fmt"
	"io"
	"time"

	kerrors "github.com/PolarWolf314/lockbox/internal/errors"
	"github.com/PolarWolf314/lockbox/internal/secure"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	// NonceLen is the length of the per-item XChaCha20-Poly1305 nonce.
	NonceLen = chacha20poly1305.NonceSizeX

	// TagLen is the length of the authentication tag appended to ciphertext.
	TagLen = chacha20poly1305.Overhead
)

// Nonce is a per-item AEAD nonce.
type Nonce [NonceLen]byte

// EncryptionInput is everything Encrypt needs apart from the password.
type EncryptionInput struct {
	PlaintextSecret []byte
	Label           string
	Account         string
	LastModifiedAt  time.Time
}

// EncryptionOutput carries the ciphertext together with the salt and nonce
// that were generated for it.
type EncryptionOutput struct {
	// EncryptedSecret is the padded secret, encrypted, with the tag appended.
	EncryptedSecret []byte
	KDFSalt         Salt
	AuthNonce       Nonce
}

// DecryptionInput is everything Decrypt needs apart from the password.
// Label, Account and LastModifiedAt must be exactly what was encrypted.
type DecryptionInput struct {
	EncryptedSecret []byte
	KDFSalt         Salt
	AuthNonce       Nonce
	Label           string
	Account         string
	LastModifiedAt  time.Time
}

// Pipeline encrypts and decrypts items. The zero value is not usable; use
// NewPipeline or the package-level Encrypt and Decrypt.
type Pipeline struct {
	random io.Reader
}

// NewPipeline returns a pipeline drawing salts and nonces from crypto/rand.
func NewPipeline() *Pipeline {
	return &Pipeline{random: rand.Reader}
}

var defaultPipeline = NewPipeline()

// Encrypt encrypts in with the default pipeline.
func Encrypt(in EncryptionInput, password []byte) (*EncryptionOutput, error) {
	return defaultPipeline.Encrypt(in, password)
}

// Decrypt decrypts in with the default pipeline.
func Decrypt(in DecryptionInput, password []byte) (*secure.Buffer, error) {
	return defaultPipeline.Decrypt(in, password)
}

// Encrypt pads, encrypts and authenticates the secret, and authenticates the
// label, account and timestamp, under a key derived from password and a fresh
// salt.
func (p *Pipeline) Encrypt(in EncryptionInput, password []byte) (*EncryptionOutput, error) {
	padded, err := Pad(in.PlaintextSecret)
	if err != nil {
		return nil, err
	}
	defer padded.Destroy()

	out := &EncryptionOutput{}
	if _, err := io.ReadFull(p.random, out.KDFSalt[:]); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	if _, err := io.ReadFull(p.random, out.AuthNonce[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	aad, err := BuildAAD(in.Label, in.Account, in.LastModifiedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to build associated data: %w", err)
	}

	key, err := DeriveKey(password, out.KDFSalt)
	if err != nil {
		return nil, err
	}
	defer key.Destroy()

	aead, err := chacha20poly1305.NewX(key.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	out.EncryptedSecret = aead.Seal(nil, out.AuthNonce[:], padded.Bytes(), aad)

	return out, nil
}

// Decrypt verifies and decrypts a secret. A wrong password, altered label,
// account or timestamp, and altered ciphertext all return
// ErrAuthenticationFailed. The caller must Destroy the returned buffer.
func (p *Pipeline) Decrypt(in DecryptionInput, password []byte) (*secure.Buffer, error) {
	aad, err := BuildAAD(in.Label, in.Account, in.LastModifiedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to build associated data: %w", err)
	}

	key, err := DeriveKey(password, in.KDFSalt)
	if err != nil {
		return nil, err
	}
	defer key.Destroy()

	aead, err := chacha20poly1305.NewX(key.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	if len(in.EncryptedSecret) < aead.Overhead() {
		return nil, kerrors.ErrAuthenticationFailed
	}

	var plaintext *secure.Buffer
	err = secure.WithSensitiveBuffer(len(in.EncryptedSecret)-aead.Overhead(), func(padded []byte) error {
		// Open writes into the locked buffer; its capacity already fits the result.
		if _, err := aead.Open(padded[:0], in.AuthNonce[:], in.EncryptedSecret, aad); err != nil {
			return kerrors.ErrAuthenticationFailed
		}

		n, err := UnpaddedLen(padded)
		if err != nil {
			return err
		}

		plaintext = secure.NewBuffer(n)
		copy(plaintext.Bytes(), padded[:n])
		return nil
	})
	if err != nil {
		return nil, err
	}

	return plaintext, nil
}
