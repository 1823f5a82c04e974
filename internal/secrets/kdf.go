package secrets

import (
	"fmt"
	"math"

	kerrors "github.com/PolarWolf314/lockbox/internal/errors"
	"github.com/PolarWolf314/lockbox/internal/secure"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// Argon2id parameters. Encryption and decryption must agree on them.
const (
	// Argon2Memory is the memory cost in KiB (19 MiB).
	Argon2Memory = 19 * 1024

	// Argon2Time is the number of passes over the memory.
	Argon2Time = 2

	// Argon2Threads is the degree of parallelism.
	Argon2Threads = 1

	// KeyLen is the length of derived keys, matching the AEAD key size.
	KeyLen = chacha20poly1305.KeySize

	// SaltLen is the length of the per-item KDF salt.
	SaltLen = 16

	// MaxPasswordLen is the longest password Argon2 accepts.
	MaxPasswordLen = math.MaxUint32
)

// Salt is a per-item KDF salt.
type Salt [SaltLen]byte

// DeriveKey derives a KeyLen-byte key from password and salt using Argon2id.
// The result is deterministic for identical inputs. The caller must Destroy
// the returned buffer.
func DeriveKey(password []byte, salt Salt) (*secure.Buffer, error) {
	if uint64(len(password)) > MaxPasswordLen {
		return nil, fmt.Errorf("%w: password is %d bytes long", kerrors.ErrHashing, len(password))
	}

	key := argon2.IDKey(password, salt[:], Argon2Time, Argon2Memory, Argon2Threads, KeyLen)

	// NewBufferFromBytes wipes key after copying it into locked memory.
	return secure.NewBufferFromBytes(key), nil
}
