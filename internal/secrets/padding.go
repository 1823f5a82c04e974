package secrets

import (
	"fmt"

	kerrors "github.com/PolarWolf314/lockbox/internal/errors"
	"github.com/PolarWolf314/lockbox/internal/secure"
)

const (
	// PaddingBlockSize is the granularity padded plaintext is rounded up to.
	PaddingBlockSize = 256

	paddingMarker = 0x80
)

// PaddedLen returns the padded length for an n-byte plaintext. A full block
// of padding is added when n is already a multiple of the block size.
func PaddedLen(n int) int {
	return (n/PaddingBlockSize + 1) * PaddingBlockSize
}

// Pad returns plaintext padded to PaddedLen(len(plaintext)). The buffer is
// allocated once at its final size. The caller must Destroy it.
func Pad(plaintext []byte) (*secure.Buffer, error) {
	padded := secure.NewBuffer(PaddedLen(len(plaintext)))

	copy(padded.Bytes(), plaintext)
	if err := PadInPlace(padded.Bytes(), len(plaintext)); err != nil {
		padded.Destroy()
		return nil, err
	}

	return padded, nil
}

// PadInPlace pads buf, whose first n bytes hold the plaintext, by writing the
// 0x80 marker at n and zeroing the rest.
func PadInPlace(buf []byte, n int) error {
	if n < 0 || n >= len(buf) || len(buf) != PaddedLen(n) {
		return fmt.Errorf("cannot pad %d bytes into a %d-byte buffer", n, len(buf))
	}

	buf[n] = paddingMarker
	clear(buf[n+1:])

	return nil
}

// UnpaddedLen returns the length of the plaintext held in a padded buffer.
// The buffer must be a non-empty multiple of the block size ending in a 0x80
// marker followed only by zeros, with at most one block of padding.
func UnpaddedLen(buf []byte) (int, error) {
	if len(buf) == 0 || len(buf)%PaddingBlockSize != 0 {
		return 0, fmt.Errorf("%w: length %d is not a positive multiple of %d",
			kerrors.ErrInvalidPadding, len(buf), PaddingBlockSize)
	}

	for i := len(buf) - 1; i >= 0 && len(buf)-i <= PaddingBlockSize; i-- {
		switch buf[i] {
		case 0x00:
			continue
		case paddingMarker:
			return i, nil
		default:
			return 0, kerrors.ErrInvalidPadding
		}
	}

	return 0, kerrors.ErrInvalidPadding
}
