package secure

import (
	"io"

	"github.com/awnumar/memguard"
)

// Buffer is a fixed-size region of locked memory holding sensitive bytes.
// A nil or zero-length Buffer is valid and behaves as an empty secret.
type Buffer struct {
	locked *memguard.LockedBuffer
}

// NewBuffer allocates a zero-filled buffer of the given size.
func NewBuffer(size int) *Buffer {
	if size < 1 {
		return &Buffer{}
	}
	return &Buffer{locked: memguard.NewBuffer(size)}
}

// NewBufferFromBytes moves src into a new buffer. src is wiped.
func NewBufferFromBytes(src []byte) *Buffer {
	if len(src) == 0 {
		return &Buffer{}
	}
	return &Buffer{locked: memguard.NewBufferFromBytes(src)}
}

// NewBufferFromReader reads r until EOF straight into locked memory. No
// unlocked copy of the data is made.
func NewBufferFromReader(r io.Reader) (*Buffer, error) {
	locked, err := memguard.NewBufferFromEntireReader(r)
	if err != nil {
		locked.Destroy()
		return nil, err
	}
	if locked.Size() == 0 {
		locked.Destroy()
		return &Buffer{}, nil
	}
	return &Buffer{locked: locked}, nil
}

// Prefix returns a buffer holding the first n bytes of b and destroys b.
// If n covers all of b, b itself is returned.
func (b *Buffer) Prefix(n int) *Buffer {
	if n >= b.Len() {
		return b
	}
	out := NewBuffer(n)
	copy(out.Bytes(), b.Bytes()[:n])
	b.Destroy()
	return out
}

// Bytes returns the buffer contents. The slice aliases locked memory and is
// only valid until Destroy is called.
func (b *Buffer) Bytes() []byte {
	if b == nil || b.locked == nil {
		return nil
	}
	return b.locked.Bytes()
}

// Len returns the number of bytes held.
func (b *Buffer) Len() int {
	return len(b.Bytes())
}

// Destroy wipes and releases the buffer. It is safe to call more than once.
func (b *Buffer) Destroy() {
	if b == nil || b.locked == nil {
		return
	}
	b.locked.Destroy()
}

// WithSensitiveBuffer runs fn with a zero-filled buffer of the given size and
// wipes it when fn returns or panics.
func WithSensitiveBuffer(size int, fn func(buf []byte) error) error {
	buf := NewBuffer(size)
	defer buf.Destroy()

	return fn(buf.Bytes())
}

// Wipe overwrites b with zeros.
func Wipe(b []byte) {
	memguard.WipeBytes(b)
}
