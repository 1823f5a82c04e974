package utils

import (
	"fmt"
	"io"
	"os"

	"github.com/PolarWolf314/lockbox/internal/secure"
)

// ReadStdin reads a secret piped on stdin.
// Returns an error if stdin is a terminal (no piped data) or cannot be read.
func ReadStdin() (*secure.Buffer, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat stdin: %w", err)
	}

	// If ModeCharDevice is set, stdin is connected to a terminal.
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return nil, fmt.Errorf("no data provided on stdin (hint: pipe the secret to this command)")
	}

	return ReadSecret(os.Stdin)
}

// ReadSecret reads all of r into a locked buffer. A single trailing newline,
// as left by echo or a heredoc, is dropped; other whitespace is kept.
func ReadSecret(r io.Reader) (*secure.Buffer, error) {
	buf, err := secure.NewBufferFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read secret: %w", err)
	}

	data := buf.Bytes()
	n := len(data)
	switch {
	case n >= 2 && data[n-2] == '\r' && data[n-1] == '\n':
		n -= 2
	case n >= 1 && data[n-1] == '\n':
		n--
	}

	return buf.Prefix(n), nil
}
