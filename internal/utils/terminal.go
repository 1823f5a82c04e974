package utils

import (
	"fmt"
	"os"
	"runtime"

	kerrors "github.com/PolarWolf314/lockbox/internal/errors"
	"golang.org/x/term"
)

// ReadPassword prompts on stderr and reads a line from stdin without
// echoing it. The caller owns the returned slice and should wipe it.
func ReadPassword(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("%w: stdin", kerrors.ErrNotTerminal)
	}

	return readHidden(fd, prompt)
}

// ReadPasswordFromTTY is ReadPassword for /dev/tty (or CON on Windows). It
// is used when stdin is busy carrying the secret itself.
func ReadPasswordFromTTY(prompt string) ([]byte, error) {
	ttyPath := "/dev/tty"
	if runtime.GOOS == "windows" {
		ttyPath = "CON"
	}

	tty, err := os.Open(ttyPath)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open %s: %w", kerrors.ErrNotTerminal, ttyPath, err)
	}
	defer tty.Close()

	fd := int(tty.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrNotTerminal, ttyPath)
	}

	return readHidden(fd, prompt)
}

func readHidden(fd int, prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	line, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr) // Add newline after hidden input

	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	return line, nil
}

// IsTerminal returns true if stdin is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
