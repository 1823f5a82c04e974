package utils

import (
	"fmt"
	"os"
)

// EnsurePrivateDir creates dir and any missing parents with mode 0700.
// An existing directory is left as it is.
func EnsurePrivateDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%s exists and is not a directory", dir)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("error checking directory %s: %w", dir, err)
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
