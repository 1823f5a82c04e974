package cmd

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	logger "github.com/PolarWolf314/lockbox/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// setupTestEnvironment points every lockbox location at a temporary
// directory and returns the database path to pass with --database.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tempDir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(tempDir, "data"))
	t.Setenv("LOCKBOX_DATABASE", "")
	t.Setenv("NO_COLOR", "1")

	originalPrompt := promptPassword
	t.Cleanup(func() {
		promptPassword = originalPrompt
		ResetGlobalState()
		resetFlags(RootCmd)
		RootCmd.SetIn(nil)
		RootCmd.SetOut(nil)
		RootCmd.SetErr(nil)
	})

	return filepath.Join(tempDir, "vault", "lockbox.db")
}

// usePasswords makes every password prompt answer with the next value.
func usePasswords(t *testing.T, answers ...string) {
	t.Helper()
	promptPassword = func(prompt string, fromTTY bool) ([]byte, error) {
		if len(answers) == 0 {
			t.Fatalf("unexpected prompt %q", prompt)
		}
		next := answers[0]
		answers = answers[1:]
		return []byte(next), nil
	}
}

// resetFlags restores every flag of c and its subcommands to its default.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	outputChan := make(chan string, 2)

	drain := func(r io.Reader) {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, r); err != nil {
			log.Fatalf("Failed to capture output: %s", err)
		}
		outputChan <- buf.String()
	}
	go drain(stdoutReader)
	go drain(stderrReader)

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}

// runCLI executes the root command with args and stdin, returning
// everything written to stdout and stderr.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	ResetGlobalState()
	resetFlags(RootCmd)
	Logger = logger.Logger{}

	var out bytes.Buffer
	RootCmd.SetIn(strings.NewReader(stdin))
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetArgs(args)

	captured, err := captureOutput(func() error {
		return RootCmd.Execute()
	})
	return out.String() + captured, err
}
