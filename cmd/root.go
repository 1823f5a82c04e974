package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	logger "github.com/PolarWolf314/lockbox/internal/logging"
	"github.com/PolarWolf314/lockbox/internal/ui"
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	debug        bool
	databasePath string
	Logger       logger.Logger

	RootCmd = &cobra.Command{
		Use:   "lockbox",
		Short: "A local, password-per-item secret vault",
		Long: `lockbox keeps secrets in a local SQLite database. Every item is encrypted
with its own password using Argon2id and XChaCha20-Poly1305, and its label,
account and modification time are authenticated alongside it.

Examples:
  lockbox add email --account bob@example.com
  lockbox list mail
  lockbox copy 1
  lockbox copy 1 --stdout | ssh-add -`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing %s with verbose=%t, debug=%t", cmd.CommandPath(), verbose, debug)
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println()
			figure.NewColorFigure("lockbox", "small", "green", true).Print()
			fmt.Println()
			fmt.Println(ui.Info.Sprint("→") + " Run " + ui.Command.Sprint("lockbox --help") + " to see available commands")
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	RootCmd.PersistentFlags().StringVar(&databasePath, "database", "", "path to the secrets database (overrides $LOCKBOX_DATABASE and the config file)")

	RootCmd.AddCommand(addCmd)
	RootCmd.AddCommand(listCmd)
	RootCmd.AddCommand(copyCmd)
	RootCmd.AddCommand(removeCmd)
	RootCmd.AddCommand(infoCmd)
	RootCmd.AddCommand(logCmd)
	RootCmd.AddCommand(configCmd)
}

// reportedError marks an error whose message was already shown to the user.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	return &reportedError{err: err}
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context) int {
	err := RootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var re *reportedError
	if !errors.As(err, &re) {
		fmt.Fprintln(os.Stderr, ui.Error.Sprint("✗")+" "+err.Error())
	}
	return 1
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	databasePath = ""
	resetAddCommandState()
	resetListCommandState()
	resetCopyCommandState()
	resetRemoveCommandState()
	resetLogCommandState()
}
