package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	kerrors "github.com/PolarWolf314/lockbox/internal/errors"
	"github.com/PolarWolf314/lockbox/internal/secure"
	"github.com/PolarWolf314/lockbox/internal/store"
	"github.com/PolarWolf314/lockbox/internal/ui"
	"github.com/PolarWolf314/lockbox/internal/utils"
	"github.com/PolarWolf314/lockbox/internal/workflows"
	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

// promptPassword reads a hidden line. fromTTY reads /dev/tty instead of
// stdin, for when stdin carries the secret. Tests replace it.
var promptPassword = func(prompt string, fromTTY bool) ([]byte, error) {
	if fromTTY {
		return utils.ReadPasswordFromTTY(prompt)
	}
	return utils.ReadPassword(prompt)
}

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message

	// Ignore color errors - continue without colored spinner if it fails.
	_ = s.Color("cyan")

	quiet := !verbose && !debug
	if quiet {
		s.Start()
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("%s", message)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stderr)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// openSession opens the database selected by --database, $LOCKBOX_DATABASE,
// the config file or the default location.
func openSession(cmd *cobra.Command) (*workflows.Session, error) {
	return workflows.OpenSession(cmd.Context(), workflows.SessionOptions{
		DatabasePath: databasePath,
		Log:          Logger,
	})
}

// parseUID parses an item id argument.
func parseUID(arg string) (int64, error) {
	uid, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(arg), "#"), 10, 64)
	if err != nil || uid < 1 {
		return 0, fmt.Errorf("%w: %q", kerrors.ErrInvalidUID, arg)
	}
	return uid, nil
}

// readSecretFromStdin reads a piped secret from the command's input.
func readSecretFromStdin(cmd *cobra.Command) (*secure.Buffer, error) {
	if cmd.InOrStdin() == os.Stdin {
		return utils.ReadStdin()
	}
	return utils.ReadSecret(cmd.InOrStdin())
}

// confirm asks a yes/no question on stderr and reads the answer from in.
func confirm(in io.Reader, question string) bool {
	fmt.Fprint(os.Stderr, question+" [y/N] ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// describeItem renders an item as #uid 'label' (account).
func describeItem(item store.DisplayItem) string {
	s := ui.UID.Sprint(item.UID) + " " + ui.Label.Sprint(ui.SingleLine(item.Label))
	if item.Account != "" {
		s += " " + ui.Muted.Sprint(ui.SingleLine(item.Account))
	}
	return s
}

// formatSessionError formats failures to open the database. ok is false if
// err did not come from opening the database.
func formatSessionError(err error) (string, bool) {
	switch {
	case errors.Is(err, kerrors.ErrSchemaVersionMismatch):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Upgrade lockbox to open this database", true

	case errors.Is(err, kerrors.ErrInvalidConfig):
		return ui.Error.Sprint("✗") + " " + err.Error(), true

	case errors.Is(err, kerrors.ErrDataDirUnavailable):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Pass " + ui.Flag.Sprint("--database") + " to choose a location", true

	default:
		return "", false
	}
}

// formatItemError formats errors shared by commands that address an item by uid.
func formatItemError(err error, uidArg string) (string, bool) {
	switch {
	case errors.Is(err, kerrors.ErrInvalidUID):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Run " + ui.Command.Sprint("lockbox list") + " to see item ids", true

	case errors.Is(err, kerrors.ErrItemNotFound):
		return ui.Error.Sprint("✗") + " No item with id " + ui.UID.Sprint(strings.TrimPrefix(uidArg, "#")) + "\n" +
			ui.Info.Sprint("→") + " Run " + ui.Command.Sprint("lockbox list") + " to see item ids", true

	default:
		return formatSessionError(err)
	}
}
