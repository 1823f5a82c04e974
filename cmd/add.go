package cmd

import (
	"errors"

	kerrors "github.com/PolarWolf314/lockbox/internal/errors"
	"github.com/PolarWolf314/lockbox/internal/secure"
	"github.com/PolarWolf314/lockbox/internal/store"
	"github.com/PolarWolf314/lockbox/internal/ui"
	"github.com/PolarWolf314/lockbox/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	addAccount   string
	addFromStdin bool
)

func resetAddCommandState() {
	addAccount = ""
	addFromStdin = false
}

var addCmd = &cobra.Command{
	Use:   "add <label>",
	Short: "Encrypt and store a new secret",
	Long: `Encrypts a secret under its own password and stores it with the given label.

The secret is read from a hidden prompt, or from stdin with --stdin. Secrets
read from stdin may span multiple lines. The encryption password is always
read twice from the terminal.

Examples:
  lockbox add email --account bob@example.com
  lockbox add deploy-key --stdin < ~/.ssh/id_ed25519`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting add command")

		secret, err := readAddSecret(cmd)
		if err != nil {
			Logger.Debugf("Reading secret failed: %v", err)
			return reportAddError(cmd, args[0], err)
		}

		password, err := promptPassword("Encryption password: ", addFromStdin)
		if err != nil {
			secret.Destroy()
			return reportAddError(cmd, args[0], err)
		}
		confirmation, err := promptPassword("Confirm encryption password: ", addFromStdin)
		if err != nil {
			secret.Destroy()
			secure.Wipe(password)
			return reportAddError(cmd, args[0], err)
		}

		session, err := openSession(cmd)
		if err != nil {
			secret.Destroy()
			secure.Wipe(password)
			secure.Wipe(confirmation)
			return reportAddError(cmd, args[0], err)
		}
		defer session.Close()

		spinner, cleanup := startSpinner("Encrypting secret...")
		defer cleanup()

		result, err := workflows.Add(cmd.Context(), session, workflows.AddOptions{
			Label:                args[0],
			Account:              addAccount,
			Secret:               secret,
			Password:             password,
			PasswordConfirmation: confirmation,
		})
		if err != nil {
			Logger.Debugf("Add workflow failed: %v", err)
			if msg, ok := formatAddError(err, args[0]); ok {
				spinner.FinalMSG = msg
				return reported(err)
			}
			return err
		}

		spinner.FinalMSG = formatAddSuccess(result.Item)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addAccount, "account", "a", "", "account or user name associated with the secret")
	addCmd.Flags().BoolVar(&addFromStdin, "stdin", false, "read the secret from stdin")
}

func readAddSecret(cmd *cobra.Command) (*secure.Buffer, error) {
	if addFromStdin {
		return readSecretFromStdin(cmd)
	}

	raw, err := promptPassword("Secret: ", false)
	if err != nil {
		return nil, err
	}
	return secure.NewBufferFromBytes(raw), nil
}

// reportAddError prints errors raised before the spinner starts.
func reportAddError(cmd *cobra.Command, label string, err error) error {
	if msg, ok := formatAddError(err, label); ok {
		cmd.PrintErrln(msg)
		return reported(err)
	}
	return err
}

func formatAddSuccess(item store.DisplayItem) string {
	return ui.Success.Sprint("✓") + " Stored " + describeItem(item)
}

func formatAddError(err error, label string) (string, bool) {
	switch {
	case store.IsConstraintViolation(err):
		var ce *store.ConstraintError
		if errors.As(err, &ce) && ce.Column == "label" {
			return ui.Error.Sprint("✗") + " An item labelled " + ui.Label.Sprint(ui.SingleLine(label)) + " already exists\n" +
				ui.Info.Sprint("→") + " Choose another label or remove the existing item first", true
		}
		return ui.Error.Sprint("✗") + " " + err.Error(), true

	case errors.Is(err, kerrors.ErrLabelRequired),
		errors.Is(err, kerrors.ErrAccountSingleLine),
		errors.Is(err, kerrors.ErrSecretRequired),
		errors.Is(err, kerrors.ErrPasswordRequired):
		return ui.Error.Sprint("✗") + " " + capitalize(err.Error()), true

	case errors.Is(err, kerrors.ErrPasswordMismatch):
		return ui.Error.Sprint("✗") + " Encryption passwords do not match\n" +
			ui.Info.Sprint("→") + " Nothing was stored", true

	case errors.Is(err, kerrors.ErrNotTerminal):
		return ui.Error.Sprint("✗") + " Passwords must be typed into a terminal\n" +
			ui.Info.Sprint("→") + " Run " + ui.Command.Sprint("lockbox add") + " from an interactive shell", true

	default:
		return formatSessionError(err)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
