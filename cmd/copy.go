package cmd

import (
	"errors"

	kerrors "github.com/PolarWolf314/lockbox/internal/errors"
	"github.com/PolarWolf314/lockbox/internal/ui"
	"github.com/PolarWolf314/lockbox/internal/workflows"
	"github.com/spf13/cobra"
)

var copyToStdout bool

func resetCopyCommandState() {
	copyToStdout = false
}

var copyCmd = &cobra.Command{
	Use:   "copy <uid>",
	Short: "Decrypt a secret and copy it to the clipboard",
	Long: `Decrypts the item with the given id and copies the secret to the system
clipboard. With --stdout the secret is written to stdout instead, exactly as
stored and without a trailing newline.

Examples:
  lockbox copy 3
  lockbox copy 3 --stdout | ssh-add -`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting copy command")

		uid, err := parseUID(args[0])
		if err != nil {
			return reportCopyError(cmd, args[0], err)
		}

		session, err := openSession(cmd)
		if err != nil {
			return reportCopyError(cmd, args[0], err)
		}
		defer session.Close()

		password, err := promptPassword("Password: ", copyToStdout)
		if err != nil {
			return reportCopyError(cmd, args[0], err)
		}

		opts := workflows.RevealOptions{UID: uid, Password: password}

		if copyToStdout {
			result, err := workflows.Reveal(cmd.Context(), session, opts)
			if err != nil {
				Logger.Debugf("Reveal workflow failed: %v", err)
				return reportCopyError(cmd, args[0], err)
			}
			defer result.Secret.Destroy()

			if _, err := cmd.OutOrStdout().Write(result.Secret.Bytes()); err != nil {
				return err
			}
			return nil
		}

		spinner, cleanup := startSpinner("Decrypting secret...")
		defer cleanup()

		result, err := workflows.Copy(cmd.Context(), session, opts)
		if err != nil {
			Logger.Debugf("Copy workflow failed: %v", err)
			if msg, ok := formatCopyError(err, args[0]); ok {
				spinner.FinalMSG = msg
				return reported(err)
			}
			return err
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Copied " + describeItem(result.Item) + " to the clipboard"
		return nil
	},
}

func init() {
	copyCmd.Flags().BoolVar(&copyToStdout, "stdout", false, "write the secret to stdout instead of the clipboard")
}

func reportCopyError(cmd *cobra.Command, uidArg string, err error) error {
	if msg, ok := formatCopyError(err, uidArg); ok {
		cmd.PrintErrln(msg)
		return reported(err)
	}
	return err
}

func formatCopyError(err error, uidArg string) (string, bool) {
	switch {
	case errors.Is(err, kerrors.ErrAuthenticationFailed):
		return ui.Error.Sprint("✗") + " Wrong password or corrupted data", true

	case errors.Is(err, kerrors.ErrPasswordRequired):
		return ui.Error.Sprint("✗") + " A password is required", true

	case errors.Is(err, kerrors.ErrCorruptItem), errors.Is(err, kerrors.ErrInvalidPadding):
		return ui.Error.Sprint("✗") + " Item " + ui.UID.Sprint(uidArg) + " is corrupted in the database", true

	case errors.Is(err, kerrors.ErrNotTerminal):
		return ui.Error.Sprint("✗") + " Passwords must be typed into a terminal", true

	default:
		return formatItemError(err, uidArg)
	}
}
