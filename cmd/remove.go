package cmd

import (
	"errors"
	"fmt"
	"os"

	kerrors "github.com/PolarWolf314/lockbox/internal/errors"
	"github.com/PolarWolf314/lockbox/internal/store"
	"github.com/PolarWolf314/lockbox/internal/ui"
	"github.com/PolarWolf314/lockbox/internal/utils"
	"github.com/PolarWolf314/lockbox/internal/workflows"
	"github.com/spf13/cobra"
)

var removeYes bool

func resetRemoveCommandState() {
	removeYes = false
}

var removeCmd = &cobra.Command{
	Use:     "remove <uid>",
	Aliases: []string{"rm"},
	Short:   "Delete a stored item",
	Long: `Deletes the item with the given id. No password is needed.

Without --yes, lockbox asks for confirmation. Ids of removed items are never
reused.

Examples:
  lockbox remove 3
  lockbox rm 3 --yes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting remove command")

		uid, err := parseUID(args[0])
		if err != nil {
			return reportRemoveError(cmd, args[0], err)
		}

		session, err := openSession(cmd)
		if err != nil {
			return reportRemoveError(cmd, args[0], err)
		}
		defer session.Close()

		opts := workflows.RemoveOptions{UID: uid}
		if !removeYes {
			opts.Confirm = func(item store.DisplayItem) bool {
				in := cmd.InOrStdin()
				if in == os.Stdin && !utils.IsTerminal() {
					Logger.Debugf("Not a terminal, refusing to prompt")
					return false
				}
				return confirm(in, "Remove "+describeItem(item)+"?")
			}
		}

		result, err := workflows.Remove(cmd.Context(), session, opts)
		if err != nil {
			Logger.Debugf("Remove workflow failed: %v", err)
			return reportRemoveError(cmd, args[0], err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), ui.Success.Sprint("✓")+" Removed "+describeItem(result.Item))
		return nil
	},
}

func init() {
	removeCmd.Flags().BoolVarP(&removeYes, "yes", "y", false, "skip the confirmation prompt")
}

func reportRemoveError(cmd *cobra.Command, uidArg string, err error) error {
	if msg, ok := formatRemoveError(err, uidArg); ok {
		cmd.PrintErrln(msg)
		return reported(err)
	}
	return err
}

func formatRemoveError(err error, uidArg string) (string, bool) {
	if errors.Is(err, kerrors.ErrConfirmationRequired) {
		return ui.Warning.Sprint("⚠") + " Nothing removed\n" +
			ui.Info.Sprint("→") + " Pass " + ui.Flag.Sprint("--yes") + " to remove without a prompt", true
	}
	return formatItemError(err, uidArg)
}
