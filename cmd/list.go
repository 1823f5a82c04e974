package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/PolarWolf314/lockbox/internal/store"
	"github.com/PolarWolf314/lockbox/internal/ui"
	"github.com/PolarWolf314/lockbox/internal/workflows"
	"github.com/spf13/cobra"
)

const (
	listLabelWidth   = 32
	listAccountWidth = 28
)

var listNoTruncate bool

func resetListCommandState() {
	listNoTruncate = false
}

var listCmd = &cobra.Command{
	Use:   "list [search]",
	Short: "List stored items",
	Long: `Lists stored items. Secrets are never decrypted.

With a search term, only items whose label or account contains the term are
shown. Matching is case-sensitive; % and _ act as wildcards.

Examples:
  lockbox list
  lockbox list mail`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting list command")

		session, err := openSession(cmd)
		if err != nil {
			if msg, ok := formatSessionError(err); ok {
				cmd.PrintErrln(msg)
				return reported(err)
			}
			return err
		}
		defer session.Close()

		search := ""
		if len(args) == 1 {
			search = args[0]
		}

		result, err := workflows.List(cmd.Context(), session, workflows.ListOptions{Search: search})
		if err != nil {
			return err
		}
		Logger.Debugf("Listed %d items with pattern %q", len(result.Items), result.Pattern)

		if len(result.Items) == 0 {
			if search != "" {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warning.Sprint("⚠")+" No items match "+ui.Label.Sprint(ui.SingleLine(search)))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warning.Sprint("⚠")+" No items stored yet")
				fmt.Fprintln(cmd.OutOrStdout(), ui.Info.Sprint("→")+" Run "+ui.Command.Sprint("lockbox add <label>")+" to store one")
			}
			return nil
		}

		return writeItemTable(cmd.OutOrStdout(), result.Items, !listNoTruncate)
	},
}

func init() {
	listCmd.Flags().BoolVar(&listNoTruncate, "no-truncate", false, "show full labels and account names")
}

func writeItemTable(out io.Writer, items []store.DisplayItem, truncate bool) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "UID\tLABEL\tACCOUNT\tMODIFIED")
	for _, item := range items {
		label := ui.SingleLine(item.Label)
		account := ui.SingleLine(item.Account)
		if truncate {
			label = ui.Truncate(label, listLabelWidth)
			account = ui.Truncate(account, listAccountWidth)
		}
		if account == "" {
			account = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			item.UID,
			label,
			account,
			item.LastModifiedAt.Local().Format(time.DateTime),
		)
	}
	return w.Flush()
}
