package cmd

import (
	"fmt"

	"github.com/PolarWolf314/lockbox/internal/ui"
	"github.com/PolarWolf314/lockbox/internal/workflows"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show database location, schema version and item count",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting info command")

		session, err := openSession(cmd)
		if err != nil {
			if msg, ok := formatSessionError(err); ok {
				cmd.PrintErrln(msg)
				return reported(err)
			}
			return err
		}
		defer session.Close()

		result, err := workflows.Info(cmd.Context(), session)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Database:       %s\n", ui.Path.Sprint(result.DatabasePath))
		fmt.Fprintf(out, "Schema version: %d (supported: %d)\n", result.SchemaVersion, result.SupportedVersion)
		fmt.Fprintf(out, "Items:          %d\n", result.ItemCount)
		if result.AuditLogPath != "" {
			fmt.Fprintf(out, "Audit log:      %s\n", ui.Path.Sprint(result.AuditLogPath))
		} else {
			fmt.Fprintf(out, "Audit log:      %s\n", ui.Muted.Sprint("disabled"))
		}
		return nil
	},
}
