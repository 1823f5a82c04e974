package cmd

import (
	"errors"
	"fmt"

	"github.com/PolarWolf314/lockbox/internal/configs"
	kerrors "github.com/PolarWolf314/lockbox/internal/errors"
	"github.com/PolarWolf314/lockbox/internal/ui"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change lockbox settings",
	Long: `Reads and writes the lockbox config file.

Keys:
  database         database location (empty restores the default)
  audit.disabled   true to stop writing the audit log

Examples:
  lockbox config show
  lockbox config set database ~/Sync/lockbox.sqlite3
  lockbox config set audit.disabled true`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the config file and the database it selects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config show command")

		settings, config, err := loadConfig()
		if err != nil {
			return reportConfigError(cmd, err)
		}

		dbPath, err := configs.ResolveDatabasePath(databasePath, config, settings)
		if err != nil {
			return reportConfigError(cmd, err)
		}

		database := config.Database
		if database == "" {
			database = ui.Muted.Sprint("default")
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Config file:     %s\n", ui.Path.Sprint(settings.ConfigPath))
		fmt.Fprintf(out, "database:        %s\n", database)
		fmt.Fprintf(out, "audit.disabled:  %t\n", config.Audit.Disabled)
		fmt.Fprintf(out, "Using database:  %s\n", ui.Path.Sprint(dbPath))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting in the config file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config set command")

		settings, config, err := loadConfig()
		if err != nil {
			return reportConfigError(cmd, err)
		}

		if err := config.Set(args[0], args[1]); err != nil {
			return reportConfigError(cmd, err)
		}

		if err := configs.SaveConfig(settings.ConfigPath, config); err != nil {
			return err
		}
		Logger.Debugf("Wrote %s", settings.ConfigPath)

		fmt.Fprintln(cmd.OutOrStdout(), ui.Success.Sprint("✓")+" Set "+ui.Flag.Sprint(args[0])+" in "+ui.Path.Sprint(settings.ConfigPath))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func loadConfig() (*configs.Settings, *configs.Config, error) {
	settings, err := configs.NewSettings()
	if err != nil {
		return nil, nil, err
	}
	config, err := configs.LoadConfig(settings.ConfigPath)
	if err != nil {
		return nil, nil, err
	}
	return settings, config, nil
}

func reportConfigError(cmd *cobra.Command, err error) error {
	if msg, ok := formatConfigError(err); ok {
		cmd.PrintErrln(msg)
		return reported(err)
	}
	return err
}

func formatConfigError(err error) (string, bool) {
	if errors.Is(err, kerrors.ErrUnknownConfigKey) {
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Run " + ui.Command.Sprint("lockbox config --help") + " to see available keys", true
	}
	return formatSessionError(err)
}
