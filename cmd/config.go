package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/otdash/internal/cli/handlers"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display or manage configuration settings",
	Long: `Display the current effective configuration settings for otdash.

Shows the configuration file location, whether it exists, and all current
settings. Values are merged from the config file with sensible defaults,
and OTDASH_* environment variables (also read from a .env file in the
working directory) override both.

Settings:
  api_base_url      Backend REST base URL
  health_url        URL probed by "otdash status"
  request_timeout   Per-request timeout (e.g. 15s)
  poll_interval     How often the session store and pending feed are checked
  theme             TUI color theme
  log_level         debug, info, warn or error
  export_dir        Where "otdash export" saves workbooks
  [shifts]          Weekday OT start / Saturday hours overrides per shift

Examples:
  otdash config                    Show all current settings
  otdash config --init             Create a sample config file

Configuration file location:
  ~/.config/otdash/config.toml     Linux
  %APPDATA%\otdash\config.toml     Windows`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		d, ok := ready()
		if !ok {
			return
		}
		if initFlag, _ := cmd.Flags().GetBool("init"); initFlag {
			handlers.InitConfig(d)
			return
		}
		handlers.ShowConfig(d)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().Bool("init", false, "Create a sample config file")
}
