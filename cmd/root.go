package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "otdash",
	Short: "HR overtime dashboard client",
	Long: `otdash is a command line client for the HR overtime dashboard.

It computes normal, double and triple overtime from shift times, keeps the
overtime records on the dashboard backend and tracks the login session so
it is ended when the backend says it expires.

Usage:
  otdash login                                  Log in and store the session
  otdash status                                 Show backend and session state
  otdash watch --pending                        Follow the session and new approvals
  otdash ot calc --date 2025-01-15 --shift 8:30am --in 08:30 --out 20:00
  otdash ot add --employee E001 --date 15/01/2025 --shift 8:30am --in 08:30 --out 20:00 --reason "Urgent order"
  otdash ot list --month 2025-01                List a month's overtime
  otdash ot approve <id>                        Approve an entry
  otdash report month 2025-01                   Per-employee monthly totals
  otdash export --month 2025-01                 Download the monthly workbook
  otdash tui                                    Launch the interactive dashboard

Dates are YYYY-MM-DD or DD/MM/YYYY. Times are HH:MM (24-hour).`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if CheckTUIFlag(cmd) {
			return
		}
		_ = cmd.Help()
	},
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"otdash version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command
func Execute() error {
	defer closeDeps()
	return rootCmd.Execute()
}

// floatFlag returns the value of a float flag, or nil when it was not given.
func floatFlag(cmd *cobra.Command, name string) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetFloat64(name)
	return &v
}

// stringFlag returns the value of a string flag, or nil when it was not given.
func stringFlag(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

// boolFlag returns the value of a bool flag, or nil when it was not given.
func boolFlag(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetBool(name)
	return &v
}
