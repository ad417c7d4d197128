package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/otdash/internal/cli"
	"github.com/xolan/otdash/internal/cli/handlers"
	"github.com/xolan/otdash/internal/timeutil"
)

// reportCmd groups the summary reports
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show per-employee OT totals",
	Long: `Show per-employee normal, double and triple OT totals with entry and
status counts.

Examples:
  otdash report month                  Current month
  otdash report month 2025-01          January 2025
  otdash report range 2025-01-01 2025-01-15`,
}

var reportMonthCmd = &cobra.Command{
	Use:   "month [YYYY-MM]",
	Short: "Totals for a month (default the current month)",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d, ok := ready()
		if !ok {
			return
		}
		month := d.Now()
		if len(args) == 1 {
			m, err := timeutil.ParseMonth(args[0])
			if err != nil {
				cli.Fail(d, "Invalid month", err, "")
				return
			}
			month = m
		}
		handlers.ReportMonth(cmd.Context(), d, month)
	},
}

var reportRangeCmd = &cobra.Command{
	Use:   "range <from> [to]",
	Short: "Totals for a date range (to defaults to today)",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		d, ok := ready()
		if !ok {
			return
		}
		to := ""
		if len(args) == 2 {
			to = args[1]
		}
		start, end, err := timeutil.ParseRange("", args[0], to, d.Now())
		if err != nil {
			cli.Fail(d, "Invalid date range", err, "")
			return
		}
		handlers.ReportRange(cmd.Context(), d, start, end)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(reportMonthCmd, reportRangeCmd)
}
