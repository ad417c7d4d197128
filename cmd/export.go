package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/otdash/internal/cli"
	"github.com/xolan/otdash/internal/cli/handlers"
	"github.com/xolan/otdash/internal/timeutil"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download the overtime workbook",
	Long: `Download the overtime workbook (.xlsx) for a date range and record
the download.

The file is saved as Overtime_<from>_to_<to>.xlsx in --dir, or in the
configured export_dir.

Examples:
  otdash export                                   Current month
  otdash export --month 2025-01
  otdash export --from 2025-01-01 --to 2025-01-15 --dir ~/Downloads`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		d, ok := ready()
		if !ok {
			return
		}
		month, _ := cmd.Flags().GetString("month")
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		dir, _ := cmd.Flags().GetString("dir")

		start, end, err := timeutil.ParseRange(month, from, to, d.Now())
		if err != nil {
			cli.Fail(d, "Invalid date range", err, "")
			return
		}
		handlers.Export(cmd.Context(), d, start, end, dir)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().String("month", "", "Month to export (YYYY-MM)")
	exportCmd.Flags().String("from", "", "First day to export (YYYY-MM-DD or DD/MM/YYYY)")
	exportCmd.Flags().String("to", "", "Last day to export (default today)")
	exportCmd.Flags().String("dir", "", "Directory to save into (default export_dir)")
}
