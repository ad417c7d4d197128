package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/otdash/internal/cli/handlers"
)

// auditCmd groups the audit trail commands
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show the overtime and download audit trails",
}

var auditOTCmd = &cobra.Command{
	Use:   "ot",
	Short: "Show overtime changes (create, update, delete, approve, reject)",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		d, ok := ready()
		if !ok {
			return
		}
		limit, _ := cmd.Flags().GetInt("limit")
		handlers.AuditOvertime(cmd.Context(), d, limit)
	},
}

var auditDownloadsCmd = &cobra.Command{
	Use:   "downloads",
	Short: "Show who exported which date ranges",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		d, ok := ready()
		if !ok {
			return
		}
		handlers.AuditDownloads(cmd.Context(), d)
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditOTCmd, auditDownloadsCmd)
	auditOTCmd.Flags().IntP("limit", "n", 50, "Show only the newest n records (0 for all)")
}
