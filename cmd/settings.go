package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/otdash/internal/cli/handlers"
)

// tripleOTCmd groups the triple-OT date commands
var tripleOTCmd = &cobra.Command{
	Use:   "tripleot",
	Short: "Manage triple-OT dates",
	Long: `Manage the dates on which every worked hour is triple OT.

Examples:
  otdash tripleot list
  otdash tripleot add 2025-04-14 "New Year"
  otdash tripleot edit <id> 2025-04-13 "New Year Eve"
  otdash tripleot delete <id>`,
}

var tripleOTListCmd = &cobra.Command{
	Use:   "list",
	Short: "List triple-OT dates",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		d, ok := ready()
		if !ok {
			return
		}
		handlers.ListTripleOT(cmd.Context(), d)
	},
}

var tripleOTAddCmd = &cobra.Command{
	Use:   "add <date> [description]",
	Short: "Add a triple-OT date",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d, ok := ready()
		if !ok {
			return
		}
		handlers.AddTripleOT(cmd.Context(), d, args[0], strings.Join(args[1:], " "))
	},
}

var tripleOTEditCmd = &cobra.Command{
	Use:   "edit <id> <date> [description]",
	Short: "Change a triple-OT date",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		d, ok := ready()
		if !ok {
			return
		}
		handlers.EditTripleOT(cmd.Context(), d, args[0], args[1], strings.Join(args[2:], " "))
	},
}

var tripleOTDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a triple-OT date",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d, ok := ready()
		if !ok {
			return
		}
		handlers.DeleteTripleOT(cmd.Context(), d, args[0])
	},
}

// settingsCmd groups the OT shift settings commands
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the OT shift settings",
	Long: `Show or change the per-shift tables the OT calculator uses.

Each shift has a weekday OT start (hour of day, e.g. 17.5 for 17:30) and a
number of Saturday shift hours. Values stored on the backend override the
config file, which overrides the built-in defaults.

Examples:
  otdash settings show
  otdash settings set 7:30am --weekday-start 16.5 --saturday-hours 4.5
  otdash settings reset`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective shift tables",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		d, ok := ready()
		if !ok {
			return
		}
		handlers.ShowSettings(cmd.Context(), d)
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <shift>",
	Short: "Store a shift's OT settings on the backend",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d, ok := ready()
		if !ok {
			return
		}
		handlers.SetShift(cmd.Context(), d, args[0], floatFlag(cmd, "weekday-start"), floatFlag(cmd, "saturday-hours"))
	},
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the stored OT settings (with confirmation)",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		d, ok := ready()
		if !ok {
			return
		}
		yes, _ := cmd.Flags().GetBool("yes")
		handlers.ResetSettings(cmd.Context(), d, yes)
	},
}

// reasonsCmd groups the overtime reason commands
var reasonsCmd = &cobra.Command{
	Use:   "reasons",
	Short: "Manage the selectable overtime reasons",
}

var reasonsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List overtime reasons",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		d, ok := ready()
		if !ok {
			return
		}
		handlers.ListReasons(cmd.Context(), d)
	},
}

var reasonsAddCmd = &cobra.Command{
	Use:   "add <reason>",
	Short: "Add an overtime reason",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d, ok := ready()
		if !ok {
			return
		}
		handlers.AddReason(cmd.Context(), d, strings.Join(args, " "))
	},
}

var reasonsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an overtime reason",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d, ok := ready()
		if !ok {
			return
		}
		handlers.DeleteReason(cmd.Context(), d, args[0])
	},
}

func init() {
	rootCmd.AddCommand(tripleOTCmd)
	tripleOTCmd.AddCommand(tripleOTListCmd, tripleOTAddCmd, tripleOTEditCmd, tripleOTDeleteCmd)

	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd, settingsResetCmd)
	settingsSetCmd.Flags().Float64("weekday-start", 0, "Weekday OT start as an hour of day (e.g. 17.5)")
	settingsSetCmd.Flags().Float64("saturday-hours", 0, "Saturday shift hours")
	settingsResetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	rootCmd.AddCommand(reasonsCmd)
	reasonsCmd.AddCommand(reasonsListCmd, reasonsAddCmd, reasonsDeleteCmd)
}
