package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/otdash/internal/cli"
	"github.com/xolan/otdash/internal/cli/handlers"
	"github.com/xolan/otdash/internal/overtime"
	"github.com/xolan/otdash/internal/service"
	"github.com/xolan/otdash/internal/timeutil"
)

// otCmd groups the overtime entry commands
var otCmd = &cobra.Command{
	Use:   "ot",
	Short: "Calculate, record and approve overtime",
	Long: `Calculate, record and approve overtime entries.

Overtime is split into normal, double and triple buckets from the shift,
the in/out times and the day type:

  weekday     hours past the shift's weekday OT start (15:30 for 6:30am,
              17:30 for 8:30am) are normal OT
  Saturday    hours past the shift's Saturday hours are normal OT
  Sunday      all worked hours are double OT
  triple OT   dates set by HR make every worked hour triple

Each bucket is rounded down to a quarter hour. An out time earlier than the
in time is on the next day. Work that ends after 21:00 is marked as night.

Examples:
  otdash ot calc --date 2025-01-15 --shift 8:30am --in 08:30 --out 20:00
  otdash ot add --employee E001 --date 2025-01-15 --shift 8:30am --in 08:30 --out 20:00 --reason "Urgent order"
  otdash ot add --employee E001 --date 2025-01-18 --no-ot
  otdash ot list --month 2025-01 --status pending
  otdash ot edit <id> --out 21:00
  otdash ot approve <id> --hours 2
  otdash ot reject <id> --reason "Not authorised"`,
}

// otCalcCmd represents the ot calc command
var otCalcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Show the OT an entry would get without saving it",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		d, ok := ready()
		if !ok {
			return
		}
		handlers.Calc(cmd.Context(), d, entryInput(cmd))
	},
}

// otAddCmd represents the ot add command
var otAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record an overtime entry",
	Long: `Compute and save an overtime entry.

The employee name is looked up from the employee directory when --name is
omitted. An employee has at most one entry per day: adding a second one for
the same day updates the first. Pass --normal, --double or --triple to store
the buckets as given instead of computing them, or --no-ot to record a day
without overtime.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		d, ok := ready()
		if !ok {
			return
		}
		handlers.AddOvertime(cmd.Context(), d, entryInput(cmd))
	},
}

// otListCmd represents the ot list command
var otListCmd = &cobra.Command{
	Use:   "list",
	Short: "List overtime entries",
	Long: `List overtime entries for a month or a date range.

Without --month, --from or --all the current month is listed. A missing
--to means today.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		d, ok := ready()
		if !ok {
			return
		}
		f, period, err := listFilter(cmd, d)
		if err != nil {
			cli.Fail(d, "Invalid filter", err, "")
			return
		}
		handlers.ListOvertime(cmd.Context(), d, f, period)
	},
}

// otPendingCmd represents the ot pending command
var otPendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List overtime awaiting approval",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		d, ok := ready()
		if !ok {
			return
		}
		handlers.Pending(cmd.Context(), d)
	},
}

// otEditCmd represents the ot edit command
var otEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change an overtime entry",
	Long: `Change fields of an overtime entry.

The OT buckets are recomputed from the new values unless --normal, --double
or --triple is given, in which case the given buckets are stored.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d, ok := ready()
		if !ok {
			return
		}
		handlers.EditOvertime(cmd.Context(), d, args[0], handlers.EntryChanges{
			Date:   stringFlag(cmd, "date"),
			Shift:  stringFlag(cmd, "shift"),
			In:     stringFlag(cmd, "in"),
			Out:    stringFlag(cmd, "out"),
			Reason: stringFlag(cmd, "reason"),
			Normal: floatFlag(cmd, "normal"),
			Double: floatFlag(cmd, "double"),
			Triple: floatFlag(cmd, "triple"),
		})
	},
}

// otDeleteCmd represents the ot delete command
var otDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an overtime entry (with confirmation)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d, ok := ready()
		if !ok {
			return
		}
		yes, _ := cmd.Flags().GetBool("yes")
		handlers.DeleteOvertime(cmd.Context(), d, args[0], yes)
	},
}

// otApproveCmd represents the ot approve command
var otApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve an overtime entry",
	Long: `Approve an overtime entry. Without --hours the entry's full
normal + double + triple total is approved.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d, ok := ready()
		if !ok {
			return
		}
		reason, _ := cmd.Flags().GetString("reason")
		handlers.Approve(cmd.Context(), d, args[0], floatFlag(cmd, "hours"), reason)
	},
}

// otRejectCmd represents the ot reject command
var otRejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Reject an overtime entry",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d, ok := ready()
		if !ok {
			return
		}
		reason, _ := cmd.Flags().GetString("reason")
		handlers.Reject(cmd.Context(), d, args[0], reason)
	},
}

func init() {
	rootCmd.AddCommand(otCmd)
	otCmd.AddCommand(otCalcCmd, otAddCmd, otListCmd, otPendingCmd, otEditCmd, otDeleteCmd, otApproveCmd, otRejectCmd)

	for _, c := range []*cobra.Command{otCalcCmd, otAddCmd} {
		addEntryFlags(c)
		c.Flags().Bool("no-ot", false, "Record the day without overtime")
	}
	otAddCmd.Flags().StringP("employee", "e", "", "Employee number")
	otAddCmd.Flags().String("name", "", "Employee name (looked up when omitted)")

	addEntryFlags(otEditCmd)

	otListCmd.Flags().String("month", "", "Month to list (YYYY-MM)")
	otListCmd.Flags().String("from", "", "First day to list (YYYY-MM-DD or DD/MM/YYYY)")
	otListCmd.Flags().String("to", "", "Last day to list (default today)")
	otListCmd.Flags().Bool("all", false, "List every entry")
	otListCmd.Flags().StringP("employee", "e", "", "Only this employee number")
	otListCmd.Flags().String("status", "", "Only entries with this status (pending, approved, rejected)")

	otDeleteCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	otApproveCmd.Flags().Float64("hours", 0, "Approved OT hours (default the entry total)")
	otApproveCmd.Flags().String("reason", "", "Approval reason (default the entry reason)")
	otRejectCmd.Flags().String("reason", "", "Rejection reason")
}

// addEntryFlags adds the flags shared by calc, add and edit.
func addEntryFlags(c *cobra.Command) {
	c.Flags().StringP("date", "d", "", "Work date (YYYY-MM-DD or DD/MM/YYYY)")
	c.Flags().StringP("shift", "s", "", "Shift (6:30am or 8:30am)")
	c.Flags().String("in", "", "In time (HH:MM)")
	c.Flags().String("out", "", "Out time (HH:MM)")
	c.Flags().StringP("reason", "r", "", "Overtime reason")
	c.Flags().Float64("normal", 0, "Normal OT hours (store as given)")
	c.Flags().Float64("double", 0, "Double OT hours (store as given)")
	c.Flags().Float64("triple", 0, "Triple OT hours (store as given)")
}

// entryInput reads the calc/add flags.
func entryInput(cmd *cobra.Command) handlers.EntryInput {
	get := func(name string) string {
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	in := handlers.EntryInput{
		Date:   get("date"),
		Shift:  get("shift"),
		In:     get("in"),
		Out:    get("out"),
		Reason: get("reason"),
		Manual: cmd.Flags().Changed("normal") || cmd.Flags().Changed("double") || cmd.Flags().Changed("triple"),
	}
	if cmd.Flags().Lookup("employee") != nil {
		in.EmployeeNumber = get("employee")
		in.Name = get("name")
	}
	in.NoOT, _ = cmd.Flags().GetBool("no-ot")
	in.Normal, _ = cmd.Flags().GetFloat64("normal")
	in.Double, _ = cmd.Flags().GetFloat64("double")
	in.Triple, _ = cmd.Flags().GetFloat64("triple")
	return in
}

// listFilter reads the ot list flags into a filter and a period title.
func listFilter(cmd *cobra.Command, d *Deps) (service.ListFilter, string, error) {
	var f service.ListFilter
	f.EmployeeNumber, _ = cmd.Flags().GetString("employee")

	status, _ := cmd.Flags().GetString("status")
	if status != "" {
		s, err := parseStatus(status)
		if err != nil {
			return f, "", err
		}
		f.Status = s
	}

	if all, _ := cmd.Flags().GetBool("all"); all {
		return f, "all dates", nil
	}

	month, _ := cmd.Flags().GetString("month")
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	start, end, err := timeutil.ParseRange(month, from, to, d.Now())
	if err != nil {
		return f, "", err
	}
	if from == "" && to == "" {
		f.Month = timeutil.MonthKey(start)
		return f, start.Format("January 2006"), nil
	}
	f.Start, f.End = start, end
	return f, cli.FormatDateRangeForDisplay(start, end), nil
}

func parseStatus(s string) (overtime.Status, error) {
	for _, st := range []overtime.Status{overtime.StatusPending, overtime.StatusApproved, overtime.StatusRejected} {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown status %q (use pending, approved or rejected)", s)
}
