package handlers

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/xolan/otdash/internal/cli"
)

// ListTripleOT prints the triple-OT dates.
func ListTripleOT(ctx context.Context, deps *cli.Deps) {
	dates, err := deps.Services.Settings.TripleOTDates(ctx)
	if err != nil {
		cli.Fail(deps, "Failed to load triple OT dates", err, "")
		return
	}
	if len(dates) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No triple OT dates")
		return
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Date < dates[j].Date })
	_, _ = fmt.Fprintf(deps.Stdout, "%-24s  %-10s  %s\n", "ID", "Date", "Description")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
	for _, d := range dates {
		_, _ = fmt.Fprintf(deps.Stdout, "%-24s  %-10s  %s\n", d.ID, cli.ShortDate(d.Date), d.Description)
	}
}

// AddTripleOT adds a triple-OT date.
func AddTripleOT(ctx context.Context, deps *cli.Deps, date, description string) {
	d, err := deps.Services.Settings.AddTripleOT(ctx, date, description)
	if err != nil {
		cli.Fail(deps, "Failed to add triple OT date", err, "")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Added triple OT date %s %s\n", cli.ShortDate(d.Date), d.Description)
}

// EditTripleOT replaces triple-OT date id.
func EditTripleOT(ctx context.Context, deps *cli.Deps, id, date, description string) {
	d, err := deps.Services.Settings.UpdateTripleOT(ctx, id, date, description)
	if err != nil {
		cli.Fail(deps, "Failed to update triple OT date", err, "")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Updated triple OT date %s %s\n", cli.ShortDate(d.Date), d.Description)
}

// DeleteTripleOT removes triple-OT date id.
func DeleteTripleOT(ctx context.Context, deps *cli.Deps, id string) {
	if err := deps.Services.Settings.DeleteTripleOT(ctx, id); err != nil {
		cli.Fail(deps, "Failed to delete triple OT date", err, "")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Deleted triple OT date %s\n", id)
}

// ShowSettings prints the effective shift tables and which values the
// backend stores.
func ShowSettings(ctx context.Context, deps *cli.Deps) {
	eff, err := deps.Services.Settings.OTSettings(ctx)
	if err != nil {
		cli.Fail(deps, "Failed to load OT settings", err, "")
		return
	}

	shifts := map[string]bool{}
	for s := range eff.Tables.WeekdayOTStart {
		shifts[s] = true
	}
	for s := range eff.Tables.SaturdayShiftHours {
		shifts[s] = true
	}
	names := make([]string, 0, len(shifts))
	for s := range shifts {
		names = append(names, s)
	}
	sort.Strings(names)

	_, _ = fmt.Fprintln(deps.Stdout, "OT shift settings:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 60))
	_, _ = fmt.Fprintf(deps.Stdout, "  %-12s  %-18s  %-18s\n", "Shift", "Weekday OT start", "Saturday hours")
	for _, s := range names {
		_, _ = fmt.Fprintf(deps.Stdout, "  %-12s  %-18s  %-18s\n", s,
			settingValue(eff.Tables.WeekdayStart(s), eff.Stored.WeekdayOTStart, s),
			settingValue(eff.Tables.SaturdayHours(s), eff.Stored.SaturdayShiftHours, s))
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
	_, _ = fmt.Fprintln(deps.Stdout, "* stored on the backend; other values are defaults or config overrides")
}

func settingValue(v float64, stored map[string]float64, shift string) string {
	if _, ok := stored[shift]; ok {
		return fmt.Sprintf("%g *", v)
	}
	return fmt.Sprintf("%g", v)
}

// SetShift stores one shift's table values on the backend.
func SetShift(ctx context.Context, deps *cli.Deps, shift string, weekdayStart, saturdayHours *float64) {
	if _, err := deps.Services.Settings.SetShift(ctx, shift, weekdayStart, saturdayHours); err != nil {
		cli.Fail(deps, "Failed to save OT settings", err, "Pass --weekday-start and/or --saturday-hours")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Saved OT settings for shift %s\n", shift)
}

// ResetSettings deletes the stored OT settings after confirmation.
func ResetSettings(ctx context.Context, deps *cli.Deps, yes bool) {
	if !yes && !cli.Confirm(deps, "Delete the stored OT settings?") {
		_, _ = fmt.Fprintln(deps.Stdout, "Reset cancelled")
		return
	}
	if err := deps.Services.Settings.ResetOTSettings(ctx); err != nil {
		cli.Fail(deps, "Failed to reset OT settings", err, "")
		return
	}
	_, _ = fmt.Fprintln(deps.Stdout, "OT settings reset to defaults")
}

// ListReasons prints the selectable overtime reasons.
func ListReasons(ctx context.Context, deps *cli.Deps) {
	reasons, err := deps.Services.Settings.Reasons(ctx)
	if err != nil {
		cli.Fail(deps, "Failed to load reasons", err, "")
		return
	}
	if len(reasons) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No reasons defined")
		return
	}
	for _, r := range reasons {
		_, _ = fmt.Fprintf(deps.Stdout, "%-24s  %s\n", r.ID, r.Option)
	}
}

// AddReason adds a selectable overtime reason.
func AddReason(ctx context.Context, deps *cli.Deps, option string) {
	r, err := deps.Services.Settings.AddReason(ctx, option)
	if err != nil {
		cli.Fail(deps, "Failed to add reason", err, "")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Added reason %q\n", r.Option)
}

// DeleteReason removes reason id.
func DeleteReason(ctx context.Context, deps *cli.Deps, id string) {
	if err := deps.Services.Settings.DeleteReason(ctx, id); err != nil {
		cli.Fail(deps, "Failed to delete reason", err, "")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Deleted reason %s\n", id)
}
