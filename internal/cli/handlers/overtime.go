package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xolan/otdash/internal/cli"
	"github.com/xolan/otdash/internal/overtime"
	"github.com/xolan/otdash/internal/service"
	"github.com/xolan/otdash/internal/stats"
	"github.com/xolan/otdash/internal/timeutil"
)

// EntryInput is an overtime entry as typed on the command line.
type EntryInput struct {
	EmployeeNumber string
	Name           string
	Date           string
	Shift          string
	In             string
	Out            string
	Reason         string
	NoOT           bool
	// Manual keeps Normal, Double and Triple as typed instead of computing them.
	Manual bool
	Normal float64
	Double float64
	Triple float64
}

// EntryChanges holds the fields "ot edit" was asked to change.
type EntryChanges struct {
	Date   *string
	Shift  *string
	In     *string
	Out    *string
	Reason *string
	Normal *float64
	Double *float64
	Triple *float64
}

func (c EntryChanges) manualBuckets() bool {
	return c.Normal != nil || c.Double != nil || c.Triple != nil
}

// saveInput converts in, normalizing the date and filling the employee
// name from the directory when it was left out.
func saveInput(ctx context.Context, deps *cli.Deps, in EntryInput) (service.SaveInput, error) {
	e := overtime.Entry{
		EmployeeNumber: strings.TrimSpace(in.EmployeeNumber),
		Name:           strings.TrimSpace(in.Name),
		Shift:          in.Shift,
		InTime:         in.In,
		OutTime:        in.Out,
		Reason:         in.Reason,
		NormalOT:       in.Normal,
		DoubleOT:       in.Double,
		TripleOT:       in.Triple,
	}
	if in.Date != "" {
		day, err := timeutil.ParseDate(in.Date)
		if err != nil {
			return service.SaveInput{}, err
		}
		e.Date = day.Format(overtime.DateLayout)
	}
	if e.Name == "" && e.EmployeeNumber != "" {
		emp, err := deps.Services.Directory.FindEmployee(ctx, e.EmployeeNumber)
		if err != nil {
			return service.SaveInput{}, err
		}
		if emp != nil {
			e.Name = emp.Name
		}
	}
	return service.SaveInput{Entry: e, NoOT: in.NoOT, Auto: !in.Manual}, nil
}

// Calc shows what an entry would be saved as without saving it.
func Calc(ctx context.Context, deps *cli.Deps, in EntryInput) {
	si, err := saveInput(ctx, deps, in)
	if err != nil {
		cli.Fail(deps, "Invalid entry", err, "")
		return
	}
	e, err := deps.Services.Overtime.Calculate(ctx, si)
	if err != nil {
		cli.Fail(deps, "Failed to calculate overtime", err, "")
		return
	}

	dayType := "unknown"
	if day, ok := e.Day(); ok {
		dayType = overtime.ClassifyDay(day).String()
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Date:      %s (%s)\n", cli.ShortDate(e.Date), dayType)
	_, _ = fmt.Fprintf(deps.Stdout, "Shift:     %s  %s\n", e.Shift, cli.FormatTimes(e))
	_, _ = fmt.Fprintf(deps.Stdout, "Normal OT: %s\n", cli.FormatHours(e.NormalOT))
	_, _ = fmt.Fprintf(deps.Stdout, "Double OT: %s\n", cli.FormatHours(e.DoubleOT))
	_, _ = fmt.Fprintf(deps.Stdout, "Triple OT: %s\n", cli.FormatHours(e.TripleOT))
	_, _ = fmt.Fprintf(deps.Stdout, "Night:     %s\n", e.Night)
	if e.Reason != "" {
		_, _ = fmt.Fprintf(deps.Stdout, "Reason:    %s\n", e.Reason)
	}
}

// ListOvertime prints the entries matching f.
func ListOvertime(ctx context.Context, deps *cli.Deps, f service.ListFilter, period string) {
	entries, err := deps.Services.Overtime.List(ctx, f)
	if err != nil {
		cli.Fail(deps, "Failed to load overtime", err, "")
		return
	}
	if len(entries) == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No overtime found for %s\n", period)
		return
	}
	printEntries(deps, fmt.Sprintf("Overtime for %s", period), entries)
}

// Pending prints the entries awaiting approval.
func Pending(ctx context.Context, deps *cli.Deps) {
	entries, err := deps.Services.Overtime.Pending(ctx)
	if err != nil {
		cli.Fail(deps, "Failed to load pending overtime", err, "")
		return
	}
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No overtime awaiting approval")
		return
	}
	printEntries(deps, "Awaiting approval", entries)
}

func printEntries(deps *cli.Deps, title string, entries []overtime.Entry) {
	_, _ = fmt.Fprintf(deps.Stdout, "%s (%d %s):\n", title, len(entries), cli.Pluralize("entry", len(entries)))
	_, _ = fmt.Fprintln(deps.Stdout, cli.EntryHeader())
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 110))
	for _, e := range entries {
		_, _ = fmt.Fprintln(deps.Stdout, cli.FormatEntryRow(e))
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 110))
	_, _ = fmt.Fprintln(deps.Stdout, cli.FormatTotals(stats.CalculateTotals(entries)))
}

// AddOvertime computes and saves an entry.
func AddOvertime(ctx context.Context, deps *cli.Deps, in EntryInput) {
	si, err := saveInput(ctx, deps, in)
	if err != nil {
		cli.Fail(deps, "Invalid entry", err, "")
		return
	}
	result, err := deps.Services.Overtime.Save(ctx, si)
	if err != nil {
		cli.Fail(deps, "Failed to save overtime", err, "")
		return
	}

	e := result.Entry
	verb := "Created"
	if result.Updated {
		verb = "Updated existing entry"
	}
	_, _ = fmt.Fprintf(deps.Stdout, "%s: %s %s on %s (normal %s, double %s, triple %s, night %s)\n",
		verb, e.EmployeeNumber, e.Name, cli.ShortDate(e.Date),
		cli.FormatHours(e.NormalOT), cli.FormatHours(e.DoubleOT), cli.FormatHours(e.TripleOT), e.Night)
}

// EditOvertime applies changes to entry id. Buckets are recomputed unless
// they were given explicitly.
func EditOvertime(ctx context.Context, deps *cli.Deps, id string, changes EntryChanges) {
	var dateErr error
	updated, err := deps.Services.Overtime.Edit(ctx, id, !changes.manualBuckets(), func(e *overtime.Entry) bool {
		changed := false
		setString := func(dst *string, src *string) {
			if src != nil {
				*dst = *src
				changed = true
			}
		}
		setHours := func(dst *float64, src *float64) {
			if src != nil {
				*dst = *src
				changed = true
			}
		}
		if changes.Date != nil {
			day, err := timeutil.ParseDate(*changes.Date)
			if err != nil {
				dateErr = err
				return false
			}
			e.Date = day.Format(overtime.DateLayout)
			changed = true
		}
		setString(&e.Shift, changes.Shift)
		setString(&e.InTime, changes.In)
		setString(&e.OutTime, changes.Out)
		setString(&e.Reason, changes.Reason)
		setHours(&e.NormalOT, changes.Normal)
		setHours(&e.DoubleOT, changes.Double)
		setHours(&e.TripleOT, changes.Triple)
		return changed
	})
	switch {
	case dateErr != nil:
		cli.Fail(deps, "Invalid date", dateErr, "")
		return
	case errors.Is(err, service.ErrNoChangesApplied):
		cli.Fail(deps, "Nothing to change", nil, "Pass at least one of --date, --shift, --in, --out, --reason, --normal, --double, --triple")
		return
	case err != nil:
		cli.Fail(deps, "Failed to update overtime", err, "")
		return
	}
	_, _ = fmt.Fprintln(deps.Stdout, "Updated:")
	_, _ = fmt.Fprintln(deps.Stdout, cli.FormatEntryRow(*updated))
}

// DeleteOvertime removes entry id after confirmation unless yes is set.
func DeleteOvertime(ctx context.Context, deps *cli.Deps, id string, yes bool) {
	e, err := deps.Services.Overtime.Get(ctx, id)
	if err != nil {
		cli.Fail(deps, "Failed to find overtime entry", err, "List entries with: otdash ot list")
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Entry to delete:")
	_, _ = fmt.Fprintf(deps.Stdout, "  %s\n", cli.FormatEntryRow(*e))
	if !yes && !cli.Confirm(deps, "Delete this entry?") {
		_, _ = fmt.Fprintln(deps.Stdout, "Deletion cancelled")
		return
	}

	if err := deps.Services.Overtime.Delete(ctx, id); err != nil {
		cli.Fail(deps, "Failed to delete overtime entry", err, "")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Deleted: %s on %s\n", e.EmployeeNumber, cli.ShortDate(e.Date))
}

// Approve approves entry id. A nil hours approves the entry's full total.
func Approve(ctx context.Context, deps *cli.Deps, id string, hours *float64, reason string) {
	e, err := deps.Services.Overtime.Approve(ctx, id, hours, reason)
	if err != nil {
		cli.Fail(deps, "Failed to approve overtime", err, "")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Approved: %s on %s (%s)\n", e.EmployeeNumber, cli.ShortDate(e.Date), cli.FormatHours(e.ApprovedOT))
}

// Reject rejects entry id.
func Reject(ctx context.Context, deps *cli.Deps, id, reason string) {
	if err := deps.Services.Overtime.Reject(ctx, id, reason); err != nil {
		cli.Fail(deps, "Failed to reject overtime", err, "")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Rejected: %s\n", id)
}
