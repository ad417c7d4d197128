package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xolan/otdash/internal/cli"
	"github.com/xolan/otdash/internal/overtime"
	"github.com/xolan/otdash/internal/service"
)

// ReportMonth shows per-employee OT totals for the month containing month.
func ReportMonth(ctx context.Context, deps *cli.Deps, month time.Time) {
	report, err := deps.Services.Report.Month(ctx, month)
	if err != nil {
		cli.Fail(deps, "Failed to build report", err, "")
		return
	}
	printReport(deps, report)
}

// ReportRange shows per-employee OT totals for [start, end].
func ReportRange(ctx context.Context, deps *cli.Deps, start, end time.Time) {
	report, err := deps.Services.Report.Range(ctx, start, end)
	if err != nil {
		cli.Fail(deps, "Failed to build report", err, "")
		return
	}
	printReport(deps, report)
}

func printReport(deps *cli.Deps, r *service.Report) {
	if len(r.Employees) == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No overtime found for %s\n", r.Period)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Overtime report for %s (%s):\n", r.Period, cli.FormatDateRangeForDisplay(r.Start, r.End))
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 78))
	_, _ = fmt.Fprintf(deps.Stdout, "  %-10s  %-22s  %7s  %7s  %7s  %7s  %7s\n",
		"Emp#", "Name", "Entries", "Normal", "Double", "Triple", "Total")
	for _, emp := range r.Employees {
		_, _ = fmt.Fprintf(deps.Stdout, "  %-10s  %-22s  %7d  %7.2f  %7.2f  %7.2f  %7.2f\n",
			emp.EmployeeNumber, emp.Name, emp.EntryCount, emp.NormalOT, emp.DoubleOT, emp.TripleOT, emp.Total())
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 78))

	s := r.Statistics
	_, _ = fmt.Fprintf(deps.Stdout, "  %-10s  %-22s  %7d  %7.2f  %7.2f  %7.2f  %7.2f\n",
		"Total", "", s.EntryCount, s.NormalOT, s.DoubleOT, s.TripleOT, s.Total())
	_, _ = fmt.Fprintln(deps.Stdout)
	_, _ = fmt.Fprintf(deps.Stdout, "%d %s across %d %s on %d %s (%d pending, %d approved, %d rejected)\n",
		s.EntryCount, cli.Pluralize("entry", s.EntryCount),
		s.Employees, cli.Pluralize("employee", s.Employees),
		s.DaysWithOT, cli.Pluralize("day", s.DaysWithOT),
		s.StatusCounts[overtime.StatusPending], s.StatusCounts[overtime.StatusApproved], s.StatusCounts[overtime.StatusRejected])
}
