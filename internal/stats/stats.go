package stats

import (
	"sort"
	"time"

	"github.com/xolan/otdash/internal/overtime"
)

// Totals are the summed OT buckets of a set of entries, in hours.
type Totals struct {
	NormalOT   float64
	DoubleOT   float64
	TripleOT   float64
	EntryCount int
}

// Total returns the sum of the three buckets.
func (t Totals) Total() float64 {
	return t.NormalOT + t.DoubleOT + t.TripleOT
}

func (t *Totals) add(e overtime.Entry) {
	t.NormalOT += e.NormalOT
	t.DoubleOT += e.DoubleOT
	t.TripleOT += e.TripleOT
	t.EntryCount++
}

// EmployeeSummary contains one employee's entries and totals for a period
type EmployeeSummary struct {
	EmployeeNumber string
	Name           string
	Entries        []overtime.Entry
	Totals
}

// Statistics contains the period totals and per-status counts
type Statistics struct {
	Totals
	Employees    int
	DaysWithOT   int
	StatusCounts map[overtime.Status]int
}

// InMonth reports whether the entry's date falls in the given "YYYY-MM"
// month. The comparison is on the date text so the calendar day sent by
// the backend is never shifted by a time zone.
func InMonth(e overtime.Entry, month string) bool {
	return len(e.Date) >= 7 && e.Date[:7] == month
}

// InRange reports whether the entry's calendar day is within [start, end],
// both inclusive and compared as calendar days.
func InRange(e overtime.Entry, start, end time.Time) bool {
	day, ok := e.Day()
	if !ok {
		return false
	}
	from := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return !day.Before(from) && !day.After(to)
}

// FilterMonth returns the entries dated in month ("YYYY-MM").
func FilterMonth(entries []overtime.Entry, month string) []overtime.Entry {
	out := []overtime.Entry{}
	for _, e := range entries {
		if InMonth(e, month) {
			out = append(out, e)
		}
	}
	return out
}

// FilterRange returns the entries dated within [start, end].
func FilterRange(entries []overtime.Entry, start, end time.Time) []overtime.Entry {
	out := []overtime.Entry{}
	for _, e := range entries {
		if InRange(e, start, end) {
			out = append(out, e)
		}
	}
	return out
}

// CalculateTotals sums the buckets of every entry regardless of status.
func CalculateTotals(entries []overtime.Entry) Totals {
	var t Totals
	for _, e := range entries {
		t.add(e)
	}
	return t
}

// CalculateStatistics computes period totals plus distinct employees, days
// with OT and a count per status. Entries without a status count as pending.
func CalculateStatistics(entries []overtime.Entry) Statistics {
	s := Statistics{StatusCounts: map[overtime.Status]int{}}
	employees := make(map[string]bool)
	days := make(map[string]bool)

	for _, e := range entries {
		s.add(e)
		if e.EmployeeNumber != "" {
			employees[e.EmployeeNumber] = true
		}
		if e.TotalOT() > 0 {
			if day, ok := e.Day(); ok {
				days[day.Format(overtime.DateLayout)] = true
			}
		}
		status := e.Status
		if status == "" {
			status = overtime.StatusPending
		}
		s.StatusCounts[status]++
	}

	s.Employees = len(employees)
	s.DaysWithOT = len(days)
	return s
}

// GroupByEmployee groups entries by employee number, sorted by number.
// Entries within a group are sorted by date. Entries without an employee
// number are skipped.
func GroupByEmployee(entries []overtime.Entry) []EmployeeSummary {
	groups := make(map[string]*EmployeeSummary)

	for _, e := range entries {
		if e.EmployeeNumber == "" {
			continue
		}
		g, exists := groups[e.EmployeeNumber]
		if !exists {
			g = &EmployeeSummary{EmployeeNumber: e.EmployeeNumber}
			groups[e.EmployeeNumber] = g
		}
		if g.Name == "" {
			g.Name = e.Name
		}
		g.Entries = append(g.Entries, e)
		g.add(e)
	}

	summaries := make([]EmployeeSummary, 0, len(groups))
	for _, g := range groups {
		sort.SliceStable(g.Entries, func(i, j int) bool {
			return g.Entries[i].Date < g.Entries[j].Date
		})
		summaries = append(summaries, *g)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].EmployeeNumber < summaries[j].EmployeeNumber
	})

	return summaries
}
