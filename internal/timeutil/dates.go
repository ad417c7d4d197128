// Package timeutil parses and ranges calendar days and months. Overtime
// dates are calendar days, so every value here is a UTC midnight.
package timeutil

import (
	"fmt"
	"regexp"
	"time"
)

// MonthLayout is the "YYYY-MM" layout of month selectors.
const MonthLayout = "2006-01"

var (
	yearOnlyRe   = regexp.MustCompile(`^\d{4}$`)
	isoPartialRe = regexp.MustCompile(`^\d{4}-\d{1,2}$`)
	euroNoYearRe = regexp.MustCompile(`^\d{1,2}/\d{1,2}$`)
	tooManyRe    = regexp.MustCompile(`^\d+[-/]\d+[-/]\d+[-/]`)
)

// Day returns t's calendar day as UTC midnight.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses YYYY-MM-DD or DD/MM/YYYY into a UTC calendar day.
func ParseDate(input string) (time.Time, error) {
	if input == "" {
		return time.Time{}, fmt.Errorf("date cannot be empty (use format YYYY-MM-DD or DD/MM/YYYY, e.g., 2025-01-15 or 15/01/2025)")
	}
	if t, err := time.Parse("2006-01-02", input); err == nil {
		return t, nil
	}
	if t, err := time.Parse("02/01/2006", input); err == nil {
		return t, nil
	}

	switch {
	case yearOnlyRe.MatchString(input):
		return time.Time{}, fmt.Errorf("incomplete date '%s': missing month and day (use format YYYY-MM-DD, e.g., %s-01-15)", input, input)
	case isoPartialRe.MatchString(input):
		return time.Time{}, fmt.Errorf("incomplete date '%s': missing day (use format YYYY-MM-DD, e.g., %s-15)", input, input)
	case euroNoYearRe.MatchString(input):
		return time.Time{}, fmt.Errorf("incomplete date '%s': missing year (use format DD/MM/YYYY, e.g., %s/2025)", input, input)
	case tooManyRe.MatchString(input):
		return time.Time{}, fmt.Errorf("invalid date '%s': too many date parts (use format YYYY-MM-DD or DD/MM/YYYY)", input)
	}
	return time.Time{}, fmt.Errorf("invalid date format '%s' (use YYYY-MM-DD or DD/MM/YYYY, e.g., 2025-01-15 or 15/01/2025)", input)
}

// ParseMonth parses YYYY-MM or MM/YYYY and returns the month's first day.
func ParseMonth(input string) (time.Time, error) {
	if input == "" {
		return time.Time{}, fmt.Errorf("month cannot be empty (use format YYYY-MM, e.g., 2025-01)")
	}
	if t, err := time.Parse(MonthLayout, input); err == nil {
		return t, nil
	}
	if t, err := time.Parse("01/2006", input); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid month '%s' (use YYYY-MM or MM/YYYY, e.g., 2025-01 or 01/2025)", input)
}

// MonthKey formats t's month as YYYY-MM.
func MonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}

// MonthRange returns the first and last calendar day of t's month.
func MonthRange(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1)
}

// ParseRange resolves the --month/--from/--to flag trio into an inclusive
// range of calendar days. month excludes from/to; with neither the current
// month of now is used. A missing --to means today.
func ParseRange(month, from, to string, now time.Time) (start, end time.Time, err error) {
	if month != "" && (from != "" || to != "") {
		return time.Time{}, time.Time{}, fmt.Errorf("cannot use --month with --from or --to")
	}

	if month != "" {
		m, err := ParseMonth(month)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start, end = MonthRange(m)
		return start, end, nil
	}

	if from == "" && to == "" {
		start, end = MonthRange(now)
		return start, end, nil
	}

	if from == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("--to requires --from")
	}
	start, err = ParseDate(from)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --from date: %w", err)
	}

	end = Day(now)
	if to != "" {
		end, err = ParseDate(to)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --to date: %w", err)
		}
	}

	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("--from date (%s) is after --to date (%s)",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	return start, end, nil
}

// DaysBetween returns every calendar day in [start, end].
func DaysBetween(start, end time.Time) []time.Time {
	var days []time.Time
	for d := Day(start); !d.After(Day(end)); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
