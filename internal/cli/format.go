// Package cli provides the CLI presentation layer for otdash.
// It handles command-line output formatting and user interaction.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xolan/otdash/internal/overtime"
	"github.com/xolan/otdash/internal/stats"
)

// FormatHours formats an hour count without trailing zeros.
// Examples: "0h", "1.5h", "10.25h"
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64) + "h"
}

// FormatRemaining formats a duration until an event.
// Examples: "45s", "5m", "1h 23m"
func FormatRemaining(d time.Duration) string {
	if d < time.Minute {
		secs := int(d.Seconds())
		if secs < 0 {
			secs = 0
		}
		return fmt.Sprintf("%ds", secs)
	}
	totalMinutes := int(d.Minutes())
	if totalMinutes < 60 {
		return fmt.Sprintf("%dm", totalMinutes)
	}
	hours := totalMinutes / 60
	mins := totalMinutes % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

// FormatCountdown formats seconds as m:ss.
func FormatCountdown(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// FormatExpiry formats a session expiry relative to now.
func FormatExpiry(expires, now time.Time) string {
	local := expires.In(now.Location())
	clock := local.Format("3:04:05 PM")
	if local.Year() == now.Year() && local.YearDay() == now.YearDay() {
		return fmt.Sprintf("today at %s", clock)
	}
	return fmt.Sprintf("%s at %s", local.Format("Mon Jan 2"), clock)
}

// FormatDateRangeForDisplay formats a date range for human-readable display.
func FormatDateRangeForDisplay(start, end time.Time) string {
	if start.Format("2006-01-02") == end.Format("2006-01-02") {
		return start.Format("Mon, Jan 2, 2006")
	}
	if start.Year() == end.Year() {
		return fmt.Sprintf("%s - %s", start.Format("Jan 2"), end.Format("Jan 2, 2006"))
	}
	return fmt.Sprintf("%s - %s", start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006"))
}

// Pluralize returns the singular or plural form of a word based on count
func Pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	if strings.HasSuffix(word, "y") {
		return strings.TrimSuffix(word, "y") + "ies"
	}
	return word + "s"
}

// ShortDate returns the calendar part of a backend date value.
func ShortDate(date string) string {
	if day, ok := overtime.ParseDay(date); ok {
		return day.Format(overtime.DateLayout)
	}
	return date
}

// FormatTimes formats the in/out pair of an entry, "-" when absent.
func FormatTimes(e overtime.Entry) string {
	if e.InTime == "" && e.OutTime == "" {
		return "-"
	}
	return e.InTime + "-" + e.OutTime
}

// EntryHeader is the column header matching FormatEntryRow.
func EntryHeader() string {
	return fmt.Sprintf("%-24s  %-8s  %-10s  %-11s  %6s  %6s  %6s  %-5s  %-8s  %s",
		"ID", "Emp#", "Date", "Times", "Normal", "Double", "Triple", "Night", "Status", "Reason")
}

// FormatEntryRow formats an overtime entry as one table row.
func FormatEntryRow(e overtime.Entry) string {
	status := string(e.Status)
	if status == "" {
		status = string(overtime.StatusPending)
	}
	return fmt.Sprintf("%-24s  %-8s  %-10s  %-11s  %6.2f  %6.2f  %6.2f  %-5s  %-8s  %s",
		e.ID, e.EmployeeNumber, ShortDate(e.Date), FormatTimes(e),
		e.NormalOT, e.DoubleOT, e.TripleOT, e.Night, status, e.Reason)
}

// FormatTotals formats the three OT buckets on one line.
func FormatTotals(t stats.Totals) string {
	return fmt.Sprintf("Normal %s  Double %s  Triple %s  (total %s)",
		FormatHours(t.NormalOT), FormatHours(t.DoubleOT), FormatHours(t.TripleOT), FormatHours(t.Total()))
}
