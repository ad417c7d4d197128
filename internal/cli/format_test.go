package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/xolan/otdash/internal/overtime"
	"github.com/xolan/otdash/internal/stats"
)

func TestFormatHours(t *testing.T) {
	tests := []struct {
		hours float64
		want  string
	}{
		{0, "0h"},
		{0.25, "0.25h"},
		{1.5, "1.5h"},
		{10, "10h"},
		{10.75, "10.75h"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatHours(tt.hours); got != tt.want {
				t.Errorf("FormatHours(%v) = %q, want %q", tt.hours, got, tt.want)
			}
		})
	}
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{-time.Second, "0s"},
		{45 * time.Second, "45s"},
		{5 * time.Minute, "5m"},
		{59*time.Minute + 59*time.Second, "59m"},
		{time.Hour, "1h"},
		{83 * time.Minute, "1h 23m"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatRemaining(tt.d); got != tt.want {
				t.Errorf("FormatRemaining(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{-3, "0:00"},
		{0, "0:00"},
		{5, "0:05"},
		{55, "0:55"},
		{60, "1:00"},
		{125, "2:05"},
	}

	for _, tt := range tests {
		if got := FormatCountdown(tt.seconds); got != tt.want {
			t.Errorf("FormatCountdown(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatExpiry(t *testing.T) {
	now := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)

	if got := FormatExpiry(now.Add(time.Hour), now); got != "today at 10:00:00 AM" {
		t.Errorf("same day: got %q", got)
	}
	if got := FormatExpiry(now.Add(24*time.Hour), now); got != "Thu Jan 16 at 9:00:00 AM" {
		t.Errorf("next day: got %q", got)
	}
}

func TestFormatDateRangeForDisplay(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  string
	}{
		{
			name:  "same day",
			start: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			want:  "Wed, Jan 15, 2025",
		},
		{
			name:  "same year",
			start: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
			want:  "Jan 1 - Jan 31, 2025",
		},
		{
			name:  "across years",
			start: time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
			want:  "Dec 20, 2024 - Jan 10, 2025",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDateRangeForDisplay(tt.start, tt.end); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPluralize(t *testing.T) {
	tests := []struct {
		word  string
		count int
		want  string
	}{
		{"entry", 1, "entry"},
		{"entry", 0, "entries"},
		{"entry", 2, "entries"},
		{"employee", 1, "employee"},
		{"employee", 3, "employees"},
	}

	for _, tt := range tests {
		if got := Pluralize(tt.word, tt.count); got != tt.want {
			t.Errorf("Pluralize(%q, %d) = %q, want %q", tt.word, tt.count, got, tt.want)
		}
	}
}

func TestShortDate(t *testing.T) {
	if got := ShortDate("2025-01-15T00:00:00.000Z"); got != "2025-01-15" {
		t.Errorf("ShortDate(iso) = %q", got)
	}
	if got := ShortDate("garbage"); got != "garbage" {
		t.Errorf("ShortDate(garbage) = %q", got)
	}
}

func TestFormatEntryRow(t *testing.T) {
	e := overtime.Entry{
		ID:             "65a1f0c2e4b0a1b2c3d4e5f6",
		EmployeeNumber: "E001",
		Date:           "2025-01-15T00:00:00.000Z",
		InTime:         "08:30",
		OutTime:        "19:10",
		NormalOT:       1.5,
		Night:          overtime.NightNo,
		Reason:         "Urgent order",
	}

	row := FormatEntryRow(e)
	for _, want := range []string{"E001", "2025-01-15", "08:30-19:10", "1.50", "Pending", "Urgent order"} {
		if !strings.Contains(row, want) {
			t.Errorf("expected %q in row %q", want, row)
		}
	}

	noOT := overtime.ApplyNoOT(e)
	if !strings.Contains(FormatEntryRow(noOT), "  -  ") {
		t.Errorf("expected '-' for missing times, got %q", FormatEntryRow(noOT))
	}
}

func TestFormatTotals(t *testing.T) {
	got := FormatTotals(stats.Totals{NormalOT: 1.5, DoubleOT: 2, TripleOT: 0.25})
	want := "Normal 1.5h  Double 2h  Triple 0.25h  (total 3.75h)"
	if got != want {
		t.Errorf("FormatTotals = %q, want %q", got, want)
	}
}
