// Package overtime models overtime entries and computes their OT hour buckets.
package overtime

import (
	"time"
)

// Status is the approval state of an overtime entry.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// Night flag values as stored by the backend.
const (
	NightYes = "Yes"
	NightNo  = "No"
)

// NoOTReason is the reason recorded for entries saved in "No OT" mode.
const NoOTReason = "No OT"

// DateLayout is the calendar date layout used on the wire.
const DateLayout = "2006-01-02"

// Entry is an overtime record as exchanged with the backend.
type Entry struct {
	ID             string  `json:"_id,omitempty"`
	EmployeeNumber string  `json:"employeeNumber"`
	Name           string  `json:"name,omitempty"`
	Date           string  `json:"date"`
	Shift          string  `json:"shift"`
	InTime         string  `json:"intime"`
	OutTime        string  `json:"outtime"`
	NormalOT       float64 `json:"normalot"`
	DoubleOT       float64 `json:"doubleot"`
	TripleOT       float64 `json:"tripleot"`
	Night          string  `json:"night"`
	Reason         string  `json:"reason,omitempty"`
	Status         Status  `json:"status,omitempty"`
	ApprovedOT     float64 `json:"approvedot,omitempty"`
}

// Day returns the calendar day of the entry. The backend may send either a
// bare date or a full ISO timestamp; only the date part is significant.
func (e Entry) Day() (time.Time, bool) {
	return ParseDay(e.Date)
}

// TotalOT returns the sum of all three buckets.
func (e Entry) TotalOT() float64 {
	return e.NormalOT + e.DoubleOT + e.TripleOT
}

// ParseDay parses the leading YYYY-MM-DD of s as a UTC calendar day.
func ParseDay(s string) (time.Time, bool) {
	if len(s) < len(DateLayout) {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s[:len(DateLayout)])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ApplyNoOT returns e in "No OT" mode: times and shift cleared, every bucket
// zeroed and the reason fixed. The calculator is not consulted.
func ApplyNoOT(e Entry) Entry {
	e.Shift = ""
	e.InTime = ""
	e.OutTime = ""
	e.NormalOT = 0
	e.DoubleOT = 0
	e.TripleOT = 0
	e.Night = NightNo
	e.Reason = NoOTReason
	return e
}

// DateSet is a set of calendar days.
type DateSet map[string]struct{}

// NewDateSet builds a DateSet from date strings. Unparseable values are skipped.
func NewDateSet(dates ...string) DateSet {
	set := make(DateSet, len(dates))
	for _, d := range dates {
		if day, ok := ParseDay(d); ok {
			set[day.Format(DateLayout)] = struct{}{}
		}
	}
	return set
}

// Contains reports whether day is in the set.
func (s DateSet) Contains(day time.Time) bool {
	_, ok := s[day.Format(DateLayout)]
	return ok
}
