// Package service provides the business logic layer for otdash. It wraps
// the backend API client, the session store and manager, and the OT
// calculator, providing one API for both CLI and TUI frontends.
package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xolan/otdash/internal/api"
	"github.com/xolan/otdash/internal/overtime"
	"github.com/xolan/otdash/internal/stats"
)

// Common errors returned by the services
var (
	ErrNotLoggedIn      = errors.New("not logged in")
	ErrNoSessionExpiry  = errors.New("login response carries no usable session expiry")
	ErrEntryNotFound    = errors.New("overtime entry not found")
	ErrEmptyReason      = errors.New("reason cannot be empty")
	ErrInvalidWorkbook  = errors.New("downloaded export is not a readable workbook")
	ErrNoChangesApplied = errors.New("at least one change must be specified")
)

// MissingFieldsError lists required fields left empty.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// ListFilter narrows an overtime listing. Zero fields match everything.
type ListFilter struct {
	Month          string // "YYYY-MM"
	Start          time.Time
	End            time.Time
	EmployeeNumber string
	Status         overtime.Status
}

// SaveInput is an entry as typed by the user plus the entry-form switches.
type SaveInput struct {
	Entry overtime.Entry
	// NoOT saves the entry with every bucket zeroed and reason "No OT".
	NoOT bool
	// Auto recomputes the OT buckets; when false the typed buckets are kept
	// and only the night flag is refreshed.
	Auto bool
}

// SaveResult reports what Save did.
type SaveResult struct {
	Entry   overtime.Entry
	Updated bool // an entry for the same employee and day existed and was replaced
}

// Report contains OT totals for a period grouped by employee.
type Report struct {
	Period     string
	Start      time.Time
	End        time.Time
	Employees  []stats.EmployeeSummary
	Statistics stats.Statistics
}

// ExportResult describes a saved export.
type ExportResult struct {
	Path  string
	Sheet string
	Rows  int
	// LogErr is set when the download log could not be recorded. The
	// export itself succeeded.
	LogErr error
}

// Notification is the pending-approval feed state after a change.
type Notification struct {
	Pending []overtime.Entry
	// New is set when the pending count grew since the previous change.
	New bool
}

// EffectiveSettings are the shift tables the calculator will use and the
// values stored on the backend.
type EffectiveSettings struct {
	Tables overtime.ShiftTables
	Stored api.OTSettings
}
