package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xolan/otdash/internal/api"
	"github.com/xolan/otdash/internal/config"
	"github.com/xolan/otdash/internal/overtime"
	"github.com/xolan/otdash/internal/stats"
)

// OvertimeService provides operations on overtime entries
type OvertimeService struct {
	client *api.Client
	auth   *AuthService
	shifts config.ShiftConfig
	logger *slog.Logger
}

// NewOvertimeService creates a new OvertimeService. shifts are the
// configured table overrides; backend OT settings are applied on top.
func NewOvertimeService(client *api.Client, auth *AuthService, shifts config.ShiftConfig, logger *slog.Logger) *OvertimeService {
	return &OvertimeService{client: client, auth: auth, shifts: shifts, logger: logger}
}

// List returns entries matching f in backend order.
func (s *OvertimeService) List(ctx context.Context, f ListFilter) ([]overtime.Entry, error) {
	entries, err := s.client.ListOvertime(ctx)
	if err != nil {
		return nil, err
	}
	return applyFilter(entries, f), nil
}

// Pending returns the entries awaiting approval.
func (s *OvertimeService) Pending(ctx context.Context) ([]overtime.Entry, error) {
	return s.client.PendingOvertime(ctx)
}

// Calculator builds a calculator from the default shift tables, the
// configured overrides, the backend OT settings and the backend triple-OT
// dates, in that order of precedence. Missing backend settings are not an
// error.
func (s *OvertimeService) Calculator(ctx context.Context) (overtime.Calculator, error) {
	dates, err := s.client.ListTripleOT(ctx)
	if err != nil {
		return overtime.Calculator{}, fmt.Errorf("loading triple OT dates: %w", err)
	}
	days := make([]string, 0, len(dates))
	for _, d := range dates {
		days = append(days, d.Date)
	}

	tables := overtime.DefaultShiftTables().Merge(s.shifts.WeekdayOTStart, s.shifts.SaturdayShiftHours)
	stored, err := s.client.OTSettings(ctx)
	if err != nil {
		s.logger.Warn("OT settings unavailable, using configured shift tables", "error", err)
	} else {
		tables = tables.Merge(stored.WeekdayOTStart, stored.SaturdayShiftHours)
	}

	return overtime.NewCalculator(tables, overtime.NewDateSet(days...)), nil
}

// Calculate returns in as it would be saved, without saving it.
func (s *OvertimeService) Calculate(ctx context.Context, in SaveInput) (overtime.Entry, error) {
	if in.NoOT {
		return overtime.ApplyNoOT(in.Entry), nil
	}
	calc, err := s.Calculator(ctx)
	if err != nil {
		return overtime.Entry{}, err
	}
	return calc.Refresh(in.Entry, in.Auto), nil
}

// Save validates and computes in, then creates it. When the employee already
// has an entry on the same calendar day that entry is updated instead.
func (s *OvertimeService) Save(ctx context.Context, in SaveInput) (*SaveResult, error) {
	if err := validateEntry(in); err != nil {
		return nil, err
	}
	user, err := s.auth.requireUser()
	if err != nil {
		return nil, err
	}

	e, err := s.Calculate(ctx, in)
	if err != nil {
		return nil, err
	}
	day, _ := e.Day()
	e.Date = day.Format(overtime.DateLayout)
	e.Status = overtime.StatusPending
	e.ID = ""

	existing, err := s.client.ListOvertime(ctx)
	if err != nil {
		return nil, err
	}
	if dup, ok := findSameDay(existing, e.EmployeeNumber, day.Format(overtime.DateLayout)); ok {
		updated, err := s.client.UpdateOvertime(ctx, dup.ID, e, user)
		if err != nil {
			return nil, err
		}
		s.logger.Info("overtime updated", "id", dup.ID, "employee", e.EmployeeNumber, "date", e.Date)
		return &SaveResult{Entry: *updated, Updated: true}, nil
	}

	created, err := s.client.CreateOvertime(ctx, e, user)
	if err != nil {
		return nil, err
	}
	s.logger.Info("overtime created", "id", created.ID, "employee", e.EmployeeNumber, "date", e.Date)
	return &SaveResult{Entry: *created}, nil
}

// Edit applies edit to entry id and saves it. The OT buckets are recomputed
// when auto is set.
func (s *OvertimeService) Edit(ctx context.Context, id string, auto bool, edit func(*overtime.Entry) bool) (*overtime.Entry, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !edit(current) {
		return nil, ErrNoChangesApplied
	}
	user, err := s.auth.requireUser()
	if err != nil {
		return nil, err
	}

	e, err := s.Calculate(ctx, SaveInput{Entry: *current, Auto: auto})
	if err != nil {
		return nil, err
	}
	return s.client.UpdateOvertime(ctx, id, e, user)
}

// Get returns entry id.
func (s *OvertimeService) Get(ctx context.Context, id string) (*overtime.Entry, error) {
	entries, err := s.client.ListOvertime(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
}

// Approve approves entry id. A nil approvedOT approves the entry's full
// normal+double+triple total; an empty reason keeps the entry's reason.
func (s *OvertimeService) Approve(ctx context.Context, id string, approvedOT *float64, reason string) (*overtime.Entry, error) {
	user, err := s.auth.requireUser()
	if err != nil {
		return nil, err
	}
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	hours := e.TotalOT()
	if approvedOT != nil {
		hours = *approvedOT
	}
	if hours < 0 {
		return nil, fmt.Errorf("approved OT cannot be negative: %v", hours)
	}
	if reason == "" {
		reason = e.Reason
	}

	if err := s.client.ApproveOvertime(ctx, id, api.Decision{ApprovedOT: &hours, Reason: reason}, user); err != nil {
		return nil, err
	}
	e.Status = overtime.StatusApproved
	e.ApprovedOT = hours
	e.Reason = reason
	s.logger.Info("overtime approved", "id", id, "approvedot", hours, "by", user)
	return e, nil
}

// Reject rejects entry id with an optional reason.
func (s *OvertimeService) Reject(ctx context.Context, id, reason string) error {
	user, err := s.auth.requireUser()
	if err != nil {
		return err
	}
	if err := s.client.RejectOvertime(ctx, id, api.Decision{Reason: reason}, user); err != nil {
		return err
	}
	s.logger.Info("overtime rejected", "id", id, "by", user)
	return nil
}

// Delete removes entry id.
func (s *OvertimeService) Delete(ctx context.Context, id string) error {
	user, err := s.auth.requireUser()
	if err != nil {
		return err
	}
	if err := s.client.DeleteOvertime(ctx, id, user); err != nil {
		return err
	}
	s.logger.Info("overtime deleted", "id", id, "by", user)
	return nil
}

// AuditLogs returns the overtime audit trail.
func (s *OvertimeService) AuditLogs(ctx context.Context) ([]api.AuditLog, error) {
	return s.client.OvertimeAuditLogs(ctx)
}

func validateEntry(in SaveInput) error {
	e := in.Entry
	var missing []string
	required := []struct {
		name   string
		value  string
		always bool
	}{
		{"employeeNumber", e.EmployeeNumber, true},
		{"name", e.Name, true},
		{"date", e.Date, true},
		{"shift", e.Shift, false},
		{"intime", e.InTime, false},
		{"outtime", e.OutTime, false},
		{"reason", e.Reason, false},
	}
	for _, f := range required {
		if (f.always || !in.NoOT) && strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}

	if _, ok := e.Day(); !ok {
		return fmt.Errorf("invalid date %q: use YYYY-MM-DD", e.Date)
	}
	if !in.NoOT {
		if _, ok := overtime.ParseClock(e.InTime); !ok {
			return fmt.Errorf("invalid in time %q: use HH:MM", e.InTime)
		}
		if _, ok := overtime.ParseClock(e.OutTime); !ok {
			return fmt.Errorf("invalid out time %q: use HH:MM", e.OutTime)
		}
	}
	return nil
}

func findSameDay(entries []overtime.Entry, employeeNumber, day string) (overtime.Entry, bool) {
	for _, e := range entries {
		if e.EmployeeNumber != employeeNumber {
			continue
		}
		if d, ok := e.Day(); ok && d.Format(overtime.DateLayout) == day {
			return e, true
		}
	}
	return overtime.Entry{}, false
}

func applyFilter(entries []overtime.Entry, f ListFilter) []overtime.Entry {
	out := []overtime.Entry{}
	for _, e := range entries {
		if f.Month != "" && !stats.InMonth(e, f.Month) {
			continue
		}
		if !f.Start.IsZero() && !f.End.IsZero() && !stats.InRange(e, f.Start, f.End) {
			continue
		}
		if f.EmployeeNumber != "" && !strings.EqualFold(e.EmployeeNumber, f.EmployeeNumber) {
			continue
		}
		if f.Status != "" {
			status := e.Status
			if status == "" {
				status = overtime.StatusPending
			}
			if status != f.Status {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}
