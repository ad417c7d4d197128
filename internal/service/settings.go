package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xolan/otdash/internal/api"
	"github.com/xolan/otdash/internal/config"
	"github.com/xolan/otdash/internal/overtime"
	"github.com/xolan/otdash/internal/timeutil"
)

// SettingsService manages triple-OT dates, OT settings and overtime reasons
type SettingsService struct {
	client *api.Client
	shifts config.ShiftConfig
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(client *api.Client, shifts config.ShiftConfig) *SettingsService {
	return &SettingsService{client: client, shifts: shifts}
}

func (s *SettingsService) TripleOTDates(ctx context.Context) ([]api.TripleOTDate, error) {
	return s.client.ListTripleOT(ctx)
}

// AddTripleOT adds a triple-OT date given as YYYY-MM-DD or DD/MM/YYYY.
func (s *SettingsService) AddTripleOT(ctx context.Context, date, description string) (*api.TripleOTDate, error) {
	d, err := normalizeTripleOT(date, description)
	if err != nil {
		return nil, err
	}
	return s.client.CreateTripleOT(ctx, d)
}

func (s *SettingsService) UpdateTripleOT(ctx context.Context, id, date, description string) (*api.TripleOTDate, error) {
	d, err := normalizeTripleOT(date, description)
	if err != nil {
		return nil, err
	}
	return s.client.UpdateTripleOT(ctx, id, d)
}

func (s *SettingsService) DeleteTripleOT(ctx context.Context, id string) error {
	return s.client.DeleteTripleOT(ctx, id)
}

// OTSettings returns the stored shift tables and the tables the calculator
// will use once the defaults and configured overrides are merged under them.
func (s *SettingsService) OTSettings(ctx context.Context) (*EffectiveSettings, error) {
	stored, err := s.client.OTSettings(ctx)
	if err != nil {
		return nil, err
	}
	tables := overtime.DefaultShiftTables().
		Merge(s.shifts.WeekdayOTStart, s.shifts.SaturdayShiftHours).
		Merge(stored.WeekdayOTStart, stored.SaturdayShiftHours)
	return &EffectiveSettings{Tables: tables, Stored: *stored}, nil
}

// SetShift stores one shift's weekday OT start and/or Saturday hours. A nil
// value leaves that table untouched. Settings are created on first use.
func (s *SettingsService) SetShift(ctx context.Context, shift string, weekdayStart, saturdayHours *float64) (*api.OTSettings, error) {
	shift = strings.TrimSpace(shift)
	if shift == "" {
		return nil, &MissingFieldsError{Fields: []string{"shift"}}
	}
	if weekdayStart == nil && saturdayHours == nil {
		return nil, ErrNoChangesApplied
	}
	if weekdayStart != nil && (*weekdayStart < 0 || *weekdayStart >= 24) {
		return nil, fmt.Errorf("invalid weekday OT start %v: must be an hour of the day", *weekdayStart)
	}
	if saturdayHours != nil && (*saturdayHours < 0 || *saturdayHours > 24) {
		return nil, fmt.Errorf("invalid Saturday shift hours %v", *saturdayHours)
	}

	stored, err := s.client.OTSettings(ctx)
	if err != nil {
		return nil, err
	}
	exists := stored.WeekdayOTStart != nil || stored.SaturdayShiftHours != nil
	if stored.WeekdayOTStart == nil {
		stored.WeekdayOTStart = map[string]float64{}
	}
	if stored.SaturdayShiftHours == nil {
		stored.SaturdayShiftHours = map[string]float64{}
	}
	if weekdayStart != nil {
		stored.WeekdayOTStart[shift] = *weekdayStart
	}
	if saturdayHours != nil {
		stored.SaturdayShiftHours[shift] = *saturdayHours
	}

	if exists {
		err = s.client.UpdateOTSettings(ctx, *stored)
	} else {
		err = s.client.CreateOTSettings(ctx, *stored)
	}
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// ResetOTSettings deletes the stored settings. Missing settings are fine.
func (s *SettingsService) ResetOTSettings(ctx context.Context) error {
	err := s.client.DeleteOTSettings(ctx)
	if errors.Is(err, api.ErrNotFound) {
		return nil
	}
	return err
}

func (s *SettingsService) Reasons(ctx context.Context) ([]api.Reason, error) {
	return s.client.ListReasons(ctx)
}

// AddReason adds a selectable reason. Duplicates are rejected locally,
// ignoring case.
func (s *SettingsService) AddReason(ctx context.Context, option string) (*api.Reason, error) {
	option = strings.TrimSpace(option)
	if option == "" {
		return nil, ErrEmptyReason
	}
	existing, err := s.client.ListReasons(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range existing {
		if strings.EqualFold(r.Option, option) {
			return nil, fmt.Errorf("reason %q already exists", r.Option)
		}
	}
	return s.client.AddReason(ctx, option)
}

func (s *SettingsService) DeleteReason(ctx context.Context, id string) error {
	return s.client.DeleteReason(ctx, id)
}

func normalizeTripleOT(date, description string) (api.TripleOTDate, error) {
	day, err := timeutil.ParseDate(strings.TrimSpace(date))
	if err != nil {
		return api.TripleOTDate{}, err
	}
	return api.TripleOTDate{
		Date:        day.Format(overtime.DateLayout),
		Description: strings.TrimSpace(description),
	}, nil
}
