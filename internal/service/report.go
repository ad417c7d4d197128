package service

import (
	"context"
	"fmt"
	"time"

	"github.com/xolan/otdash/internal/api"
	"github.com/xolan/otdash/internal/overtime"
	"github.com/xolan/otdash/internal/stats"
	"github.com/xolan/otdash/internal/timeutil"
)

// ReportService provides OT summaries
type ReportService struct {
	client *api.Client
}

// NewReportService creates a new ReportService
func NewReportService(client *api.Client) *ReportService {
	return &ReportService{client: client}
}

// Month summarizes the month containing month. Entries are matched on the
// date text so a month never picks up entries of a neighbour.
func (s *ReportService) Month(ctx context.Context, month time.Time) (*Report, error) {
	entries, err := s.client.ListOvertime(ctx)
	if err != nil {
		return nil, err
	}
	key := timeutil.MonthKey(month)
	start, end := timeutil.MonthRange(month)
	return buildReport(stats.FilterMonth(entries, key), start, end, month.Format("January 2006")), nil
}

// Range summarizes the calendar days [start, end].
func (s *ReportService) Range(ctx context.Context, start, end time.Time) (*Report, error) {
	entries, err := s.client.ListOvertime(ctx)
	if err != nil {
		return nil, err
	}
	period := fmt.Sprintf("%s to %s", start.Format(overtime.DateLayout), end.Format(overtime.DateLayout))
	return buildReport(stats.FilterRange(entries, start, end), start, end, period), nil
}

func buildReport(entries []overtime.Entry, start, end time.Time, period string) *Report {
	return &Report{
		Period:     period,
		Start:      start,
		End:        end,
		Employees:  stats.GroupByEmployee(entries),
		Statistics: stats.CalculateStatistics(entries),
	}
}
