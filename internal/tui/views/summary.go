package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/otdash/internal/cli"
	"github.com/xolan/otdash/internal/overtime"
	"github.com/xolan/otdash/internal/service"
	"github.com/xolan/otdash/internal/timeutil"
	"github.com/xolan/otdash/internal/tui/ui"
)

// SummaryModel shows a month's OT totals per employee
type SummaryModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap
	now      func() time.Time

	width   int
	height  int
	month   time.Time
	report  *service.Report
	loading bool
	err     error
}

// NewSummaryModel creates a new summary view model for the current month
func NewSummaryModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) SummaryModel {
	m := SummaryModel{
		services: services,
		styles:   styles,
		keys:     keys,
		now:      time.Now,
		loading:  true,
	}
	m.month, _ = timeutil.MonthRange(m.now())
	return m
}

// reportLoadedMsg is sent when the month report is built
type reportLoadedMsg struct {
	month  time.Time
	report *service.Report
	err    error
}

// Init implements tea.Model
func (m SummaryModel) Init() tea.Cmd {
	return m.loadReport()
}

// Update implements tea.Model
func (m SummaryModel) Update(msg tea.Msg) (SummaryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.PrevMonth):
			m.month = m.month.AddDate(0, -1, 0)
			return m, m.loadReport()
		case key.Matches(msg, m.keys.NextMonth):
			m.month = m.month.AddDate(0, 1, 0)
			return m, m.loadReport()
		case key.Matches(msg, m.keys.ThisMonth):
			m.month, _ = timeutil.MonthRange(m.now())
			return m, m.loadReport()
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadReport()
		}

	case reportLoadedMsg:
		if !msg.month.Equal(m.month) {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.report = msg.report
		}

	case ui.DataChangedMsg:
		return m, m.loadReport()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
	}

	return m, nil
}

// View implements tea.Model
func (m SummaryModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Summary for " + m.month.Format("January 2006")))
	b.WriteString("\n")

	if m.loading {
		b.WriteString("Loading...")
		return b.String()
	}

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		return b.String()
	}

	if m.report == nil || len(m.report.Employees) == 0 {
		b.WriteString(m.styles.StatLabel.Render("No overtime recorded"))
		return b.String()
	}

	st := m.report.Statistics
	b.WriteString(m.renderStat("Total OT:", cli.FormatHours(st.Total())))
	b.WriteString(m.renderStat("Normal:", cli.FormatHours(st.NormalOT)))
	b.WriteString(m.renderStat("Double:", cli.FormatHours(st.DoubleOT)))
	b.WriteString(m.renderStat("Triple:", cli.FormatHours(st.TripleOT)))
	b.WriteString(m.renderStat("Entries:", fmt.Sprintf("%d across %d %s on %d %s",
		st.EntryCount, st.Employees, cli.Pluralize("employee", st.Employees),
		st.DaysWithOT, cli.Pluralize("day", st.DaysWithOT))))
	b.WriteString(m.styles.StatLabel.Render("Status:"))
	b.WriteString(fmt.Sprintf("%s  %s  %s\n",
		m.styles.Pending.Render(fmt.Sprintf("%d pending", st.StatusCounts[overtime.StatusPending])),
		m.styles.Approved.Render(fmt.Sprintf("%d approved", st.StatusCounts[overtime.StatusApproved])),
		m.styles.Rejected.Render(fmt.Sprintf("%d rejected", st.StatusCounts[overtime.StatusRejected]))))

	b.WriteString("\n")
	b.WriteString(m.styles.Header.Render("By employee"))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", min(60, m.width)))
	b.WriteString("\n")

	maxNameWidth := 0
	for _, e := range m.report.Employees {
		maxNameWidth = max(maxNameWidth, len(employeeLabel(e.EmployeeNumber, e.Name)))
	}
	for _, e := range m.report.Employees {
		b.WriteString(fmt.Sprintf("%s  %s  %s\n",
			m.styles.Employee.Render(fmt.Sprintf("%-*s", maxNameWidth, employeeLabel(e.EmployeeNumber, e.Name))),
			m.styles.Hours.Render(fmt.Sprintf("%7s", cli.FormatHours(e.Total()))),
			m.styles.StatLabel.UnsetWidth().Render(fmt.Sprintf("(N %s, D %s, T %s; %d %s)",
				cli.FormatHours(e.NormalOT), cli.FormatHours(e.DoubleOT), cli.FormatHours(e.TripleOT),
				e.EntryCount, cli.Pluralize("entry", e.EntryCount)))))
	}

	return b.String()
}

func (m SummaryModel) renderStat(label, value string) string {
	return m.styles.StatLabel.Render(label) + m.styles.StatValue.Render(value) + "\n"
}

func employeeLabel(number, name string) string {
	if name == "" {
		return number
	}
	return number + " " + name
}

// SetSize sets the view dimensions
func (m *SummaryModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Month returns the first day of the month shown
func (m SummaryModel) Month() time.Time {
	return m.month
}

func (m SummaryModel) loadReport() tea.Cmd {
	month := m.month
	return func() tea.Msg {
		report, err := m.services.Report.Month(context.Background(), month)
		return reportLoadedMsg{month: month, report: report, err: err}
	}
}
