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
	"github.com/xolan/otdash/internal/stats"
	"github.com/xolan/otdash/internal/timeutil"
	"github.com/xolan/otdash/internal/tui/ui"
)

// overtimeMode represents the current mode of the overtime view
type overtimeMode int

const (
	overtimeModeNormal overtimeMode = iota
	overtimeModeDelete
	overtimeModeReject
)

// OvertimeModel lists one month of overtime entries
type OvertimeModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap
	now      func() time.Time

	// UI state
	width   int
	height  int
	month   time.Time
	entries []overtime.Entry
	cursor  int
	loading bool
	err     error
	mode    overtimeMode
	reject  rejectPrompt
}

// NewOvertimeModel creates a new overtime view model showing the current month
func NewOvertimeModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) OvertimeModel {
	m := OvertimeModel{
		services: services,
		styles:   styles,
		keys:     keys,
		now:      time.Now,
		loading:  true,
		reject:   newRejectPrompt(),
	}
	m.month, _ = timeutil.MonthRange(m.now())
	return m
}

// overtimeLoadedMsg is sent when a month of entries is loaded
type overtimeLoadedMsg struct {
	month   time.Time
	entries []overtime.Entry
	err     error
}

// Init implements tea.Model
func (m OvertimeModel) Init() tea.Cmd {
	return m.loadEntries()
}

// Update implements tea.Model
func (m OvertimeModel) Update(msg tea.Msg) (OvertimeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case overtimeModeDelete:
			return m.handleDeleteMode(msg)
		case overtimeModeReject:
			return m.handleRejectMode(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
			return m, nil
		case key.Matches(msg, m.keys.PrevMonth):
			m.month = m.month.AddDate(0, -1, 0)
			m.cursor = 0
			return m, m.loadEntries()
		case key.Matches(msg, m.keys.NextMonth):
			m.month = m.month.AddDate(0, 1, 0)
			m.cursor = 0
			return m, m.loadEntries()
		case key.Matches(msg, m.keys.ThisMonth):
			m.month, _ = timeutil.MonthRange(m.now())
			m.cursor = 0
			return m, m.loadEntries()
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadEntries()
		case key.Matches(msg, m.keys.Approve):
			if e, ok := m.selected(); ok {
				return m, approveEntry(m.services, e)
			}
			return m, nil
		case key.Matches(msg, m.keys.Reject):
			if e, ok := m.selected(); ok {
				m.mode = overtimeModeReject
				return m, m.reject.Open(e)
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if _, ok := m.selected(); ok {
				m.mode = overtimeModeDelete
			}
			return m, nil
		}

	case overtimeLoadedMsg:
		if !msg.month.Equal(m.month) {
			// A reply for a month we already navigated away from
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.entries = msg.entries
			if m.cursor >= len(m.entries) {
				m.cursor = max(0, len(m.entries)-1)
			}
		}
		return m, nil

	case ui.DataChangedMsg:
		return m, m.loadEntries()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	if m.mode == overtimeModeReject {
		var cmd tea.Cmd
		m.reject.input, cmd = m.reject.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleDeleteMode handles key events when in delete confirmation mode
func (m OvertimeModel) handleDeleteMode(msg tea.KeyMsg) (OvertimeModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.mode = overtimeModeNormal
		if e, ok := m.selected(); ok {
			return m, deleteEntry(m.services, e)
		}
	case key.Matches(msg, m.keys.Back), msg.String() == "n", msg.String() == "N":
		m.mode = overtimeModeNormal
	}
	return m, nil
}

// handleRejectMode handles key events while the rejection reason is typed
func (m OvertimeModel) handleRejectMode(msg tea.KeyMsg) (OvertimeModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		e, reason := m.reject.entry, m.reject.Value()
		m.reject.Close()
		m.mode = overtimeModeNormal
		return m, rejectEntry(m.services, e, reason)
	case key.Matches(msg, m.keys.Back):
		m.reject.Close()
		m.mode = overtimeModeNormal
		return m, nil
	}

	var cmd tea.Cmd
	m.reject.input, cmd = m.reject.input.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m OvertimeModel) View() string {
	switch m.mode {
	case overtimeModeDelete:
		return m.renderDeleteConfirm()
	case overtimeModeReject:
		return m.reject.View(m.styles)
	}

	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render("Overtime for " + m.month.Format("January 2006")))
	b.WriteString("\n")

	if m.loading {
		b.WriteString("Loading...")
		return b.String()
	}

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		return b.String()
	}

	if len(m.entries) == 0 {
		b.WriteString(m.styles.StatLabel.Render("No overtime recorded"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.StatLabel.Render("Press [ or ] to change month"))
		return b.String()
	}

	b.WriteString(RenderEntryList(m.entries, m.styles, EntryRenderOptions{
		Width:  m.width,
		Cursor: m.cursor,
	}))

	b.WriteString(strings.Repeat("─", min(60, m.width)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s  %d %s",
		cli.FormatTotals(stats.CalculateTotals(m.entries)),
		len(m.entries),
		cli.Pluralize("entry", len(m.entries))))

	return b.String()
}

// renderDeleteConfirm renders the delete confirmation dialog
func (m OvertimeModel) renderDeleteConfirm() string {
	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render("Delete Overtime"))
	b.WriteString("\n\n")

	if e, ok := m.selected(); ok {
		b.WriteString(m.styles.Warning.Render("Are you sure you want to delete this entry?"))
		b.WriteString("\n\n")
		b.WriteString(renderEntrySummary(e, m.styles))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.StatLabel.Render("Press Y to confirm, N or Esc to cancel"))
	return b.String()
}

// SetSize sets the view dimensions
func (m *OvertimeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Month returns the first day of the month shown
func (m OvertimeModel) Month() time.Time {
	return m.month
}

// IsInputMode returns true when the view is capturing keyboard input
func (m OvertimeModel) IsInputMode() bool {
	return m.mode != overtimeModeNormal
}

func (m OvertimeModel) selected() (overtime.Entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return overtime.Entry{}, false
	}
	return m.entries[m.cursor], true
}

// loadEntries creates a command to load the month's entries
func (m OvertimeModel) loadEntries() tea.Cmd {
	month := m.month
	return func() tea.Msg {
		entries, err := m.services.Overtime.List(context.Background(), service.ListFilter{
			Month: timeutil.MonthKey(month),
		})
		return overtimeLoadedMsg{month: month, entries: entries, err: err}
	}
}
