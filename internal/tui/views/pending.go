package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/otdash/internal/cli"
	"github.com/xolan/otdash/internal/overtime"
	"github.com/xolan/otdash/internal/service"
	"github.com/xolan/otdash/internal/tui/ui"
)

// PendingModel is the approval queue
type PendingModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	width     int
	height    int
	entries   []overtime.Entry
	cursor    int
	loading   bool
	err       error
	rejecting bool
	reject    rejectPrompt
}

// NewPendingModel creates a new pending view model
func NewPendingModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) PendingModel {
	return PendingModel{
		services: services,
		styles:   styles,
		keys:     keys,
		loading:  true,
		reject:   newRejectPrompt(),
	}
}

// pendingLoadedMsg is sent when the pending feed is fetched
type pendingLoadedMsg struct {
	entries []overtime.Entry
	err     error
}

// Init implements tea.Model
func (m PendingModel) Init() tea.Cmd {
	return m.loadPending()
}

// Update implements tea.Model
func (m PendingModel) Update(msg tea.Msg) (PendingModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.rejecting {
			return m.handleRejectMode(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadPending()
		case key.Matches(msg, m.keys.Approve):
			if e, ok := m.selected(); ok {
				return m, approveEntry(m.services, e)
			}
		case key.Matches(msg, m.keys.Reject):
			if e, ok := m.selected(); ok {
				m.rejecting = true
				return m, m.reject.Open(e)
			}
		}
		return m, nil

	case pendingLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.setEntries(msg.entries)
		}
		return m, nil

	case ui.PendingMsg:
		m.loading = false
		m.err = nil
		m.setEntries(msg.Notification.Pending)
		return m, nil

	case ui.DataChangedMsg:
		return m, m.loadPending()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	if m.rejecting {
		var cmd tea.Cmd
		m.reject.input, cmd = m.reject.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m PendingModel) handleRejectMode(msg tea.KeyMsg) (PendingModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		e, reason := m.reject.entry, m.reject.Value()
		m.reject.Close()
		m.rejecting = false
		return m, rejectEntry(m.services, e, reason)
	case key.Matches(msg, m.keys.Back):
		m.reject.Close()
		m.rejecting = false
		return m, nil
	}

	var cmd tea.Cmd
	m.reject.input, cmd = m.reject.input.Update(msg)
	return m, cmd
}

func (m *PendingModel) setEntries(entries []overtime.Entry) {
	m.entries = entries
	if m.cursor >= len(m.entries) {
		m.cursor = max(0, len(m.entries)-1)
	}
}

// View implements tea.Model
func (m PendingModel) View() string {
	if m.rejecting {
		return m.reject.View(m.styles)
	}

	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render("Pending Approval"))
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString("Loading...")
	case m.err != nil:
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
	case len(m.entries) == 0:
		b.WriteString(m.styles.Success.Render("Nothing awaiting approval"))
	default:
		b.WriteString(RenderEntryList(m.entries, m.styles, EntryRenderOptions{
			Width:  m.width,
			Cursor: m.cursor,
		}))
		b.WriteString("\n")
		b.WriteString(m.styles.StatLabel.Render(fmt.Sprintf("%d %s awaiting approval",
			len(m.entries), cli.Pluralize("entry", len(m.entries)))))
	}
	return b.String()
}

// Count returns the number of pending entries shown
func (m PendingModel) Count() int {
	return len(m.entries)
}

// SetSize sets the view dimensions
func (m *PendingModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// IsInputMode returns true when the view is capturing keyboard input
func (m PendingModel) IsInputMode() bool {
	return m.rejecting
}

func (m PendingModel) selected() (overtime.Entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return overtime.Entry{}, false
	}
	return m.entries[m.cursor], true
}

func (m PendingModel) loadPending() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.services.Overtime.Pending(context.Background())
		return pendingLoadedMsg{entries: entries, err: err}
	}
}
