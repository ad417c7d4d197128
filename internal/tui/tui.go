// Package tui provides the Terminal User Interface for otdash.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xolan/otdash/internal/cli"
	"github.com/xolan/otdash/internal/service"
	"github.com/xolan/otdash/internal/session"
	"github.com/xolan/otdash/internal/tui/ui"
	"github.com/xolan/otdash/internal/tui/views"
)

// Tab represents a view tab
type Tab int

const (
	TabOvertime Tab = iota
	TabPending
	TabSummary
	TabSession
	TabConfig
)

var tabNames = []string{"Overtime", "Pending", "Summary", "Session", "Config"}

// urgentSeconds is when the expiry banner switches to the urgent style.
const urgentSeconds = 10

// Model is the root TUI model
type Model struct {
	// Services
	services *service.Services

	// UI state
	activeTab Tab
	width     int
	height    int
	showHelp  bool

	// Session and pending feed state
	sessionCh    chan session.Event
	pendingCh    chan service.Notification
	sessionEvent session.Event
	pendingCount int
	flash        ui.FlashMsg
	exitReason   string

	// View models
	overtimeView views.OvertimeModel
	pendingView  views.PendingModel
	summaryView  views.SummaryModel
	sessionView  views.SessionModel
	configView   views.ConfigModel

	// Theme and styles
	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap
}

// New creates a new TUI model
func New(services *service.Services) Model {
	themeProvider := ui.NewThemeProvider(services.Config.Get().Theme)
	styles := themeProvider.Styles()
	keys := ui.DefaultKeyMap()

	return Model{
		services:      services,
		activeTab:     TabOvertime,
		sessionCh:     make(chan session.Event, 8),
		pendingCh:     make(chan service.Notification, 1),
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		overtimeView:  views.NewOvertimeModel(services, styles, keys),
		pendingView:   views.NewPendingModel(services, styles, keys),
		summaryView:   views.NewSummaryModel(services, styles, keys),
		sessionView:   views.NewSessionModel(services, styles, keys),
		configView:    views.NewConfigModel(services, themeProvider, styles, keys),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.overtimeView.Init(),
		m.pendingView.Init(),
		m.sessionView.Init(),
		waitForSession(m.sessionCh),
		waitForPending(m.pendingCh),
	)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.flash = ui.FlashMsg{}

		// An open form or confirmation blocks every global key but ctrl+c
		capturingKeys := m.isCapturingKeys()
		if capturingKeys && msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		switch {
		case key.Matches(msg, m.keys.Quit) && !capturingKeys:
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help) && !capturingKeys:
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.NextTab) && !capturingKeys:
			return m.switchTab(Tab((int(m.activeTab) + 1) % len(tabNames)))

		case key.Matches(msg, m.keys.PrevTab) && !capturingKeys:
			return m.switchTab(Tab((int(m.activeTab) - 1 + len(tabNames)) % len(tabNames)))

		case key.Matches(msg, m.keys.Tab1) && !capturingKeys:
			return m.switchTab(TabOvertime)

		case key.Matches(msg, m.keys.Tab2) && !capturingKeys:
			return m.switchTab(TabPending)

		case key.Matches(msg, m.keys.Tab3) && !capturingKeys:
			return m.switchTab(TabSummary)

		case key.Matches(msg, m.keys.Tab4) && !capturingKeys:
			return m.switchTab(TabSession)

		case key.Matches(msg, m.keys.Tab5) && !capturingKeys:
			return m.switchTab(TabConfig)
		}

		// Keys only go to the active view
		var cmd tea.Cmd
		switch m.activeTab {
		case TabOvertime:
			m.overtimeView, cmd = m.overtimeView.Update(msg)
		case TabPending:
			m.pendingView, cmd = m.pendingView.Update(msg)
		case TabSummary:
			m.summaryView, cmd = m.summaryView.Update(msg)
		case TabSession:
			m.sessionView, cmd = m.sessionView.Update(msg)
		case TabConfig:
			m.configView, cmd = m.configView.Update(msg)
		}
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		contentHeight := m.height - 5 // Account for banner, tabs and status bar
		m.overtimeView.SetSize(m.width, contentHeight)
		m.pendingView.SetSize(m.width, contentHeight)
		m.summaryView.SetSize(m.width, contentHeight)
		m.sessionView.SetSize(m.width, contentHeight)
		m.configView.SetSize(m.width, contentHeight)
		return m, nil

	case ui.ThemeChangeRequestMsg:
		m.themeProvider.SetTheme(msg.ThemeName)
		newTheme := m.themeProvider.CurrentName()
		m.styles = m.themeProvider.Styles()

		// Broadcast theme change to all views
		m, _ = m.broadcast(ui.ThemeChangedMsg{ThemeName: newTheme, Styles: m.styles})
		return m, m.saveThemeConfig(newTheme)

	case ui.SessionMsg:
		m.sessionEvent = msg.Event
		m.sessionView, _ = m.sessionView.Update(msg)
		if msg.Event.State == session.LoggedOut {
			m.exitReason = msg.Event.Reason
			if m.exitReason == "" {
				m.exitReason = session.ReasonExpired
			}
			return m, tea.Quit
		}
		return m, waitForSession(m.sessionCh)

	case ui.PendingMsg:
		m.pendingCount = len(msg.Notification.Pending)
		if msg.Notification.New {
			m.flash = ui.FlashMsg{Text: fmt.Sprintf("%d %s awaiting approval",
				m.pendingCount, cli.Pluralize("entry", m.pendingCount))}
		}
		m.pendingView, _ = m.pendingView.Update(msg)
		return m, waitForPending(m.pendingCh)

	case ui.LoggedOutMsg:
		m.exitReason = msg.Reason
		return m, tea.Quit

	case ui.FlashMsg:
		m.flash = msg
		return m, nil

	case ui.DataChangedMsg:
		if msg.Text != "" {
			m.flash = ui.FlashMsg{Text: msg.Text}
		}
		return m.broadcast(msg)
	}

	// Load results, ticks and blinks go to every view; each ignores what
	// it does not own.
	return m.broadcast(msg)
}

// broadcast sends msg to every view
func (m Model) broadcast(msg tea.Msg) (Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 5)
	m.overtimeView, cmds[0] = m.overtimeView.Update(msg)
	m.pendingView, cmds[1] = m.pendingView.Update(msg)
	m.summaryView, cmds[2] = m.summaryView.Update(msg)
	m.sessionView, cmds[3] = m.sessionView.Update(msg)
	m.configView, cmds[4] = m.configView.Update(msg)
	m.pendingCount = m.pendingView.Count()
	return m, tea.Batch(cmds...)
}

// switchTab activates tab and reloads its data
func (m Model) switchTab(tab Tab) (tea.Model, tea.Cmd) {
	m.activeTab = tab
	return m, m.initCurrentView()
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	if banner := m.renderBanner(); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n")
	}

	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	switch m.activeTab {
	case TabOvertime:
		b.WriteString(m.overtimeView.View())
	case TabPending:
		b.WriteString(m.pendingView.View())
	case TabSummary:
		b.WriteString(m.summaryView.View())
	case TabSession:
		b.WriteString(m.sessionView.View())
	case TabConfig:
		b.WriteString(m.configView.View())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	return m.styles.App.Render(b.String())
}

// renderBanner renders the session expiry warning, empty outside the
// warning window
func (m Model) renderBanner() string {
	if m.sessionEvent.State != session.Warning {
		return ""
	}
	text := fmt.Sprintf("Session expires soon. Automatic logout in %s.",
		cli.FormatCountdown(m.sessionEvent.SecondsLeft))
	if m.sessionEvent.SecondsLeft <= urgentSeconds {
		return m.styles.BannerUrgent.Render(text)
	}
	return m.styles.Banner.Render(text)
}

// renderTabs renders the tab bar
func (m Model) renderTabs() string {
	var tabs []string
	for i, name := range tabNames {
		label := name
		if Tab(i) == TabPending && m.pendingCount > 0 {
			label += " " + m.styles.TabBadge.Render(fmt.Sprintf("(%d)", m.pendingCount))
		}
		if Tab(i) == m.activeTab {
			tabs = append(tabs, m.styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(label))
		}
	}
	return m.styles.TabBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

// renderStatusBar renders the status bar at the bottom
func (m Model) renderStatusBar() string {
	var parts []string

	if m.flash.Text != "" {
		style := m.styles.Success
		if m.flash.Error {
			style = m.styles.Error
		}
		parts = append(parts, style.Render(m.flash.Text))
	}

	if m.isCapturingKeys() {
		parts = append(parts, m.renderKeyHelp("Enter/y", "confirm"))
		parts = append(parts, m.renderKeyHelp("Esc", "cancel"))
	} else {
		switch m.activeTab {
		case TabOvertime:
			parts = append(parts, m.renderKeyHelp("a", "approve"))
			parts = append(parts, m.renderKeyHelp("x", "reject"))
			parts = append(parts, m.renderKeyHelp("d", "delete"))
			parts = append(parts, m.renderKeyHelp("[/]", "month"))
		case TabPending:
			parts = append(parts, m.renderKeyHelp("a", "approve"))
			parts = append(parts, m.renderKeyHelp("x", "reject"))
			parts = append(parts, m.renderKeyHelp("r", "refresh"))
		case TabSummary:
			parts = append(parts, m.renderKeyHelp("[/]", "month"))
			parts = append(parts, m.renderKeyHelp("m", "this month"))
		case TabSession:
			parts = append(parts, m.renderKeyHelp("L", "log out"))
		case TabConfig:
			parts = append(parts, m.renderKeyHelp("t", "themes"))
		}

		parts = append(parts, m.renderKeyHelp("1-5", "views"))
		parts = append(parts, m.renderKeyHelp("?", "help"))
		parts = append(parts, m.renderKeyHelp("q", "quit"))
	}

	content := strings.Join(parts, "  ")

	padding := m.width - lipgloss.Width(content)
	if padding > 0 {
		content += strings.Repeat(" ", padding)
	}

	return m.styles.StatusBar.Render(content)
}

// renderKeyHelp renders a single key help item
func (m Model) renderKeyHelp(key, desc string) string {
	return fmt.Sprintf("%s %s",
		m.styles.StatusKey.Render(key),
		m.styles.StatusHelp.Render(desc))
}

// isCapturingKeys checks if the current view has a form or confirmation open
func (m Model) isCapturingKeys() bool {
	switch m.activeTab {
	case TabOvertime:
		return m.overtimeView.IsInputMode()
	case TabPending:
		return m.pendingView.IsInputMode()
	case TabSession:
		return m.sessionView.IsInputMode()
	case TabConfig:
		return m.configView.IsInputMode()
	}
	return false
}

// initCurrentView reloads the current view when switching tabs
func (m Model) initCurrentView() tea.Cmd {
	switch m.activeTab {
	case TabOvertime:
		return m.overtimeView.Init()
	case TabPending:
		return m.pendingView.Init()
	case TabSummary:
		return m.summaryView.Init()
	case TabSession:
		return m.sessionView.Refresh()
	case TabConfig:
		return m.configView.Init()
	}
	return nil
}

// saveThemeConfig saves the theme to the config file
func (m Model) saveThemeConfig(themeName string) tea.Cmd {
	return func() tea.Msg {
		if err := m.services.Config.SetTheme(themeName); err != nil {
			return ui.FlashMsg{Text: fmt.Sprintf("saving theme: %v", err), Error: true}
		}
		return nil
	}
}

// ExitReason returns why the program quit, empty when the user quit
func (m Model) ExitReason() string {
	return m.exitReason
}

// renderHelpOverlay renders the keyboard shortcuts for the active view
func (m Model) renderHelpOverlay() string {
	var help strings.Builder

	help.WriteString(m.styles.ViewTitle.Render("Keyboard Shortcuts"))
	help.WriteString("\n\n")

	help.WriteString(m.styles.StatLabel.Render("Global:"))
	help.WriteString("\n")
	help.WriteString("  Tab/1-5    Switch views\n")
	help.WriteString("  ?          Toggle help\n")
	help.WriteString("  q          Quit\n")
	help.WriteString("\n")

	switch m.activeTab {
	case TabOvertime:
		help.WriteString(m.styles.StatLabel.Render("Overtime:"))
		help.WriteString("\n")
		help.WriteString("  j/k        Navigate up/down\n")
		help.WriteString("  [/]        Previous/next month\n")
		help.WriteString("  m          This month\n")
		help.WriteString("  a          Approve entry\n")
		help.WriteString("  x          Reject entry\n")
		help.WriteString("  d          Delete entry\n")
		help.WriteString("  r          Refresh\n")
	case TabPending:
		help.WriteString(m.styles.StatLabel.Render("Pending:"))
		help.WriteString("\n")
		help.WriteString("  j/k        Navigate up/down\n")
		help.WriteString("  a          Approve entry\n")
		help.WriteString("  x          Reject entry\n")
		help.WriteString("  r          Refresh\n")
	case TabSummary:
		help.WriteString(m.styles.StatLabel.Render("Summary:"))
		help.WriteString("\n")
		help.WriteString("  [/]        Previous/next month\n")
		help.WriteString("  m          This month\n")
		help.WriteString("  r          Refresh\n")
	case TabSession:
		help.WriteString(m.styles.StatLabel.Render("Session:"))
		help.WriteString("\n")
		help.WriteString("  L          Log out\n")
		help.WriteString("  r          Reload profile\n")
	case TabConfig:
		help.WriteString(m.styles.StatLabel.Render("Config:"))
		help.WriteString("\n")
		help.WriteString("  t/Enter    Open theme selector\n")
		help.WriteString("  j/k        Navigate themes\n")
		help.WriteString("  Enter      Select theme\n")
		help.WriteString("  Esc        Cancel\n")
	}

	help.WriteString("\n")
	help.WriteString(m.styles.StatLabel.Render("Press ? to close"))

	return m.styles.App.Render(m.styles.Dialog.Render(help.String()))
}

// waitForSession waits for the next session event
func waitForSession(ch <-chan session.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ui.SessionMsg{Event: ev}
	}
}

// waitForPending waits for the next pending feed change
func waitForPending(ch <-chan service.Notification) tea.Cmd {
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return ui.PendingMsg{Notification: n}
	}
}

// Run validates the stored session, starts the session timers and the
// pending feed, and runs the TUI until the user quits or the session ends.
// The reason for a forced or in-app logout is written to out.
func Run(ctx context.Context, services *service.Services, out io.Writer) error {
	profile, err := services.Auth.Boot(ctx)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
	}()

	model := New(services)

	unsubscribe := services.Session.Subscribe(func(ev session.Event) {
		select {
		case model.sessionCh <- ev:
		case <-ctx.Done():
		}
	})
	defer unsubscribe()
	services.StartSession()

	if services.Notify.Enabled(profile) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			services.Notify.Watch(ctx, func(n service.Notification) {
				select {
				case model.pendingCh <- n:
				case <-ctx.Done():
				}
			})
		}()
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.ExitReason() != "" {
		_, _ = fmt.Fprintln(out, fm.ExitReason())
	}
	return nil
}
