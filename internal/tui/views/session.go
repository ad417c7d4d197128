package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/otdash/internal/api"
	"github.com/xolan/otdash/internal/cli"
	"github.com/xolan/otdash/internal/service"
	"github.com/xolan/otdash/internal/session"
	"github.com/xolan/otdash/internal/tui/ui"
)

// LoggedOutReason is shown after a logout from the session view.
const LoggedOutReason = "Logged out."

// SessionModel shows the logged-in account and the session timers
type SessionModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap
	now      func() time.Time

	width         int
	height        int
	username      string
	profile       *api.Profile
	profileErr    error
	state         session.State
	expiresAt     time.Time
	secondsLeft   int
	logoutIn      time.Duration
	confirmLogout bool
}

// NewSessionModel creates a new session view model
func NewSessionModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) SessionModel {
	return SessionModel{
		services: services,
		styles:   styles,
		keys:     keys,
		now:      time.Now,
		username: services.Auth.Username(),
		state:    services.Session.State(),
	}
}

// profileLoadedMsg is sent when the profile is fetched
type profileLoadedMsg struct {
	profile *api.Profile
	err     error
}

// sessionTickMsg is sent every second to refresh the time left
type sessionTickMsg time.Time

// Init implements tea.Model. It starts the once-a-second refresh, so the
// root model calls it once and uses Refresh on later tab switches.
func (m SessionModel) Init() tea.Cmd {
	return tea.Batch(m.loadProfile(), m.tick())
}

// Refresh reloads the profile
func (m SessionModel) Refresh() tea.Cmd {
	return m.loadProfile()
}

// Update implements tea.Model
func (m SessionModel) Update(msg tea.Msg) (SessionModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirmLogout {
			switch {
			case key.Matches(msg, m.keys.Confirm):
				m.confirmLogout = false
				return m, m.logout()
			case key.Matches(msg, m.keys.Back), msg.String() == "n", msg.String() == "N":
				m.confirmLogout = false
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Logout):
			m.confirmLogout = true
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadProfile()
		}
		return m, nil

	case profileLoadedMsg:
		m.profile = msg.profile
		m.profileErr = msg.err
		if msg.profile != nil && msg.profile.Username != "" {
			m.username = msg.profile.Username
		}

	case sessionTickMsg:
		m.state = m.services.Session.State()
		m.expiresAt = m.services.Session.ExpiresAt()
		m.logoutIn = m.services.Session.LogoutIn()
		return m, m.tick()

	case ui.SessionMsg:
		m.state = msg.Event.State
		m.expiresAt = msg.Event.ExpiresAt
		m.secondsLeft = msg.Event.SecondsLeft

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
	}

	return m, nil
}

// View implements tea.Model
func (m SessionModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Session"))
	b.WriteString("\n\n")

	if m.confirmLogout {
		b.WriteString(m.styles.Warning.Render("Log out now?"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.StatLabel.Render("Press Y to confirm, N or Esc to cancel"))
		return b.String()
	}

	username := m.username
	if username == "" {
		username = "unknown"
	}
	b.WriteString(m.renderLine("User:", username))

	switch {
	case m.profile != nil:
		if m.profile.Email != "" {
			b.WriteString(m.renderLine("Email:", m.profile.Email))
		}
		b.WriteString(m.renderLine("Roles:", roles(m.profile)))
	case m.profileErr != nil:
		b.WriteString(m.styles.StatLabel.Render("Roles:"))
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("profile unavailable: %v", m.profileErr)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderLine("State:", m.state.String()))
	if !m.expiresAt.IsZero() {
		b.WriteString(m.renderLine("Expires:", cli.FormatExpiry(m.expiresAt, m.now())))
	}
	switch m.state {
	case session.Warning:
		b.WriteString(m.styles.StatLabel.Render("Logout in:"))
		b.WriteString(m.styles.BannerUrgent.Render(cli.FormatCountdown(m.secondsLeft)))
		b.WriteString("\n")
	case session.Scheduled:
		b.WriteString(m.renderLine("Logout in:", cli.FormatRemaining(m.logoutIn)))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.StatLabel.UnsetWidth().Render("Press L to log out"))
	return b.String()
}

func (m SessionModel) renderLine(label, value string) string {
	return m.styles.StatLabel.Render(label) + m.styles.StatValue.Render(value) + "\n"
}

func roles(p *api.Profile) string {
	var r []string
	if p.IsAdmin {
		r = append(r, "admin")
	}
	if p.CanApprove {
		r = append(r, "approver")
	}
	if len(r) == 0 {
		return "user"
	}
	return strings.Join(r, ", ")
}

// SetSize sets the view dimensions
func (m *SessionModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// IsInputMode returns true while the logout confirmation is shown
func (m SessionModel) IsInputMode() bool {
	return m.confirmLogout
}

func (m SessionModel) loadProfile() tea.Cmd {
	return func() tea.Msg {
		profile, err := m.services.Auth.Profile(context.Background())
		return profileLoadedMsg{profile: profile, err: err}
	}
}

func (m SessionModel) logout() tea.Cmd {
	return func() tea.Msg {
		if err := m.services.Auth.Logout(context.Background()); err != nil {
			return ui.FlashMsg{Text: err.Error(), Error: true}
		}
		return ui.LoggedOutMsg{Reason: LoggedOutReason}
	}
}

func (m SessionModel) tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return sessionTickMsg(t)
	})
}
