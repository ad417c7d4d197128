package views

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/otdash/internal/config"
	"github.com/xolan/otdash/internal/service"
	"github.com/xolan/otdash/internal/tui/ui"
)

const pickerRows = 10

// themePicker is the scrolling theme list opened from the config view.
// Typing after "/" narrows the list.
type themePicker struct {
	all     []string
	visible []string
	cursor  int
	offset  int
	open    bool

	filtering bool
	filter    textinput.Model
}

func newThemePicker(themes []string) themePicker {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.CharLimit = 32
	return themePicker{all: themes, visible: themes, filter: ti}
}

// show opens the picker with the cursor on current.
func (p *themePicker) show(current string) {
	p.open = true
	p.filtering = false
	p.filter.SetValue("")
	p.filter.Blur()
	p.visible = p.all
	p.cursor = max(0, slices.Index(p.visible, current))
	p.scroll()
}

func (p *themePicker) hide() {
	p.open = false
	p.filtering = false
	p.filter.Blur()
}

func (p *themePicker) move(delta int) {
	if len(p.visible) == 0 {
		return
	}
	p.cursor = min(max(p.cursor+delta, 0), len(p.visible)-1)
	p.scroll()
}

func (p *themePicker) scroll() {
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+pickerRows {
		p.offset = p.cursor - pickerRows + 1
	}
}

func (p *themePicker) refilter() {
	q := strings.ToLower(strings.TrimSpace(p.filter.Value()))
	if q == "" {
		p.visible = p.all
	} else {
		p.visible = nil
		for _, t := range p.all {
			if strings.Contains(strings.ToLower(t), q) {
				p.visible = append(p.visible, t)
			}
		}
	}
	p.cursor, p.offset = 0, 0
}

// selected returns the theme under the cursor.
func (p themePicker) selected() (string, bool) {
	if p.cursor >= len(p.visible) {
		return "", false
	}
	return p.visible[p.cursor], true
}

// ConfigModel shows the effective settings and lets the user switch themes.
type ConfigModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	width, height int

	cfg    config.Config
	path   string
	exists bool
	theme  string

	picker themePicker
}

// NewConfigModel creates the config view.
func NewConfigModel(services *service.Services, themeProvider *ui.ThemeProvider, styles ui.Styles, keys ui.KeyMap) ConfigModel {
	return ConfigModel{
		services: services,
		styles:   styles,
		keys:     keys,
		theme:    themeProvider.CurrentName(),
		picker:   newThemePicker(themeProvider.AvailableThemes()),
	}
}

type configLoadedMsg struct {
	cfg    config.Config
	path   string
	exists bool
}

// Init implements tea.Model
func (m ConfigModel) Init() tea.Cmd {
	return m.loadConfig()
}

func (m ConfigModel) loadConfig() tea.Cmd {
	svc := m.services.Config
	return func() tea.Msg {
		return configLoadedMsg{cfg: svc.Get(), path: svc.GetPath(), exists: svc.Exists()}
	}
}

// Update implements tea.Model
func (m ConfigModel) Update(msg tea.Msg) (ConfigModel, tea.Cmd) {
	switch msg := msg.(type) {
	case configLoadedMsg:
		m.cfg, m.path, m.exists = msg.cfg, msg.path, msg.exists
		m.theme = msg.cfg.Theme
		if m.theme == "" {
			m.theme = ui.DefaultTheme
		}
	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		m.theme = msg.ThemeName
	case tea.KeyMsg:
		if m.picker.open {
			return m.updatePicker(msg)
		}
		if key.Matches(msg, m.keys.Select, m.keys.Themes) {
			m.picker.show(m.theme)
		}
	}
	return m, nil
}

func (m ConfigModel) updatePicker(msg tea.KeyMsg) (ConfigModel, tea.Cmd) {
	p := &m.picker
	if p.filtering {
		switch msg.Type {
		case tea.KeyEsc:
			p.filter.SetValue("")
			p.refilter()
			p.filtering = false
			p.filter.Blur()
			return m, nil
		case tea.KeyUp, tea.KeyDown:
			p.filtering = false
			p.filter.Blur()
		case tea.KeyEnter:
			p.filtering = false
			p.filter.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			p.filter, cmd = p.filter.Update(msg)
			p.refilter()
			return m, cmd
		}
	}

	switch {
	case msg.String() == "/":
		p.filtering = true
		return m, p.filter.Focus()
	case key.Matches(msg, m.keys.Up):
		p.move(-1)
	case key.Matches(msg, m.keys.Down):
		p.move(1)
	case key.Matches(msg, m.keys.Select):
		name, ok := p.selected()
		p.hide()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg { return ui.ThemeChangeRequestMsg{ThemeName: name} }
	case key.Matches(msg, m.keys.Back):
		p.hide()
	}
	return m, nil
}

// IsInputMode reports whether the theme picker has the keyboard.
func (m ConfigModel) IsInputMode() bool {
	return m.picker.open
}

// SetSize sets the view dimensions
func (m *ConfigModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// View implements tea.Model
func (m ConfigModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render("Configuration"))
	b.WriteString("\n\n")

	m.line(&b, "Config file", m.path)
	if m.exists {
		b.WriteString(m.styles.StatLabel.Render("Status:") + " " + m.styles.Success.Render("File exists") + "\n")
	} else {
		b.WriteString(m.styles.StatLabel.Render("Status:") + " " + m.styles.Warning.Render("Using defaults (no config file)") + "\n")
	}
	b.WriteString("\n" + strings.Repeat("─", min(50, max(m.width, 10))) + "\n\n")

	exportDir := m.cfg.ExportDir
	if exportDir == "" {
		exportDir = "(working directory)"
	}
	for _, kv := range [][2]string{
		{"api_base_url", m.cfg.APIBaseURL},
		{"health_url", m.cfg.HealthURL},
		{"request_timeout", m.cfg.RequestTimeout},
		{"poll_interval", m.cfg.PollInterval},
		{"log_level", m.cfg.LogLevel},
		{"export_dir", exportDir},
	} {
		m.line(&b, kv[0], kv[1])
	}
	m.renderShifts(&b)

	if m.picker.open {
		b.WriteString(m.renderPicker())
		return b.String()
	}
	m.line(&b, "theme", m.theme)
	b.WriteString("\n" + m.styles.StatusHelp.Render("Enter or t: change theme"))
	return b.String()
}

func (m ConfigModel) line(b *strings.Builder, label, value string) {
	b.WriteString(m.styles.StatLabel.Render(label+":") + " " + m.styles.StatValue.Render(value) + "\n")
}

// renderShifts lists the [shifts] overrides from the config file.
func (m ConfigModel) renderShifts(b *strings.Builder) {
	weekday, saturday := m.cfg.Shifts.WeekdayOTStart, m.cfg.Shifts.SaturdayShiftHours
	if len(weekday)+len(saturday) == 0 {
		return
	}
	names := make([]string, 0, len(weekday)+len(saturday))
	for s := range weekday {
		names = append(names, s)
	}
	for s := range saturday {
		if _, dup := weekday[s]; !dup {
			names = append(names, s)
		}
	}
	slices.Sort(names)
	for _, s := range names {
		var parts []string
		if v, ok := weekday[s]; ok {
			parts = append(parts, fmt.Sprintf("weekday from %g", v))
		}
		if v, ok := saturday[s]; ok {
			parts = append(parts, fmt.Sprintf("saturday %gh", v))
		}
		m.line(b, "shift "+s, strings.Join(parts, ", "))
	}
}

func (m ConfigModel) renderPicker() string {
	p := m.picker
	var b strings.Builder
	b.WriteString(m.styles.StatLabel.Render("theme:") + " " + m.styles.StatValue.Render("Select a theme") + "\n")
	if p.filtering || p.filter.Value() != "" {
		b.WriteString(p.filter.View() + "\n")
	}
	b.WriteString("\n")

	if len(p.visible) == 0 {
		b.WriteString(m.styles.Warning.Render("  No matching themes") + "\n")
	}
	end := min(p.offset+pickerRows, len(p.visible))
	if p.offset > 0 {
		b.WriteString(m.styles.StatusHelp.Render("  ↑ more") + "\n")
	}
	for i := p.offset; i < end; i++ {
		name := p.visible[i]
		label := name
		if name == m.theme {
			label += " (current)"
		}
		if i == p.cursor {
			b.WriteString(m.styles.RowSelected.Render("▸ "+label) + "\n")
		} else {
			b.WriteString("  " + m.styles.StatValue.Render(label) + "\n")
		}
	}
	if end < len(p.visible) {
		b.WriteString(m.styles.StatusHelp.Render("  ↓ more") + "\n")
	}
	b.WriteString("\n" + m.styles.StatusHelp.Render("↑/↓ move  / filter  Enter select  Esc cancel"))
	return b.String()
}
