package ui

import (
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"

	"github.com/xolan/otdash/internal/overtime"
)

// Styles contains all the styles used in the TUI
type Styles struct {
	// Base styles
	App lipgloss.Style

	// Tab bar
	TabBar      lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	TabBadge    lipgloss.Style

	// Content area
	ViewTitle lipgloss.Style
	Header    lipgloss.Style

	// Status bar
	StatusBar   lipgloss.Style
	StatusKey   lipgloss.Style
	StatusValue lipgloss.Style
	StatusHelp  lipgloss.Style

	// Entry rows
	RowSelected lipgloss.Style
	RowNormal   lipgloss.Style
	Employee    lipgloss.Style
	Date        lipgloss.Style
	Hours       lipgloss.Style
	Night       lipgloss.Style

	// Approval status
	Pending  lipgloss.Style
	Approved lipgloss.Style
	Rejected lipgloss.Style

	// Session expiry banner
	Banner       lipgloss.Style
	BannerUrgent lipgloss.Style

	// Stats
	StatLabel lipgloss.Style
	StatValue lipgloss.Style

	// Input
	Input        lipgloss.Style
	InputFocused lipgloss.Style

	// Dialog
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style

	// Errors and warnings
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
}

// palette maps semantic roles to colors.
type palette struct {
	primary, secondary, accent, muted lipgloss.TerminalColor
	success, warning, errorColor      lipgloss.TerminalColor
	fg, bg, selected                  lipgloss.TerminalColor
}

// DefaultStyles returns the styles used when no theme is available
func DefaultStyles() Styles {
	return newStyles(palette{
		primary:    lipgloss.Color("99"),  // Purple
		secondary:  lipgloss.Color("39"),  // Cyan
		accent:     lipgloss.Color("212"), // Pink
		muted:      lipgloss.Color("240"), // Gray
		success:    lipgloss.Color("82"),  // Green
		warning:    lipgloss.Color("214"), // Orange
		errorColor: lipgloss.Color("196"), // Red
		fg:         lipgloss.Color("252"),
		bg:         lipgloss.Color("236"),
		selected:   lipgloss.Color("237"),
	})
}

// NewStylesFromRegistry creates a Styles struct using colors from a bubbletint registry.
// Primary is the theme's purple, secondary its cyan and the accent its
// bright purple. Muted text uses bright black.
func NewStylesFromRegistry(r *tint.Registry) Styles {
	return newStyles(palette{
		primary:    r.Purple(),
		secondary:  r.Cyan(),
		accent:     r.BrightPurple(),
		muted:      r.BrightBlack(),
		success:    r.Green(),
		warning:    r.Yellow(),
		errorColor: r.Red(),
		fg:         r.Fg(),
		bg:         r.Bg(),
		selected:   r.BrightBlack(),
	})
}

func newStyles(p palette) Styles {
	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),

		TabBar: lipgloss.NewStyle().
			MarginBottom(1).
			BorderBottom(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(p.muted),
		TabActive: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(p.muted).
			Padding(0, 2),
		TabBadge: lipgloss.NewStyle().
			Foreground(p.warning).
			Bold(true),

		ViewTitle: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			MarginBottom(1),
		Header: lipgloss.NewStyle().
			Foreground(p.muted).
			Bold(true),

		StatusBar: lipgloss.NewStyle().
			Foreground(p.fg).
			Background(p.bg).
			Padding(0, 1),
		StatusKey: lipgloss.NewStyle().
			Foreground(p.secondary).
			Bold(true),
		StatusValue: lipgloss.NewStyle().
			Foreground(p.fg),
		StatusHelp: lipgloss.NewStyle().
			Foreground(p.muted),

		RowSelected: lipgloss.NewStyle().
			Background(p.selected).
			Bold(true),
		RowNormal: lipgloss.NewStyle(),
		Employee: lipgloss.NewStyle().
			Foreground(p.primary),
		Date: lipgloss.NewStyle().
			Foreground(p.secondary),
		Hours: lipgloss.NewStyle().
			Foreground(p.accent),
		Night: lipgloss.NewStyle().
			Foreground(p.secondary).
			Italic(true),

		Pending: lipgloss.NewStyle().
			Foreground(p.warning),
		Approved: lipgloss.NewStyle().
			Foreground(p.success),
		Rejected: lipgloss.NewStyle().
			Foreground(p.errorColor),

		Banner: lipgloss.NewStyle().
			Foreground(p.bg).
			Background(p.warning).
			Bold(true).
			Padding(0, 1),
		BannerUrgent: lipgloss.NewStyle().
			Foreground(p.bg).
			Background(p.errorColor).
			Bold(true).
			Padding(0, 1),

		StatLabel: lipgloss.NewStyle().
			Foreground(p.muted).
			Width(20),
		StatValue: lipgloss.NewStyle().
			Foreground(p.fg).
			Bold(true),

		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.muted).
			Padding(0, 1),
		InputFocused: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.primary).
			Padding(0, 1),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.primary).
			Padding(1, 2).
			Width(56),
		DialogTitle: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			MarginBottom(1),

		Error: lipgloss.NewStyle().
			Foreground(p.errorColor),
		Warning: lipgloss.NewStyle().
			Foreground(p.warning),
		Success: lipgloss.NewStyle().
			Foreground(p.success),
	}
}

// StatusStyle returns the style for an approval status. An empty status is
// pending.
func (s Styles) StatusStyle(st overtime.Status) lipgloss.Style {
	switch st {
	case overtime.StatusApproved:
		return s.Approved
	case overtime.StatusRejected:
		return s.Rejected
	default:
		return s.Pending
	}
}
