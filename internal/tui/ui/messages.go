package ui

import (
	"github.com/xolan/otdash/internal/service"
	"github.com/xolan/otdash/internal/session"
)

// ThemeChangeRequestMsg is sent when a theme change is requested.
type ThemeChangeRequestMsg struct {
	ThemeName string
}

// ThemeChangedMsg is broadcast to all views when the theme changes.
type ThemeChangedMsg struct {
	ThemeName string
	Styles    Styles
}

// SessionMsg carries a session manager event into the program.
type SessionMsg struct {
	Event session.Event
}

// PendingMsg carries a change of the pending-approval feed.
type PendingMsg struct {
	Notification service.Notification
}

// DataChangedMsg is sent after a view changed overtime records so every
// view reloads. Text describes the change.
type DataChangedMsg struct {
	Text string
}

// FlashMsg shows a one-line result in the status bar.
type FlashMsg struct {
	Text  string
	Error bool
}

// LoggedOutMsg is sent after the user logged out from inside the TUI.
type LoggedOutMsg struct {
	Reason string
}
