package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds every binding the dashboard reacts to.
type KeyMap struct {
	Up, Down key.Binding

	// View switching. Tab1..Tab5 follow the tab bar order.
	NextTab, PrevTab                  key.Binding
	Tab1, Tab2, Tab3, Tab4, Tab5      key.Binding
	Select, Back, Quit, Help, Refresh key.Binding

	// Approval workflow on the overtime and pending views.
	Approve, Reject, Delete, Confirm key.Binding

	PrevMonth, NextMonth, ThisMonth key.Binding

	Logout, Themes key.Binding
}

// bind builds a binding whose help label is the first key unless label is set.
func bind(label, desc string, keys ...string) key.Binding {
	if label == "" {
		label = keys[0]
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, desc))
}

// DefaultKeyMap returns vim-style bindings with arrow key fallbacks.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:   bind("↑/k", "up", "up", "k"),
		Down: bind("↓/j", "down", "down", "j"),

		NextTab: bind("", "next view", "tab"),
		PrevTab: bind("", "prev view", "shift+tab"),
		Tab1:    bind("", "overtime", "1"),
		Tab2:    bind("", "pending", "2"),
		Tab3:    bind("", "summary", "3"),
		Tab4:    bind("", "session", "4"),
		Tab5:    bind("", "config", "5"),

		Select:  bind("", "select", "enter"),
		Back:    bind("", "back", "esc"),
		Quit:    bind("", "quit", "q", "ctrl+c"),
		Help:    bind("", "help", "?"),
		Refresh: bind("", "refresh", "r"),

		Approve: bind("", "approve", "a"),
		Reject:  bind("", "reject", "x"),
		Delete:  bind("", "delete", "d"),
		Confirm: bind("", "confirm", "y", "Y"),

		PrevMonth: bind("", "prev month", "[", "left", "h"),
		NextMonth: bind("", "next month", "]", "right", "l"),
		ThisMonth: bind("", "this month", "m"),

		Logout: bind("", "log out", "L"),
		Themes: bind("", "themes", "t"),
	}
}
