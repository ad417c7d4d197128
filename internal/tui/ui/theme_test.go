package ui

import (
	"sort"
	"testing"
)

func TestNewThemeProvider(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		want    string
	}{
		{"empty uses default", "", DefaultTheme},
		{"known theme", "nord", "nord"},
		{"unknown falls back", "nonexistent-theme-xyz", DefaultTheme},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tp := NewThemeProvider(tt.initial)
			if got := tp.CurrentName(); got != tt.want {
				t.Errorf("CurrentName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestThemeProvider_SetTheme(t *testing.T) {
	tp := NewThemeProvider("")

	if !tp.SetTheme("nord") {
		t.Error("expected SetTheme to accept nord")
	}
	if tp.SetTheme("nonexistent-theme-xyz") {
		t.Error("expected SetTheme to reject an unknown theme")
	}
	if tp.CurrentName() != "nord" {
		t.Errorf("expected nord to stay selected, got %q", tp.CurrentName())
	}
}

func TestThemeProvider_Has(t *testing.T) {
	tp := NewThemeProvider("")

	if !tp.Has("dracula") {
		t.Error("expected dracula to be available")
	}
	if tp.Has("nonexistent-theme-xyz") {
		t.Error("expected unknown theme to be missing")
	}
}

func TestThemeProvider_Cycle(t *testing.T) {
	tp := NewThemeProvider("dracula")

	next := tp.NextTheme()
	if tp.CurrentName() != next {
		t.Errorf("CurrentName() should match NextTheme() return value")
	}
	if prev := tp.PreviousTheme(); prev != "dracula" {
		t.Errorf("expected PreviousTheme to return to dracula, got %q", prev)
	}
}

func TestThemeProvider_AvailableThemes(t *testing.T) {
	tp := NewThemeProvider("")

	themes := tp.AvailableThemes()
	if len(themes) == 0 {
		t.Fatal("expected at least one available theme")
	}
	if !sort.StringsAreSorted(themes) {
		t.Error("expected themes to be sorted")
	}

	themes[0] = "changed"
	if tp.AvailableThemes()[0] == "changed" {
		t.Error("AvailableThemes must return a copy")
	}
}

func TestThemeProvider_Styles(t *testing.T) {
	tp := NewThemeProvider("dracula")

	styles := tp.Styles()
	if styles.App.GetPaddingTop() == 0 {
		t.Error("expected App style to have padding")
	}
	if tp.CurrentDisplayName() == "" {
		t.Error("expected a display name")
	}
}
