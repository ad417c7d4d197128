package ui

import (
	"sort"

	tint "github.com/lrstanley/bubbletint"
)

// DefaultTheme is the theme used when none is configured or the configured
// one is unknown.
const DefaultTheme = "dracula"

// ThemeProvider wraps the bubbletint registry the dashboard styles are
// built from.
type ThemeProvider struct {
	registry *tint.Registry
	ids      []string
}

// NewThemeProvider creates a ThemeProvider starting at initialTheme. An
// empty or unknown name selects DefaultTheme.
func NewThemeProvider(initialTheme string) *ThemeProvider {
	all := tint.DefaultTints()

	var fallback tint.Tint
	for _, t := range all {
		if t.ID() == DefaultTheme {
			fallback = t
			break
		}
	}
	if fallback == nil && len(all) > 0 {
		fallback = all[0]
	}

	registry := tint.NewRegistry(fallback, all...)
	ids := registry.TintIDs()
	sort.Strings(ids)

	tp := &ThemeProvider{registry: registry, ids: ids}
	if initialTheme != "" {
		tp.SetTheme(initialTheme)
	}
	return tp
}

// SetTheme selects name. It reports false and keeps the current theme when
// name is unknown.
func (tp *ThemeProvider) SetTheme(name string) bool {
	return tp.registry.SetTintID(name)
}

// Has reports whether name is a known theme.
func (tp *ThemeProvider) Has(name string) bool {
	i := sort.SearchStrings(tp.ids, name)
	return i < len(tp.ids) && tp.ids[i] == name
}

// NextTheme cycles to the next theme and returns its name.
func (tp *ThemeProvider) NextTheme() string {
	tp.registry.NextTint()
	return tp.registry.ID()
}

// PreviousTheme cycles to the previous theme and returns its name.
func (tp *ThemeProvider) PreviousTheme() string {
	tp.registry.PreviousTint()
	return tp.registry.ID()
}

func (tp *ThemeProvider) CurrentName() string {
	return tp.registry.ID()
}

func (tp *ThemeProvider) CurrentDisplayName() string {
	return tp.registry.DisplayName()
}

// AvailableThemes returns the sorted theme names.
func (tp *ThemeProvider) AvailableThemes() []string {
	return append([]string(nil), tp.ids...)
}

// Registry returns the underlying bubbletint registry for direct color access.
func (tp *ThemeProvider) Registry() *tint.Registry {
	return tp.registry
}

// Styles returns the dashboard styles for the current theme.
func (tp *ThemeProvider) Styles() Styles {
	return NewStylesFromRegistry(tp.registry)
}
