package ui

import "strings"

// Theme is the colour scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"

	// DefaultTheme applies when nothing valid is persisted.
	DefaultTheme = ThemeLight

	themePreferenceKey = "theme"
)

// ParseTheme accepts "light" or "dark" in any case.
func ParseTheme(value string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(value))) {
	case ThemeLight:
		return ThemeLight, true
	case ThemeDark:
		return ThemeDark, true
	}
	return "", false
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}
