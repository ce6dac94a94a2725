// Package ui holds the terminal presentation pieces of the slidegen CLI:
// styles, static tables, the generation progress view and the outline
// preview.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette
var (
	LightForeground = lipgloss.Color("#1F2A44")
	LightPrimary    = lipgloss.Color("#1F4E79")
	LightAccent     = lipgloss.Color("#2E86C1")
	LightMuted      = lipgloss.Color("#8A94A6")
	LightBorder     = lipgloss.Color("#D5DBE3")

	DarkForeground = lipgloss.Color("#ECEFF4")
	DarkPrimary    = lipgloss.Color("#5DADE2")
	DarkAccent     = lipgloss.Color("#85C1E9")
	DarkMuted      = lipgloss.Color("#6C7A89")
	DarkBorder     = lipgloss.Color("#34495E")

	Destructive = lipgloss.Color("#E53935")
	Success     = lipgloss.Color("#43A047")
	Warning     = lipgloss.Color("#FFB300")
)

// Theme holds the current color scheme.
type Theme struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme.
func LightTheme() Theme {
	return Theme{
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
	}
}

// DarkTheme returns the dark mode theme.
func DarkTheme() Theme {
	return Theme{
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		IsDark:     true,
	}
}

// DetectTheme picks dark mode from COLORFGBG or SLIDEGEN_DARK_MODE=1,
// light mode otherwise.
func DetectTheme() Theme {
	if parts := strings.Split(os.Getenv("COLORFGBG"), ";"); len(parts) == 2 {
		// 0-6 and 8 are dark backgrounds
		if bg, err := strconv.Atoi(parts[1]); err == nil && ((bg >= 0 && bg <= 6) || bg == 8) {
			return DarkTheme()
		}
	}
	if os.Getenv("SLIDEGEN_DARK_MODE") == "1" {
		return DarkTheme()
	}
	return LightTheme()
}

// Styles holds the styled components.
type Styles struct {
	Theme Theme

	Title   lipgloss.Style
	Body    lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Spinner lipgloss.Style
	Path    lipgloss.Style
}

// NewStyles creates styles for theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Path: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Underline(true),
	}
}

// DefaultStyles returns styles for the detected theme.
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}
