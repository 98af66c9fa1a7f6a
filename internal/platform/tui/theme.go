package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme holds the styles of the menu and library screens.
// The play screen is colored through core.Color instead.
type Theme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	ItemNormal  lipgloss.Style
	ItemActive  lipgloss.Style
	Description lipgloss.Style
	Muted       lipgloss.Style
	Good        lipgloss.Style
	Bad         lipgloss.Style

	Border      lipgloss.Color
	TableHeader lipgloss.Color
	SelectedFg  lipgloss.Color
	SelectedBg  lipgloss.Color
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Title:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		Subtitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		ItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Muted:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Good:        lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
		Bad:         lipgloss.NewStyle().Foreground(lipgloss.Color("196")),

		Border:      lipgloss.Color("240"),
		TableHeader: lipgloss.Color("240"),
		SelectedFg:  lipgloss.Color("229"),
		SelectedBg:  lipgloss.Color("57"),
	}
}

// NeonTheme returns a brighter variant.
func NeonTheme() Theme {
	theme := DefaultTheme()
	theme.Title = lipgloss.NewStyle().Foreground(lipgloss.Color("199")).Bold(true)
	theme.ItemActive = lipgloss.NewStyle().Foreground(lipgloss.Color("87")).Bold(true)
	theme.Good = lipgloss.NewStyle().Foreground(lipgloss.Color("118"))
	theme.SelectedBg = lipgloss.Color("171")
	return theme
}

// MonochromeTheme returns a grayscale theme.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.Title = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.ItemActive = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true).Underline(true)
	theme.Good = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	theme.Bad = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	theme.SelectedFg = lipgloss.Color("232")
	theme.SelectedBg = lipgloss.Color("250")
	return theme
}

// ThemeByName resolves a configured theme name. Unknown names give the default.
func ThemeByName(name string) Theme {
	switch name {
	case "neon":
		return NeonTheme()
	case "mono", "monochrome":
		return MonochromeTheme()
	default:
		return DefaultTheme()
	}
}
