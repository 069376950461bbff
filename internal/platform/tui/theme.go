package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Theme contains the configurable styles of the shell chrome.
// Playfield cells are colored through colorStyles instead.
type Theme struct {
	// HUD styles
	HUDTitle     lipgloss.Style
	HUDValue     lipgloss.Style
	HUDSeparator lipgloss.Style
	HUDWarning   lipgloss.Style
	HUDDanger    lipgloss.Style
	HUDControls  lipgloss.Style

	// Overlay styles
	OverlayBorder lipgloss.Style
	OverlayTitle  lipgloss.Style
	OverlayText   lipgloss.Style

	// Mission picker styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuItemLocked  lipgloss.Style
	MenuDescription lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		HUDTitle:     lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		HUDValue:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		HUDSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		HUDWarning:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		HUDDanger:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		HUDControls:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

		OverlayBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("255")).
			Padding(1, 3),
		OverlayTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		OverlayText:  lipgloss.NewStyle().Foreground(lipgloss.Color("255")),

		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuItemLocked:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// NeonTheme returns a brighter theme.
func NeonTheme() Theme {
	theme := DefaultTheme()
	theme.HUDTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("199")).Bold(true)
	theme.HUDWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("227")).Bold(true)
	theme.MenuTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("87")).Bold(true)
	theme.MenuItemActive = lipgloss.NewStyle().Foreground(lipgloss.Color("118")).Bold(true)
	return theme
}

// MonochromeTheme returns a grayscale theme.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.HUDTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.HUDWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true)
	theme.HUDDanger = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true).Underline(true)
	theme.OverlayTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.MenuTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.MenuItemActive = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	return theme
}

// ThemeNames lists the names accepted by ThemeByName.
var ThemeNames = []string{"default", "neon", "mono"}

// ThemeByName returns a named theme. An empty name selects the default.
func ThemeByName(name string) (Theme, error) {
	switch name {
	case "", "default":
		return DefaultTheme(), nil
	case "neon":
		return NeonTheme(), nil
	case "mono", "monochrome":
		return MonochromeTheme(), nil
	}
	return Theme{}, fmt.Errorf("unknown theme %q (want one of %v)", name, ThemeNames)
}
