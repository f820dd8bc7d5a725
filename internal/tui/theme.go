package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the colors of the browser. All colors use ANSI 256-color
// codes for broad terminal compatibility.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color
	Accent     lipgloss.Color
	ErrorText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	BorderColor lipgloss.Color
	FocusBorder lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText:         lipgloss.Color("252"),
	FaintText:          lipgloss.Color("243"),
	Accent:             lipgloss.Color("39"),
	ErrorText:          lipgloss.Color("203"),
	SelectedBackground: lipgloss.Color("237"),
	SelectedForeground: lipgloss.Color("231"),
	BorderColor:        lipgloss.Color("240"),
	FocusBorder:        lipgloss.Color("39"),
}
