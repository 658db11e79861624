package render

import "github.com/charmbracelet/lipgloss"

// Theme holds the styles applied around pages. Styles degrade to plain text
// on terminals without color support.
type Theme struct {
	Frame   lipgloss.Style
	Title   lipgloss.Style
	Counter lipgloss.Style
	Message lipgloss.Style
}

// DefaultTheme returns the default styles.
func DefaultTheme() Theme {
	return Theme{
		Frame:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Title:   lipgloss.NewStyle().Bold(true),
		Counter: lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Message: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
	}
}

// PlainTheme renders without any escape sequences.
func PlainTheme() Theme {
	plain := lipgloss.NewStyle()
	return Theme{Frame: plain, Title: plain, Counter: plain, Message: plain}
}
