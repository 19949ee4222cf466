package ui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Title     lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Border    lipgloss.Style
	Focused   lipgloss.Style
	Cursor    lipgloss.Style
	Hint      lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Success   lipgloss.Style
	Modal     lipgloss.Style
	StatusBar lipgloss.Style
}

var DefaultTheme = Theme{
	Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
	Label:     lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#89B4FA")),
	Value:     lipgloss.NewStyle().Foreground(lipgloss.Color("#F2CDCD")),
	Border:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#6C7086")).Padding(0, 1),
	Focused:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#CBA6F7")).Padding(0, 1),
	Cursor:    lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("#313244")),
	Hint:      lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#CBA6F7")),
	Error:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F38BA8")),
	Warning:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAB387")),
	Success:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
	Modal:     lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("#89B4FA")).Padding(1, 2),
	StatusBar: lipgloss.NewStyle().Foreground(lipgloss.Color("#BAC2DE")),
}

// MonoTheme drops colors for terminals configured with theme: mono.
var MonoTheme = Theme{
	Title:     lipgloss.NewStyle().Bold(true),
	Label:     lipgloss.NewStyle().Faint(true),
	Value:     lipgloss.NewStyle(),
	Border:    lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
	Focused:   lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Padding(0, 1),
	Cursor:    lipgloss.NewStyle().Reverse(true),
	Hint:      lipgloss.NewStyle().Faint(true),
	Error:     lipgloss.NewStyle().Bold(true),
	Warning:   lipgloss.NewStyle().Bold(true),
	Success:   lipgloss.NewStyle().Bold(true),
	Modal:     lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Padding(1, 2),
	StatusBar: lipgloss.NewStyle(),
}

func themeFor(name string) Theme {
	if name == "mono" {
		return MonoTheme
	}
	return DefaultTheme
}
