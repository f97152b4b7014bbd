package ui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Title    lipgloss.Style
	Clock    lipgloss.Style
	TabOn    lipgloss.Style
	TabOff   lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Border   lipgloss.Style
	Hint     lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Running  lipgloss.Style
	Paused   lipgloss.Style
}

var DefaultTheme = Theme{
	Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
	Clock:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#CDD6F4")),
	TabOn:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1E1E2E")).Background(lipgloss.Color("#89B4FA")).Padding(0, 1),
	TabOff:  lipgloss.NewStyle().Faint(true).Padding(0, 1),
	Label:   lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#89B4FA")),
	Value:   lipgloss.NewStyle().Foreground(lipgloss.Color("#F2CDCD")),
	Border:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2),
	Hint:    lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#CBA6F7")),
	Error:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F38BA8")),
	Success: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
	Running: lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
	Paused:  lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF")),
}
