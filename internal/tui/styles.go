package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title       lipgloss.Style
	description lipgloss.Style
	label       lipgloss.Style
	value       lipgloss.Style

	progressFull  lipgloss.Style
	progressEmpty lipgloss.Style

	statusPlanned   lipgloss.Style
	statusActive    lipgloss.Style
	statusCompleted lipgloss.Style

	cursor lipgloss.Style
	done   lipgloss.Style
	open   lipgloss.Style
	locked lipgloss.Style

	section lipgloss.Style
	hint    lipgloss.Style

	toastInfo  lipgloss.Style
	toastWarn  lipgloss.Style
	toastError lipgloss.Style

	confirm lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("238")),
		description: lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Italic(true),
		label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(10),
		value: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true),

		progressFull:  lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		progressEmpty: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),

		statusPlanned:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		statusActive:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		statusCompleted: lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),

		cursor: lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		done:   lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		open:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		locked: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),

		section: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Bold(true).
			MarginTop(1),
		hint: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),

		toastInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("28")).Bold(true),
		toastWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		toastError: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),

		confirm: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(0, 1),
	}
}
