package styles

import (
	"github.com/basic-settings/mariner"
	"github.com/basic-settings/mariner/internal/tui/colors"
	"github.com/charmbracelet/lipgloss"
)

var (
	// Header styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Mauve).
			Background(colors.Surface0).
			Padding(0, 1)

	// Connection status styles
	StatusConnectedStyle = lipgloss.NewStyle().
				Foreground(colors.Green).
				Bold(true)

	StatusDisconnectedStyle = lipgloss.NewStyle().
				Foreground(colors.Red).
				Bold(true)

	StatusConnectingStyle = lipgloss.NewStyle().
				Foreground(colors.Yellow).
				Bold(true)

	// Content area styles
	ContentBorderStyle = lipgloss.NewStyle().
				BorderTop(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(colors.Surface1)

	// Label/value styles for field listings
	LabelStyle = lipgloss.NewStyle().
			Foreground(colors.Subtext0).
			Width(14)

	ValueStyle = lipgloss.NewStyle().
			Foreground(colors.Text)

	FileStyle = lipgloss.NewStyle().
			Foreground(colors.Sapphire)

	// Error styles
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Red).
			Align(lipgloss.Center)

	// Info styles
	InfoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Mauve).
			Align(lipgloss.Center)
)

// Per-state accent colors, used for the state badge and inline state names.
var stateColors = map[mariner.PrinterState]lipgloss.Color{
	mariner.StateIdle:          colors.Blue,
	mariner.StateStartingPrint: colors.Yellow,
	mariner.StatePrinting:      colors.Green,
	mariner.StatePaused:        colors.Peach,
	mariner.StateUnknown:       colors.Red,
}

// StateColor returns the accent color for a printer state.
func StateColor(state mariner.PrinterState) lipgloss.Color {
	if c, ok := stateColors[state]; ok {
		return c
	}
	return colors.Red
}

// StateStyle renders a printer state name in its accent color.
func StateStyle(state mariner.PrinterState) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(StateColor(state))
}

// StateBadgeStyle renders a printer state as an inverted badge.
func StateBadgeStyle(state mariner.PrinterState) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(colors.Base).
		Background(StateColor(state)).
		Bold(true).
		Padding(0, 1)
}

type StatusType int

const (
	StatusConnected StatusType = iota
	StatusDisconnected
	StatusConnecting
	StatusError
)

func GetStatusStyle(status StatusType) lipgloss.Style {
	switch status {
	case StatusConnected:
		return StatusConnectedStyle
	case StatusDisconnected:
		return StatusDisconnectedStyle
	case StatusConnecting:
		return StatusConnectingStyle
	case StatusError:
		return StatusDisconnectedStyle
	default:
		return StatusDisconnectedStyle
	}
}
