package components

import (
	"fmt"

	"github.com/basic-settings/mariner"
	"github.com/basic-settings/mariner/internal/tui/colors"
	"github.com/basic-settings/mariner/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
)

// StatusBar renders the bottom bar of the TUI commands: printer state badge,
// device path with a connection indicator, and serial link details.
type StatusBar struct {
	device    string
	baudRate  int
	status    string
	err       error
	width     int
	state     mariner.PrinterState
	connected bool
}

func NewStatusBar(device string, baudRate int) *StatusBar {
	return &StatusBar{
		device:   device,
		baudRate: baudRate,
		status:   "Initializing...",
	}
}

func (sb *StatusBar) SetWidth(width int) {
	sb.width = width
}

func (sb *StatusBar) SetState(state mariner.PrinterState) {
	sb.state = state
}

func (sb *StatusBar) SetConnecting() {
	sb.status = "Connecting..."
	sb.connected = false
	sb.err = nil
}

func (sb *StatusBar) SetConnected() {
	sb.status = "Connected"
	sb.connected = true
	sb.err = nil
}

func (sb *StatusBar) SetDisconnected(err error) {
	sb.connected = false
	if err != nil {
		sb.status = fmt.Sprintf("Connection failed: %v", err)
		sb.err = err
	} else {
		sb.status = "Disconnected"
		sb.err = nil
	}
}

func (sb *StatusBar) View(timestamp string) string {
	terminalWidth := sb.width
	if terminalWidth <= 0 {
		terminalWidth = 80
	}

	// Section 1: printer state badge (like the mode indicator in nvim)
	var badge string
	if sb.connected {
		badge = styles.StateBadgeStyle(sb.state).Render(sb.state.String())
	} else {
		badgeStyle := lipgloss.NewStyle().
			Foreground(colors.Base).
			Background(colors.Surface2).
			Bold(true).
			Padding(0, 1)
		badge = badgeStyle.Render("OFFLINE")
	}

	// Section 2: device path
	deviceStyle := lipgloss.NewStyle().
		Foreground(colors.Mauve).
		Bold(true).
		Padding(0, 1)
	device := deviceStyle.Render(sb.device)

	// Section 3: single character connection indicator
	var connIndicator string
	var connStyle lipgloss.Style

	if sb.err != nil {
		connStyle = lipgloss.NewStyle().Foreground(colors.Red)
		connIndicator = "✗"
	} else if sb.connected {
		connStyle = lipgloss.NewStyle().Foreground(colors.Green)
		connIndicator = "●"
	} else if sb.status == "Connecting..." {
		connStyle = lipgloss.NewStyle().Foreground(colors.Yellow)
		connIndicator = "○"
	} else {
		connStyle = lipgloss.NewStyle().Foreground(colors.Red)
		connIndicator = "○"
	}

	connectionIndicator := connStyle.Render(connIndicator)

	// Section 4: serial link details
	linkInfoStyle := lipgloss.NewStyle().
		Foreground(colors.Subtext0).
		Padding(0, 1)
	linkDetails := linkInfoStyle.Render(fmt.Sprintf("⚡ %d baud 8N1", sb.baudRate))

	// Section 5: timestamp
	timeStyle := lipgloss.NewStyle().
		Foreground(colors.Subtext1).
		Padding(0, 1)
	time := timeStyle.Render(timestamp)

	dividerStyle := lipgloss.NewStyle().
		Foreground(colors.Surface2).
		Padding(0, 1)
	divider := dividerStyle.Render("│")

	leftSide := lipgloss.JoinHorizontal(lipgloss.Left, badge, device, connectionIndicator, divider)
	rightSide := lipgloss.JoinHorizontal(lipgloss.Left, linkDetails, divider, time)

	leftWidth := lipgloss.Width(leftSide)
	rightWidth := lipgloss.Width(rightSide)
	spacerWidth := terminalWidth - leftWidth - rightWidth
	if spacerWidth < 1 {
		spacerWidth = 1
	}

	spacer := lipgloss.NewStyle().Width(spacerWidth).Render("")

	statusBarStyle := lipgloss.NewStyle().
		Foreground(colors.Text).
		Background(colors.Surface0).
		Width(terminalWidth)

	content := lipgloss.JoinHorizontal(lipgloss.Left, leftSide, spacer, rightSide)
	return statusBarStyle.Render(content)
}
