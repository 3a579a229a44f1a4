/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/basic-settings/mariner"
	"github.com/basic-settings/mariner/internal/tui/components"
	"github.com/basic-settings/mariner/internal/tui/keys"
	"github.com/basic-settings/mariner/internal/tui/styles"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the printer status live",
	Long: `Watch the printer status in a live updating terminal interface.

The printer is polled at a fixed interval for its print state, progress
and Z position. While a print is running, the progress bar tracks how far
into the file the printer has read. Prints can be paused and resumed
directly from the watcher.

Key bindings:
  p       pause the running print
  r       resume a paused print
  enter   refresh immediately
  q       quit

Example usage:
  mariner watch
  mariner watch --interval 5s
  mariner watch -d /dev/ttyUSB0`,
	Run: func(cmd *cobra.Command, args []string) {
		interval, _ := cmd.Flags().GetDuration("interval")
		if interval <= 0 {
			interval = 2 * time.Second
		}

		p, err := openPrinter()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer p.Close()

		if err := runWatchTUI(p, interval); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationP("interval", "i", 2*time.Second, "Poll interval")
}

type tickMsg time.Time

// watchStatusMsg carries the result of one polling round trip
type watchStatusMsg struct {
	status   mariner.PrintStatus
	report   mariner.StateReport
	selected string
	err      error
}

// watchActionMsg carries the result of a pause or resume request
type watchActionMsg struct {
	err error
}

// watchModel represents the Bubble Tea model for the watch command
type watchModel struct {
	printer  *mariner.Printer
	interval time.Duration

	progress  progress.Model
	help      help.Model
	keys      keys.WatchKeys
	statusBar *components.StatusBar

	status   mariner.PrintStatus
	report   mariner.StateReport
	selected string
	err      error

	width int
	ready bool
	// The serial exchange is strictly one command at a time, so only a
	// single poll or action command may be in flight.
	inflight bool
}

func runWatchTUI(p *mariner.Printer, interval time.Duration) error {
	m := watchModel{
		printer:   p,
		interval:  interval,
		progress:  progress.New(progress.WithDefaultGradient()),
		help:      help.New(),
		keys:      keys.NewWatchKeys(),
		statusBar: components.NewStatusBar(effectiveDevice(), effectiveBaudRate()),
		inflight:  true, // Init issues the first poll
	}
	m.statusBar.SetConnecting()

	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.poll(), m.tick())
}

func (m watchModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m watchModel) poll() tea.Cmd {
	printer := m.printer
	return func() tea.Msg {
		var msg watchStatusMsg
		msg.status, msg.err = printer.PrintStatus()
		if msg.err != nil {
			return msg
		}
		msg.report, msg.err = printer.StateReport()
		if msg.err != nil {
			return msg
		}
		// No selection yet makes this fail, which just means no file line.
		msg.selected, _ = printer.SelectedFile()
		return msg
	}
}

func (m watchModel) pause() tea.Cmd {
	printer := m.printer
	return func() tea.Msg {
		return watchActionMsg{err: printer.PausePrinting()}
	}
}

func (m watchModel) resume() tea.Cmd {
	printer := m.printer
	return func() tea.Msg {
		return watchActionMsg{err: printer.ResumePrinting()}
	}
}

// currentState folds the paused flag from the state report into the
// byte-level print status.
func (m watchModel) currentState() mariner.PrinterState {
	state := m.status.State
	if m.report.Paused && state == mariner.StatePrinting {
		state = mariner.StatePaused
	}
	return state
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = msg.Width - 12
		if m.progress.Width > 60 {
			m.progress.Width = 60
		}
		if m.progress.Width < 10 {
			m.progress.Width = 10
		}
		m.statusBar.SetWidth(msg.Width)
		m.ready = true

	case tickMsg:
		if m.inflight {
			return m, m.tick()
		}
		m.inflight = true
		return m, tea.Batch(m.poll(), m.tick())

	case watchStatusMsg:
		m.inflight = false
		m.err = msg.err
		if msg.err != nil {
			m.statusBar.SetDisconnected(msg.err)
			return m, nil
		}
		m.status = msg.status
		m.report = msg.report
		m.selected = msg.selected
		m.statusBar.SetConnected()
		m.statusBar.SetState(m.currentState())

	case watchActionMsg:
		m.inflight = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		// Poll right away so the new state shows without waiting a tick.
		m.inflight = true
		return m, m.poll()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll

		case key.Matches(msg, m.keys.Pause):
			if !m.inflight && m.currentState() == mariner.StatePrinting {
				m.inflight = true
				return m, m.pause()
			}

		case key.Matches(msg, m.keys.Resume):
			if !m.inflight && m.currentState() == mariner.StatePaused {
				m.inflight = true
				return m, m.resume()
			}

		case key.Matches(msg, m.keys.Refresh):
			if !m.inflight {
				m.inflight = true
				return m, m.poll()
			}
		}
	}

	return m, nil
}

func (m watchModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	name := settings.Printer.DisplayName
	if name == "" {
		name = "Printer"
	}
	title := styles.TitleStyle.Render(name)

	state := m.currentState()
	lines := []string{
		fmt.Sprintf("  %s %s", styles.LabelStyle.Render("State"), styles.StateStyle(state).Render(state.String())),
	}
	if m.selected != "" {
		lines = append(lines, fmt.Sprintf("  %s %s", styles.LabelStyle.Render("File"), styles.FileStyle.Render(m.selected)))
	}
	if frac, ok := m.status.Progress(); ok {
		lines = append(lines,
			fmt.Sprintf("  %s %s %.1f%%", styles.LabelStyle.Render("Progress"), m.progress.ViewAs(frac), 100*frac),
			fmt.Sprintf("  %s %s", styles.LabelStyle.Render("Bytes"),
				styles.ValueStyle.Render(fmt.Sprintf("%d / %d", *m.status.CurrentByte, *m.status.TotalBytes))),
		)
	}
	lines = append(lines, fmt.Sprintf("  %s %s", styles.LabelStyle.Render("Z position"),
		styles.ValueStyle.Render(fmt.Sprintf("%.1f mm", m.report.ZPosition))))

	if m.err != nil {
		lines = append(lines, "", "  "+styles.ErrorStyle.Render(fmt.Sprintf("✗ %v", m.err)))
	}

	content := styles.ContentBorderStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))

	timestamp := time.Now().Format("15:04:05")
	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		content,
		m.help.View(m.keys),
		m.statusBar.View(timestamp),
	)
}
