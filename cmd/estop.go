/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// estopCmd represents the estop command
var estopCmd = &cobra.Command{
	Use:     "estop",
	Aliases: []string{"stop-motors"},
	Short:   "Emergency stop all motors",
	Long: `Emergency stop: halt all stepper motors immediately.

This aborts whatever motion is in progress, including a running print.
The firmware does not acknowledge the command, so none is waited for.

Example usage:
  mariner estop`,
	Run: func(cmd *cobra.Command, args []string) {
		p, err := openPrinter()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer p.Close()

		if err := p.StopMotors(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		warnStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
		fmt.Printf("%s Motors stopped\n", warnStyle.Render("■"))
	},
}

func init() {
	rootCmd.AddCommand(estopCmd)
}
