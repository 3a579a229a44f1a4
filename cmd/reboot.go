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

// rebootCmd represents the reboot command
var rebootCmd = &cobra.Command{
	Use:   "reboot",
	Short: "Reboot the printer mainboard",
	Long: `Reboot the printer mainboard, optionally after a delay.

The printer drops off the serial port while it restarts, so this command
does not wait for an acknowledgement.

Example usage:
  mariner reboot
  mariner reboot --delay 500ms`,
	Run: func(cmd *cobra.Command, args []string) {
		delay, _ := cmd.Flags().GetDuration("delay")
		if delay < 0 {
			fmt.Fprintf(os.Stderr, "Invalid delay %v: must not be negative\n", delay)
			os.Exit(1)
		}

		p, err := openPrinter()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer p.Close()

		if err := p.Reboot(delay); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		successStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("40")).
			Bold(true)
		if delay > 0 {
			fmt.Printf("%s Printer rebooting in %v\n", successStyle.Render("✓"), delay)
		} else {
			fmt.Printf("%s Printer rebooting\n", successStyle.Render("✓"))
		}
	},
}

func init() {
	rootCmd.AddCommand(rebootCmd)

	rebootCmd.Flags().Duration("delay", 0, "Delay before the reboot")
}
