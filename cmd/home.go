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

// homeCmd represents the home command
var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Home the Z axis",
	Long: `Home the Z axis. The build plate moves down until it hits the limit
switch, which the firmware then takes as Z = 0.

Remove any printed part from the build plate first. The printer
acknowledges the command immediately and homes in the background.

Example usage:
  mariner home`,
	Run: func(cmd *cobra.Command, args []string) {
		p, err := openPrinter()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer p.Close()

		if err := p.MoveToHome(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		successStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("40")).
			Bold(true)
		fmt.Printf("%s Homing Z axis\n", successStyle.Render("✓"))
	},
}

func init() {
	rootCmd.AddCommand(homeCmd)
}
