/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/basic-settings/mariner"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// moveCmd represents the move command
var moveCmd = &cobra.Command{
	Use:   "move <delta>",
	Short: "Move the Z axis by a relative distance",
	Long: `Move the Z axis by the given distance in millimeters. Positive values
move away from the build plate, negative values move toward it.

The printer must be homed first or it will refuse relative moves from an
unknown position. Large downward moves can drive the build plate into the
vat, so double check the sign.

Example usage:
  mariner move 10
  mariner move -- -5.5
  mariner move 0.1 --feed 30`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		delta, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid distance %q: %v\n", args[0], err)
			os.Exit(1)
		}

		feed, _ := cmd.Flags().GetInt("feed")
		if feed <= 0 {
			fmt.Fprintf(os.Stderr, "Invalid feed rate %d: must be positive\n", feed)
			os.Exit(1)
		}

		p, err := openPrinter()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer p.Close()

		if err := p.MoveByAtRate(delta, feed); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		successStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("40")).
			Bold(true)
		fmt.Printf("%s Moving Z by %+.1f mm at %d mm/min\n", successStyle.Render("✓"), delta, feed)
	},
}

func init() {
	rootCmd.AddCommand(moveCmd)

	moveCmd.Flags().IntP("feed", "f", mariner.DefaultFeedRate, "Feed rate in mm/min")
}
