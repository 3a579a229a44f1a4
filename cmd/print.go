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

// printCmd represents the print command
var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Control print jobs",
	Long: `Control print jobs on the printer: select a file from the SD card or
USB share, start printing it, and pause, resume or stop a running print.

File names are as the printer sees them, so a file uploaded to the USB
share is addressed by its plain name.

Example usage:
  mariner print select lattice.ctb
  mariner print start lattice.ctb
  mariner print pause
  mariner print resume
  mariner print stop`,
}

var printSelectCmd = &cobra.Command{
	Use:   "select <file>",
	Short: "Select a file on the printer",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		filename := args[0]

		p, err := openPrinter()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer p.Close()

		if err := p.SelectFile(filename); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s Selected %s\n", printSuccessStyle.Render("✓"), filename)
	},
}

var printStartCmd = &cobra.Command{
	Use:   "start <file>",
	Short: "Start printing a file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		filename := args[0]

		p, err := openPrinter()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer p.Close()

		if err := p.StartPrinting(filename); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s Started printing %s\n", printSuccessStyle.Render("✓"), filename)
	},
}

var printPauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause the current print",
	Run: func(cmd *cobra.Command, args []string) {
		p, err := openPrinter()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer p.Close()

		if err := p.PausePrinting(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s Print paused\n", printSuccessStyle.Render("✓"))
	},
}

var printResumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume a paused print",
	Run: func(cmd *cobra.Command, args []string) {
		p, err := openPrinter()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer p.Close()

		if err := p.ResumePrinting(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s Print resumed\n", printSuccessStyle.Render("✓"))
	},
}

var printStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the current print",
	Long: `Stop the current print. Stopping cannot be undone: the print head lifts
and the job is abandoned. Use 'mariner print pause' to interrupt a print
you may want to continue.`,
	Run: func(cmd *cobra.Command, args []string) {
		p, err := openPrinter()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer p.Close()

		if err := p.StopPrinting(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s Print stopped\n", printSuccessStyle.Render("✓"))
	},
}

var printSuccessStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("40")).
	Bold(true)

func init() {
	rootCmd.AddCommand(printCmd)

	printCmd.AddCommand(printSelectCmd)
	printCmd.AddCommand(printStartCmd)
	printCmd.AddCommand(printPauseCmd)
	printCmd.AddCommand(printResumeCmd)
	printCmd.AddCommand(printStopCmd)
}
