/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/basic-settings/mariner"
	"github.com/basic-settings/mariner/internal/tui/styles"
	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show a full printer status report",
	Long: `Query the printer and print a one-shot status report: firmware version,
print state, progress, Z position and the selected file.

Examples:
  mariner status
  mariner status -d /dev/ttyUSB0 -b 115200

For a continuously updating view, use 'mariner watch' instead.`,
	Run: func(cmd *cobra.Command, args []string) {
		p, err := openPrinter()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer p.Close()

		version, err := p.FirmwareVersion()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		status, err := p.PrintStatus()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		report, err := p.StateReport()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		zPos, err := p.ZPosition()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		// M4006 reports the last selection even between prints. A printer
		// that has never selected a file answers with an empty name, which
		// the parser rejects, so treat that as "no file".
		selected, _ := p.SelectedFile()

		state := status.State
		if report.Paused && state == mariner.StatePrinting {
			state = mariner.StatePaused
		}

		name := settings.Printer.DisplayName
		if name == "" {
			name = "Printer"
		}

		fmt.Printf("%s\n\n", styles.TitleStyle.Render(fmt.Sprintf("%s (%s)", name, effectiveDevice())))
		fmt.Printf("  Firmware:    %s\n", version)
		fmt.Printf("  State:       %s\n", styles.StateStyle(state).Render(state.String()))
		if frac, ok := status.Progress(); ok {
			fmt.Printf("  Progress:    %.1f%% (%d/%d bytes)\n", 100*frac, *status.CurrentByte, *status.TotalBytes)
		}
		fmt.Printf("  Z position:  %.1f mm\n", zPos)
		if selected != "" {
			fmt.Printf("  File:        %s\n", styles.FileStyle.Render(selected))
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
