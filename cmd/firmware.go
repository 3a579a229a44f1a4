/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// firmwareCmd represents the firmware command
var firmwareCmd = &cobra.Command{
	Use:   "firmware",
	Short: "Show the printer firmware version",
	Long: `Query the printer for its firmware version and print it.

Example usage:
  mariner firmware
  mariner firmware -d /dev/ttyUSB0`,
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

		fmt.Println(version)
	},
}

func init() {
	rootCmd.AddCommand(firmwareCmd)
}
