/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/basic-settings/mariner"
	"github.com/basic-settings/mariner/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile     string
	flagDevice  string
	flagBaud    int
	flagTimeout time.Duration

	settings config.Settings
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mariner",
	Short: "Control MSLA resin printers over their serial port",
	Long: `Control ChiTu-based MSLA resin printers (Elegoo Mars and friends) over
their serial G-code interface.

The printer is reached through a serial device, typically the UART header
of a Raspberry Pi wired to the printer mainboard, or a USB serial adapter.
Device and baud rate come from the configuration file and can be overridden
per invocation with --device and --baud.

Example usage:
  mariner status
  mariner watch
  mariner print start lattice.ctb
  mariner console -d /dev/ttyUSB0`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default searches ., $HOME/.mariner, /etc/mariner)")
	rootCmd.PersistentFlags().StringVarP(&flagDevice, "device", "d", "", "serial device of the printer (overrides config)")
	rootCmd.PersistentFlags().IntVarP(&flagBaud, "baud", "b", 0, "baud rate (overrides config)")
	rootCmd.PersistentFlags().DurationVarP(&flagTimeout, "timeout", "t", 0, "serial read timeout, in 100ms steps (overrides config)")
}

// initConfig reads in the config file before any command runs.
func initConfig() {
	var err error
	if cfgFile != "" {
		settings, err = config.LoadFile(cfgFile)
	} else {
		settings, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
		os.Exit(1)
	}
}

// effectiveDevice returns the serial device the commands will use, with the
// --device flag taking precedence over the config file.
func effectiveDevice() string {
	if flagDevice != "" {
		return flagDevice
	}
	return settings.Printer.SerialPort
}

// effectiveBaudRate returns the baud rate the commands will use, with the
// --baud flag taking precedence over the config file.
func effectiveBaudRate() int {
	if flagBaud > 0 {
		return flagBaud
	}
	return settings.Printer.Baudrate
}

// printerOptions builds the printer options from the loaded settings,
// with command line flags taking precedence.
func printerOptions() []mariner.Option {
	opts := []mariner.Option{
		mariner.WithDevice(effectiveDevice()),
		mariner.WithBaudRate(effectiveBaudRate()),
	}
	if flagTimeout > 0 {
		opts = append(opts, mariner.WithReadTimeout(flagTimeout))
	}
	return opts
}

// openPrinter creates a printer from the effective configuration and opens
// the serial connection.
func openPrinter() (*mariner.Printer, error) {
	p, err := mariner.NewPrinter(printerOptions()...)
	if err != nil {
		return nil, err
	}
	if err := p.Open(); err != nil {
		return nil, err
	}
	return p, nil
}
