/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/basic-settings/mariner"
	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

// consoleCmd represents the console command
var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Interactive G-code console",
	Long: `Open an interactive console for sending raw G-code to the printer.

Each line is sent as one command and the reply is printed. Commands the
printer never answers, like M112, show up as "(no response)". Tab
completes the known command verbs, and history persists across sessions
in the cache directory.

Type quit or exit (or press ctrl-d) to leave.

Example session:
  > M4002
  ok V4.3.4_LCDC
  > M114
  ok C: X:0.000000 Y:0.000000 Z:155.000000 E:0.000000
  > M27
  SD printing byte 23012/23543968`,
	Run: func(cmd *cobra.Command, args []string) {
		p, err := openPrinter()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer p.Close()

		runConsole(p)
	},
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}

// knownVerbs are the command verbs offered by tab completion.
var knownVerbs = []string{
	"G0", "G28",
	"M23", "M24", "M25", "M27", "M33",
	"M112", "M114",
	"M4000", "M4002", "M4006", "M6030", "M6040",
}

func runConsole(p *mariner.Printer) {
	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("243")).
		Faint(true)
	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("196")).
		Bold(true)

	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(input string) []string {
		var out []string
		prefix := strings.ToUpper(input)
		for _, verb := range knownVerbs {
			if strings.HasPrefix(verb, prefix) {
				out = append(out, verb+" ")
			}
		}
		return out
	})

	historyPath := filepath.Join(settings.Cache.Directory, "console_history")
	if err := os.MkdirAll(settings.Cache.Directory, 0o755); err == nil {
		if f, err := os.Open(historyPath); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
	}

	fmt.Printf("Connected to %s. Type quit to leave.\n", effectiveDevice())

	for {
		input, err := line.Prompt("> ")
		if err == liner.ErrPromptAborted || err == io.EOF {
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
			break
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == "quit" || input == "exit" {
			break
		}
		line.AppendHistory(input)

		verb, arg, _ := strings.Cut(input, " ")
		gcode := mariner.Command{
			Verb: strings.ToUpper(verb),
			Arg:  strings.TrimSpace(arg),
		}

		reply, err := p.Exchange(gcode)
		switch {
		case errors.Is(err, mariner.ErrNoResponse):
			fmt.Println(dimStyle.Render("(no response)"))
		case err != nil:
			fmt.Printf("%s %v\n", errorStyle.Render("✗"), err)
		default:
			fmt.Println(strings.TrimRight(reply, "\r\n"))
		}
	}

	if f, err := os.Create(historyPath); err == nil {
		line.WriteHistory(f)
		f.Close()
	}
}
