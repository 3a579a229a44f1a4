/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/basic-settings/mariner/internal/tui/colors"
	"github.com/basic-settings/mariner/internal/tui/keys"
	"github.com/basic-settings/mariner/internal/tui/styles"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"
	"github.com/spf13/cobra"
)

// filesCmd represents the files command
var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List printable files in the upload directory",
	Long: `List the printable files in the upload directory shared with the printer.

Only sliced resin files are shown (.ctb, .cbddlp and .fdg). The directory
defaults to the files_directory from the config file, typically the USB
gadget share exposed to the printer.

With --table, an interactive table opens instead. Selecting a file with
enter prints its name to stdout on exit, which combines with the print
commands:

  mariner print start "$(mariner files --table)"

Example usage:
  mariner files
  mariner files --dir /mnt/usb_share
  mariner files --table`,
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("dir")
		if dir == "" {
			dir = settings.FilesDirectory
		}
		tableMode, _ := cmd.Flags().GetBool("table")

		files, err := listPrintFiles(dir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing files: %v\n", err)
			os.Exit(1)
		}

		if len(files) == 0 {
			fmt.Printf("No printable files in %s\n", dir)
			return
		}

		if tableMode {
			if err := runFilesTable(files); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		} else {
			renderFiles(files)
		}
	},
}

func init() {
	rootCmd.AddCommand(filesCmd)

	filesCmd.Flags().String("dir", "", "Directory to list (default: files_directory from config)")
	filesCmd.Flags().Bool("table", false, "Browse files in an interactive table")
}

type printFile struct {
	name    string
	size    int64
	modTime time.Time
}

// listPrintFiles returns the printable files in dir, sorted by name.
func listPrintFiles(dir string) ([]printFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []printFile
	for _, entry := range entries {
		if entry.IsDir() || !isPrintableFile(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, printFile{
			name:    entry.Name(),
			size:    info.Size(),
			modTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].name < files[j].name
	})
	return files, nil
}

// isPrintableFile reports whether the name has a sliced resin file extension.
func isPrintableFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ctb", ".cbddlp", ".fdg":
		return true
	}
	return false
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// renderFiles renders the file list in simple aligned text format
func renderFiles(files []printFile) {
	nameWidth := 30
	sizeWidth := 10

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("240")).
		PaddingBottom(1)

	cellStyle := lipgloss.NewStyle().
		PaddingRight(2)

	header := fmt.Sprintf("%-*s %*s  %s",
		nameWidth, "File",
		sizeWidth, "Size",
		"Modified")
	fmt.Println(headerStyle.Render(header))

	for _, f := range files {
		row := fmt.Sprintf("%-*s %*s  %s",
			nameWidth, f.name,
			sizeWidth, humanSize(f.size),
			f.modTime.Format("2006-01-02 15:04"))
		fmt.Println(cellStyle.Render(row))
	}
}

const (
	columnKeyFile     = "file"
	columnKeySize     = "size"
	columnKeyModified = "modified"
)

// filesModel represents the Bubble Tea model for the interactive file table
type filesModel struct {
	table    table.Model
	keys     keys.FilesKeys
	help     help.Model
	selected string
}

func runFilesTable(files []printFile) error {
	columns := []table.Column{
		table.NewFlexColumn(columnKeyFile, "File", 1),
		table.NewColumn(columnKeySize, "Size", 10),
		table.NewColumn(columnKeyModified, "Modified", 17),
	}

	rows := make([]table.Row, 0, len(files))
	for _, f := range files {
		rows = append(rows, table.NewRow(table.RowData{
			columnKeyFile:     f.name,
			columnKeySize:     humanSize(f.size),
			columnKeyModified: f.modTime.Format("2006-01-02 15:04"),
		}))
	}

	m := filesModel{
		table: table.New(columns).
			WithRows(rows).
			Focused(true).
			WithBaseStyle(lipgloss.NewStyle().
				Foreground(colors.Text).
				BorderForeground(colors.Surface2).
				Align(lipgloss.Left)).
			WithPageSize(15).
			WithTargetWidth(80),
		keys: keys.NewFilesKeys(),
		help: help.New(),
	}

	finalModel, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}

	// Print the selection to stdout so it can feed other commands.
	if fm, ok := finalModel.(filesModel); ok && fm.selected != "" {
		fmt.Println(fm.selected)
	}
	return nil
}

func (m filesModel) Init() tea.Cmd {
	return nil
}

func (m filesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table = m.table.WithTargetWidth(msg.Width)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll

		case key.Matches(msg, m.keys.Select):
			if name, ok := m.table.HighlightedRow().Data[columnKeyFile].(string); ok {
				m.selected = name
			}
			return m, tea.Quit
		}
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m filesModel) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		styles.TitleStyle.Render("Print files"),
		m.table.View(),
		m.help.View(m.keys),
	)
}
