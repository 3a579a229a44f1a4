package keys

import "github.com/charmbracelet/bubbles/key"

// Common key bindings used across TUI commands
type CommonKeys struct {
	Quit key.Binding
	Help key.Binding
}

func NewCommonKeys() CommonKeys {
	return CommonKeys{
		Quit: key.NewBinding(
			key.WithKeys("q", "Q", "ctrl+c"),
			key.WithHelp("q/ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}

// Key bindings for the live status watcher
type WatchKeys struct {
	CommonKeys
	Pause   key.Binding
	Resume  key.Binding
	Refresh key.Binding
}

func NewWatchKeys() WatchKeys {
	return WatchKeys{
		CommonKeys: NewCommonKeys(),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause print"),
		),
		Resume: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "resume print"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "refresh now"),
		),
	}
}

func (k WatchKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Pause, k.Resume, k.Quit}
}

func (k WatchKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Resume, k.Refresh},
		{k.Help, k.Quit},
	}
}

// Key bindings for the file browser table
type FilesKeys struct {
	CommonKeys
	Select key.Binding
}

func NewFilesKeys() FilesKeys {
	return FilesKeys{
		CommonKeys: NewCommonKeys(),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select file"),
		),
	}
}

func (k FilesKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Quit}
}

func (k FilesKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Select},
		{k.Help, k.Quit},
	}
}
