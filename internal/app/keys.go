package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the main window bindings
type KeyMap struct {
	Toggle     key.Binding
	Reset      key.Binding
	Skip       key.Binding
	Focus      key.Binding
	Break      key.Binding
	Companion  key.Binding
	Music      key.Binding
	NextTrack  key.Binding
	PrevTrack  key.Binding
	AddTask    key.Binding
	Up         key.Binding
	Down       key.Binding
	BindTask   key.Binding
	DeleteTask key.Binding
	Theme      key.Binding
	Durations  key.Binding
	SavePreset key.Binding
	NextPreset key.Binding
	Export     key.Binding
	Import     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the main window bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause")),
		Reset:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Skip:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skip session")),
		Focus:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "focus mode")),
		Break:      key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "short break mode")),
		Companion:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "open/close companion")),
		Music:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "play/pause music")),
		NextTrack:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next track")),
		PrevTrack:  key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "previous track")),
		AddTask:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
		Up:         key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "previous task")),
		Down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "next task")),
		BindTask:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "work on task")),
		DeleteTask: key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete task")),
		Theme:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "next theme")),
		Durations:  key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "session lengths")),
		SavePreset: key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "save preset")),
		NextPreset: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "apply next preset")),
		Export:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export data")),
		Import:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import data")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Skip, k.Companion, k.AddTask, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Reset, k.Skip, k.Focus, k.Break, k.Durations},
		{k.AddTask, k.Up, k.Down, k.BindTask, k.DeleteTask},
		{k.Companion, k.Music, k.NextTrack, k.PrevTrack, k.Theme},
		{k.SavePreset, k.NextPreset, k.Export, k.Import, k.Help, k.Quit},
	}
}
