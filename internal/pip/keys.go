package pip

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the companion bindings
type KeyMap struct {
	Toggle    key.Binding
	Reset     key.Binding
	Skip      key.Binding
	Music     key.Binding
	NextTrack key.Binding
	PrevTrack key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the companion bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause")),
		Reset:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Skip:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skip")),
		Music:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "music")),
		NextTrack: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next track")),
		PrevTrack: key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "previous track")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "close")),
	}
}
