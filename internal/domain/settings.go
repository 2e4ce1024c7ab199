package domain

import "sort"

const (
	DefaultFocusMinutes      = 25
	DefaultShortBreakMinutes = 5
	DefaultTheme             = "default"
)

// Settings are the user-tunable timer preferences
type Settings struct {
	FocusDuration      int    `json:"focusDuration"`      // minutes
	ShortBreakDuration int    `json:"shortBreakDuration"` // minutes
	Theme              string `json:"theme"`
}

// DefaultSettings returns the settings used on first launch
func DefaultSettings() Settings {
	return Settings{
		FocusDuration:      DefaultFocusMinutes,
		ShortBreakDuration: DefaultShortBreakMinutes,
		Theme:              DefaultTheme,
	}
}

// Normalize replaces unusable values with defaults
func (s Settings) Normalize() Settings {
	if s.FocusDuration <= 0 {
		s.FocusDuration = DefaultFocusMinutes
	}
	if s.ShortBreakDuration <= 0 {
		s.ShortBreakDuration = DefaultShortBreakMinutes
	}
	if _, ok := ThemeColors[s.Theme]; !ok {
		s.Theme = DefaultTheme
	}
	return s
}

// DurationFor returns the session length of mode in seconds
func (s Settings) DurationFor(mode Mode) int {
	if mode == ModeShortBreak {
		return s.ShortBreakDuration * 60
	}
	return s.FocusDuration * 60
}

// Preset is a saved pair of durations
type Preset struct {
	Name               string `json:"name"`
	FocusDuration      int    `json:"focusDuration"`
	ShortBreakDuration int    `json:"shortBreakDuration"`
}

// ThemeColors maps theme ids to their background colour
var ThemeColors = map[string]string{
	"default": "#282c34",
	"light":   "#f0f0f0",
	"dark":    "#1c2526",
	"forest":  "#2e3b2f",
	"ocean":   "#2b3e50",
}

// ModeColors maps modes to their accent colour
var ModeColors = map[Mode]string{
	ModeFocus:      "#e74c3c",
	ModeShortBreak: "#3498db",
}

// ThemeNames returns the theme ids in a stable order with the default first
func ThemeNames() []string {
	names := make([]string, 0, len(ThemeColors))
	for name := range ThemeColors {
		if name != DefaultTheme {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return append([]string{DefaultTheme}, names...)
}

// NextTheme returns the theme after current in ThemeNames order
func NextTheme(current string) string {
	names := ThemeNames()
	for i, name := range names {
		if name == current {
			return names[(i+1)%len(names)]
		}
	}
	return DefaultTheme
}

// ThemeTable returns a copy of the theme colour table
func ThemeTable() map[string]string {
	table := make(map[string]string, len(ThemeColors))
	for k, v := range ThemeColors {
		table[k] = v
	}
	return table
}

// Records are the durable, non-replicated records; also the archive format
type Records struct {
	Settings Settings `json:"settings"`
	Stats    Stats    `json:"stats"`
	Tasks    []Task   `json:"tasks"`
	Presets  []Preset `json:"presets"`
}
