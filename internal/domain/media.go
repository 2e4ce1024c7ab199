package domain

// Track is the metadata shown for the current song
type Track struct {
	Name   string `json:"name"`
	Artist string `json:"artist"`
}

// MediaState is the replicated state of the embedded music player
type MediaState struct {
	IsPlaying    bool  `json:"isPlaying"`
	CurrentTrack Track `json:"currentTrack"`
}

// DefaultMediaState returns the player state before any command was issued
func DefaultMediaState() MediaState {
	return MediaState{
		CurrentTrack: Track{Name: "Star Boy", Artist: "The Weeknd"},
	}
}

// The player does not report metadata back, so skipping shows placeholders.
var (
	NextTrackPlaceholder     = Track{Name: "Next Track", Artist: "Next Artist"}
	PreviousTrackPlaceholder = Track{Name: "Previous Track", Artist: "Previous Artist"}
)
