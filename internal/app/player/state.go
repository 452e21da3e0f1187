// Package player provides playlist-driven playback control over a media handle.
package player

// State is a snapshot of the player's observable state.
// All visuals are re-derived from a State after every change.
type State struct {
	Index           int     // Selected track index (0 <= Index < track count)
	Position        float64 // Current playback position in seconds
	Duration        float64 // Known duration in seconds (0 = unknown)
	Playing         bool    // True while the handle reports active playback
	PendingAutoplay bool    // Transient: start playback once the new source loads
}

// HasDuration returns true once the handle has reported the track duration.
func (s State) HasDuration() bool {
	return s.Duration > 0
}

// Progress returns the playback progress as a fraction in [0, 1].
// Returns 0 while the duration is unknown.
func (s State) Progress() float64 {
	if s.Duration <= 0 {
		return 0
	}
	p := s.Position / s.Duration
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
