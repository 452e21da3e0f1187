// Package track provides the Track domain entity.
package track

import "github.com/cockroachdb/errors"

// Track represents a playable audio item with display metadata.
// Tracks are supplied externally and never mutated by the player.
type Track struct {
	ID        string  // Unique identifier
	Title     string  // Display title
	Artist    string  // Display artist
	CoverPath string  // Cover image reference (file path)
	AudioPath string  // Audio source reference (file path)
	Duration  float64 // Known duration in seconds (0 if unknown)
}

// Tracklist is an ordered, read-only sequence of tracks.
type Tracklist struct {
	tracks []Track
}

// NewTracklist creates a tracklist from the given tracks.
// The slice is copied so later mutation by the caller has no effect.
func NewTracklist(tracks []Track) Tracklist {
	out := make([]Track, len(tracks))
	copy(out, tracks)
	return Tracklist{tracks: out}
}

// Len returns the number of tracks.
func (l Tracklist) Len() int {
	return len(l.tracks)
}

// IsEmpty returns true if the tracklist contains no tracks.
func (l Tracklist) IsEmpty() bool {
	return len(l.tracks) == 0
}

// At returns the track at index i.
// The index must satisfy 0 <= i < Len().
func (l Tracklist) At(i int) Track {
	return l.tracks[i]
}

// All returns a copy of the tracks in order.
func (l Tracklist) All() []Track {
	out := make([]Track, len(l.tracks))
	copy(out, l.tracks)
	return out
}

// NextIndex returns the index after i, wrapping from the last track to the first.
func (l Tracklist) NextIndex(i int) int {
	if len(l.tracks) == 0 {
		return 0
	}
	return (i + 1) % len(l.tracks)
}

// PrevIndex returns the index before i, wrapping from the first track to the last.
func (l Tracklist) PrevIndex(i int) int {
	if len(l.tracks) == 0 {
		return 0
	}
	return (i - 1 + len(l.tracks)) % len(l.tracks)
}

// Contains reports whether i is a valid index into the tracklist.
func (l Tracklist) Contains(i int) bool {
	return i >= 0 && i < len(l.tracks)
}

// Validate checks that every track has a unique non-empty ID and an audio source.
func (l Tracklist) Validate() error {
	seen := make(map[string]bool, len(l.tracks))
	for i, t := range l.tracks {
		if t.ID == "" {
			return errors.Newf("track %d has no ID", i)
		}
		if seen[t.ID] {
			return errors.Newf("duplicate track ID %q (index %d)", t.ID, i)
		}
		seen[t.ID] = true
		if t.AudioPath == "" {
			return errors.Newf("track %q has no audio source", t.ID)
		}
	}
	return nil
}

// TrackIDs returns all track IDs in order.
func (l Tracklist) TrackIDs() []string {
	ids := make([]string, len(l.tracks))
	for i, t := range l.tracks {
		ids[i] = t.ID
	}
	return ids
}

// TotalDuration returns the summed known duration of all tracks, in seconds.
func (l Tracklist) TotalDuration() float64 {
	var total float64
	for _, t := range l.tracks {
		total += t.Duration
	}
	return total
}
