// Package ui derives and renders the player's visual state.
package ui

import (
	"fmt"
	"math"

	"playdeck/internal/app/player"
	"playdeck/internal/domain/track"
)

// DurationPlaceholder is shown for rows whose duration is not loaded.
const DurationPlaceholder = "--:--"

// SeekStep is the seek control granularity in seconds.
const SeekStep = 0.1

// Labels holds the literal display strings supplied by the embedding
// application. No defaults are synthesized here.
type Labels struct {
	Heading  string `yaml:"heading" json:"heading"`
	Play     string `yaml:"play" json:"play"`
	Pause    string `yaml:"pause" json:"pause"`
	Previous string `yaml:"previous" json:"previous"`
	Next     string `yaml:"next" json:"next"`
	Seek     string `yaml:"seek" json:"seek"`
}

// NowPlaying is the current-track detail panel.
type NowPlaying struct {
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	CoverPath string `json:"cover_path"`
}

// Row is one entry of the track list.
type Row struct {
	Index         int    `json:"index"`
	Active        bool   `json:"active"`
	Playing       bool   `json:"playing"`
	Title         string `json:"title"`
	Artist        string `json:"artist"`
	CoverPath     string `json:"cover_path"`
	DurationLabel string `json:"duration_label"`
}

// ViewModel is everything a renderer needs, re-derived in full from a
// controller snapshot on every change. An empty tracklist yields the zero
// value and nothing is rendered.
type ViewModel struct {
	HasTracks bool `json:"has_tracks"`

	Heading     string `json:"heading"`
	ToggleLabel string `json:"toggle_label"` // Play or Pause name, by playing flag
	Previous    string `json:"previous"`
	Next        string `json:"next"`
	SeekLabel   string `json:"seek_label"`

	Playing bool       `json:"playing"`
	Now     NowPlaying `json:"now"`

	TimeCurrent string  `json:"time_current"`
	TimeTotal   string  `json:"time_total"`
	SeekMax     float64 `json:"seek_max"`
	SeekStep    float64 `json:"seek_step"`
	FillPercent float64 `json:"fill_percent"`

	Rows []Row `json:"rows"`
}

// FormatTime renders seconds as minutes:seconds. Zero, negative, and
// non-finite values render as "0:00".
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds <= 0 {
		return "0:00"
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// Build derives the view model from the tracklist, labels, and a state
// snapshot.
func Build(labels Labels, tracks track.Tracklist, s player.State) ViewModel {
	if tracks.IsEmpty() {
		return ViewModel{}
	}

	// The tracklist and the snapshot are fetched separately; a concurrent
	// playlist reload can leave the index briefly out of range.
	if !tracks.Contains(s.Index) {
		s.Index = 0
	}
	current := tracks.At(s.Index)

	toggle := labels.Play
	if s.Playing {
		toggle = labels.Pause
	}

	vm := ViewModel{
		HasTracks:   true,
		Heading:     labels.Heading,
		ToggleLabel: toggle,
		Previous:    labels.Previous,
		Next:        labels.Next,
		SeekLabel:   labels.Seek,
		Playing:     s.Playing,
		Now: NowPlaying{
			Title:     current.Title,
			Artist:    current.Artist,
			CoverPath: current.CoverPath,
		},
		TimeCurrent: FormatTime(s.Position),
		TimeTotal:   FormatTime(s.Duration),
		SeekMax:     s.Duration,
		SeekStep:    SeekStep,
		FillPercent: s.Progress() * 100,
	}

	vm.Rows = make([]Row, tracks.Len())
	for i := 0; i < tracks.Len(); i++ {
		t := tracks.At(i)
		active := i == s.Index

		duration := DurationPlaceholder
		if active && s.HasDuration() {
			duration = FormatTime(s.Duration)
		}

		vm.Rows[i] = Row{
			Index:         i,
			Active:        active,
			Playing:       active && s.Playing,
			Title:         t.Title,
			Artist:        t.Artist,
			CoverPath:     t.CoverPath,
			DurationLabel: duration,
		}
	}

	return vm
}
