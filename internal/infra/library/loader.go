// Package library loads the tracklist from a playlist file.
package library

import (
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"playdeck/internal/domain/track"
)

// playlistFile is the on-disk playlist format.
type playlistFile struct {
	Tracks []trackEntry `yaml:"tracks"`
}

type trackEntry struct {
	ID       string  `yaml:"id"`
	Title    string  `yaml:"title"`
	Artist   string  `yaml:"artist"`
	Cover    string  `yaml:"cover"`
	Audio    string  `yaml:"audio"`
	Duration float64 `yaml:"duration"`
}

// Load reads and validates a playlist file. Track order is preserved.
func Load(path string) (track.Tracklist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return track.Tracklist{}, errors.Wrap(err, "failed to read playlist file")
	}

	var file playlistFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return track.Tracklist{}, errors.Wrap(err, "failed to parse playlist file")
	}

	tracks := make([]track.Track, len(file.Tracks))
	for i, e := range file.Tracks {
		tracks[i] = track.Track{
			ID:        e.ID,
			Title:     e.Title,
			Artist:    e.Artist,
			CoverPath: e.Cover,
			AudioPath: e.Audio,
			Duration:  e.Duration,
		}
	}

	list := track.NewTracklist(tracks)
	if err := list.Validate(); err != nil {
		return track.Tracklist{}, errors.Wrap(err, "invalid playlist")
	}

	return list, nil
}
