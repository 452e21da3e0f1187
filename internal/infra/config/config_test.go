package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validLabels() LabelsConfig {
	return LabelsConfig{
		Heading:  "Soundtrack",
		Play:     "Play",
		Pause:    "Pause",
		Previous: "Previous track",
		Next:     "Next track",
		Seek:     "Seek within track",
	}
}

func TestConfig_Validate_RequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid config",
			config: Config{
				Library: LibraryConfig{Playlist: "playlist.yaml"},
				Labels:  validLabels(),
			},
			wantErr: false,
		},
		{
			name: "missing playlist path",
			config: Config{
				Labels: validLabels(),
			},
			wantErr: true,
			errMsg:  "Playlist",
		},
		{
			name: "missing heading label",
			config: Config{
				Library: LibraryConfig{Playlist: "playlist.yaml"},
				Labels: LabelsConfig{
					Play:     "Play",
					Pause:    "Pause",
					Previous: "Previous track",
					Next:     "Next track",
					Seek:     "Seek within track",
				},
			},
			wantErr: true,
			errMsg:  "Heading",
		},
		{
			name: "missing seek label",
			config: Config{
				Library: LibraryConfig{Playlist: "playlist.yaml"},
				Labels: LabelsConfig{
					Heading:  "Soundtrack",
					Play:     "Play",
					Pause:    "Pause",
					Previous: "Previous track",
					Next:     "Next track",
				},
			},
			wantErr: true,
			errMsg:  "Seek",
		},
		{
			name: "rewind threshold out of range",
			config: Config{
				Library: LibraryConfig{Playlist: "playlist.yaml"},
				Player:  PlayerConfig{RewindThresholdSec: 120},
				Labels:  validLabels(),
			},
			wantErr: true,
			errMsg:  "RewindThresholdSec",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()

			if tt.wantErr {
				require.Error(t, err, "expected validation to fail")
				assert.Contains(t, err.Error(), tt.errMsg,
					"error message should mention the problematic field")
			} else {
				assert.NoError(t, err, "expected validation to pass")
			}
		})
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "player.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const minimalYAML = `
library:
  playlist: playlist.yaml
labels:
  heading: Soundtrack
  play: Play
  pause: Pause
  previous: Previous track
  next: Next track
  seek: Seek within track
`

func TestLoad_Defaults(t *testing.T) {
	path := writeConfigFile(t, minimalYAML)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3.0, cfg.Player.RewindThresholdSec)
	assert.Equal(t, "beep", cfg.Media.Backend)
	assert.Equal(t, ":8090", cfg.API.Addr)
	assert.False(t, cfg.API.Enabled)
	assert.Equal(t, "stderr", cfg.Log.Output)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfigFile(t, minimalYAML)

	t.Setenv("PLAYDECK_PLAYLIST", "/tmp/other.yaml")
	t.Setenv("PLAYDECK_API_ADDR", ":9999")
	t.Setenv("PLAYDECK_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/other.yaml", cfg.Library.Playlist)
	assert.Equal(t, ":9999", cfg.API.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorContains(t, err, "failed to read config file")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeConfigFile(t, "library: [oops")
		_, err := Load(path)
		assert.ErrorContains(t, err, "failed to parse config file")
	})

	t.Run("missing labels", func(t *testing.T) {
		path := writeConfigFile(t, "library:\n  playlist: playlist.yaml\n")
		_, err := Load(path)
		assert.ErrorContains(t, err, "config validation failed")
	})
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfigFile(t, `
library:
  playlist: tracks.yaml
  watch: true
player:
  rewind_threshold_sec: 5
media:
  backend: beep
  settings:
    buffer_ms: 100
api:
  enabled: true
  addr: ":7070"
labels:
  heading: Soundtrack
  play: Play
  pause: Pause
  previous: Previous track
  next: Next track
  seek: Seek within track
log:
  output: player.log
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Library.Watch)
	assert.Equal(t, 5.0, cfg.Player.RewindThresholdSec)
	assert.Equal(t, 100, cfg.Media.Settings["buffer_ms"])
	assert.True(t, cfg.API.Enabled)
	assert.Equal(t, ":7070", cfg.API.Addr)
	assert.Equal(t, "player.log", cfg.Log.Output)
}
