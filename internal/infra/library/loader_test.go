package library

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timeout(t *testing.T) <-chan time.Time {
	t.Helper()
	return time.After(2 * time.Second)
}

func shortTimeout() <-chan time.Time {
	return time.After(200 * time.Millisecond)
}

func writePlaylist(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "playlist.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writePlaylist(t, `
tracks:
  - id: t1
    title: First Song
    artist: Alpha
    cover: covers/first.jpg
    audio: audio/first.mp3
    duration: 215
  - id: t2
    title: Second Song
    artist: Beta
    audio: audio/second.ogg
`)

	list, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 2, list.Len())

	first := list.At(0)
	assert.Equal(t, "t1", first.ID)
	assert.Equal(t, "First Song", first.Title)
	assert.Equal(t, "Alpha", first.Artist)
	assert.Equal(t, "covers/first.jpg", first.CoverPath)
	assert.Equal(t, "audio/first.mp3", first.AudioPath)
	assert.Equal(t, 215.0, first.Duration)

	second := list.At(1)
	assert.Equal(t, "t2", second.ID)
	assert.Empty(t, second.CoverPath)
	assert.Zero(t, second.Duration)

	assert.Equal(t, []string{"t1", "t2"}, list.TrackIDs(), "file order is preserved")
}

func TestLoad_EmptyPlaylist(t *testing.T) {
	path := writePlaylist(t, "tracks: []\n")

	list, err := Load(path)
	require.NoError(t, err)
	assert.True(t, list.IsEmpty())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "malformed yaml",
			content: "tracks: [oops",
			wantErr: "failed to parse playlist file",
		},
		{
			name: "missing id",
			content: `
tracks:
  - title: No ID
    audio: a.mp3
`,
			wantErr: "invalid playlist",
		},
		{
			name: "duplicate id",
			content: `
tracks:
  - id: t1
    audio: a.mp3
  - id: t1
    audio: b.mp3
`,
			wantErr: "duplicate track ID",
		},
		{
			name: "missing audio source",
			content: `
tracks:
  - id: t1
    title: Silent
`,
			wantErr: "no audio source",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writePlaylist(t, tt.content))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "failed to read playlist file")
}

func TestWatcher_DeliversReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "playlist.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tracks: []\n"), 0644))

	w, err := Watch(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte(`
tracks:
  - id: t1
    title: Added
    audio: a.mp3
`), 0644))

	select {
	case list := <-w.Updates():
		assert.Equal(t, 1, list.Len())
		assert.Equal(t, "t1", list.At(0).ID)
	case <-timeout(t):
		t.Fatal("no reload delivered")
	}
}

func TestWatcher_SkipsInvalidPlaylist(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "playlist.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tracks: []\n"), 0644))

	w, err := Watch(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("tracks: [broken"), 0644))

	select {
	case <-w.Updates():
		t.Fatal("invalid playlist must not be delivered")
	case <-shortTimeout():
	}
}
