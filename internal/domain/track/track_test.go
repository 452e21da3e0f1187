package track

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracklist_WrapAround(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		index    int
		wantNext int
		wantPrev int
	}{
		{
			name:     "middle of list",
			count:    3,
			index:    1,
			wantNext: 2,
			wantPrev: 0,
		},
		{
			name:     "last wraps to first",
			count:    3,
			index:    2,
			wantNext: 0,
			wantPrev: 1,
		},
		{
			name:     "first wraps to last",
			count:    3,
			index:    0,
			wantNext: 1,
			wantPrev: 2,
		},
		{
			name:     "single track wraps to itself",
			count:    1,
			index:    0,
			wantNext: 0,
			wantPrev: 0,
		},
		{
			name:     "empty list",
			count:    0,
			index:    0,
			wantNext: 0,
			wantPrev: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracks := make([]Track, tt.count)
			for i := range tracks {
				tracks[i] = Track{ID: string(rune('a' + i)), AudioPath: "x.mp3"}
			}
			l := NewTracklist(tracks)

			assert.Equal(t, tt.wantNext, l.NextIndex(tt.index))
			assert.Equal(t, tt.wantPrev, l.PrevIndex(tt.index))
		})
	}
}

func TestTracklist_Validate(t *testing.T) {
	tests := []struct {
		name    string
		tracks  []Track
		wantErr string
	}{
		{
			name:   "valid list",
			tracks: []Track{{ID: "t1", AudioPath: "a.mp3"}, {ID: "t2", AudioPath: "b.mp3"}},
		},
		{
			name:   "empty list is valid",
			tracks: []Track{},
		},
		{
			name:    "missing ID",
			tracks:  []Track{{AudioPath: "a.mp3"}},
			wantErr: "has no ID",
		},
		{
			name:    "duplicate ID",
			tracks:  []Track{{ID: "t1", AudioPath: "a.mp3"}, {ID: "t1", AudioPath: "b.mp3"}},
			wantErr: "duplicate track ID",
		},
		{
			name:    "missing audio source",
			tracks:  []Track{{ID: "t1"}},
			wantErr: "no audio source",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewTracklist(tt.tracks).Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestTracklist_ReadOnly(t *testing.T) {
	src := []Track{{ID: "t1", AudioPath: "a.mp3", Title: "One"}}
	l := NewTracklist(src)

	// Mutating the source slice must not leak into the tracklist.
	src[0].Title = "changed"
	assert.Equal(t, "One", l.At(0).Title)

	// Same for the slice returned by All.
	all := l.All()
	all[0].Title = "changed"
	assert.Equal(t, "One", l.At(0).Title)
}

func TestTracklist_Accessors(t *testing.T) {
	l := NewTracklist([]Track{
		{ID: "t1", AudioPath: "a.mp3", Duration: 120},
		{ID: "t2", AudioPath: "b.mp3", Duration: 210.5},
	})

	assert.Equal(t, 2, l.Len())
	assert.False(t, l.IsEmpty())
	assert.True(t, l.Contains(0))
	assert.True(t, l.Contains(1))
	assert.False(t, l.Contains(2))
	assert.False(t, l.Contains(-1))
	assert.Equal(t, []string{"t1", "t2"}, l.TrackIDs())
	assert.InDelta(t, 330.5, l.TotalDuration(), 1e-9)

	assert.True(t, NewTracklist(nil).IsEmpty())
}
