package ui

import (
	"strings"
	"testing"

	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"

	"playdeck/internal/app/player"
	"playdeck/internal/domain/track"
	"playdeck/internal/ui/coverart"
)

func TestFormatProgressLine(t *testing.T) {
	tests := []struct {
		name        string
		fillPercent float64
		wantFilled  int
	}{
		{name: "empty", fillPercent: 0, wantFilled: 0},
		{name: "half", fillPercent: 50, wantFilled: 20},
		{name: "full", fillPercent: 100, wantFilled: 40},
		{name: "over full clamps", fillPercent: 130, wantFilled: 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := ViewModel{FillPercent: tt.fillPercent, TimeCurrent: "1:05", TimeTotal: "3:20"}
			line := formatProgressLine(vm, 40)

			assert.Equal(t, tt.wantFilled, strings.Count(line, "▓"))
			assert.Equal(t, 40-tt.wantFilled, strings.Count(line, "░"))
			assert.True(t, strings.HasSuffix(line, "1:05 / 3:20"))
		})
	}
}

func TestRowIndicator(t *testing.T) {
	assert.Equal(t, "▶", rowIndicator(Row{Active: true, Playing: true}))
	assert.Equal(t, "›", rowIndicator(Row{Active: true}))
	assert.Equal(t, " ", rowIndicator(Row{}))
}

type stubController struct {
	tracks track.Tracklist
	state  player.State
}

func (s *stubController) Select(int)              {}
func (s *stubController) Toggle()                 {}
func (s *stubController) Next()                   {}
func (s *stubController) Previous()               {}
func (s *stubController) Seek(float64)            {}
func (s *stubController) Snapshot() player.State  { return s.state }
func (s *stubController) Tracks() track.Tracklist { return s.tracks }

func TestRenderPreview(t *testing.T) {
	app := &App{
		controller: &stubController{tracks: track.NewTracklist([]track.Track{
			{ID: "a", Title: "A", AudioPath: "a.mp3"},
		})},
		converter:   coverart.NewConverter(),
		previewView: tview.NewTextView(),
	}

	app.renderPreview(0)
	thumb := app.previewView.GetText(true)
	assert.NotEmpty(t, thumb)
	assert.Equal(t, app.converter.Render("", coverart.SizeSmall), app.previewASCII)

	// Out-of-range rows (the header maps to -1) clear the preview.
	app.renderPreview(-1)
	assert.Empty(t, app.previewView.GetText(true))
}
