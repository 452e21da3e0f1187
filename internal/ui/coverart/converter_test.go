package coverart

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestCover(t *testing.T) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 4), G: uint8(y * 4), B: 128, A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), "cover.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestConverter_RenderFallsBackToPlaceholder(t *testing.T) {
	c := NewConverter()

	junk := filepath.Join(t.TempDir(), "cover.jpg")
	require.NoError(t, os.WriteFile(junk, []byte("not an image"), 0644))

	tests := []struct {
		name string
		path string
		size Size
	}{
		{name: "empty path large", path: "", size: SizeLarge},
		{name: "empty path small", path: "", size: SizeSmall},
		{name: "missing file", path: filepath.Join(t.TempDir(), "gone.png"), size: SizeLarge},
		{name: "undecodable file", path: junk, size: SizeSmall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, placeholder(presets[tt.size]), c.Render(tt.path, tt.size))
		})
	}
}

func TestConverter_RenderImage(t *testing.T) {
	c := NewConverter()
	path := writeTestCover(t)

	tests := []struct {
		name string
		size Size
	}{
		{name: "large", size: SizeLarge},
		{name: "small", size: SizeSmall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := c.Render(path, tt.size)
			assert.NotEmpty(t, out)
			assert.NotEqual(t, placeholder(presets[tt.size]), out)
		})
	}
}

func TestPlaceholderDimensions(t *testing.T) {
	p := presets[SizeSmall]
	lines := strings.Split(strings.TrimRight(placeholder(p), "\n"), "\n")

	require.Len(t, lines, p.rows)
	for _, line := range lines {
		assert.Len(t, line, p.cols)
	}
}
