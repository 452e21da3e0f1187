// Package coverart renders cover images as ASCII for the terminal.
package coverart

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/disintegration/imaging"
	"github.com/qeesung/image2ascii/convert"
	zlog "github.com/rs/zerolog/log"
)

// Size selects one of the two cover presets.
type Size int

const (
	SizeLarge Size = iota // Now-playing panel
	SizeSmall             // Compact bar
)

// preset holds the pixel bound for pre-scaling and the ASCII cell size.
type preset struct {
	pixels int
	cols   int
	rows   int
}

var presets = map[Size]preset{
	SizeLarge: {pixels: 256, cols: 30, rows: 14},
	SizeSmall: {pixels: 96, cols: 12, rows: 6},
}

// Converter converts cover image files to ASCII art.
type Converter struct {
	converter *convert.ImageConverter
}

// NewConverter creates a new cover art converter.
func NewConverter() *Converter {
	return &Converter{
		converter: convert.NewImageConverter(),
	}
}

// Render loads and converts the image at path to ASCII at the given size.
// A missing or undecodable cover renders the placeholder, never an error.
func (c *Converter) Render(path string, size Size) string {
	p := presets[size]

	if path == "" {
		return placeholder(p)
	}

	img, err := loadImage(path)
	if err != nil {
		zlog.Debug().Msgf("coverart: falling back to placeholder: path=%s err=%v", path, err)
		return placeholder(p)
	}

	// Downscale with a proper filter first; the ASCII converter's own
	// nearest-neighbour sampling looks rough on large sources.
	img = imaging.Fit(img, p.pixels, p.pixels, imaging.Lanczos)

	opts := convert.DefaultOptions
	opts.FixedWidth = p.cols
	opts.FixedHeight = p.rows
	opts.Colored = false // tview renders its own colors

	return c.converter.Image2ASCIIString(img, &opts)
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}

// placeholder returns a bordered box with a note glyph.
func placeholder(p preset) string {
	out := make([]byte, 0, (p.cols+1)*p.rows)
	for row := 0; row < p.rows; row++ {
		for col := 0; col < p.cols; col++ {
			switch {
			case row == 0 || row == p.rows-1:
				out = append(out, '-')
			case col == 0 || col == p.cols-1:
				out = append(out, '|')
			case row == p.rows/2 && col == p.cols/2:
				out = append(out, '~')
			default:
				out = append(out, ' ')
			}
		}
		out = append(out, '\n')
	}
	return string(out)
}
