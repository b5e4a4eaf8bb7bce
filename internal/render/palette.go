package render

import (
	"fmt"
	"image/color"

	"github.com/crazy3lf/colorconv"
)

// Palette maps encoded cell values to colours by index.
type Palette []color.RGBA

// Swatch is one palette entry in HSV form. Hue is in degrees; saturation and
// value are in [0,1].
type Swatch struct {
	Hue, Saturation, Value float64
}

// NewPalette converts HSV swatches into a palette. A swatch outside the HSV
// range fails the whole palette.
func NewPalette(swatches ...Swatch) (Palette, error) {
	p := make(Palette, len(swatches))
	for i, s := range swatches {
		r, g, b, err := colorconv.HSVToRGB(s.Hue, s.Saturation, s.Value)
		if err != nil {
			return nil, fmt.Errorf("render: swatch %d %+v: %w", i, s, err)
		}
		p[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return p, nil
}

// MustPalette is like NewPalette but panics on an invalid swatch.
func MustPalette(swatches ...Swatch) Palette {
	p, err := NewPalette(swatches...)
	if err != nil {
		panic(err)
	}
	return p
}

// DefaultPalette colours the encodings used by the engines and their sums:
// 0 background, 1 Eden, 2 DLA, 3 DLA spawn marker or Eden+DLA overlap,
// 4 Eden under a marker, and 5 or more for anything brighter.
func DefaultPalette() Palette {
	return MustPalette(
		Swatch{Hue: 0, Saturation: 0, Value: 0},
		Swatch{Hue: 205, Saturation: 0.65, Value: 0.95},
		Swatch{Hue: 32, Saturation: 0.85, Value: 1},
		Swatch{Hue: 130, Saturation: 0.55, Value: 0.6},
		Swatch{Hue: 280, Saturation: 0.5, Value: 0.85},
		Swatch{Hue: 0, Saturation: 0, Value: 1},
	)
}

// Monochrome draws every non-empty value in one colour. hue must be in [0,360).
func Monochrome(hue float64) (Palette, error) {
	return NewPalette(
		Swatch{Hue: 0, Saturation: 0, Value: 0},
		Swatch{Hue: hue, Saturation: 0.7, Value: 1},
	)
}
