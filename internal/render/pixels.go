// Package render turns encoded growth plates into images: palette lookup,
// nearest-neighbour scaling, PNG frames and MJPEG videos.
package render

import (
	"image"
	"image/color"

	"lattice-growth/internal/snapshot"
)

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black. Values past
// the end of the palette use its last colour.
func fillPaletteRGBA(buf []byte, cells []uint8, palette Palette) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// Image renders a w×h plate with every cell drawn as a scale×scale block.
func Image(cells []uint8, w, h int, palette Palette, scale int) *image.RGBA {
	if scale <= 0 {
		scale = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
	if scale == 1 {
		fillPaletteRGBA(img.Pix, cells, palette)
		return img
	}
	row := make([]byte, 4*w)
	for y := 0; y < h; y++ {
		fillPaletteRGBA(row, cells[y*w:(y+1)*w], palette)
		for sy := 0; sy < scale; sy++ {
			dst := img.Pix[(y*scale+sy)*img.Stride:]
			for x := 0; x < w; x++ {
				px := row[4*x : 4*x+4]
				for sx := 0; sx < scale; sx++ {
					copy(dst[4*(x*scale+sx):], px)
				}
			}
		}
	}
	return img
}

// SnapshotImage renders a recorded snapshot.
func SnapshotImage(s snapshot.Snapshot, palette Palette, scale int) *image.RGBA {
	return Image(s.Cells, s.W, s.H, palette, scale)
}

// At returns the colour used for cell value v.
func (p Palette) At(v uint8) color.RGBA {
	if len(p) == 0 {
		return color.RGBA{}
	}
	if int(v) >= len(p) {
		return p[len(p)-1]
	}
	return p[v]
}
