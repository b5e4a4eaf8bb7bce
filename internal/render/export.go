package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/icza/mjpeg"

	"lattice-growth/internal/snapshot"
)

// ErrNoFrames is returned when an export is asked to write an empty series.
var ErrNoFrames = errors.New("render: no frames")

// WritePNG encodes img to path, creating parent directories.
func WritePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// WriteFrames writes one PNG per snapshot into dir as <prefix>_<iteration>.png
// and returns the written paths in order.
func WriteFrames(dir, prefix string, shots []snapshot.Snapshot, palette Palette, scale int) ([]string, error) {
	if len(shots) == 0 {
		return nil, ErrNoFrames
	}
	paths := make([]string, 0, len(shots))
	for _, s := range shots {
		path := filepath.Join(dir, fmt.Sprintf("%s_%06d.png", prefix, s.Iteration))
		if err := WritePNG(path, SnapshotImage(s, palette, scale)); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Video appends rendered plates to a Motion JPEG AVI file.
type Video struct {
	w, h    int
	writer  mjpeg.AviWriter
	buf     bytes.Buffer
	options jpeg.Options
	frames  int
}

// NewVideo creates an AVI file of w×h pixel frames at fps frames per second.
// Quality is the JPEG quality in [1,100].
func NewVideo(path string, w, h, fps, quality int) (*Video, error) {
	if fps <= 0 {
		fps = 10
	}
	if quality <= 0 || quality > 100 {
		quality = jpeg.DefaultQuality
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	aw, err := mjpeg.New(path, int32(w), int32(h), int32(fps))
	if err != nil {
		return nil, fmt.Errorf("create video %s: %w", path, err)
	}
	return &Video{w: w, h: h, writer: aw, options: jpeg.Options{Quality: quality}}, nil
}

// AddFrame encodes img as JPEG and appends it. Frames must match the video size.
func (v *Video) AddFrame(img image.Image) error {
	if b := img.Bounds(); b.Dx() != v.w || b.Dy() != v.h {
		return fmt.Errorf("frame %dx%d does not match video %dx%d", b.Dx(), b.Dy(), v.w, v.h)
	}
	v.buf.Reset()
	if err := jpeg.Encode(&v.buf, img, &v.options); err != nil {
		return fmt.Errorf("encode frame %d: %w", v.frames, err)
	}
	if err := v.writer.AddFrame(v.buf.Bytes()); err != nil {
		return fmt.Errorf("add frame %d: %w", v.frames, err)
	}
	v.frames++
	return nil
}

// Frames reports how many frames have been written.
func (v *Video) Frames() int { return v.frames }

// Close finalises the AVI index.
func (v *Video) Close() error { return v.writer.Close() }

// WriteVideo renders shots into an MJPEG AVI at path.
func WriteVideo(path string, shots []snapshot.Snapshot, palette Palette, scale, fps int) error {
	if len(shots) == 0 {
		return ErrNoFrames
	}
	if scale <= 0 {
		scale = 1
	}
	v, err := NewVideo(path, shots[0].W*scale, shots[0].H*scale, fps, 90)
	if err != nil {
		return err
	}
	for _, s := range shots {
		if err := v.AddFrame(SnapshotImage(s, palette, scale)); err != nil {
			v.Close()
			return err
		}
	}
	return v.Close()
}
