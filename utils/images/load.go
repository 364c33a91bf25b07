// Package images fetches pictures referenced by mglyph elements.
package images

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	"go.uber.org/zap"
)

var ErrUnsupported = errors.New("unsupported picture format")

// Loader reads pictures relative to a base directory and caches them by
// source.
type Loader struct {
	log   *zap.Logger
	dir   string
	cache map[string]image.Image

	// MaxSize bounds larger side of loaded pictures in pixels, 0 disables.
	MaxSize int
	// StrokeFactor is applied to SVG stroke widths.
	StrokeFactor float64
}

// NewLoader returns loader resolving relative sources against dir.
func NewLoader(dir string, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		log:     log.Named("images"),
		dir:     dir,
		cache:   make(map[string]image.Image),
		MaxSize: 512,
	}
}

// Load returns picture for src. Signature matches builder.ImageLoader.
func (l *Loader) Load(src string) (image.Image, error) {
	if img, ok := l.cache[src]; ok {
		return img, nil
	}
	path := src
	if !filepath.IsAbs(path) && l.dir != "" {
		path = filepath.Join(l.dir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read picture: %w", err)
	}
	img, err := l.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src, err)
	}
	l.cache[src] = img
	return img, nil
}

// Decode turns raw picture data into image, scaling it down to MaxSize.
func (l *Loader) Decode(data []byte) (image.Image, error) {
	var (
		img image.Image
		err error
	)
	switch {
	case IsSVG(data):
		if img, err = RasterizeSVG(data, 0, 0, l.StrokeFactor); err != nil {
			return nil, fmt.Errorf("unable to rasterize svg: %w", err)
		}
	case filetype.IsImage(data):
		kind, _ := filetype.Match(data)
		if img, err = imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true)); err != nil {
			return nil, fmt.Errorf("unable to decode %s: %w", kind.Extension, err)
		}
	default:
		return nil, ErrUnsupported
	}
	b := img.Bounds()
	if l.MaxSize > 0 && (b.Dx() > l.MaxSize || b.Dy() > l.MaxSize) {
		l.log.Debug("Scaling picture down", zap.Int("width", b.Dx()), zap.Int("height", b.Dy()), zap.Int("max", l.MaxSize))
		img = imaging.Fit(img, l.MaxSize, l.MaxSize, imaging.Lanczos)
	}
	return img, nil
}

// IsSVG reports whether data looks like SVG document.
func IsSVG(data []byte) bool {
	head := data[:min(len(data), 1024)]
	return bytes.Contains(head, []byte("<svg"))
}
