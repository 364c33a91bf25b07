package state

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/image/math/fixed"

	"mview/builder"
	"mview/config"
	"mview/shaper"
	"mview/utils/images"
	"mview/view"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return &LocalEnv{
		start:   time.Now(),
		Session: id,
	}
}

func (e *LocalEnv) logger() *zap.Logger {
	if e.Log == nil {
		return zap.NewNop()
	}
	return e.Log
}

// NewDevice creates glyph device described by layout configuration. Every
// configured font file is tried, all failures are reported together.
func (e *LocalEnv) NewDevice() (*shaper.Device, error) {
	fc := e.Cfg.Layout.Font
	switch fc.Source {
	case config.FontSourceFixed:
		return shaper.NewFixed(e.logger()), nil
	case config.FontSourceBuiltin, config.FontSourceFile:
	default:
		return nil, fmt.Errorf("unsupported font source %s", fc.Source)
	}

	dev, err := shaper.New(fc.DPI, e.logger())
	if err != nil {
		return nil, err
	}
	if fc.Source == config.FontSourceBuiltin {
		return dev, nil
	}
	files := []struct {
		name  string
		style shaper.Style
		path  string
	}{
		{"regular", shaper.Regular, fc.Regular},
		{"italic", shaper.Italic, fc.Italic},
		{"bold", shaper.Bold, fc.Bold},
		{"bold italic", shaper.BoldItalic, fc.BoldItalic},
		{"mono", shaper.Mono, fc.Mono},
	}
	for _, f := range files {
		if f.path == "" {
			continue
		}
		if er := dev.LoadFont(f.style, f.path); er != nil {
			err = multierr.Append(err, fmt.Errorf("%s font: %w", f.name, er))
		}
	}
	if err != nil {
		dev.Close()
		return nil, err
	}
	return dev, nil
}

// NewView creates view configured for rendering and editing documents located
// in dir.
func (e *LocalEnv) NewView(dev *shaper.Device, dir string) (*view.View, error) {
	palette, err := e.Cfg.Palette()
	if err != nil {
		return nil, fmt.Errorf("bad colors in configuration: %w", err)
	}

	v := view.New(dev, builder.DefaultRegistry(), e.logger())
	v.SetDefaultFontSize(toFixed(e.Cfg.Layout.FontSize))
	v.SetAvailableWidth(toFixed(e.Cfg.Layout.AvailableWidth))
	v.SetSelectionColor(palette.Selection)

	l := images.NewLoader(dir, e.logger())
	l.MaxSize = e.Cfg.Layout.Pictures.MaxSize
	l.StrokeFactor = e.Cfg.Layout.Pictures.StrokeFactor
	v.SetImageLoader(l.Load)
	return v, nil
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}
