package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"mview/archive"
	"mview/config"
	"mview/render"
	"mview/shaper"
	"mview/state"
	"mview/view"
)

var errNothingToRender = errors.New("document has no formula")

func renderFormat(env *state.LocalEnv, cmd *cli.Command) (config.RenderFormat, error) {
	if !cmd.IsSet("to") {
		return env.Cfg.Render.Format, nil
	}
	f, err := config.ParseRenderFormat(cmd.String("to"))
	if err != nil {
		return 0, fmt.Errorf("unknown output format requested: %w", err)
	}
	return f, nil
}

func imagingFormat(f config.RenderFormat) render.Format {
	if f == config.RenderFormatJpeg {
		return render.JPEG
	}
	return render.PNG
}

// renderOptions builds canvas options from configuration, cursor is drawn
// only when enabled.
func renderOptions(env *state.LocalEnv) (render.Options, error) {
	palette, err := env.Cfg.Palette()
	if err != nil {
		return render.Options{}, fmt.Errorf("bad colors in configuration: %w", err)
	}
	opts := render.Options{
		Padding:    env.Cfg.Render.Padding,
		Foreground: palette.Foreground,
		Background: palette.Background,
	}
	if env.Cfg.Editing.ShowCursor {
		opts.Cursor = palette.Cursor
	}
	return opts, nil
}

// loadView creates view for src and applies display setting. Pictures
// referenced by archived formulas are looked up next to the archive.
func loadView(env *state.LocalEnv, dev *shaper.Device, src source) (*view.View, error) {
	v, err := env.NewView(dev, filepath.Dir(src.path))
	if err != nil {
		return nil, err
	}
	if src.entry == "" {
		err = v.LoadFile(src.path)
	} else {
		var data []byte
		if data, err = archive.ReadFile(src.path, src.entry); err == nil {
			err = v.LoadString(string(data))
		}
	}
	if err != nil {
		return nil, err
	}
	if env.Cfg.Layout.Display {
		doc := v.Document()
		if !doc.HasAttr(doc.Root(), "display") {
			doc.SetAttr(doc.Root(), "display", "block")
		}
	}
	if v.RootArea() == nil {
		return nil, errNothingToRender
	}
	return v, nil
}

func writeImage(env *state.LocalEnv, v *view.View, dst string, format config.RenderFormat, overwrite bool) error {
	if _, err := os.Stat(dst); err == nil {
		if !overwrite {
			return fmt.Errorf("output file already exists: %s", dst)
		}
		env.Log.Warn("Overwriting existing file", zap.String("file", dst))
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("unable to check output file: %w", err)
	}

	opts, err := renderOptions(env)
	if err != nil {
		return err
	}
	canvas := render.Draw(v.RootArea(), opts)

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("unable to create output file: %w", err)
	}
	if err := canvas.Encode(out, imagingFormat(format), env.Cfg.Render.JPEGQuality); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func runRender(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("render")

	if cmd.Args().Len() == 0 {
		return fmt.Errorf("no input source has been specified")
	}
	env.NoDirs = cmd.Bool("nodirs")
	env.Overwrite = cmd.Bool("overwrite")

	format, err := renderFormat(env, cmd)
	if err != nil {
		return err
	}
	tmpl, err := newNameTemplate(env.Cfg.Render.OutputNameTemplate)
	if err != nil {
		return err
	}
	sources, err := collectSources(cmd.Args().Slice())
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		log.Warn("No MathML files found", zap.Strings("args", cmd.Args().Slice()))
		return nil
	}

	dev, err := env.NewDevice()
	if err != nil {
		return fmt.Errorf("unable to prepare fonts: %w", err)
	}
	defer dev.Close()

	dest := cmd.String("out")
	log.Info("Rendering started", zap.Int("files", len(sources)), zap.Stringer("format", format), zap.String("to", dest))

	var done int
	for i, src := range sources {
		if ctx.Err() != nil {
			err = multierr.Append(err, ctx.Err())
			break
		}
		base, er := outputName(tmpl, nameValues{
			Source:  src.name(),
			Index:   i + 1,
			Format:  format.String(),
			Session: env.Session.String(),
		}, format.Ext())
		if er != nil {
			return er
		}
		dst := filepath.Join(dest, base)
		if !env.NoDirs {
			dst = filepath.Join(dest, filepath.Dir(src.rel), base)
		}

		v, er := loadView(env, dev, src)
		if er == nil {
			er = writeImage(env, v, dst, format, env.Overwrite)
		}
		if er != nil {
			log.Error("Unable to render", zap.Stringer("file", src), zap.Error(er))
			err = multierr.Append(err, fmt.Errorf("%s: %w", src, er))
			continue
		}
		done++
		log.Debug("Rendered", zap.Stringer("file", src), zap.String("to", dst), zap.Stringer("box", v.BoundingBox()))
		if env.Rpt != nil {
			doc := v.Document()
			env.Rpt.StoreData(fmt.Sprintf("input/%03d-%s.mml", i+1, src.name()), []byte(doc.String(doc.Root())))
		}
	}
	log.Info("Rendering completed", zap.Int("rendered", done), zap.Int("failed", len(sources)-done), zap.Duration("elapsed", env.Uptime()))
	return err
}
