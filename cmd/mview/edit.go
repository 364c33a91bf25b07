package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"mview/state"
)

func runEdit(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("edit")

	if cmd.Args().Len() < 2 {
		return fmt.Errorf("source and script files are expected")
	}
	if cmd.Args().Len() > 3 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[3:]))
	}
	src, scriptFile, dst := cmd.Args().Get(0), cmd.Args().Get(1), cmd.Args().Get(2)

	f, err := os.Open(scriptFile)
	if err != nil {
		return fmt.Errorf("unable to open script: %w", err)
	}
	steps, err := parseScript(f)
	f.Close()
	if err != nil {
		return err
	}

	dev, err := env.NewDevice()
	if err != nil {
		return fmt.Errorf("unable to prepare fonts: %w", err)
	}
	defer dev.Close()

	v, err := loadView(env, dev, source{path: src})
	if err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}
	if env.Rpt != nil {
		env.Rpt.Store("input/"+filepath.Base(src), src)
		env.Rpt.Store("script/"+filepath.Base(scriptFile), scriptFile)
	}

	log.Debug("Applying script", zap.String("file", src), zap.String("script", scriptFile), zap.Int("steps", len(steps)))
	if err := runScript(v, steps); err != nil {
		if env.Rpt != nil {
			env.Rpt.StoreData("edit/failed.txt", []byte(v.String()))
		}
		return err
	}

	var buf bytes.Buffer
	if err := v.Document().Write(&buf); err != nil {
		return fmt.Errorf("unable to serialize result: %w", err)
	}
	if env.Rpt != nil {
		env.Rpt.StoreData("edit/result.mml", buf.Bytes())
		env.Rpt.StoreData("edit/elements.txt", []byte(v.String()))
	}

	if img := cmd.String("image"); img != "" {
		if err := writeImage(env, v, img, env.Cfg.Render.Format, true); err != nil {
			return fmt.Errorf("unable to render result: %w", err)
		}
		log.Info("Result rendered", zap.String("to", img))
	}

	if dst == "" {
		_, err = os.Stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(dst, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("unable to write result: %w", err)
	}
	log.Info("Result written", zap.String("to", dst))
	return nil
}
