package main

import (
	"context"
	"fmt"
	"io"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/image/math/fixed"

	"mview/area"
	"mview/state"
	"mview/view"
)

func runInspect(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("inspect")

	if cmd.Args().Len() != 1 {
		return fmt.Errorf("exactly one source file is expected")
	}
	src := cmd.Args().First()

	dev, err := env.NewDevice()
	if err != nil {
		return fmt.Errorf("unable to prepare fonts: %w", err)
	}
	defer dev.Close()

	v, err := loadView(env, dev, source{path: src})
	if err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}
	log.Debug("Inspecting", zap.String("file", src), zap.Stringer("box", v.BoundingBox()))

	var at *fixed.Point26_6
	if cmd.IsSet("x") || cmd.IsSet("y") {
		at = &fixed.Point26_6{X: fixed.Int26_6(cmd.Float("x") * 64), Y: fixed.Int26_6(cmd.Float("y") * 64)}
	}
	return inspect(os.Stdout, v, cmd.Bool("areas"), at)
}

func inspect(w io.Writer, v *view.View, areas bool, at *fixed.Point26_6) error {
	if _, err := fmt.Fprintf(w, "box: %s\n\n%s\n", v.BoundingBox(), v.String()); err != nil {
		return err
	}
	if areas {
		if _, err := fmt.Fprintf(w, "\n%s\n", area.Dump(v.RootArea())); err != nil {
			return err
		}
	}
	if at == nil {
		return nil
	}
	if _, err := fmt.Fprintf(w, "\nat (%v, %v):\n", at.X, at.Y); err != nil {
		return err
	}
	e, ext, ok := v.ElementAt(at.X, at.Y)
	if !ok {
		_, err := fmt.Fprintln(w, "  no element")
		return err
	}
	if _, err := fmt.Fprintf(w, "  element %s origin (%v, %v) box %s\n", e, ext.Origin.X, ext.Origin.Y, ext.Box); err != nil {
		return err
	}
	if tok, index, ok := v.CharAt(at.X, at.Y); ok {
		if _, err := fmt.Fprintf(w, "  char %d of %s\n", index, tok); err != nil {
			return err
		}
	}
	return nil
}
