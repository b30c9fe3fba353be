package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	cli "github.com/urfave/cli/v3"

	"github.com/dshills/inlinechrome/internal/config"
	"github.com/dshills/inlinechrome/internal/docking"
	"github.com/dshills/inlinechrome/internal/geom"
	"github.com/dshills/inlinechrome/internal/header"
)

var errRect = errors.New("rectangle must be x,y,width,height")

func resolveCommand() *cli.Command {
	return &cli.Command{
		Name:  "resolve",
		Usage: "Prints where a toolbar goes for the given geometry",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "target", Required: true, Usage: "editor box as `X,Y,W,H` in document pixels"},
			&cli.StringFlag{Name: "viewport", Value: "0,0,1000,600", Usage: "visible window as `X,Y,W,H`"},
			&cli.FloatFlag{Name: "toolbar-height", Value: 40, Usage: "toolbar container height"},
			&cli.FloatFlag{Name: "toolbar-width", Value: 500, Usage: "natural toolbar width"},
			&cli.FloatFlag{Name: "doc-height", Value: 3000, Usage: "scrollable document height"},
			&cli.StringFlag{Name: "location", Usage: "force `auto|top|bottom` instead of the configured location"},
		},
		Action: resolvePlacement,
	}
}

func resolvePlacement(ctx context.Context, cmd *cli.Command) error {
	env := envFromContext(ctx)

	target, err := parseRect(cmd.String("target"))
	if err != nil {
		return fmt.Errorf("--target: %w", err)
	}
	viewport, err := parseRect(cmd.String("viewport"))
	if err != nil {
		return fmt.Errorf("--viewport: %w", err)
	}
	loc := env.Opts.ToolbarLocation
	if v := cmd.String("location"); v != "" {
		loc = config.Location(v)
		if !loc.Valid() {
			return fmt.Errorf("--location: unknown location %q", v)
		}
	}

	height := cmd.Float("toolbar-height")
	mode := header.ResolveMode(loc, target, height, cmd.Float("doc-height"), viewport)
	pos := header.ComputePosition(mode == docking.ModeTop, target, height, 0)

	out := cmd.Root().Writer
	fmt.Fprintf(out, "mode: %s\n", mode)
	fmt.Fprintf(out, "top: %d\nleft: %d\n", pos.Top, pos.Left)
	if w, ok := header.ComputeWidthOverride(target, viewport.Width, cmd.Float("toolbar-width"), viewport.X); ok {
		fmt.Fprintf(out, "width: %d\n", geom.Round(w))
	} else {
		fmt.Fprintln(out, "width: natural")
	}
	return nil
}

// parseRect parses "x,y,w,h".
func parseRect(s string) (geom.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geom.Rect{}, fmt.Errorf("%w: %q", errRect, s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geom.Rect{}, fmt.Errorf("%w: %q", errRect, s)
		}
		v[i] = f
	}
	if v[2] < 0 || v[3] < 0 {
		return geom.Rect{}, fmt.Errorf("%w: negative size in %q", errRect, s)
	}
	return geom.NewRect(v[0], v[1], v[2], v[3]), nil
}
