package main

import (
	"context"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/dshills/inlinechrome/internal/config"
	"github.com/dshills/inlinechrome/internal/config/watcher"
	"github.com/dshills/inlinechrome/internal/demo"
	"github.com/dshills/inlinechrome/internal/keying/script"
	"github.com/dshills/inlinechrome/internal/renderer/backend"
)

func demoCommand() *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: "Runs inline editors on a simulated page in the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "script", Usage: "Lua `FILE` defining move(items, focused, cycle), bound to Alt+Down"},
			&cli.BoolFlag{Name: "watch", Value: true, Usage: "reload the configuration file when it changes"},
		},
		Action: runDemo,
	}
}

func runDemo(ctx context.Context, cmd *cli.Command) (err error) {
	env := envFromContext(ctx)
	log := env.Log.Named("demo")

	var opts []demo.Option
	if path := cmd.String("script"); path != "" {
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("unable to read script: %w", err)
		}
		s, err := script.Compile(path, string(src), script.WithLogger(log))
		if err != nil {
			return err
		}
		defer s.Close()
		opts = append(opts, demo.WithScript(s))
	}

	term, err := backend.NewTerminal()
	if err != nil {
		return fmt.Errorf("unable to create terminal: %w", err)
	}
	if err := term.Init(); err != nil {
		return fmt.Errorf("unable to initialize terminal: %w", err)
	}
	defer term.Shutdown()

	store := config.NewStore(env.Opts)
	defer store.Close()

	d, err := demo.New(term, store, append(opts, demo.WithLogger(log))...)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, d.Close()) }()

	if env.ConfigPath != "" && cmd.Bool("watch") {
		w, werr := watchConfig(env.ConfigPath, store, d, log)
		if werr != nil {
			return werr
		}
		defer func() { err = multierr.Append(err, w.Close()) }()
	}

	if err := d.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// watchConfig reloads path into store on the demo's event loop. Invalid
// files are logged and the previous options kept.
func watchConfig(path string, store *config.Store, d *demo.Demo, log *zap.Logger) (*watcher.Watcher, error) {
	w, err := watcher.New(path, func(ev watcher.Event) {
		if ev.Op == watcher.OpRemove {
			return
		}
		opts, err := config.Load(path)
		if err != nil {
			log.Warn("Ignoring configuration reload", zap.String("path", path), zap.Error(err))
			return
		}
		d.Post(func() {
			if err := store.Replace(opts, path); err != nil {
				log.Warn("Ignoring configuration reload", zap.String("path", path), zap.Error(err))
			}
		})
	}, watcher.WithLogger(log))
	if err != nil {
		return nil, err
	}
	if err := w.Start(); err != nil {
		return nil, err
	}
	return w, nil
}
