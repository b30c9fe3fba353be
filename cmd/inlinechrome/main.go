// Command inlinechrome resolves inline toolbar placement and runs a
// terminal demo of docking toolbars.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/dshills/inlinechrome/internal/config"
	"github.com/dshills/inlinechrome/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

// initializeAppContext loads configuration and prepares logging once the
// command line has been parsed.
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	env := envFromContext(ctx)

	env.ConfigPath = cmd.String("config")
	opts, err := config.Load(env.ConfigPath)
	if err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	env.Opts = opts

	logConf := opts.Logging
	if cmd.Bool("debug") {
		logConf.Console.Level = logging.LevelDebug
	}
	if cmd.Args().First() == "demo" {
		// the demo owns the terminal
		logConf = logConf.WithoutConsole()
	}
	if env.Log, err = logConf.Prepare(); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", version), zap.String("runtime", runtime.Version()))
	if env.ConfigPath == "" {
		env.Log.Debug("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, _ *cli.Command) error {
	env := envFromContext(ctx)
	if env.Log == nil {
		return nil
	}
	env.Log.Debug("Program ended", zap.Duration("elapsed", env.uptime()))
	_ = env.Log.Sync() // stdout/stderr sync fails on some terminals
	return nil
}

var errWasHandled bool

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := envFromContext(ctx)
	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:            logging.AppName,
		Usage:           "inline editor toolbar placement and docking",
		Version:         version + " (" + runtime.Version() + ") : " + commit,
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		ExitErrHandler:  exitErrHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (TOML or YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log at debug level"},
		},
		Commands: []*cli.Command{
			resolveCommand(),
			dumpConfigCommand(),
			demoCommand(),
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(contextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	err := newApp().Run(ctx, os.Args)
	stop()
	if err != nil {
		if !errWasHandled {
			fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
		}
		os.Exit(1)
	}
}
