package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/inlinechrome/internal/config"
)

type envKey struct{}

// localEnv is what every subcommand needs.
type localEnv struct {
	ConfigPath string
	Opts       config.Options
	Log        *zap.Logger

	start time.Time
}

func envFromContext(ctx context.Context) *localEnv {
	if env, ok := ctx.Value(envKey{}).(*localEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func contextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, &localEnv{
		Opts:  config.Default(),
		Log:   zap.NewNop(),
		start: time.Now(),
	})
}

func (e *localEnv) uptime() time.Duration {
	return time.Since(e.start)
}
