package main

import (
	"context"

	"github.com/samuelfneumann/platformer/environment"
	"github.com/samuelfneumann/platformer/server"
)

// Serve serves the configured environment over websockets until ctx is
// cancelled
func (a *App) Serve(ctx context.Context, addr string, seed uint64) error {
	env := a.cfg.Env
	logger := a.logger.Named("env")
	srv := server.New(func(s uint64) (environment.Environment, error) {
		e, _, _, err := env.Create(s, logger)
		return e, err
	}, seed, a.logger.Named("server"))
	return srv.ListenAndServe(ctx, addr)
}
