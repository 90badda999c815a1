// Command platformer runs, serves and renders platformer environments.
//
// Usage:
//
//	platformer run    [-config exp.yaml] [-workers 4] [-out results]
//	platformer serve  [-config exp.yaml] [-addr :8080]
//	platformer render [-config exp.yaml] [-steps 200] [-every 10]
//	platformer config [-config exp.yaml] [-out exp.yaml]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usage() error {
	return fmt.Errorf("usage: platformer <run|serve|render|config> [flags]")
}

func run(args []string) error {
	if len(args) == 0 {
		return usage()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	var opts Options
	fs.StringVar(&opts.ConfigPath, "config", "", "Path to experiment config YAML (empty = use defaults)")
	fs.StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	fs.BoolVar(&opts.Development, "dev", false, "Use a human readable development logger")
	seed := fs.Uint64("seed", 0, "Base RNG seed")

	switch args[0] {
	case "run":
		workers := fs.Int("workers", 1, "Number of parallel experiments")
		steps := fs.Uint("steps", 0, "Steps per experiment (0 = use config)")
		out := fs.String("out", "results", "Output directory for tracked data")
		frames := fs.Int("frames", 0, "Save a frame of worker 0 every N steps (0 = never)")
		progress := fs.Bool("progress", false, "Print a progress bar")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		return withApp(opts, func(app *App) error {
			return app.Run(ctx, RunOptions{
				Workers:  *workers,
				Seed:     *seed,
				Steps:    *steps,
				Out:      *out,
				Frames:   *frames,
				Progress: *progress,
			})
		})

	case "serve":
		addr := fs.String("addr", ":8080", "Address to listen on")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		return withApp(opts, func(app *App) error {
			return app.Serve(ctx, *addr, *seed)
		})

	case "render":
		steps := fs.Uint("steps", 200, "Steps to run")
		every := fs.Int("every", 10, "Save a frame every N steps")
		out := fs.String("out", "frames", "Output directory for frames")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		return withApp(opts, func(app *App) error {
			return app.Render(ctx, *out, *steps, *every, *seed)
		})

	case "config":
		out := fs.String("out", "experiment.yaml", "Path to write the config to")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		return withApp(opts, func(app *App) error {
			return app.WriteConfig(*out)
		})

	default:
		return usage()
	}
}

func withApp(opts Options, f func(*App) error) error {
	app, cleanup, err := initializeApp(opts)
	if err != nil {
		return err
	}
	defer cleanup()
	return f(app)
}
