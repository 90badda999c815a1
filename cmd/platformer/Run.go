package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/samuelfneumann/platformer/experiment"
	"github.com/samuelfneumann/platformer/experiment/checkpointer"
	"github.com/samuelfneumann/platformer/experiment/tracker"
	"github.com/samuelfneumann/platformer/experiment/trackers"
	"github.com/samuelfneumann/platformer/timestep"
	"github.com/samuelfneumann/platformer/utils/progressbar"
	"github.com/samuelfneumann/platformer/utils/seedutils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RunOptions configure the run command
type RunOptions struct {
	Workers  int
	Seed     uint64
	Steps    uint
	Out      string
	Frames   int
	Progress bool
}

// workerSeed derives the seed of a worker from the base seed
func workerSeed(base uint64, worker int) uint64 {
	return seedutils.Derive(base, "worker/"+strconv.Itoa(worker))
}

// progressTracker increments a progress bar on every tracked timestep
// after the first of an episode
type progressTracker struct {
	bar *progressbar.ProgressBar
}

func (p progressTracker) Track(t timestep.TimeStep) {
	if !t.First() {
		p.bar.Increment()
	}
}

func (p progressTracker) Save() error { return nil }

// Run runs independent experiments in parallel, one per worker, and
// saves their tracked data to opts.Out. Every worker writes gob and
// CSV files of its own, and all workers share a SQLite database.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	if opts.Workers < 1 {
		return fmt.Errorf("run: workers must be positive, got %v",
			opts.Workers)
	}
	if err := os.MkdirAll(opts.Out, 0o755); err != nil {
		return fmt.Errorf("run: creating output directory: %w", err)
	}

	cfg := *a.cfg
	if opts.Steps > 0 {
		cfg.MaxSteps = opts.Steps
	}
	if err := cfg.WriteYAML(filepath.Join(opts.Out, "config.yaml")); err != nil {
		return fmt.Errorf("run: %w", err)
	}

	var bar *progressbar.ProgressBar
	if opts.Progress {
		bar = progressbar.New(os.Stderr, 40, opts.Workers*int(cfg.MaxSteps))
	}

	exps := make([]experiment.Experiment, opts.Workers)
	databases := make([]*trackers.SQLite, opts.Workers)
	for i := range exps {
		name := func(suffix string) string {
			return filepath.Join(opts.Out, fmt.Sprintf("worker-%d-%v", i,
				suffix))
		}
		databases[i] = trackers.NewSQLite(filepath.Join(opts.Out,
			"episodes.db"))
		tracked := []tracker.Tracker{
			trackers.NewReturn(name("return.bin")),
			trackers.NewEpisodeLength(name("length.bin")),
			trackers.NewCSV(name("episodes.csv")),
		}
		if bar != nil {
			tracked = append(tracked, progressTracker{bar})
		}

		logger := a.logger.With(zap.Int("worker", i))
		exp, world, err := cfg.CreateExp(workerSeed(opts.Seed, i), logger,
			tracked, nil)
		if err != nil {
			return fmt.Errorf("run: worker %v: %w", i, err)
		}
		exp.Register(databases[i])
		if i == 0 && opts.Frames > 0 {
			exp.AddCheckpointer(checkpointer.NewNStep(opts.Frames,
				checkpointer.SaverFunc(world.SavePNG),
				checkpointer.FilenameEnumerator(0, name("frame-"), ".png")))
		}
		exps[i] = exp
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, exp := range exps {
		i, exp := i, exp
		g.Go(func() error {
			if err := exp.Run(gctx); err != nil {
				return fmt.Errorf("worker %v: %w", i, err)
			}
			return nil
		})
	}

	done := make(chan struct{})
	if bar != nil {
		go func() {
			tick := time.NewTicker(time.Second)
			defer tick.Stop()
			for {
				select {
				case <-tick.C:
					bar.Display()
				case <-done:
					bar.Display()
					bar.Close()
					return
				}
			}
		}()
	}
	err := g.Wait()
	close(done)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	// SQLite trackers share a database, so experiments are saved one
	// at a time
	for i, exp := range exps {
		if err := exp.Save(); err != nil {
			return fmt.Errorf("run: saving worker %v: %w", i, err)
		}
		a.logger.Info("worker saved", zap.Int("worker", i),
			zap.Stringer("run", databases[i].Run()))
	}
	return nil
}
