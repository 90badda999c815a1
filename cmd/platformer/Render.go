package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/samuelfneumann/platformer/experiment/checkpointer"
	"go.uber.org/zap"
)

// Render runs the configured agent for steps timesteps and saves a
// top-down frame of the arena every N timesteps into dir
func (a *App) Render(ctx context.Context, dir string, steps uint,
	every int, seed uint64) error {
	if every < 1 || steps == 0 {
		return fmt.Errorf("render: steps and frame interval must be " +
			"positive")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("render: creating output directory: %w", err)
	}

	cfg := *a.cfg
	cfg.MaxSteps = steps
	exp, world, err := cfg.CreateExp(seed, a.logger, nil, nil)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	exp.AddCheckpointer(checkpointer.NewNStep(every,
		checkpointer.SaverFunc(world.SavePNG),
		checkpointer.FilenameEnumerator(0, filepath.Join(dir, "frame-"),
			".png")))

	if err := exp.Run(ctx); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// WriteConfig writes the loaded configuration to path
func (a *App) WriteConfig(path string) error {
	if err := a.cfg.WriteYAML(path); err != nil {
		return err
	}
	a.logger.Info("config written", zap.String("path", path))
	return nil
}
