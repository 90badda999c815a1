package main

import (
	"fmt"

	"github.com/samuelfneumann/platformer/experiment"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options are the flags shared by all commands
type Options struct {
	ConfigPath  string
	LogLevel    string
	Development bool
}

// App holds what every command needs
type App struct {
	cfg    *experiment.Config
	logger *zap.Logger
}

func newApp(cfg *experiment.Config, logger *zap.Logger) *App {
	return &App{cfg: cfg, logger: logger}
}

func provideLogger(opts Options) (*zap.Logger, func(), error) {
	level, err := zapcore.ParseLevel(opts.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing log level: %w", err)
	}

	config := zap.NewProductionConfig()
	if opts.Development {
		config = zap.NewDevelopmentConfig()
	}
	config.Level = zap.NewAtomicLevelAt(level)
	config.DisableCaller = true

	logger, err := config.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, func() { _ = logger.Sync() }, nil
}

func provideConfig(opts Options, logger *zap.Logger) (*experiment.Config,
	error) {
	cfg, err := experiment.LoadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	warnings, err := cfg.Env.Validate()
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		logger.Warn(w)
	}
	return cfg, nil
}
