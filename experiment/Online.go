package experiment

import (
	"context"
	"errors"
	"fmt"

	"github.com/samuelfneumann/platformer/agent"
	env "github.com/samuelfneumann/platformer/environment"
	"github.com/samuelfneumann/platformer/experiment/checkpointer"
	"github.com/samuelfneumann/platformer/experiment/tracker"
	ts "github.com/samuelfneumann/platformer/timestep"
	"go.uber.org/zap"
)

// Online is an Experiment that runs an agent online only. No offline
// evaluation is performed.
type Online struct {
	env.Environment
	agent.Agent
	maxSteps      uint
	currentSteps  uint
	episodes      int
	trackers      []tracker.Tracker
	checkpointers []checkpointer.Checkpointer
	logger        *zap.Logger
}

// NewOnline creates and returns a new online experiment on a given
// environment with a given agent. The steps parameter determines how
// many timesteps the experiment is run for, t determines what data is
// saved and c determines which objects are checkpointed.
func NewOnline(e env.Environment, a agent.Agent, steps uint,
	t []tracker.Tracker, c []checkpointer.Checkpointer,
	logger *zap.Logger) *Online {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Online{
		Environment:   e,
		Agent:         a,
		maxSteps:      steps,
		trackers:      t,
		checkpointers: c,
		logger:        logger,
	}
}

// Register registers a tracker.Tracker with an Experiment so that data
// generated during the experiment can be tracked and saved
func (o *Online) Register(t tracker.Tracker) {
	o.trackers = append(o.trackers, t)
}

// AddCheckpointer adds a checkpointer.Checkpointer which is called on
// every timestep after the first of each episode
func (o *Online) AddCheckpointer(c checkpointer.Checkpointer) {
	o.checkpointers = append(o.checkpointers, c)
}

// RunEpisode runs a single episode of the experiment and returns
// whether the maximum number of timesteps has been reached. An
// environment which has not been stepped since its episode began is
// not reset again.
func (o *Online) RunEpisode(ctx context.Context) (bool, error) {
	step := o.Environment.CurrentTimeStep()
	if !step.First() {
		var err error
		if step, err = o.Environment.Reset(); err != nil {
			return true, fmt.Errorf("runEpisode: %w", err)
		}
	}
	if err := o.Agent.ObserveFirst(step); err != nil {
		return true, fmt.Errorf("runEpisode: %w", err)
	}
	o.track(step)

	var episodeReturn float64
	for !step.Last() && o.currentSteps < o.maxSteps {
		if err := ctx.Err(); err != nil {
			return true, err
		}
		o.currentSteps++

		action := o.Agent.SelectAction(step)
		var err error
		step, _, err = o.Environment.Step(action)
		if err != nil {
			return true, fmt.Errorf("runEpisode: %w", err)
		}
		episodeReturn += step.Reward

		o.track(step)
		if err := o.checkpoint(step); err != nil {
			return true, fmt.Errorf("runEpisode: %w", err)
		}

		if err := o.Agent.Observe(action, step); err != nil {
			return true, fmt.Errorf("runEpisode: %w", err)
		}
		if err := o.Agent.Step(); err != nil {
			return true, fmt.Errorf("runEpisode: %w", err)
		}
	}
	o.Agent.EndEpisode()

	if step.Last() {
		o.episodes++
		o.logger.Info("episode finished",
			zap.Int("episode", o.episodes),
			zap.Int("steps", step.Number),
			zap.Float64("return", episodeReturn),
			zap.Stringer("reason", step.EndType()),
		)
	}

	return o.currentSteps >= o.maxSteps, nil
}

// Run runs the entire experiment for all timesteps or until ctx is
// cancelled
func (o *Online) Run(ctx context.Context) error {
	for {
		ended, err := o.RunEpisode(ctx)
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}
		if ended {
			return nil
		}
	}
}

// Episodes returns the number of finished episodes
func (o *Online) Episodes() int {
	return o.episodes
}

// Save saves the data cached by the trackers to disk
func (o *Online) Save() error {
	var errs []error
	for _, t := range o.trackers {
		if err := t.Save(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// track tracks the current timestep by caching its data in each tracker
func (o *Online) track(t ts.TimeStep) {
	for _, tr := range o.trackers {
		tr.Track(t)
	}
}

func (o *Online) checkpoint(t ts.TimeStep) error {
	for _, c := range o.checkpointers {
		if err := c.Checkpoint(t); err != nil {
			return err
		}
	}
	return nil
}
