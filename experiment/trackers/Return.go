// Package trackers implements concrete Trackers
package trackers

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/samuelfneumann/platformer/experiment/tracker"
	ts "github.com/samuelfneumann/platformer/timestep"
)

// Return tracks and saves the episodic return in an experiment. When
// an environment returns a TimeStep, this Tracker will extract the
// reward and accumulate the return for each episode in the experiment.
//
// Note: An episode must finish for this Tracker to save its data.
// If the last episode in an experiment does not finish, that episode's
// return will not be saved. An episode interrupted by a reset is
// discarded when the next episode's first TimeStep is tracked.
type Return struct {
	lastTimeStep   int
	currentReturn  float64
	episodeReturns []float64
	filename       string
}

// NewReturn creates and returns a new *Return Tracker
func NewReturn(filename string) tracker.Tracker {
	return &Return{lastTimeStep: -1, filename: filename}
}

// Track tracks the rewards seen on a timestep.
//
// Track panics if it is called for non-sequential timesteps within
// an episode
func (r *Return) Track(step ts.TimeStep) {
	if step.First() {
		r.currentReturn = 0
		r.lastTimeStep = -1
	}

	if r.lastTimeStep+1 != step.Number {
		panic(fmt.Sprintf("track: last two timesteps tracked are not "+
			"sequential: timestep %v --> timestep %v were tracked",
			r.lastTimeStep, step.Number))
	}

	r.currentReturn += step.Reward
	r.lastTimeStep = step.Number

	if step.Last() {
		r.episodeReturns = append(r.episodeReturns, r.currentReturn)
		r.currentReturn = 0.0
		r.lastTimeStep = -1
	}
}

// Returns returns the returns of all finished episodes
func (r *Return) Returns() []float64 {
	return append([]float64(nil), r.episodeReturns...)
}

// Save saves the data tracked by the Return Tracker to disk.
func (r *Return) Save() error {
	return saveGob(r.filename, r.episodeReturns)
}

func saveGob(filename string, data any) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("save: could not open save file: %w", err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(data); err != nil {
		return fmt.Errorf("save: could not encode data: %w", err)
	}
	return nil
}
