package platformer

import (
	"github.com/samuelfneumann/platformer/environment"
	"github.com/samuelfneumann/platformer/timestep"
	"go.uber.org/zap"
)

// Phase is the phase of an Episode
type Phase int

const (
	Idle Phase = iota
	Running
	Terminated
)

func (p Phase) String() string {
	switch p {
	case Running:
		return "Running"
	case Terminated:
		return "Terminated"
	default:
		return "Idle"
	}
}

// Episode tracks the phase and step count of the current episode.
// Episodes move from Idle to Running when begun, from Running to
// Terminated when ended, recording the reason they ended, and from
// Terminated back to Idle when cleared. Only the first termination of
// an episode takes effect.
type Episode struct {
	ender  environment.Ender
	logger *zap.Logger

	phase  Phase
	reason timestep.EndType
	steps  int
}

// NewEpisode returns a new Idle Episode which uses ender to enforce its
// step budget
func NewEpisode(ender environment.Ender, logger *zap.Logger) *Episode {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Episode{ender: ender, logger: logger}
}

// Clear returns a terminated episode to Idle, keeping the reason it
// ended. It has no effect in any other phase.
func (e *Episode) Clear() {
	if e.phase == Terminated {
		e.phase = Idle
	}
}

// Begin starts a new episode with a step count of 0
func (e *Episode) Begin() {
	e.phase = Running
	e.reason = timestep.NotEnded
	e.steps = 0
	e.logger.Debug("episode begin")
}

// Tick counts a step of a running episode and numbers t with the new
// step count
func (e *Episode) Tick(t *timestep.TimeStep) {
	if e.phase != Running {
		return
	}
	e.steps++
	t.Number = e.steps
}

// CheckBudget terminates the episode if t exceeds the step budget. It
// returns whether the episode was terminated.
func (e *Episode) CheckBudget(t *timestep.TimeStep) bool {
	if e.phase != Running {
		return false
	}
	if !e.ender.End(t) {
		return false
	}
	return e.Terminate(t.EndType())
}

// Terminate ends a running episode for the given reason and resets the
// step count. It returns false without effect if the episode is not
// running.
func (e *Episode) Terminate(reason timestep.EndType) bool {
	if e.phase != Running {
		return false
	}
	e.logger.Debug("episode end",
		zap.Stringer("reason", reason),
		zap.Int("steps", e.steps),
	)
	e.phase = Terminated
	e.reason = reason
	e.steps = 0
	return true
}

// Phase returns the phase of the episode
func (e *Episode) Phase() Phase {
	return e.phase
}

// Running returns whether the episode is running
func (e *Episode) Running() bool {
	return e.phase == Running
}

// Reason returns why the episode was terminated, or timestep.NotEnded
// if it has not been
func (e *Episode) Reason() timestep.EndType {
	return e.reason
}

// Steps returns the number of steps taken in the running episode
func (e *Episode) Steps() int {
	return e.steps
}
