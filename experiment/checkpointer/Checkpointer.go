// Package checkpointer periodically saves snapshots of objects, such
// as rendered arena frames, during an experiment
package checkpointer

import ts "github.com/samuelfneumann/platformer/timestep"

// Saver is an object that can save a snapshot of itself to a file
type Saver interface {
	Save(filename string) error
}

// SaverFunc adapts a function to the Saver interface
type SaverFunc func(filename string) error

// Save calls f(filename)
func (f SaverFunc) Save(filename string) error {
	return f(filename)
}

// Checkpointer checkpoints/saves objects based on timestep.TimeSteps
type Checkpointer interface {
	Checkpoint(ts.TimeStep) error
}
