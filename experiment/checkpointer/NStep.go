package checkpointer

import (
	"fmt"

	ts "github.com/samuelfneumann/platformer/timestep"
)

// nStep implements checkpointing every N tracked timesteps
type nStep struct {
	interval int
	steps    int
	object   Saver

	// filename returns the filename of the next snapshot. Use
	// FilenameEnumerator for numbered files (frame1.png, frame2.png, ...)
	// or FileTimer for timestamped files.
	filename func() string
}

// NewNStep returns a checkpointer that checkpoints every n timesteps,
// counted across episodes. NewNStep panics if n < 1.
func NewNStep(n int, object Saver, filename func() string) Checkpointer {
	if n < 1 {
		panic(fmt.Sprintf("newNStep: interval must be positive, got %v", n))
	}
	return &nStep{
		interval: n,
		object:   object,
		filename: filename,
	}
}

// Checkpoint saves the tracked object on every n-th call
func (n *nStep) Checkpoint(ts.TimeStep) error {
	n.steps++
	if n.steps%n.interval == 0 {
		if err := n.object.Save(n.filename()); err != nil {
			return fmt.Errorf("checkpoint: %w", err)
		}
	}
	return nil
}
