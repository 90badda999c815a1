package trackers

import (
	"github.com/samuelfneumann/platformer/experiment/tracker"
	"github.com/samuelfneumann/platformer/timestep"
)

// EpisodeLength tracks and saves the lengths of episodes in an
// experiment.
// Note that an episode must finish for this Tracker to save its data.
type EpisodeLength struct {
	episodeLengths []int
	filename       string
}

// NewEpisodeLength returns a new EpisodeLength tracker which will save
// its data at the specified location filename
func NewEpisodeLength(filename string) tracker.Tracker {
	return &EpisodeLength{filename: filename}
}

// Track caches the episode length if the timestep passed to it is the
// last timestep in the episode.
func (e *EpisodeLength) Track(t timestep.TimeStep) {
	if t.Last() {
		e.episodeLengths = append(e.episodeLengths, t.Number)
	}
}

// Save saves the data tracked by the EpisodeLength Tracker to disk.
func (e *EpisodeLength) Save() error {
	return saveGob(e.filename, e.episodeLengths)
}
