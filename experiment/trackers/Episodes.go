package trackers

import (
	"github.com/samuelfneumann/platformer/timestep"
)

// Episode is the summary of a single finished episode
type Episode struct {
	Episode   int     `csv:"episode"`
	Steps     int     `csv:"steps"`
	Return    float64 `csv:"return"`
	EndReason string  `csv:"end_reason"`
}

// episodes accumulates per-episode summaries from a stream of
// TimeSteps. Episodes interrupted by a reset are dropped.
type episodes struct {
	current  float64
	finished []Episode
}

func (e *episodes) track(t timestep.TimeStep) {
	if t.First() {
		e.current = 0
	}
	e.current += t.Reward

	if t.Last() {
		e.finished = append(e.finished, Episode{
			Episode:   len(e.finished),
			Steps:     t.Number,
			Return:    e.current,
			EndReason: t.EndType().String(),
		})
		e.current = 0
	}
}

// Episodes returns the summaries of all finished episodes
func (e *episodes) Episodes() []Episode {
	return append([]Episode(nil), e.finished...)
}
