package trackers

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/samuelfneumann/platformer/experiment/tracker"
	"github.com/samuelfneumann/platformer/timestep"
)

// CSV tracks a summary row per finished episode and writes all rows,
// with a header, to a CSV file when saved
type CSV struct {
	episodes
	filename string
}

// NewCSV returns a new CSV tracker saving to filename
func NewCSV(filename string) tracker.Tracker {
	return &CSV{filename: filename}
}

// Track tracks the timestep t
func (c *CSV) Track(t timestep.TimeStep) {
	c.track(t)
}

// Save writes all finished episodes to the tracker's file
func (c *CSV) Save() error {
	file, err := os.Create(c.filename)
	if err != nil {
		return fmt.Errorf("save: creating %v: %w", c.filename, err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&c.finished, file); err != nil {
		return fmt.Errorf("save: writing episodes: %w", err)
	}
	return nil
}

// LoadCSV reads the episodes written by a CSV tracker
func LoadCSV(filename string) ([]Episode, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("loadCSV: %w", err)
	}
	defer file.Close()

	var rows []Episode
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("loadCSV: parsing %v: %w", filename, err)
	}
	return rows, nil
}
