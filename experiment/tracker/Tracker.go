// Package tracker implements Trackers, which track and save data in an
// experiment
package tracker

import (
	"encoding/gob"
	"fmt"
	"os"

	ts "github.com/samuelfneumann/platformer/timestep"
)

// Interface Tracker keeps track of experiment data and saves the data
// after the experiment has finished
type Tracker interface {
	Track(t ts.TimeStep)
	Save() error
}

// LoadData loads and returns the data saved by a gob Tracker
func LoadData[T any](filename string) ([]T, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("loadData: could not open data file: %w", err)
	}
	defer file.Close()

	var data []T
	if err := gob.NewDecoder(file).Decode(&data); err != nil {
		return nil, fmt.Errorf("loadData: could not decode data: %w", err)
	}
	return data, nil
}
