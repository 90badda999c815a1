package server

import (
	"github.com/samuelfneumann/platformer/environment"
	ts "github.com/samuelfneumann/platformer/timestep"
	"gonum.org/v1/gonum/mat"
)

// Request is a message sent by a client
type Request struct {
	Type   string    `json:"type"`
	Action []float64 `json:"action,omitempty"`
}

// Response is a message sent to a client
type Response struct {
	Type        string    `json:"type"`
	Step        *TimeStep `json:"step,omitempty"`
	Spec        *SpecSet  `json:"spec,omitempty"`
	Error       string    `json:"error,omitempty"`
	EpisodeOver bool      `json:"episode_over,omitempty"`
}

// TimeStep is the wire form of a timestep.TimeStep
type TimeStep struct {
	StepType    string    `json:"step_type"`
	Number      int       `json:"number"`
	Reward      float64   `json:"reward"`
	Discount    float64   `json:"discount"`
	Observation []float64 `json:"observation"`
	Done        bool      `json:"done"`
	EndReason   string    `json:"end_reason,omitempty"`
}

func newTimeStep(t ts.TimeStep, done bool) *TimeStep {
	out := &TimeStep{
		StepType:    t.StepType.String(),
		Number:      t.Number,
		Reward:      t.Reward,
		Discount:    t.Discount,
		Observation: raw(t.Observation),
		Done:        done,
	}
	if t.Last() {
		out.EndReason = t.EndType().String()
	}
	return out
}

// Spec is the wire form of an environment.Spec
type Spec struct {
	Lower       []float64 `json:"lower"`
	Upper       []float64 `json:"upper"`
	Cardinality string    `json:"cardinality"`
}

// SpecSet holds the specifications of an environment
type SpecSet struct {
	Observation Spec `json:"observation"`
	Action      Spec `json:"action"`
	Reward      Spec `json:"reward"`
	Discount    Spec `json:"discount"`
}

func newSpec(s environment.Spec) Spec {
	return Spec{
		Lower:       raw(s.LowerBound),
		Upper:       raw(s.UpperBound),
		Cardinality: string(s.Cardinality),
	}
}

func raw(v *mat.VecDense) []float64 {
	if v == nil {
		return nil
	}
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}
