package fgraph

import (
	"slices"

	"github.com/gomlx/exceptions"

	"github.com/gomlx/structured/types/xslices"
)

// Observation is a complete label assignment for a factor graph: one discrete
// state per variable, plus a per-variable loss weight used by the weighted
// Hamming loss and by loss augmentation.
type Observation struct {
	states      []int
	lossWeights []float64
}

// NewObservation creates an observation with the given per-variable states.
//
// lossWeights may be nil, in which case every variable weighs 1; otherwise it
// must have one weight per state.
func NewObservation(states []int, lossWeights []float64) *Observation {
	if lossWeights == nil {
		lossWeights = xslices.SliceWithValue(len(states), 1.0)
	} else if len(lossWeights) != len(states) {
		exceptions.Panicf("NewObservation: got %d loss weights for %d states",
			len(lossWeights), len(states))
	} else {
		lossWeights = slices.Clone(lossWeights)
	}
	return &Observation{
		states:      slices.Clone(states),
		lossWeights: lossWeights,
	}
}

// States returns the per-variable discrete states.
// The returned slice is owned by the observation, don't modify it.
func (o *Observation) States() []int { return o.states }

// LossWeights returns the per-variable loss weights.
// The returned slice is owned by the observation, don't modify it.
func (o *Observation) LossWeights() []float64 { return o.lossWeights }

// NumVariables returns the number of variables of the assignment.
func (o *Observation) NumVariables() int { return len(o.states) }
