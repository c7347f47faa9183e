// Package fgraph defines the factor-graph data model shared between
// structured-prediction models and inference engines: factor types, factor
// instances, discrete observations (label assignments) and the FactorGraph
// interface implemented by graph structures that know how to compute and
// evaluate energies.
//
// A factor graph is a bipartite decomposition of an energy function
// E(x, y) = sum_f E_f(y_f): each factor f touches a subset of the discrete
// variables and contributes an energy per joint assignment of that subset.
// Factors sharing parameters are grouped under a FactorType; the model in
// package model maps all factor-type parameters into one flat global vector.
//
// To simplify error handling, structural misuse (out-of-range variables,
// mismatching dimensions) panics with a stack trace.
// See package github.com/gomlx/exceptions.
package fgraph

import (
	"github.com/gomlx/exceptions"
)

// FactorGraph is the interface the model requires from a per-example graph
// structure. Implementations own the per-factor energy tables; the energy
// computation and inference algorithms themselves are external to this module.
//
// The model drives it as follows: ConnectComponents and (for tree-based
// inference) IsTreeGraph during preparation, ComputeEnergies after the factor
// types' parameters changed, LossAugmentation during training, and
// EvaluateEnergy to score complete assignments.
type FactorGraph interface {
	// NumVariables returns the number of discrete variables of the graph.
	NumVariables() int

	// Cardinalities returns the domain size of each variable.
	Cardinalities() []int

	// Factors returns the factor instances of the graph.
	Factors() []*Factor

	// ConnectComponents resolves the connected components of the graph.
	// It must be called before IsTreeGraph.
	ConnectComponents()

	// IsTreeGraph reports whether the graph is acyclic.
	IsTreeGraph() bool

	// ComputeEnergies recomputes every factor's energy table from the current
	// factor-type parameters and the factors' data vectors.
	ComputeEnergies()

	// EvaluateEnergy returns the total energy of the given complete
	// assignment, one state per variable.
	EvaluateEnergy(states []int) float64

	// LossAugmentation subtracts the margin loss from the energy tables, so
	// that minimizing the augmented energy solves the structured-SVM
	// max-oracle. It must be called after ComputeEnergies.
	LossAugmentation(truth *Observation)
}

// Samples is an ordered collection of factor-graph examples.
type Samples struct {
	graphs []FactorGraph
}

// NewSamples creates a Samples collection with the given graphs.
func NewSamples(graphs ...FactorGraph) *Samples {
	return &Samples{graphs: graphs}
}

// Add appends a graph to the collection.
func (s *Samples) Add(fg FactorGraph) {
	s.graphs = append(s.graphs, fg)
}

// Sample returns the idx-th graph. It panics if idx is out-of-range.
func (s *Samples) Sample(idx int) FactorGraph {
	if idx < 0 || idx >= len(s.graphs) {
		exceptions.Panicf("Samples.Sample(%d): collection holds %d sample(s)", idx, len(s.graphs))
	}
	return s.graphs[idx]
}

// Len returns the number of samples.
func (s *Samples) Len() int { return len(s.graphs) }

// Labels is an ordered collection of ground-truth observations, aligned with
// a Samples collection of the same length.
type Labels struct {
	observations []*Observation
}

// NewLabels creates a Labels collection with the given observations.
func NewLabels(observations ...*Observation) *Labels {
	return &Labels{observations: observations}
}

// Add appends an observation to the collection.
func (l *Labels) Add(y *Observation) {
	l.observations = append(l.observations, y)
}

// Label returns the idx-th observation. It panics if idx is out-of-range.
func (l *Labels) Label(idx int) *Observation {
	if idx < 0 || idx >= len(l.observations) {
		exceptions.Panicf("Labels.Label(%d): collection holds %d label(s)", idx, len(l.observations))
	}
	return l.observations[idx]
}

// Len returns the number of labels.
func (l *Labels) Len() int { return len(l.observations) }
