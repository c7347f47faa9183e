// Package fgtest holds test utilities for packages that depend on the fgraph
// package: a straightforward in-memory FactorGraph implementation with
// per-factor energy tables, and an exhaustive-search MAP inferencer that can
// be registered for any inference type.
//
// Everything here trades speed for obviousness and is meant for tests and
// small examples only.
package fgtest

import (
	"slices"

	"github.com/gomlx/exceptions"

	"github.com/gomlx/structured/fgraph"
	"github.com/gomlx/structured/model"
)

// Graph is a simple in-memory fgraph.FactorGraph.
type Graph struct {
	cards    []int
	factors  []*fgraph.Factor
	energies [][]float64
	isTree   bool
	prepared bool
}

// NewGraph creates an empty factor graph over variables with the given
// cardinalities.
func NewGraph(cardinalities []int) *Graph {
	for vi, card := range cardinalities {
		if card <= 0 {
			exceptions.Panicf("fgtest.NewGraph: variable %d has cardinality %d, want > 0", vi, card)
		}
	}
	return &Graph{cards: slices.Clone(cardinalities)}
}

// AddFactor appends a factor to the graph. It panics if the factor touches
// variables outside the graph.
func (g *Graph) AddFactor(fac *fgraph.Factor) {
	for _, v := range fac.Variables() {
		if v < 0 || v >= len(g.cards) {
			exceptions.Panicf("fgtest.Graph.AddFactor: variable %d out-of-range, graph has %d variables",
				v, len(g.cards))
		}
	}
	g.factors = append(g.factors, fac)
	g.prepared = false
}

// NumVariables returns the number of variables of the graph.
func (g *Graph) NumVariables() int { return len(g.cards) }

// Cardinalities returns the domain size of each variable.
func (g *Graph) Cardinalities() []int { return g.cards }

// Factors returns the factors of the graph.
func (g *Graph) Factors() []*fgraph.Factor { return g.factors }

// ConnectComponents resolves the structure of the graph (here only whether it
// is acyclic). Must be called before IsTreeGraph.
func (g *Graph) ConnectComponents() {
	uf := newUnionFind(len(g.cards))
	g.isTree = true
	for _, fac := range g.factors {
		vars := fac.Variables()
		for vi := 1; vi < len(vars); vi++ {
			if !uf.union(vars[vi-1], vars[vi]) {
				g.isTree = false
			}
		}
	}
	g.prepared = true
}

// IsTreeGraph reports whether the graph is acyclic. It panics if
// ConnectComponents wasn't called since the last mutation.
func (g *Graph) IsTreeGraph() bool {
	if !g.prepared {
		exceptions.Panicf("fgtest.Graph.IsTreeGraph: call ConnectComponents first")
	}
	return g.isTree
}

// ComputeEnergies recomputes every factor's energy table from the current
// factor-type parameters: E_f(assignment) = <w_row(assignment), data_f>.
func (g *Graph) ComputeEnergies() {
	g.energies = make([][]float64, len(g.factors))
	for fi, fac := range g.factors {
		ftype := fac.FactorType()
		w := ftype.Params()
		dat := fac.Data()
		datSize := len(dat)
		table := make([]float64, ftype.NumAssignments())
		for ei := range table {
			for di := 0; di < datSize; di++ {
				table[ei] += w[ei*datSize+di] * dat[di]
			}
		}
		g.energies[fi] = table
	}
}

// Energies returns the fi-th factor's energy table. It panics if
// ComputeEnergies wasn't called.
func (g *Graph) Energies(fi int) []float64 {
	if g.energies == nil {
		exceptions.Panicf("fgtest.Graph.Energies: call ComputeEnergies first")
	}
	return g.energies[fi]
}

// EvaluateEnergy returns the total energy of the given complete assignment.
func (g *Graph) EvaluateEnergy(states []int) float64 {
	if g.energies == nil {
		exceptions.Panicf("fgtest.Graph.EvaluateEnergy: call ComputeEnergies first")
	}
	if len(states) != len(g.cards) {
		exceptions.Panicf("fgtest.Graph.EvaluateEnergy: got %d states for %d variables",
			len(states), len(g.cards))
	}
	energy := 0.0
	for fi, fac := range g.factors {
		ei := fac.FactorType().IndexFromUniverseAssignment(states, fac.Variables())
		energy += g.energies[fi][ei]
	}
	return energy
}

// LossAugmentation subtracts the margin loss from the energy tables: each
// assignment row loses the loss weight of every variable it mislabels, the
// weight split evenly across the factors covering the variable, so that the
// total augmentation of a complete assignment equals its weighted Hamming
// loss to the truth.
func (g *Graph) LossAugmentation(truth *fgraph.Observation) {
	if g.energies == nil {
		exceptions.Panicf("fgtest.Graph.LossAugmentation: call ComputeEnergies first")
	}
	if truth.NumVariables() != len(g.cards) {
		exceptions.Panicf("fgtest.Graph.LossAugmentation: truth has %d variables, graph has %d",
			truth.NumVariables(), len(g.cards))
	}

	// Number of factors covering each variable.
	counts := make([]int, len(g.cards))
	for _, fac := range g.factors {
		for _, v := range fac.Variables() {
			counts[v]++
		}
	}

	sTruth := truth.States()
	weights := truth.LossWeights()
	for fi, fac := range g.factors {
		vars := fac.Variables()
		cards := fac.FactorType().Cardinalities()
		for ei := range g.energies[fi] {
			stride := 1
			for vi, v := range vars {
				state := (ei / stride) % cards[vi]
				stride *= cards[vi]
				if state != sTruth[v] {
					g.energies[fi][ei] -= weights[v] / float64(counts[v])
				}
			}
		}
	}
}

// ExhaustiveSearch is a MAP inferencer that enumerates every joint assignment
// and keeps the minimum-energy one. Exponential, tests only.
type ExhaustiveSearch struct {
	fg   fgraph.FactorGraph
	best *fgraph.Observation
}

// NewExhaustiveSearch creates an exhaustive-search inferencer over the given
// graph. The graph's energies must already be computed.
func NewExhaustiveSearch(fg fgraph.FactorGraph) *ExhaustiveSearch {
	return &ExhaustiveSearch{fg: fg}
}

// Inference enumerates all assignments and records the minimum-energy one.
func (s *ExhaustiveSearch) Inference() {
	cards := s.fg.Cardinalities()
	states := make([]int, len(cards))
	var bestStates []int
	bestEnergy := 0.0
	for {
		energy := s.fg.EvaluateEnergy(states)
		if bestStates == nil || energy < bestEnergy {
			bestStates = slices.Clone(states)
			bestEnergy = energy
		}
		// Advance to the next assignment, first variable fastest.
		vi := 0
		for vi < len(states) {
			states[vi]++
			if states[vi] < cards[vi] {
				break
			}
			states[vi] = 0
			vi++
		}
		if vi == len(states) {
			break
		}
	}
	s.best = fgraph.NewObservation(bestStates, nil)
}

// StructuredOutputs returns the assignment found by Inference. It panics if
// Inference wasn't called.
func (s *ExhaustiveSearch) StructuredOutputs() *fgraph.Observation {
	if s.best == nil {
		exceptions.Panicf("fgtest.ExhaustiveSearch.StructuredOutputs: call Inference first")
	}
	return s.best
}

// RegisterExhaustiveInferencer registers ExhaustiveSearch as the inference
// engine for the given inference types. Tests call it for the types they
// exercise.
func RegisterExhaustiveInferencer(infTypes ...model.InferenceType) {
	for _, infType := range infTypes {
		model.RegisterInferencer(infType, func(fg fgraph.FactorGraph) model.Inferencer {
			return NewExhaustiveSearch(fg)
		})
	}
}

// unionFind is a plain disjoint-set over variable indices.
type unionFind struct {
	parent []int
}

func newUnionFind(size int) *unionFind {
	uf := &unionFind{parent: make([]int, size)}
	for ii := range uf.parent {
		uf.parent[ii] = ii
	}
	return uf
}

func (uf *unionFind) find(v int) int {
	for uf.parent[v] != v {
		uf.parent[v] = uf.parent[uf.parent[v]]
		v = uf.parent[v]
	}
	return v
}

// union merges the sets of a and b, returning false if they were already
// connected (a cycle).
func (uf *unionFind) union(a, b int) bool {
	rootA, rootB := uf.find(a), uf.find(b)
	if rootA == rootB {
		return false
	}
	uf.parent[rootA] = rootB
	return true
}
