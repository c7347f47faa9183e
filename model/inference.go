package model

import (
	"github.com/gomlx/exceptions"

	"github.com/gomlx/structured/fgraph"
)

// InferenceType enumerates the MAP inference algorithms a model can be
// configured with. The algorithms themselves live in external inference
// engines, registered per type with RegisterInferencer.
type InferenceType int

const (
	// TreeMaxProd is exact max-product belief propagation; it requires the
	// factor graph to be a tree, which Argmax enforces.
	TreeMaxProd InferenceType = iota

	// LoopyMaxProd is approximate max-product on graphs with cycles.
	LoopyMaxProd

	// LPRelaxation solves the linear-programming relaxation of the MAP
	// problem.
	LPRelaxation

	// TRWSMaxProd is sequential tree-reweighted message passing.
	TRWSMaxProd

	// GEMPLP is the generalized max-product linear-programming algorithm.
	GEMPLP

	// GraphCut solves MAP exactly for binary pairwise submodular energies;
	// InitPrimalOpt constrains the parameter domain accordingly.
	GraphCut
)

//go:generate go tool enumer -type=InferenceType -transform=snake -output=gen_inferencetype_enumer.go inference.go

// Inferencer runs MAP inference over one factor graph whose energies have
// already been computed (and possibly loss-augmented).
type Inferencer interface {
	// Inference computes the minimum-energy label assignment.
	Inference()

	// StructuredOutputs returns the assignment found by Inference.
	StructuredOutputs() *fgraph.Observation
}

// InferencerConstructor builds an Inferencer for the given factor graph.
type InferencerConstructor func(fg fgraph.FactorGraph) Inferencer

var registeredInferencers = make(map[InferenceType]InferencerConstructor)

// RegisterInferencer registers the constructor used to build inferencers of
// the given type. To be safe, call RegisterInferencer during initialization
// of the package providing the inference engine.
func RegisterInferencer(infType InferenceType, constructor InferencerConstructor) {
	registeredInferencers[infType] = constructor
}

// NewInferencer builds an inferencer of the given type for the given graph.
// It panics if no inference engine was registered for the type.
func NewInferencer(fg fgraph.FactorGraph, infType InferenceType) Inferencer {
	constructor, found := registeredInferencers[infType]
	if !found {
		exceptions.Panicf("no inference engine registered for %s -- import a package that provides one, "+
			"or call model.RegisterInferencer", infType)
	}
	return constructor(fg)
}
