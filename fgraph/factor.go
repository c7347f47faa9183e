package fgraph

import (
	"slices"

	"github.com/gomlx/exceptions"
)

// Factor is an instantiated potential function over a subset of a graph's
// variables. It binds a factor type, the (universe) indices of the variables
// it touches, and a local data vector of features, one block of which is
// selected per joint assignment.
type Factor struct {
	ftype     FactorType
	variables []int
	data      []float64
}

// NewFactor creates a factor of the given type over the given variable
// indices.
//
// A nil (or empty) data defaults to the constant [1], the common case for
// data-independent (e.g. pairwise smoothness) factors. Otherwise its length
// must be the factor type's Dim / NumAssignments.
func NewFactor(ftype FactorType, variables []int, data []float64) *Factor {
	if len(variables) != len(ftype.Cardinalities()) {
		exceptions.Panicf("NewFactor(type id=%d): got %d variables, factor type has %d",
			ftype.TypeID(), len(variables), len(ftype.Cardinalities()))
	}
	if len(data) == 0 {
		data = []float64{1}
	}
	if len(data)*ftype.NumAssignments() != ftype.Dim() {
		exceptions.Panicf(
			"NewFactor(type id=%d): data size %d doesn't match factor type (dim=%d, assignments=%d)",
			ftype.TypeID(), len(data), ftype.Dim(), ftype.NumAssignments())
	}
	return &Factor{
		ftype:     ftype,
		variables: slices.Clone(variables),
		data:      slices.Clone(data),
	}
}

// FactorType returns the type of the factor.
func (f *Factor) FactorType() FactorType { return f.ftype }

// Variables returns the universe indices of the variables the factor touches.
func (f *Factor) Variables() []int { return f.variables }

// Data returns the factor's local data (feature) vector.
func (f *Factor) Data() []float64 { return f.data }
