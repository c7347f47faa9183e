package fgraph

import (
	"slices"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// FactorType is the capability interface implemented by concrete factor-type
// objects. A factor type is a template shared by factors with the same
// parameters and cardinality structure; it owns its parameter sub-vector,
// which the model scatters into / gathers from the flat global weight vector.
type FactorType interface {
	// TypeID returns the unique identifier of the factor type.
	TypeID() int

	// Dim returns the number of parameters of the factor type.
	Dim() int

	// Params returns the current parameter vector, of length Dim.
	// The returned slice is owned by the factor type, don't modify it.
	Params() []float64

	// SetParams replaces the parameter vector. It panics if the length
	// doesn't match Dim.
	SetParams(w []float64)

	// Cardinalities returns the domain size of each variable the factor
	// type's factors touch, in order.
	Cardinalities() []int

	// NumAssignments returns the number of joint assignments of the factor's
	// variables, the product of Cardinalities.
	NumAssignments() int

	// IndexFromUniverseAssignment returns the energy-table index selected by
	// the complete assignment states, restricted to the given variables.
	// The first variable is the fastest-varying index.
	IndexFromUniverseAssignment(states []int, variables []int) int
}

// TableFactorType is a factor type parameterized by a flat table: the
// parameter vector holds one block of len(data) values per joint assignment,
// so Dim = dataSize * NumAssignments.
//
// It implements FactorType.
type TableFactorType struct {
	typeID         int
	cardinalities  []int
	numAssignments int
	w              []float64
}

// NewTableFactorType creates a table factor type with the given unique id,
// per-variable cardinalities, and initial parameters w.
//
// A nil (or empty) w allocates a zero vector with one parameter per joint
// assignment, i.e. factors with data size 1. Otherwise len(w) must be a
// positive multiple of the number of joint assignments.
func NewTableFactorType(typeID int, cardinalities []int, w []float64) (*TableFactorType, error) {
	if len(cardinalities) == 0 {
		return nil, errors.Errorf("NewTableFactorType(id=%d): cardinalities must not be empty", typeID)
	}
	numAssignments := 1
	for _, card := range cardinalities {
		if card <= 0 {
			return nil, errors.Errorf("NewTableFactorType(id=%d): cardinalities must be positive, got %v",
				typeID, cardinalities)
		}
		numAssignments *= card
	}
	if len(w) == 0 {
		w = make([]float64, numAssignments)
	} else if len(w)%numAssignments != 0 {
		return nil, errors.Errorf(
			"NewTableFactorType(id=%d): len(w)=%d is not a multiple of the %d joint assignments",
			typeID, len(w), numAssignments)
	}
	return &TableFactorType{
		typeID:         typeID,
		cardinalities:  slices.Clone(cardinalities),
		numAssignments: numAssignments,
		w:              slices.Clone(w),
	}, nil
}

// TypeID returns the unique identifier of the factor type.
func (ft *TableFactorType) TypeID() int { return ft.typeID }

// Dim returns the number of parameters.
func (ft *TableFactorType) Dim() int { return len(ft.w) }

// DataSize returns the length of the data vector the factors of this type
// carry, Dim / NumAssignments.
func (ft *TableFactorType) DataSize() int { return len(ft.w) / ft.numAssignments }

// Params returns the current parameter vector.
// The returned slice is owned by the factor type, don't modify it.
func (ft *TableFactorType) Params() []float64 { return ft.w }

// SetParams replaces the parameter vector with a copy of w.
func (ft *TableFactorType) SetParams(w []float64) {
	if len(w) != len(ft.w) {
		exceptions.Panicf("TableFactorType(id=%d).SetParams: got %d parameters, want %d",
			ft.typeID, len(w), len(ft.w))
	}
	copy(ft.w, w)
}

// Cardinalities returns the domain size of each variable of the factor type.
func (ft *TableFactorType) Cardinalities() []int { return ft.cardinalities }

// NumAssignments returns the number of joint assignments, the product of the
// cardinalities.
func (ft *TableFactorType) NumAssignments() int { return ft.numAssignments }

// IndexFromUniverseAssignment returns the energy-table index selected by the
// complete assignment states restricted to the given variables. The first
// variable varies fastest.
func (ft *TableFactorType) IndexFromUniverseAssignment(states []int, variables []int) int {
	if len(variables) != len(ft.cardinalities) {
		exceptions.Panicf("TableFactorType(id=%d): factor has %d variables, type has %d",
			ft.typeID, len(variables), len(ft.cardinalities))
	}
	index, stride := 0, 1
	for vi, v := range variables {
		if v < 0 || v >= len(states) {
			exceptions.Panicf("TableFactorType(id=%d): variable %d out-of-range, assignment has %d variables",
				ft.typeID, v, len(states))
		}
		state := states[v]
		if state < 0 || state >= ft.cardinalities[vi] {
			exceptions.Panicf("TableFactorType(id=%d): state %d of variable %d out-of-range, cardinality is %d",
				ft.typeID, state, v, ft.cardinalities[vi])
		}
		index += state * stride
		stride *= ft.cardinalities[vi]
	}
	return index
}
