package model

import (
	"math"

	"github.com/gomlx/exceptions"
	"gonum.org/v1/gonum/mat"

	"github.com/gomlx/structured/types/xslices"
)

// InitPrimalOpt builds the quadratic-program ingredients for primal
// structured-SVM solvers: the regularization matrix C = regularization * I
// over the global weight vector, and the box bounds [lb, ub] of the
// parameter domain.
//
// For GraphCut inference the energies must be submodular, which for a
// pairwise binary factor type (cardinalities 2x2, 4 parameters) means
// E(0,1) + E(1,0) - E(0,0) - E(1,1) > 0. The factor-graph parameterization is
// redundant, so the constraint is written as
//
//	w[0] = 0, w[3] = 0, w[1] >= 0, w[2] >= 0
//
// over that type's global slots (the table rows being E(0,0), E(1,0),
// E(0,1), E(1,1) in order). It panics if such a factor type has a parameter
// count other than 4: edge features are not supported with GraphCut.
//
// For every other inference type the bounds are unconstrained.
func (m *FactorGraphModel) InitPrimalOpt(regularization float64) (c *mat.Dense, lb, ub []float64) {
	if len(m.factorTypes) == 0 {
		exceptions.Panicf("InitPrimalOpt: no factor types registered")
	}
	dim := m.Dim()
	c = mat.NewDense(dim, dim, nil)
	for di := 0; di < dim; di++ {
		c.Set(di, di, regularization)
	}

	lb = xslices.SliceWithValue(dim, math.Inf(-1))
	ub = xslices.SliceWithValue(dim, math.Inf(1))
	if m.infType != GraphCut {
		return
	}

	for _, ftype := range m.factorTypes {
		card := ftype.Cardinalities()
		if len(card) != 2 || card[0] != 2 || card[1] != 2 {
			continue
		}
		if ftype.Dim() != 4 {
			exceptions.Panicf("InitPrimalOpt: %s doesn't support edge features, but factor type (id=%d) "+
				"has %d parameters for a pairwise binary factor, want 4", GraphCut, ftype.TypeID(), ftype.Dim())
		}
		fwMap := m.ParamsMapping(ftype.TypeID())
		lb[fwMap[0]], ub[fwMap[0]] = 0, 0
		lb[fwMap[3]], ub[fwMap[3]] = 0, 0
		lb[fwMap[1]] = 0
		lb[fwMap[2]] = 0
	}
	return
}
