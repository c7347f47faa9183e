package model

import (
	"github.com/gomlx/exceptions"
	"gonum.org/v1/gonum/floats"

	"github.com/gomlx/structured/fgraph"
)

// JointFeatureVector computes psi(x, y) for the sampleIdx-th example and the
// given label assignment: per factor, the factor's data vector is accumulated
// into the global slots of the table row selected by the assignment, and the
// result is negated so that <w, psi(x, y)> = -E(x, y; w).
//
// It panics if a factor's slot range doesn't match its type's table layout.
func (m *FactorGraphModel) JointFeatureVector(sampleIdx int, y *fgraph.Observation) []float64 {
	fg := m.samples.Sample(sampleIdx)
	states := y.States()

	psi := make([]float64, m.Dim())
	for _, fac := range fg.Factors() {
		ftype := fac.FactorType()
		fwMap := m.ParamsMapping(ftype.TypeID())
		if len(fwMap) != ftype.Dim() {
			exceptions.Panicf("JointFeatureVector: factor type (id=%d) has %d parameters but owns %d slots",
				ftype.TypeID(), ftype.Dim(), len(fwMap))
		}

		dat := fac.Data()
		datSize := len(dat)
		if len(fwMap) != datSize*ftype.NumAssignments() {
			exceptions.Panicf(
				"JointFeatureVector: factor type (id=%d) owns %d slots, want data size %d x %d assignments",
				ftype.TypeID(), len(fwMap), datSize, ftype.NumAssignments())
		}

		ei := ftype.IndexFromUniverseAssignment(states, fac.Variables())
		for di := 0; di < datSize; di++ {
			psi[fwMap[ei*datSize+di]] += dat[di]
		}
	}

	// Negation: -E(x,y) = <w, psi(x,y)>.
	floats.Scale(-1, psi)
	return psi
}
