package model_test

import (
	"testing"

	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/gomlx/structured/fgraph"
	"github.com/gomlx/structured/fgraph/fgtest"
	"github.com/gomlx/structured/model"
)

func TestJointFeatureVector(t *testing.T) {
	// One binary variable, one factor with data size 2, so the factor type
	// has 2 assignments x 2 data values = 4 parameters.
	ftype := must.M1(fgraph.NewTableFactorType(1, []int{2}, make([]float64, 4)))
	g := fgtest.NewGraph([]int{2})
	g.AddFactor(fgraph.NewFactor(ftype, []int{0}, []float64{1, 1}))

	m := model.New(fgraph.NewSamples(g), fgraph.NewLabels(), model.TreeMaxProd)
	require.NoError(t, m.AddFactorType(ftype))

	// Assignment index 1 selects the second table row, global slots 2 and 3;
	// the data values land there negated.
	psi := m.JointFeatureVector(0, fgraph.NewObservation([]int{1}, nil))
	assert.Equal(t, []float64{0, 0, -1, -1}, psi)

	psi = m.JointFeatureVector(0, fgraph.NewObservation([]int{0}, nil))
	assert.Equal(t, []float64{-1, -1, 0, 0}, psi)
}

func TestJointFeatureVectorEnergyConvention(t *testing.T) {
	// <w, psi(x, y)> must equal -E(x, y; w) for every assignment.
	unary := must.M1(fgraph.NewTableFactorType(1, []int{2}, []float64{0.3, -1.2}))
	pairwise := must.M1(fgraph.NewTableFactorType(2, []int{2, 2}, []float64{0.1, 0.7, -0.5, 2}))

	g := fgtest.NewGraph([]int{2, 2})
	g.AddFactor(fgraph.NewFactor(unary, []int{0}, nil))
	g.AddFactor(fgraph.NewFactor(unary, []int{1}, nil))
	g.AddFactor(fgraph.NewFactor(pairwise, []int{0, 1}, nil))

	m := model.New(fgraph.NewSamples(g), fgraph.NewLabels(), model.TreeMaxProd)
	require.NoError(t, m.AddFactorType(unary))
	require.NoError(t, m.AddFactorType(pairwise))

	w := m.FactorParamsToGlobal()
	g.ComputeEnergies()
	for s0 := 0; s0 < 2; s0++ {
		for s1 := 0; s1 < 2; s1++ {
			states := []int{s0, s1}
			psi := m.JointFeatureVector(0, fgraph.NewObservation(states, nil))
			assert.InDeltaf(t, -g.EvaluateEnergy(states), floats.Dot(w, psi), 1e-12,
				"assignment %v", states)
		}
	}
}
