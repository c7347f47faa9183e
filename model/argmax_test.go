package model_test

import (
	"testing"

	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomlx/structured/fgraph"
	"github.com/gomlx/structured/fgraph/fgtest"
	"github.com/gomlx/structured/model"
)

// lossAugSpy wraps a graph and counts LossAugmentation calls.
type lossAugSpy struct {
	*fgtest.Graph
	lossAugCalls int
}

func (s *lossAugSpy) LossAugmentation(truth *fgraph.Observation) {
	s.lossAugCalls++
	s.Graph.LossAugmentation(truth)
}

// chainModel builds a model over one 2-variable binary chain, with unary
// factors (type id 1) and one Ising pairwise factor (type id 2), ground
// truth [0, 0].
func chainModel(t *testing.T, infType model.InferenceType) (*model.FactorGraphModel, *lossAugSpy) {
	unary := must.M1(fgraph.NewTableFactorType(1, []int{2}, []float64{0, 1}))
	pairwise := must.M1(fgraph.NewTableFactorType(2, []int{2, 2}, []float64{0, 1, 1, 0}))

	g := fgtest.NewGraph([]int{2, 2})
	g.AddFactor(fgraph.NewFactor(unary, []int{0}, nil))
	g.AddFactor(fgraph.NewFactor(unary, []int{1}, nil))
	g.AddFactor(fgraph.NewFactor(pairwise, []int{0, 1}, nil))
	spy := &lossAugSpy{Graph: g}

	samples := fgraph.NewSamples(spy)
	labels := fgraph.NewLabels(fgraph.NewObservation([]int{0, 0}, nil))
	m := model.New(samples, labels, infType)
	require.NoError(t, m.AddFactorType(unary))
	require.NoError(t, m.AddFactorType(pairwise))
	return m, spy
}

func TestArgmaxPrediction(t *testing.T) {
	fgtest.RegisterExhaustiveInferencer(model.TreeMaxProd)
	m, spy := chainModel(t, model.TreeMaxProd)

	w := m.FactorParamsToGlobal()
	ret := m.Argmax(w, 0, false)

	// Prediction mode never loss-augments the graph.
	assert.Equal(t, 0, spy.lossAugCalls)

	// The unary factors prefer state 0, the pairwise factor agreement, so
	// the minimum-energy assignment is the truth itself.
	assert.Equal(t, []int{0, 0}, ret.Argmax.States())
	assert.Equal(t, 0.0, ret.Delta)
	assert.Equal(t, 0.0, ret.Score)
	assert.Equal(t, ret.PsiTruth, ret.PsiPred)
}

func TestArgmaxLossAugmented(t *testing.T) {
	fgtest.RegisterExhaustiveInferencer(model.TreeMaxProd)
	m, spy := chainModel(t, model.TreeMaxProd)

	// With zero weights all assignments have zero energy, and the
	// loss-augmented inference picks the one maximizing the margin loss.
	w := make([]float64, m.Dim())
	ret := m.Argmax(w, 0, true)
	assert.Equal(t, 1, spy.lossAugCalls)
	assert.Equal(t, []int{1, 1}, ret.Argmax.States())
	assert.Equal(t, 2.0, ret.Delta)
	assert.InDelta(t, 2.0, ret.Score, 1e-12)
}

func TestArgmaxMaxOracleIdentity(t *testing.T) {
	fgtest.RegisterExhaustiveInferencer(model.TreeMaxProd)
	m, spy := chainModel(t, model.TreeMaxProd)

	// Bias the energies so truth and loss-augmented prediction disagree.
	w := []float64{0.1, -0.4, 0, 0.3, 0.7, -0.2}
	ret := m.Argmax(w, 0, true)
	require.Equal(t, 1, spy.lossAugCalls)

	// Score must equal [delta(y_t, y*) - E(x, y*)] + E(x, y_t) with the
	// un-augmented energies.
	spy.ComputeEnergies()
	yTruth := []int{0, 0}
	want := ret.Delta - spy.EvaluateEnergy(ret.Argmax.States()) + spy.EvaluateEnergy(yTruth)
	assert.InDelta(t, want, ret.Score, 1e-12)
}

func TestArgmaxRequiresTree(t *testing.T) {
	fgtest.RegisterExhaustiveInferencer(model.TreeMaxProd, model.LoopyMaxProd)

	buildCyclic := func(infType model.InferenceType) *model.FactorGraphModel {
		pairwise := must.M1(fgraph.NewTableFactorType(1, []int{2, 2}, []float64{0, 1, 1, 0}))
		g := fgtest.NewGraph([]int{2, 2, 2})
		g.AddFactor(fgraph.NewFactor(pairwise, []int{0, 1}, nil))
		g.AddFactor(fgraph.NewFactor(pairwise, []int{1, 2}, nil))
		g.AddFactor(fgraph.NewFactor(pairwise, []int{0, 2}, nil))
		m := model.New(fgraph.NewSamples(g),
			fgraph.NewLabels(fgraph.NewObservation([]int{0, 0, 0}, nil)), infType)
		require.NoError(t, m.AddFactorType(pairwise))
		return m
	}

	m := buildCyclic(model.TreeMaxProd)
	require.Panics(t, func() { m.Argmax(make([]float64, m.Dim()), 0, false) })

	// The same graph is fine under an inference type without the tree
	// requirement.
	m = buildCyclic(model.LoopyMaxProd)
	ret := m.Argmax(make([]float64, m.Dim()), 0, false)
	assert.Equal(t, 0.0, ret.Score)
}
