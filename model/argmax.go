package model

import (
	"github.com/gomlx/exceptions"
	"gonum.org/v1/gonum/floats"
	"k8s.io/klog/v2"

	"github.com/gomlx/structured/fgraph"
)

// ResultSet bundles the outputs of one Argmax call.
type ResultSet struct {
	// Argmax is the predicted label assignment y*.
	Argmax *fgraph.Observation

	// PsiTruth and PsiPred are the joint feature vectors of the ground truth
	// and of the prediction.
	PsiTruth, PsiPred []float64

	// Score is the max-oracle value,
	// [delta(y_i, y*) - E(x_i, y*; w)] + E(x_i, y_i; w).
	Score float64

	// Delta is the weighted Hamming loss delta(y_i, y*).
	Delta float64
}

// Argmax computes, for the sampleIdx-th example, the best scoring label
// assignment under the weights w, loss-augmented when training is true:
//
//	E(x_i, y; w) - E(x_i, y_i; w) >= delta(y_i, y) - xi_i
//	xi_i >= max oracle
//	max oracle := argmax_y { delta(y_i, y) - E(x_i, y; w) + E(x_i, y_i; w) }
//	           := argmin_y { -delta(y_i, y) + E(x_i, y; w) } - E(x_i, y_i; w)
//
// Inference performs energy minimization, so the max-oracle value is
// recovered as [delta(y_i, y*) - E(x_i, y*; w)] + E(x_i, y_i; w).
//
// It pushes w into the factor types (a no-op when w is unchanged), recomputes
// the energies, loss-augments them when training, and delegates to the
// inference engine registered for the model's inference type.
//
// It panics if the model was configured with TreeMaxProd and the graph is not
// a tree, or if w doesn't match the model dimension.
func (m *FactorGraphModel) Argmax(w []float64, sampleIdx int, training bool) *ResultSet {
	fg := m.samples.Sample(sampleIdx)

	// Prepare the factor graph.
	fg.ConnectComponents()
	if m.infType == TreeMaxProd && !fg.IsTreeGraph() {
		exceptions.Panicf("Argmax(sample=%d): %s inference requires a tree-structured factor graph",
			sampleIdx, m.infType)
	}

	klog.V(2).Infof("Argmax: ------ example %d", sampleIdx)

	// Update factor parameters and energies.
	m.GlobalToFactorParams(w)
	fg.ComputeEnergies()

	yTruth := m.labels.Label(sampleIdx)
	ret := &ResultSet{}

	// E(x_i, y_i; w)
	ret.PsiTruth = m.JointFeatureVector(sampleIdx, yTruth)
	energyTruth := fg.EvaluateEnergy(yTruth.States())
	ret.Score = energyTruth

	// - min_y [ E(x_i, y; w) - delta(y_i, y) ]
	if training {
		fg.LossAugmentation(yTruth)
	}

	inferencer := NewInferencer(fg, m.infType)
	inferencer.Inference()
	yStar := inferencer.StructuredOutputs()

	ret.Argmax = yStar
	ret.PsiPred = m.JointFeatureVector(sampleIdx, yStar)
	energyPred := fg.EvaluateEnergy(yStar.States())
	ret.Score -= energyPred
	ret.Delta = m.DeltaLoss(yTruth, yStar)

	if klog.V(2).Enabled() {
		dotPred := floats.Dot(w, ret.PsiPred)
		dotTruth := floats.Dot(w, ret.PsiTruth)
		slack := dotPred + ret.Delta - dotTruth
		klog.Infof("Argmax: w=%v", w)
		klog.Infof("Argmax: psiPred=%v statePred=%v", ret.PsiPred, yStar.States())
		klog.Infof("Argmax: dotPred=%f energyPred=%f delta=%f", dotPred, energyPred, ret.Delta)
		klog.Infof("Argmax: psiTruth=%v stateTruth=%v", ret.PsiTruth, yTruth.States())
		klog.Infof("Argmax: dotTruth=%f energyTruth=%f", dotTruth, energyTruth)
		klog.Infof("Argmax: slack=%f score=%f", slack, ret.Score)
	}

	return ret
}
