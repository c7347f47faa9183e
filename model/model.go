// Package model implements structured-output learning over factor graphs.
//
// A FactorGraphModel maps the parameters of a set of registered factor types
// into one flat global weight vector, computes joint feature vectors
// psi(x, y) with the convention <w, psi(x, y)> = -E(x, y; w), and computes
// the loss-augmented argmax ("max-oracle") used by margin-based training
// algorithms such as the structured SVM:
//
//	argmax_y { delta(y_i, y) - E(x_i, y; w) + E(x_i, y_i; w) }
//
// Inference algorithms are external: they are registered per InferenceType
// with RegisterInferencer, and the model only orchestrates them.
//
// Error handling convention: invalid configuration (e.g. registering a factor
// type without parameters) is reported as an error; broken invariants and
// caller misuse (dimension mismatches, unknown type ids, inference mode
// incompatible with the graph structure) panic with a stack trace and can be
// intercepted with exceptions.TryFor.
// See package github.com/gomlx/exceptions.
package model

import (
	"slices"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"k8s.io/klog/v2"

	"github.com/gomlx/structured/fgraph"
)

// FactorGraphModel holds the factor-type registry and the bidirectional
// mapping between the per-type parameter vectors and the flat global weight
// vector exposed to outer learning algorithms.
//
// It is not safe for concurrent use: registry mutations and
// GlobalToFactorParams must be serialized relative to any Argmax or
// JointFeatureVector call on the same model.
type FactorGraphModel struct {
	samples *fgraph.Samples
	labels  *fgraph.Labels
	infType InferenceType

	factorTypes []fgraph.FactorType

	// wMap records, per global weight slot, the id of the factor type owning
	// it. Slots of one type are contiguous, in registration order.
	// Invariant: len(wMap) == len(wCache).
	wMap   []int
	wCache []float64
}

// New creates a model over the given samples and aligned ground-truth labels,
// configured to run MAP inference of the given type.
func New(samples *fgraph.Samples, labels *fgraph.Labels, infType InferenceType) *FactorGraphModel {
	return &FactorGraphModel{
		samples: samples,
		labels:  labels,
		infType: infType,
	}
}

// InferenceType returns the inference type the model was configured with.
func (m *FactorGraphModel) InferenceType() InferenceType { return m.infType }

// AddFactorType registers a factor type, appending its parameter slots at the
// end of the global weight vector and refreshing the cached global vector.
//
// It returns an error if the factor type has no parameters. Registering an id
// that is already present is a no-op, only logged as a warning: callers are
// allowed to idempotently re-register shared types.
func (m *FactorGraphModel) AddFactorType(ftype fgraph.FactorType) error {
	if ftype.Dim() <= 0 {
		return errors.Errorf("AddFactorType: factor type (id=%d) must have at least one parameter", ftype.TypeID())
	}

	id := ftype.TypeID()
	if m.GetFactorType(id) != nil {
		klog.Warningf("AddFactorType: factor type (id=%d) has already been added, ignoring", id)
		return nil
	}

	// New slots are appended at the end of the mapping.
	for i := 0; i < ftype.Dim(); i++ {
		m.wMap = append(m.wMap, id)
	}
	m.factorTypes = append(m.factorTypes, ftype)
	m.FactorParamsToGlobal()

	klog.V(2).Infof("AddFactorType(id=%d): wMap=%v", id, m.wMap)
	return nil
}

// DelFactorType removes the factor type with the given id, filtering its
// slots out of the global mapping while preserving the relative order of the
// remaining slots. It panics if the id is not registered.
func (m *FactorGraphModel) DelFactorType(typeID int) {
	wDim := 0
	for fi, ftype := range m.factorTypes {
		if ftype.TypeID() == typeID {
			wDim = ftype.Dim()
			m.factorTypes = slices.Delete(m.factorTypes, fi, fi+1)
			break
		}
	}
	if wDim == 0 {
		exceptions.Panicf("DelFactorType: factor type (id=%d) is not registered", typeID)
	}

	oldMap := m.wMap
	m.wMap = make([]int, 0, len(oldMap)-wDim)
	for _, id := range oldMap {
		if id != typeID {
			m.wMap = append(m.wMap, id)
		}
	}
	if len(m.wMap) != len(oldMap)-wDim {
		exceptions.Panicf("DelFactorType(id=%d): mapping shrank from %d to %d slots, want %d",
			typeID, len(oldMap), len(m.wMap), len(oldMap)-wDim)
	}
	m.FactorParamsToGlobal()
}

// GetFactorType returns the registered factor type with the given id, or nil
// if it is not registered.
func (m *FactorGraphModel) GetFactorType(typeID int) fgraph.FactorType {
	for _, ftype := range m.factorTypes {
		if ftype.TypeID() == typeID {
			return ftype
		}
	}
	return nil
}

// FactorTypes returns a snapshot of the registered factor types, in
// registration order.
func (m *FactorGraphModel) FactorTypes() []fgraph.FactorType {
	return slices.Clone(m.factorTypes)
}

// Dim returns the dimension of the global weight vector, the sum of the
// registered factor types' parameter counts.
func (m *FactorGraphModel) Dim() int { return len(m.wMap) }

// GlobalParamsMapping returns a copy of the full slot-to-type-id mapping, one
// entry per global weight slot.
func (m *FactorGraphModel) GlobalParamsMapping() []int { return slices.Clone(m.wMap) }

// ParamsMapping returns the ordered global weight slots owned by the factor
// type with the given id. Empty if the id is not registered.
func (m *FactorGraphModel) ParamsMapping(typeID int) []int {
	var slots []int
	for wi, id := range m.wMap {
		if id == typeID {
			slots = append(slots, wi)
		}
	}
	return slots
}

// FactorParamsToGlobal scatters every registered factor type's parameter
// vector into the cached global weight vector and returns it.
// The returned slice is owned by the model, don't modify it.
func (m *FactorGraphModel) FactorParamsToGlobal() []float64 {
	if len(m.wCache) != m.Dim() {
		m.wCache = make([]float64, m.Dim())
	}

	offset := 0
	for _, ftype := range m.factorTypes {
		fw := ftype.Params()
		fwMap := m.ParamsMapping(ftype.TypeID())
		if len(fwMap) != len(fw) {
			exceptions.Panicf("FactorParamsToGlobal: factor type (id=%d) has %d parameters but owns %d slots",
				ftype.TypeID(), len(fw), len(fwMap))
		}
		for wi, slot := range fwMap {
			m.wCache[slot] = fw[wi]
		}
		offset += ftype.Dim()
	}
	if offset != len(m.wCache) {
		exceptions.Panicf("FactorParamsToGlobal: collected %d parameters for a %d-dimensional global vector",
			offset, len(m.wCache))
	}
	return m.wCache
}

// GlobalToFactorParams gathers each factor type's slots out of w and pushes
// the values into the factor-type objects.
//
// If w is element-wise equal to the cached global vector the call is a no-op:
// propagating into every factor type is expensive and training loops call
// this redundantly every iteration. It panics if len(w) != Dim.
func (m *FactorGraphModel) GlobalToFactorParams(w []float64) {
	if floats.Equal(m.wCache, w) {
		return
	}
	klog.V(2).Infof("GlobalToFactorParams: updating cached global parameters")

	if len(w) != len(m.wCache) {
		exceptions.Panicf("GlobalToFactorParams: got %d weights, model dimension is %d", len(w), len(m.wCache))
	}
	copy(m.wCache, w)

	offset := 0
	for _, ftype := range m.factorTypes {
		fwMap := m.ParamsMapping(ftype.TypeID())
		fw := make([]float64, ftype.Dim())
		for wi, slot := range fwMap {
			fw[wi] = m.wCache[slot]
		}
		ftype.SetParams(fw)
		offset += ftype.Dim()
	}
	if offset != len(m.wCache) {
		exceptions.Panicf("GlobalToFactorParams: distributed %d parameters of a %d-dimensional global vector",
			offset, len(m.wCache))
	}
}

// DeltaLoss returns the weighted Hamming loss between two label assignments:
// the sum, over the positions where they disagree, of yTruth's per-variable
// loss weights. It panics if the assignments differ in length.
func (m *FactorGraphModel) DeltaLoss(yTruth, yPred *fgraph.Observation) float64 {
	sTruth, sPred := yTruth.States(), yPred.States()
	if len(sTruth) != len(sPred) {
		exceptions.Panicf("DeltaLoss: assignments differ in length, %d vs %d", len(sTruth), len(sPred))
	}

	loss := 0.0
	for si := range sPred {
		if sPred[si] != sTruth[si] {
			loss += yTruth.LossWeights()[si]
		}
	}
	return loss
}
