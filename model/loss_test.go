package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomlx/structured/fgraph"
)

func TestDeltaLoss(t *testing.T) {
	m := New(nil, nil, TreeMaxProd)

	y1 := fgraph.NewObservation([]int{0, 1, 2, 1}, nil)
	y2 := fgraph.NewObservation([]int{0, 2, 2, 0}, nil)

	// Loss of an assignment against itself is zero.
	assert.Equal(t, 0.0, m.DeltaLoss(y1, y1))
	assert.Equal(t, 0.0, m.DeltaLoss(y2, y2))

	// With unit weights the loss is the Hamming distance, and symmetric.
	assert.Equal(t, 2.0, m.DeltaLoss(y1, y2))
	assert.Equal(t, 2.0, m.DeltaLoss(y2, y1))

	// Weighted: only the truth's weights count.
	weighted := fgraph.NewObservation([]int{0, 1, 2, 1}, []float64{10, 0.5, 10, 0.25})
	assert.InDelta(t, 0.75, m.DeltaLoss(weighted, y2), 1e-12)

	require.Panics(t, func() { m.DeltaLoss(y1, fgraph.NewObservation([]int{0, 1}, nil)) })
}
