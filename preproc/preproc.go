// Package preproc implements simple dense-feature preprocessors applied to
// factor data vectors before they are attached to factors.
package preproc

import (
	"gonum.org/v1/gonum/floats"
)

// SumOne scales v in place so that its elements sum to 1. Vectors summing to
// zero are left untouched.
func SumOne(v []float64) {
	sum := floats.Sum(v)
	if sum == 0 {
		return
	}
	floats.Scale(1/sum, v)
}

// SumOneAll applies SumOne to every vector.
func SumOneAll(vectors [][]float64) {
	for _, v := range vectors {
		SumOne(v)
	}
}
