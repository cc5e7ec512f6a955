package aggregation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeightedSum(t *testing.T) {
	f := WeightedSum{}.Scalarize([]float64{3, 5}, []float64{0.25, 0.75}, []float64{1, 1})
	assert.InDelta(t, 0.25*2+0.75*4, f, 1e-12)
}

func TestTchebycheff(t *testing.T) {
	y := []float64{3, 5}
	w := []float64{0.5, 0.5}
	z := []float64{1, 1}
	assert.InDelta(t, 2.0, Tchebycheff{}.Scalarize(y, w, z), 1e-12)

	// A zero weight simply silences its objective.
	f := Tchebycheff{}.Scalarize(y, []float64{0, 1}, z)
	assert.InDelta(t, 4.0, f, 1e-12)
}

func TestAWTGuardsZeroWeights(t *testing.T) {
	f := AWT{}.Scalarize([]float64{2, 3}, []float64{0, 1}, []float64{0, 0})
	assert.False(t, math.IsNaN(f))
	assert.False(t, math.IsInf(f, 0))
	// The floored zero weight dominates.
	assert.Greater(t, f, 1e10)

	f = AWT{}.Scalarize([]float64{2, 3}, []float64{0.5, 0.5}, []float64{0, 0})
	assert.InDelta(t, 6.0, f, 1e-12)
}

func TestPBI(t *testing.T) {
	// With w along the first axis, d1 is the first coordinate and d2 the second.
	f := PBI{Theta: 5}.Scalarize([]float64{3, 4}, []float64{1, 0}, []float64{0, 0})
	assert.InDelta(t, 3+5*4, f, 1e-9)

	// Theta = 0 reduces to the projection distance.
	f = PBI{Theta: 0}.Scalarize([]float64{3, 4}, []float64{1, 0}, []float64{0, 0})
	assert.InDelta(t, 3, f, 1e-9)
}

func TestPBIDegenerateWeight(t *testing.T) {
	f := PBI{Theta: 5}.Scalarize([]float64{1, 1}, []float64{0, 0}, []float64{0, 0})
	assert.False(t, math.IsNaN(f))
	assert.False(t, math.IsInf(f, 0))
}

func TestLowerIsBetterOrdering(t *testing.T) {
	w := []float64{0.5, 0.5}
	z := []float64{0, 0}
	for _, agg := range []Aggregator{WeightedSum{}, Tchebycheff{}, AWT{}, PBI{Theta: 5}} {
		closer := agg.Scalarize([]float64{1, 1}, w, z)
		farther := agg.Scalarize([]float64{2, 2}, w, z)
		assert.Less(t, closer, farther, agg.Name())
	}
}
