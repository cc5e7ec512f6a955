package constraints

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestFromRawFeasiblePointHasZeroViolation(t *testing.T) {
	// Two inequality constraints satisfied, one equality within epsilon.
	c := mat.NewDense(1, 3, []float64{-1, 0, 1e-7})
	ce := FromRaw(c, 2, 1e-6)

	require.Len(t, ce.Total, 1)
	assert.Equal(t, 0.0, ce.Total[0])
}

func TestFromRawViolationFormula(t *testing.T) {
	// g1 = 0.5 violated by 0.5, g2 satisfied, h = -2 violated by |h|-eps = 1.9.
	c := mat.NewDense(1, 3, []float64{0.5, -3, -2})
	ce := FromRaw(c, 2, 0.1)

	assert.InDelta(t, 0.5, ce.V.At(0, 0), 1e-12)
	assert.Equal(t, 0.0, ce.V.At(0, 1))
	assert.InDelta(t, 1.9, ce.V.At(0, 2), 1e-12)
	assert.InDelta(t, 2.4, ce.Total[0], 1e-12)
}

func TestFromRawBatch(t *testing.T) {
	c := mat.NewDense(3, 1, []float64{-1, 0, 2})
	ce := FromRaw(c, 1, 0)

	assert.Equal(t, []float64{0, 0, 2}, ce.Total)
	require.NoError(t, ce.CheckShape(3))
	require.Error(t, ce.CheckShape(2))
}

func TestViolationRanking(t *testing.T) {
	h := ViolationRanking{}

	// Both feasible: fitness decides.
	assert.True(t, h.Beats(1, 0, 2, 0))
	assert.False(t, h.Beats(2, 0, 1, 0))
	assert.False(t, h.Beats(1, 0, 1, 0)) // ties keep the incumbent

	// Exactly one feasible: it wins regardless of fitness.
	assert.True(t, h.Beats(100, 0, 1, 0.5))
	assert.False(t, h.Beats(1, 0.5, 100, 0))

	// Both infeasible: lower violation wins.
	assert.True(t, h.Beats(100, 0.1, 1, 0.5))
	assert.False(t, h.Beats(1, 0.5, 100, 0.1))
}

func TestPenalty(t *testing.T) {
	h := Penalty{Beta: 10}

	assert.True(t, h.Beats(1, 0, 2, 0))
	// Penalized fitness: 1 + 10*0.3 = 4 vs 2 + 10*0.1 = 3.
	assert.False(t, h.Beats(1, 0.3, 2, 0.1))
	assert.True(t, h.Beats(1, 0.05, 2, 0.1))
}
