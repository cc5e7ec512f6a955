package benchmarks

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestZDT1KnownValues(t *testing.T) {
	p := NewZDT1(3).Problem()
	require.NoError(t, p.Validate())

	// At x = (0.5, 0, 0): g = 1, f1 = 0.5, f2 = 1 - sqrt(0.5).
	x := mat.NewDense(2, 3, []float64{
		0.5, 0, 0,
		0, 1, 1,
	})
	y, err := p.Objective(x)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, y.At(0, 0), 1e-12)
	assert.InDelta(t, 1-math.Sqrt(0.5), y.At(0, 1), 1e-12)

	// At x = (0, 1, 1): g = 10, f1 = 0, f2 = 10.
	assert.InDelta(t, 0.0, y.At(1, 0), 1e-12)
	assert.InDelta(t, 10.0, y.At(1, 1), 1e-12)
}

func TestZDT1TrueFrontEndpoints(t *testing.T) {
	front := NewZDT1(10).TrueParetoFront(11)
	require.Len(t, front, 11)
	assert.Equal(t, 0.0, front[0][0])
	assert.Equal(t, 1.0, front[0][1])
	assert.Equal(t, 1.0, front[10][0])
	assert.InDelta(t, 0.0, front[10][1], 1e-12)
}

func TestDTLZ2OnSphere(t *testing.T) {
	p := NewDTLZ2(12, 3).Problem()
	require.NoError(t, p.Validate())

	// With all distance variables at 0.5, g = 0 and the objective vector lies
	// on the unit sphere.
	x := mat.NewDense(1, 12, nil)
	row := x.RawRowView(0)
	for j := range row {
		row[j] = 0.5
	}
	y, err := p.Objective(x)
	require.NoError(t, err)

	sum := 0.0
	for j := 0; j < 3; j++ {
		sum += y.At(0, j) * y.At(0, j)
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestDTLZ2TrueFront(t *testing.T) {
	assert.Nil(t, NewDTLZ2(12, 3).TrueParetoFront(10))

	front := NewDTLZ2(11, 2).TrueParetoFront(5)
	require.Len(t, front, 5)
	for _, pt := range front {
		assert.InDelta(t, 1.0, pt[0]*pt[0]+pt[1]*pt[1], 1e-12)
	}
}

func TestBinhKornConstraints(t *testing.T) {
	p := NewBinhKorn().Problem()
	require.NoError(t, p.Validate())

	// (0,0) sits exactly on the g1 boundary (g1 = 0) and satisfies g2.
	x := mat.NewDense(2, 2, []float64{
		0, 0,
		5, 3,
	})
	ce, err := p.Constraint(x, 0)
	require.NoError(t, err)
	require.NoError(t, ce.CheckShape(2))

	assert.Equal(t, 0.0, ce.Total[0])
	// (5,3): g1 = 0 + 9 - 25 < 0 ok; g2 = 7.7 - 9 - 36 < 0 ok.
	assert.Equal(t, 0.0, ce.Total[1])

	y, err := p.Objective(x)
	require.NoError(t, err)
	assert.Equal(t, 0.0, y.At(0, 0))
	assert.Equal(t, 50.0, y.At(0, 1))
	assert.Equal(t, 136.0, y.At(1, 0))
	assert.Equal(t, 4.0, y.At(1, 1))
}

func TestBinhKornInfeasiblePoint(t *testing.T) {
	p := NewBinhKorn().Problem()

	// (0,3): g1 = 25 + 9 - 25 = 9 > 0, so the point is infeasible by 9.
	x := mat.NewDense(1, 2, []float64{0, 3})
	ce, err := p.Constraint(x, 0)
	require.NoError(t, err)
	assert.InDelta(t, 9.0, ce.Total[0], 1e-12)
}
