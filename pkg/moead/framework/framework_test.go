package framework

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func validProblem() *Problem {
	return &Problem{
		Name:          "quad",
		NumVariables:  3,
		NumObjectives: 2,
		XMin:          []float64{0, 0, 0},
		XMax:          []float64{1, 1, 1},
		Objective: func(x *mat.Dense) (*mat.Dense, error) {
			n, _ := x.Dims()
			y := mat.NewDense(n, 2, nil)
			for i := 0; i < n; i++ {
				y.Set(i, 0, x.At(i, 0))
				y.Set(i, 1, 1-x.At(i, 0))
			}
			return y, nil
		},
	}
}

func TestProblemValidate(t *testing.T) {
	require.NoError(t, validProblem().Validate())

	tests := []struct {
		name   string
		mutate func(*Problem)
	}{
		{"single objective", func(p *Problem) { p.NumObjectives = 1 }},
		{"no variables", func(p *Problem) { p.NumVariables = 0 }},
		{"nil objective", func(p *Problem) { p.Objective = nil }},
		{"bounds length", func(p *Problem) { p.XMin = []float64{0} }},
		{"inverted bounds", func(p *Problem) { p.XMin[1] = 2 }},
		{"negative epsilon", func(p *Problem) { p.Epsilon = -1e-3 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProblem()
			tt.mutate(p)
			err := p.Validate()
			require.Error(t, err)
			var cfgErr *ConfigError
			assert.True(t, errors.As(err, &cfgErr))
		})
	}
}

func TestProbeShapeMismatch(t *testing.T) {
	p := validProblem()
	p.Objective = func(x *mat.Dense) (*mat.Dense, error) {
		n, _ := x.Dims()
		return mat.NewDense(n, 3, nil), nil // declares 2 objectives
	}

	err := p.Probe()
	require.Error(t, err)
	var evalErr *EvalError
	require.True(t, errors.As(err, &evalErr))
	assert.Equal(t, "probe", evalErr.Op)
	assert.Equal(t, -1, evalErr.Generation)
}

func TestProbeCallableError(t *testing.T) {
	p := validProblem()
	boom := errors.New("boom")
	p.Objective = func(x *mat.Dense) (*mat.Dense, error) { return nil, boom }

	err := p.Probe()
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
}

func TestDominates(t *testing.T) {
	assert.True(t, Dominates([]float64{1, 2}, []float64{2, 2}))
	assert.False(t, Dominates([]float64{2, 2}, []float64{1, 2}))
	assert.False(t, Dominates([]float64{1, 2}, []float64{1, 2}))
	assert.False(t, Dominates([]float64{1, 3}, []float64{2, 2}))
}

func TestArchiveKeepsNonDominated(t *testing.T) {
	a := NewArchive()

	require.True(t, a.Add([]float64{0}, []float64{1, 4}, 0))
	require.True(t, a.Add([]float64{1}, []float64{4, 1}, 0))
	assert.Equal(t, 2, a.Size())

	// Dominated by the first entry.
	assert.False(t, a.Add([]float64{2}, []float64{2, 5}, 0))
	assert.Equal(t, 2, a.Size())

	// Dominates both existing entries.
	require.True(t, a.Add([]float64{3}, []float64{0.5, 0.5}, 0))
	assert.Equal(t, 1, a.Size())
	assert.Equal(t, ObjectiveSpacePoint{0.5, 0.5}, a.Front()[0])
}

func TestArchiveDedupesEqualPoints(t *testing.T) {
	a := NewArchive()
	require.True(t, a.Add([]float64{0}, []float64{1, 2}, 0))

	// The same objective vector resubmitted (e.g. by a converged population)
	// must not accumulate.
	assert.False(t, a.Add([]float64{1}, []float64{1, 2}, 0))
	assert.Equal(t, 1, a.Size())
}

func TestArchiveRejectsInfeasible(t *testing.T) {
	a := NewArchive()
	assert.False(t, a.Add([]float64{0}, []float64{0, 0}, 0.1))
	assert.Equal(t, 0, a.Size())
}

func TestArchiveCopiesEntries(t *testing.T) {
	a := NewArchive()
	x := []float64{1, 2}
	y := []float64{3, 4}
	a.Add(x, y, 0)

	x[0] = 99
	y[0] = 99
	e := a.Entries()[0]
	assert.Equal(t, []float64{1, 2}, e.X)
	assert.Equal(t, ObjectiveSpacePoint{3, 4}, e.Y)
}
