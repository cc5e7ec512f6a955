// Package decomposition generates the weight vectors that split a
// multi-objective problem into scalar subproblems. Each generated row is a
// non-negative vector summing to 1; the row count becomes the population size
// for the whole run.
package decomposition

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/combin"

	"github.com/moead-go/moead/pkg/moead/framework"
)

// Decomposer produces an N x m weight matrix for an m-objective problem.
type Decomposer interface {
	Name() string
	Generate(m int, rng *rand.Rand) (*mat.Dense, error)
}

// SLD is the simplex-lattice design: all weight vectors whose components are
// multiples of 1/H, giving C(H+m-1, m-1) subproblems.
type SLD struct {
	// H is the number of divisions along each objective axis.
	H int
}

func (d SLD) Name() string { return "sld" }

func (d SLD) Generate(m int, _ *rand.Rand) (*mat.Dense, error) {
	if d.H < 1 {
		return nil, framework.Configf("decomposition/sld", "H must be at least 1, got %d", d.H)
	}
	if m < 2 {
		return nil, framework.Configf("decomposition/sld", "need at least 2 objectives, got %d", m)
	}

	n := combin.Binomial(d.H+m-1, m-1)
	w := mat.NewDense(n, m, nil)

	row := 0
	parts := make([]int, m)
	var emit func(pos, left int)
	emit = func(pos, left int) {
		if pos == m-1 {
			parts[pos] = left
			for j := 0; j < m; j++ {
				w.Set(row, j, float64(parts[j])/float64(d.H))
			}
			row++
			return
		}
		for k := left; k >= 0; k-- {
			parts[pos] = k
			emit(pos+1, left-k)
		}
	}
	emit(0, d.H)

	return w, nil
}

// Uniform samples N weight vectors uniformly from the unit simplex using
// normalized exponential spacings.
type Uniform struct {
	// N is the requested number of subproblems.
	N int
}

func (d Uniform) Name() string { return "uniform" }

func (d Uniform) Generate(m int, rng *rand.Rand) (*mat.Dense, error) {
	if d.N < 1 {
		return nil, framework.Configf("decomposition/uniform", "N must be at least 1, got %d", d.N)
	}
	if m < 2 {
		return nil, framework.Configf("decomposition/uniform", "need at least 2 objectives, got %d", m)
	}
	if rng == nil {
		return nil, framework.Configf("decomposition/uniform", "random source is nil")
	}

	w := mat.NewDense(d.N, m, nil)
	for i := 0; i < d.N; i++ {
		row := w.RawRowView(i)
		sum := 0.0
		for sum == 0 {
			// -log(U) is Exp(1); normalizing exponentials yields a uniform
			// draw from the simplex. An all-zero row (every uniform landed
			// exactly on 0) would normalize to NaN, so it is redrawn.
			sum = 0
			for j := 0; j < m; j++ {
				row[j] = -math.Log(1 - rng.Float64())
				sum += row[j]
			}
		}
		for j := 0; j < m; j++ {
			row[j] /= sum
		}
	}
	return w, nil
}
