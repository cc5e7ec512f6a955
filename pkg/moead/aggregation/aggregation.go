// Package aggregation provides the scalarization functions that turn an
// objective vector into a single subproblem fitness. Lower values are better.
package aggregation

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// weightFloor guards divisions and projections against zero weights; lattice
// boundary vectors legitimately contain exact zeros.
const weightFloor = 1e-12

// Aggregator maps an objective vector y, a weight vector w and the reference
// point z to a scalar fitness.
type Aggregator interface {
	Name() string
	Scalarize(y, w, z []float64) float64
}

// WeightedSum is the linear scalarization sum_i w_i * (y_i - z_i).
type WeightedSum struct{}

func (WeightedSum) Name() string { return "ws" }

func (WeightedSum) Scalarize(y, w, z []float64) float64 {
	s := 0.0
	for i := range y {
		s += w[i] * (y[i] - z[i])
	}
	return s
}

// Tchebycheff is the weighted Tchebycheff scalarization
// max_i( w_i * |y_i - z_i| ).
type Tchebycheff struct{}

func (Tchebycheff) Name() string { return "wt" }

func (Tchebycheff) Scalarize(y, w, z []float64) float64 {
	best := math.Inf(-1)
	for i := range y {
		if v := w[i] * math.Abs(y[i]-z[i]); v > best {
			best = v
		}
	}
	return best
}

// AWT is the adjusted weighted Tchebycheff scalarization
// max_i( |y_i - z_i| / w_i ), which keeps boundary weight vectors from
// collapsing whole objectives. Zero weights are floored.
type AWT struct{}

func (AWT) Name() string { return "awt" }

func (AWT) Scalarize(y, w, z []float64) float64 {
	best := math.Inf(-1)
	for i := range y {
		wi := w[i]
		if wi < weightFloor {
			wi = weightFloor
		}
		if v := math.Abs(y[i]-z[i]) / wi; v > best {
			best = v
		}
	}
	return best
}

// PBI is the penalty-based boundary intersection scalarization: the
// projection distance of y-z along w plus the perpendicular distance
// penalized by Theta.
type PBI struct {
	Theta float64
}

func (PBI) Name() string { return "pbi" }

func (a PBI) Scalarize(y, w, z []float64) float64 {
	norm := floats.Norm(w, 2)
	if norm < weightFloor {
		norm = weightFloor
	}

	d1 := 0.0
	for i := range y {
		d1 += (y[i] - z[i]) * w[i]
	}
	d1 = math.Abs(d1) / norm

	d2sq := 0.0
	for i := range y {
		perp := (y[i] - z[i]) - d1*w[i]/norm
		d2sq += perp * perp
	}

	return d1 + a.Theta*math.Sqrt(d2sq)
}
