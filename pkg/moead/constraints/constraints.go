// Package constraints computes feasibility violations and decides which of
// two competing solutions wins once constraints are involved. The same
// handler is invoked for every trial-versus-incumbent comparison inside the
// update rules.
package constraints

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/moead-go/moead/pkg/moead/framework"
)

// Handler decides whether a trial solution with fitness fa and violation va
// beats an incumbent with fitness fb and violation vb. Fitness values are
// scalarized (lower is better); violations are aggregate per-solution totals.
type Handler interface {
	Name() string
	Beats(fa, va, fb, vb float64) bool
}

// ViolationRanking implements constraint-dominance: feasibility first, then
// fitness among feasible pairs, then total violation among infeasible pairs.
type ViolationRanking struct{}

func (ViolationRanking) Name() string { return "vbr" }

func (ViolationRanking) Beats(fa, va, fb, vb float64) bool {
	switch {
	case va == 0 && vb == 0:
		return fa < fb
	case va == 0:
		return true
	case vb == 0:
		return false
	default:
		return va < vb
	}
}

// Penalty compares penalized fitness values f + Beta*v directly.
type Penalty struct {
	Beta float64
}

func (Penalty) Name() string { return "penalty" }

func (h Penalty) Beats(fa, va, fb, vb float64) bool {
	return fa+h.Beta*va < fb+h.Beta*vb
}

// FromRaw converts a raw N x (ng+nh) constraint matrix into a full
// evaluation. The first ng columns are inequality constraints g(x) <= 0 with
// violation max(g, 0); the remaining columns are equality constraints
// h(x) = 0 with violation max(|h| - epsilon, 0).
func FromRaw(c *mat.Dense, ng int, epsilon float64) *framework.ConstraintEval {
	n, cols := c.Dims()
	v := mat.NewDense(n, cols, nil)
	total := make([]float64, n)

	for i := 0; i < n; i++ {
		for j := 0; j < cols; j++ {
			var viol float64
			if j < ng {
				viol = math.Max(c.At(i, j), 0)
			} else {
				viol = math.Max(math.Abs(c.At(i, j))-epsilon, 0)
			}
			v.Set(i, j, viol)
			total[i] += viol
		}
	}

	return &framework.ConstraintEval{C: c, V: v, Total: total}
}
