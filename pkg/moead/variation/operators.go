package variation

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/moead-go/moead/pkg/moead/framework"
)

// SBX performs simulated binary crossover between each trial row and a mate
// drawn from the subproblem's scope. With probability PC the row is crossed;
// the spread factor uses distribution index EtaX.
type SBX struct {
	EtaX float64
	PC   float64
}

func (SBX) Name() string { return "sbx" }

func (op SBX) Apply(ctx *Context, trial *mat.Dense) (*mat.Dense, error) {
	if op.PC < 0 || op.PC > 1 {
		return nil, framework.Configf("variation/sbx", "PC=%v outside [0,1]", op.PC)
	}
	if op.EtaX <= 0 {
		return nil, framework.Configf("variation/sbx", "EtaX must be positive, got %v", op.EtaX)
	}

	n, nv := trial.Dims()
	exp := 1.0 / (op.EtaX + 1.0)
	for i := 0; i < n; i++ {
		if ctx.Rng.Float64() >= op.PC {
			continue
		}
		mate := ctx.Pop.RawRowView(pickMate(ctx, i))
		row := trial.RawRowView(i)
		for j := 0; j < nv; j++ {
			beta := 0.0
			if u := ctx.Rng.Float64(); u <= 0.5 {
				beta = math.Pow(2*u, exp)
			} else {
				beta = math.Pow(1.0/(2*(1.0-u)), exp)
			}
			row[j] = 0.5 * ((1+beta)*row[j] + (1-beta)*mate[j])
		}
	}
	return trial, nil
}

// pickMate draws a scope member different from i when the scope offers one.
func pickMate(ctx *Context, i int) int {
	scope := ctx.Scope(i)
	if len(scope) == 1 {
		return scope[0]
	}
	for {
		k := scope[ctx.Rng.Intn(len(scope))]
		if k != i {
			return k
		}
	}
}

// PolynomialMutation perturbs each gene with probability PM using the
// polynomial distribution with index EtaM, scaled by the variable's range.
type PolynomialMutation struct {
	EtaM float64
	PM   float64
}

func (PolynomialMutation) Name() string { return "polymut" }

func (op PolynomialMutation) Apply(ctx *Context, trial *mat.Dense) (*mat.Dense, error) {
	if op.PM < 0 || op.PM > 1 {
		return nil, framework.Configf("variation/polymut", "PM=%v outside [0,1]", op.PM)
	}
	if op.EtaM <= 0 {
		return nil, framework.Configf("variation/polymut", "EtaM must be positive, got %v", op.EtaM)
	}

	n, nv := trial.Dims()
	exp := 1.0 / (op.EtaM + 1.0)
	for i := 0; i < n; i++ {
		row := trial.RawRowView(i)
		for j := 0; j < nv; j++ {
			if ctx.Rng.Float64() >= op.PM {
				continue
			}
			delta := 0.0
			if u := ctx.Rng.Float64(); u <= 0.5 {
				delta = math.Pow(2*u, exp) - 1
			} else {
				delta = 1 - math.Pow(2*(1-u), exp)
			}
			row[j] += delta * (ctx.XMax[j] - ctx.XMin[j])
		}
	}
	return trial, nil
}

// Differential mutation basis selection.
const (
	// BasisRand draws the basis vector uniformly from the scope.
	BasisRand = "rand"
	// BasisNeighbor uses the incumbent of the closest scope member other
	// than the subproblem itself as basis.
	BasisNeighbor = "neighbor"
)

// DifferentialMutation sets each trial row to basis + Phi*(x_r2 - x_r3) with
// r2, r3 drawn from the subproblem's scope. A NaN Phi samples a fresh scale
// factor from U(0,1) per row.
type DifferentialMutation struct {
	Basis string
	Phi   float64
}

func (DifferentialMutation) Name() string { return "diffmut" }

func (op DifferentialMutation) Apply(ctx *Context, trial *mat.Dense) (*mat.Dense, error) {
	if op.Basis != BasisRand && op.Basis != BasisNeighbor {
		return nil, framework.Configf("variation/diffmut", "unknown basis %q", op.Basis)
	}

	n, nv := trial.Dims()
	for i := 0; i < n; i++ {
		scope := ctx.Scope(i)
		if len(scope) < 3 {
			// Too few distinct donors for a difference vector; leave the row.
			continue
		}

		perm := ctx.Rng.Perm(len(scope))
		var basis []float64
		if op.Basis == BasisRand {
			basis = ctx.Pop.RawRowView(scope[perm[0]])
		} else {
			basis = ctx.Pop.RawRowView(nearestOther(scope, i))
		}
		r2 := ctx.Pop.RawRowView(scope[perm[1]])
		r3 := ctx.Pop.RawRowView(scope[perm[2]])

		phi := op.Phi
		if math.IsNaN(phi) {
			phi = ctx.Rng.Float64()
		}

		row := trial.RawRowView(i)
		for j := 0; j < nv; j++ {
			row[j] = basis[j] + phi*(r2[j]-r3[j])
		}
	}
	return trial, nil
}

// nearestOther returns the first scope entry that is not i. Scope rows are
// ordered by distance, so this is the closest true neighbor.
func nearestOther(scope []int, i int) int {
	for _, k := range scope {
		if k != i {
			return k
		}
	}
	return scope[0]
}

// BinomialRecombination keeps each gene of the current stage with probability
// Rho and reverts it to the incumbent gene otherwise. No gene is forced, so
// two stacked operators with rates r1 and r2 behave like one with rate r1*r2.
type BinomialRecombination struct {
	Rho float64
}

func (BinomialRecombination) Name() string { return "recbin" }

func (op BinomialRecombination) Apply(ctx *Context, trial *mat.Dense) (*mat.Dense, error) {
	if op.Rho < 0 || op.Rho > 1 {
		return nil, framework.Configf("variation/recbin", "rho=%v outside [0,1]", op.Rho)
	}

	n, nv := trial.Dims()
	for i := 0; i < n; i++ {
		row := trial.RawRowView(i)
		inc := ctx.Pop.RawRowView(i)
		for j := 0; j < nv; j++ {
			if ctx.Rng.Float64() >= op.Rho {
				row[j] = inc[j]
			}
		}
	}
	return trial, nil
}

// LocalSearch blends each trial row toward the incumbent that best solves the
// row's scalar subproblem, with per-subproblem probability Gamma and a random
// step length. Requires the engine-provided BestNeighbor hook; without it the
// operator passes rows through unchanged.
type LocalSearch struct {
	Gamma float64
}

func (LocalSearch) Name() string { return "localsearch" }

func (op LocalSearch) Apply(ctx *Context, trial *mat.Dense) (*mat.Dense, error) {
	if op.Gamma < 0 || op.Gamma > 1 {
		return nil, framework.Configf("variation/localsearch", "gamma=%v outside [0,1]", op.Gamma)
	}
	if ctx.BestNeighbor == nil {
		return trial, nil
	}

	n, nv := trial.Dims()
	for i := 0; i < n; i++ {
		if ctx.Rng.Float64() >= op.Gamma {
			continue
		}
		target := ctx.BestNeighbor(i)
		step := ctx.Rng.Float64()
		row := trial.RawRowView(i)
		for j := 0; j < nv; j++ {
			row[j] += step * (target[j] - row[j])
		}
	}
	return trial, nil
}

// Truncate clamps every gene into the box bounds. It is conventionally the
// last operator of a stack.
type Truncate struct{}

func (Truncate) Name() string { return "truncate" }

func (Truncate) Apply(ctx *Context, trial *mat.Dense) (*mat.Dense, error) {
	n, nv := trial.Dims()
	for i := 0; i < n; i++ {
		row := trial.RawRowView(i)
		for j := 0; j < nv; j++ {
			row[j] = math.Max(ctx.XMin[j], math.Min(ctx.XMax[j], row[j]))
		}
	}
	return trial, nil
}
