package framework

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ObjectiveFunc evaluates a batch of candidate solutions. The input is an
// N x n_variables matrix with one candidate per row; the output must be an
// N x m matrix of objective values. The engine always evaluates whole batches,
// never individual rows. Inputs are not guaranteed to lie within the box
// bounds unless the variation stack ends with a truncation operator.
type ObjectiveFunc func(x *mat.Dense) (*mat.Dense, error)

// ConstraintFunc evaluates the constraints of a batch of candidate solutions.
// epsilon is the tolerance applied to equality constraints.
type ConstraintFunc func(x *mat.Dense, epsilon float64) (*ConstraintEval, error)

// ConstraintEval carries the raw constraint values, the per-constraint
// violations and the aggregate violation per candidate.
type ConstraintEval struct {
	// C holds raw constraint function values, N x (ng+nh).
	C *mat.Dense
	// V holds per-constraint violations, same shape as C.
	V *mat.Dense
	// Total holds the row sums of V, one entry per candidate. A candidate is
	// feasible exactly when its entry is 0.
	Total []float64
}

// ObjectiveSpacePoint represents an N-dimensional point in the objective space.
// As an example, for a problem with 2 objective functions f1 and f2, a point
// in the objective space could be [f1(x'), f2(x')], for the input of x'.
type ObjectiveSpacePoint []float64

// Problem is the immutable descriptor of a multi-objective problem. Objective
// and Constraint are externally supplied black-box callables.
type Problem struct {
	Name          string
	NumVariables  int
	NumObjectives int

	// XMin and XMax are the box bounds, used for initialization and by the
	// truncation operator. They are not enforced anywhere else.
	XMin []float64
	XMax []float64

	Objective  ObjectiveFunc
	Constraint ConstraintFunc // nil for unconstrained problems
	Epsilon    float64        // equality constraint tolerance
}

// Validate checks the static invariants of the descriptor.
func (p *Problem) Validate() error {
	if p.NumObjectives < 2 {
		return Configf("problem", "need at least 2 objectives, got %d", p.NumObjectives)
	}
	if p.NumVariables < 1 {
		return Configf("problem", "need at least 1 decision variable, got %d", p.NumVariables)
	}
	if p.Objective == nil {
		return Configf("problem", "objective callable is nil")
	}
	if len(p.XMin) != p.NumVariables || len(p.XMax) != p.NumVariables {
		return Configf("problem", "bounds length %d/%d does not match %d variables",
			len(p.XMin), len(p.XMax), p.NumVariables)
	}
	for i := range p.XMin {
		if p.XMin[i] > p.XMax[i] {
			return Configf("problem", "xmin[%d]=%v exceeds xmax[%d]=%v", i, p.XMin[i], i, p.XMax[i])
		}
	}
	if p.Epsilon < 0 {
		return Configf("problem", "epsilon must be non-negative, got %v", p.Epsilon)
	}
	return nil
}

// Probe runs a single-candidate evaluation to verify that the callables
// honour the declared shapes. Called once at setup; the candidate is the
// midpoint of the box bounds. The probe checks a fixed input and is not part
// of the search, so callers do not count it toward evaluation budgets.
func (p *Problem) Probe() error {
	x := mat.NewDense(1, p.NumVariables, nil)
	for j := 0; j < p.NumVariables; j++ {
		x.Set(0, j, 0.5*(p.XMin[j]+p.XMax[j]))
	}

	y, err := p.Objective(x)
	if err != nil {
		return &EvalError{Op: "probe", Generation: -1, Err: err}
	}
	r, c := y.Dims()
	if r != 1 || c != p.NumObjectives {
		return &EvalError{Op: "probe", Generation: -1,
			Err: fmt.Errorf("objective returned %dx%d, want 1x%d", r, c, p.NumObjectives)}
	}

	if p.Constraint != nil {
		ce, err := p.Constraint(x, p.Epsilon)
		if err != nil {
			return &EvalError{Op: "probe", Generation: -1, Err: err}
		}
		if err := ce.check(1); err != nil {
			return &EvalError{Op: "probe", Generation: -1, Err: err}
		}
	}
	return nil
}

// check verifies the internal shape consistency of a constraint evaluation
// for a batch of n candidates.
func (ce *ConstraintEval) check(n int) error {
	if ce == nil || ce.C == nil || ce.V == nil {
		return fmt.Errorf("constraint callable returned incomplete result")
	}
	cr, cc := ce.C.Dims()
	vr, vc := ce.V.Dims()
	if cr != n || vr != n || cc != vc {
		return fmt.Errorf("constraint shapes %dx%d/%dx%d inconsistent for batch of %d", cr, cc, vr, vc, n)
	}
	if len(ce.Total) != n {
		return fmt.Errorf("constraint total has %d entries, want %d", len(ce.Total), n)
	}
	return nil
}

// CheckShape exposes the batch shape validation for use by the engine.
func (ce *ConstraintEval) CheckShape(n int) error { return ce.check(n) }
