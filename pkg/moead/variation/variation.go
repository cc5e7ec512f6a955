// Package variation implements the stochastic operator stack that transforms
// the current population into trial offspring, one per subproblem. Operators
// compose strictly left-to-right; each consumes the previous stage's output.
// The final operator is conventionally Truncate so that offspring respect the
// box bounds before evaluation.
package variation

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/moead-go/moead/pkg/moead/framework"
)

// Context carries everything an operator may consume for one generation.
// Pop is the incumbent population and is never written by operators; all
// randomness is drawn from Rng so that a single seed reproduces the run.
type Context struct {
	Rng  *rand.Rand
	XMin []float64
	XMax []float64

	// Pop is the incumbent population, N x n_variables, read-only.
	Pop *mat.Dense

	// Scope returns the mating pool indices for subproblem i: its
	// neighborhood row or the whole population, as sampled by the engine.
	Scope func(i int) []int

	// BestNeighbor returns the incumbent decision vector of the scope member
	// that best solves subproblem i's scalar subproblem. Nil when the engine
	// does not provide it; LocalSearch is then a no-op.
	BestNeighbor func(i int) []float64
}

// Operator transforms the stage output for the whole batch of subproblems.
// Implementations must only read Pop and must return trial itself (modified
// in place) or a fresh matrix of the same shape.
type Operator interface {
	Name() string
	Apply(ctx *Context, trial *mat.Dense) (*mat.Dense, error)
}

// Stack is an ordered operator pipeline.
type Stack struct {
	ops []Operator
}

// NewStack validates and assembles the pipeline.
func NewStack(ops ...Operator) (*Stack, error) {
	if len(ops) == 0 {
		return nil, framework.Configf("variation", "operator stack is empty")
	}
	for _, op := range ops {
		if op == nil {
			return nil, framework.Configf("variation", "operator stack contains a nil operator")
		}
	}
	return &Stack{ops: ops}, nil
}

// Operators returns the pipeline in application order.
func (s *Stack) Operators() []Operator { return s.ops }

// Apply seeds the trial matrix with a copy of the incumbent population and
// runs every operator in order.
func (s *Stack) Apply(ctx *Context) (*mat.Dense, error) {
	if ctx == nil || ctx.Pop == nil || ctx.Rng == nil || ctx.Scope == nil {
		return nil, framework.Configf("variation", "incomplete context")
	}

	trial := mat.DenseCopyOf(ctx.Pop)
	var err error
	for _, op := range s.ops {
		trial, err = op.Apply(ctx, trial)
		if err != nil {
			return nil, err
		}
	}
	return trial, nil
}
