// Package update decides which incumbents a trial solution replaces. Rules
// scan the replacement scope in a freshly permuted order and apply the run's
// constraint handler to every comparison, so replacement and constraint
// handling can never disagree.
package update

import (
	"golang.org/x/exp/rand"

	"github.com/moead-go/moead/pkg/moead/constraints"
	"github.com/moead-go/moead/pkg/moead/framework"
)

// Context is the view a rule gets of one trial solution competing inside its
// replacement scope. Replace writes the trial into a population slot; the
// engine keeps single-writer discipline by processing subproblems
// sequentially.
type Context struct {
	// Subproblem is the index the trial was generated for.
	Subproblem int
	// Scope lists the candidate slots: the subproblem's neighborhood or the
	// whole population, per the generation's delta.p draw.
	Scope []int

	// TrialY and TrialV are the trial's objective vector and aggregate
	// violation.
	TrialY []float64
	TrialV float64

	// Fitness scalarizes an objective vector under slot j's weight vector.
	Fitness func(j int, y []float64) float64
	// IncumbentY and IncumbentV read the live population state.
	IncumbentY func(j int) []float64
	IncumbentV func(j int) float64
	// Replace installs the trial into slot j.
	Replace func(j int)

	Handler constraints.Handler
	Rng     *rand.Rand
}

// Rule applies a replacement policy and reports how many slots were replaced.
type Rule interface {
	Name() string
	Apply(ctx *Context) int
}

// Validate rejects rules with inconsistent parameters at setup.
func Validate(r Rule) error {
	switch rule := r.(type) {
	case Standard, Best:
		return nil
	case Restricted:
		if rule.Nr < 1 {
			return framework.Configf("update/restricted", "nr must be at least 1, got %d", rule.Nr)
		}
		return nil
	default:
		if r == nil {
			return framework.Configf("update", "rule is nil")
		}
		return nil
	}
}

// Standard replaces every scope incumbent the trial beats.
type Standard struct{}

func (Standard) Name() string { return "standard" }

func (Standard) Apply(ctx *Context) int {
	replaced := 0
	for _, j := range permuted(ctx) {
		if beats(ctx, j) {
			ctx.Replace(j)
			replaced++
		}
	}
	return replaced
}

// Restricted replaces at most Nr scope incumbents per trial, preserving
// population diversity by limiting how many subproblems one good offspring
// can overwrite.
type Restricted struct {
	Nr int
}

func (Restricted) Name() string { return "restricted" }

func (r Restricted) Apply(ctx *Context) int {
	replaced := 0
	for _, j := range permuted(ctx) {
		if replaced >= r.Nr {
			break
		}
		if beats(ctx, j) {
			ctx.Replace(j)
			replaced++
		}
	}
	return replaced
}

// Best replaces only the single scope incumbent whose scalar fitness improves
// most, if the trial beats any at all.
type Best struct{}

func (Best) Name() string { return "best" }

func (Best) Apply(ctx *Context) int {
	bestIdx := -1
	bestGain := 0.0
	for _, j := range permuted(ctx) {
		if !beats(ctx, j) {
			continue
		}
		gain := ctx.Fitness(j, ctx.IncumbentY(j)) - ctx.Fitness(j, ctx.TrialY)
		if bestIdx == -1 || gain > bestGain {
			bestIdx = j
			bestGain = gain
		}
	}
	if bestIdx == -1 {
		return 0
	}
	ctx.Replace(bestIdx)
	return 1
}

func permuted(ctx *Context) []int {
	order := make([]int, len(ctx.Scope))
	for k, p := range ctx.Rng.Perm(len(ctx.Scope)) {
		order[k] = ctx.Scope[p]
	}
	return order
}

func beats(ctx *Context, j int) bool {
	ft := ctx.Fitness(j, ctx.TrialY)
	fi := ctx.Fitness(j, ctx.IncumbentY(j))
	return ctx.Handler.Beats(ft, ctx.TrialV, fi, ctx.IncumbentV(j))
}
