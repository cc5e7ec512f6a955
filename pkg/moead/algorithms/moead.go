package algorithms

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"k8s.io/klog/v2"

	"github.com/moead-go/moead/pkg/moead/aggregation"
	"github.com/moead-go/moead/pkg/moead/constraints"
	"github.com/moead-go/moead/pkg/moead/decomposition"
	"github.com/moead-go/moead/pkg/moead/framework"
	"github.com/moead-go/moead/pkg/moead/neighborhood"
	"github.com/moead-go/moead/pkg/moead/scaling"
	"github.com/moead-go/moead/pkg/moead/update"
	"github.com/moead-go/moead/pkg/moead/variation"
)

const (
	Name = "MOEA/D"
)

// Config assembles the components of a MOEA/D run. At least one of
// MaxEvaluations, MaxGenerations, MaxNoImprove or Target must be set; the
// criteria are OR-combined and checked only at generation boundaries.
type Config struct {
	Decomposer   decomposition.Decomposer
	Neighborhood neighborhood.Builder
	Aggregator   aggregation.Aggregator
	Variation    *variation.Stack
	Constraints  constraints.Handler
	Update       update.Rule

	// Scaling rescales objective vectors before every scalarization; nil
	// means no scaling.
	Scaling scaling.Scaler

	// Tr caps the replacement scope to the Tr nearest neighbors whenever the
	// delta.p draw selected the neighborhood; 0 keeps the replacement scope
	// equal to the mating scope.
	Tr int

	MaxEvaluations int
	MaxGenerations int
	MaxNoImprove   int
	// Target stops the run once the best scalarized fitness in the
	// population drops to the value or below.
	Target *float64

	// Seed deterministically derives every random draw of the run:
	// decomposition sampling, initialization, scope selection, variation and
	// update permutations.
	Seed uint64

	// WithArchive maintains an unbounded archive of all non-dominated
	// feasible solutions seen, independent of population replacement.
	WithArchive bool
}

// MOEAD is the decomposition-based evolutionary engine: it splits the problem
// into scalar subproblems via weight vectors, evolves one incumbent per
// subproblem and restricts mating and replacement to subproblem
// neighborhoods.
type MOEAD struct {
	cfg     Config
	problem *framework.Problem
}

// NewMOEAD validates the configuration against the problem descriptor.
func NewMOEAD(cfg Config, problem *framework.Problem) (*MOEAD, error) {
	if problem == nil {
		return nil, framework.Configf("moead", "problem is nil")
	}
	if err := problem.Validate(); err != nil {
		return nil, err
	}
	if cfg.Decomposer == nil {
		return nil, framework.Configf("moead", "decomposer is nil")
	}
	if cfg.Neighborhood == nil {
		return nil, framework.Configf("moead", "neighborhood builder is nil")
	}
	if cfg.Aggregator == nil {
		return nil, framework.Configf("moead", "aggregator is nil")
	}
	if cfg.Variation == nil {
		return nil, framework.Configf("moead", "variation stack is nil")
	}
	if cfg.Constraints == nil {
		return nil, framework.Configf("moead", "constraint handler is nil")
	}
	if err := update.Validate(cfg.Update); err != nil {
		return nil, err
	}
	if cfg.Tr < 0 {
		return nil, framework.Configf("moead", "Tr must be non-negative, got %d", cfg.Tr)
	}
	if cfg.MaxEvaluations <= 0 && cfg.MaxGenerations <= 0 && cfg.MaxNoImprove <= 0 && cfg.Target == nil {
		return nil, framework.Configf("moead", "no stop criterion configured")
	}
	return &MOEAD{cfg: cfg, problem: problem}, nil
}

func (m *MOEAD) Name() string { return Name }

// Run executes the generational loop until a stop criterion fires. The
// context is honoured only at generation boundaries; there is no cancellation
// mid-generation.
func (m *MOEAD) Run(ctx context.Context) (*framework.Result, error) {
	logger := klog.FromContext(ctx).WithValues("algorithm", Name, "problem", m.problem.Name)
	rng := rand.New(rand.NewSource(m.cfg.Seed))
	p := m.problem

	weights, err := m.cfg.Decomposer.Generate(p.NumObjectives, rng)
	if err != nil {
		return nil, err
	}
	n, _ := weights.Dims()

	// The probe validates callable shapes on a fixed input; it does not count
	// toward the evaluation budget.
	if err := p.Probe(); err != nil {
		return nil, err
	}

	logger.Info("starting evolution",
		"subproblems", n,
		"variables", p.NumVariables,
		"objectives", p.NumObjectives,
		"decomposition", m.cfg.Decomposer.Name(),
		"neighborhood", m.cfg.Neighborhood.Name(),
		"aggregation", m.cfg.Aggregator.Name(),
		"update", m.cfg.Update.Name(),
		"seed", m.cfg.Seed)

	// Initialize the population uniformly at random within the box bounds.
	x := mat.NewDense(n, p.NumVariables, nil)
	for i := 0; i < n; i++ {
		row := x.RawRowView(i)
		for j := 0; j < p.NumVariables; j++ {
			row[j] = p.XMin[j] + rng.Float64()*(p.XMax[j]-p.XMin[j])
		}
	}

	y, v, err := m.evaluate(x, 0)
	if err != nil {
		return nil, err
	}
	evals := n

	z := make([]float64, p.NumObjectives)
	for j := range z {
		z[j] = math.Inf(1)
	}
	updateReference(z, y)

	scaler := m.cfg.Scaling
	if scaler == nil {
		scaler = scaling.None{}
	}
	nadir := make([]float64, p.NumObjectives)
	computeNadir(nadir, y)

	ybuf := make([]float64, p.NumObjectives)
	zbuf := make([]float64, p.NumObjectives)
	// fitness scalarizes in the scaled objective space; y keeps raw values.
	fitness := func(yy, w []float64) float64 {
		scaler.Apply(ybuf, yy, z, nadir)
		scaler.Apply(zbuf, z, z, nadir)
		return m.cfg.Aggregator.Scalarize(ybuf, w, zbuf)
	}

	var archive *framework.Archive
	if m.cfg.WithArchive {
		archive = framework.NewArchive()
		addBatch(archive, x, y, v)
	}

	var table *neighborhood.Table
	if m.cfg.Neighborhood.Static() {
		table, err = m.cfg.Neighborhood.Build(weights, x)
		if err != nil {
			return nil, err
		}
		if err := m.checkTr(table); err != nil {
			return nil, err
		}
	}

	full := make([]int, n)
	for i := range full {
		full[i] = i
	}

	best := bestFitness(y, weights, fitness)
	noImprove := 0
	gen := 0

	var reason framework.StopReason
	for {
		if reason = m.checkStop(ctx, gen, evals, best, noImprove); reason != "" {
			break
		}
		gen++

		// The nadir estimate follows the incumbents, re-read each generation.
		computeNadir(nadir, y)

		if !m.cfg.Neighborhood.Static() {
			table, err = m.cfg.Neighborhood.Build(weights, x)
			if err != nil {
				return nil, err
			}
			if err := m.checkTr(table); err != nil {
				return nil, err
			}
		}

		// Sample the mating/replacement scope per subproblem: neighborhood
		// with probability delta.p, whole population otherwise.
		scopes := make([][]int, n)
		narrow := make([]bool, n)
		for i := 0; i < n; i++ {
			if rng.Float64() < m.cfg.Neighborhood.Prob() {
				scopes[i] = table.Row(i)
				narrow[i] = true
			} else {
				scopes[i] = full
			}
		}

		vctx := &variation.Context{
			Rng:   rng,
			XMin:  p.XMin,
			XMax:  p.XMax,
			Pop:   x,
			Scope: func(i int) []int { return scopes[i] },
			BestNeighbor: func(i int) []float64 {
				return bestInScope(scopes[i], i, x, y, weights, fitness)
			},
		}
		trial, err := m.cfg.Variation.Apply(vctx)
		if err != nil {
			return nil, err
		}

		ty, tv, err := m.evaluate(trial, gen)
		if err != nil {
			return nil, err
		}
		evals += n

		updateReference(z, ty)
		if archive != nil {
			addBatch(archive, trial, ty, tv)
		}

		// Apply replacements sequentially in a randomized subproblem order;
		// later subproblems observe earlier replacements.
		replaced := 0
		for _, i := range rng.Perm(n) {
			i := i
			rscope := scopes[i]
			if narrow[i] && m.cfg.Tr > 0 && m.cfg.Tr < len(rscope) {
				rscope = rscope[:m.cfg.Tr]
			}
			uctx := &update.Context{
				Subproblem: i,
				Scope:      rscope,
				TrialY:     ty.RawRowView(i),
				TrialV:     tv[i],
				Fitness: func(j int, yy []float64) float64 {
					return fitness(yy, weights.RawRowView(j))
				},
				IncumbentY: func(j int) []float64 { return y.RawRowView(j) },
				IncumbentV: func(j int) float64 { return v[j] },
				Replace: func(j int) {
					copyRow(x, j, trial.RawRowView(i))
					copyRow(y, j, ty.RawRowView(i))
					v[j] = tv[i]
				},
				Handler: m.cfg.Constraints,
				Rng:     rng,
			}
			replaced += m.cfg.Update.Apply(uctx)
		}

		if cur := bestFitness(y, weights, fitness); cur < best {
			best = cur
			noImprove = 0
		} else {
			noImprove++
		}

		if gen%10 == 0 || gen <= 3 {
			logger.V(2).Info("generation complete",
				"generation", gen,
				"evaluations", evals,
				"replacements", replaced,
				"bestFitness", best)
		}
	}

	logger.Info("evolution finished",
		"generations", gen,
		"evaluations", evals,
		"reason", reason,
		"bestFitness", best)

	res := &framework.Result{
		X:           x,
		Y:           y,
		V:           v,
		Archive:     archive,
		Evaluations: evals,
		Generations: gen,
		Reason:      reason,
	}
	if reason == framework.StopCanceled {
		return res, ctx.Err()
	}
	return res, nil
}

// evaluate runs the batch objective and constraint callables on the whole
// population at once. Shape mismatches are fatal.
func (m *MOEAD) evaluate(x *mat.Dense, gen int) (*mat.Dense, []float64, error) {
	p := m.problem
	n, _ := x.Dims()

	y, err := p.Objective(x)
	if err != nil {
		return nil, nil, &framework.EvalError{Op: "objective", Generation: gen, Err: err}
	}
	r, c := y.Dims()
	if r != n || c != p.NumObjectives {
		return nil, nil, &framework.EvalError{Op: "objective", Generation: gen,
			Err: fmt.Errorf("objective returned %dx%d, want %dx%d", r, c, n, p.NumObjectives)}
	}

	v := make([]float64, n)
	if p.Constraint != nil {
		ce, err := p.Constraint(x, p.Epsilon)
		if err != nil {
			return nil, nil, &framework.EvalError{Op: "constraint", Generation: gen, Err: err}
		}
		if err := ce.CheckShape(n); err != nil {
			return nil, nil, &framework.EvalError{Op: "constraint", Generation: gen, Err: err}
		}
		copy(v, ce.Total)
	}
	return y, v, nil
}

func (m *MOEAD) checkStop(ctx context.Context, gen, evals int, best float64, noImprove int) framework.StopReason {
	if ctx.Err() != nil {
		return framework.StopCanceled
	}
	if m.cfg.MaxEvaluations > 0 && evals >= m.cfg.MaxEvaluations {
		return framework.StopMaxEvaluations
	}
	if m.cfg.MaxGenerations > 0 && gen >= m.cfg.MaxGenerations {
		return framework.StopMaxGenerations
	}
	if m.cfg.MaxNoImprove > 0 && noImprove >= m.cfg.MaxNoImprove {
		return framework.StopMaxNoImprove
	}
	if m.cfg.Target != nil && best <= *m.cfg.Target {
		return framework.StopTargetReached
	}
	return ""
}

func (m *MOEAD) checkTr(table *neighborhood.Table) error {
	if m.cfg.Tr > table.T {
		return framework.Configf("moead", "Tr=%d exceeds neighborhood size %d", m.cfg.Tr, table.T)
	}
	return nil
}

// bestFitness is the best scalarized fitness over all subproblems, each under
// its own weight vector.
func bestFitness(y, weights *mat.Dense, fitness func(y, w []float64) float64) float64 {
	n, _ := y.Dims()
	best := math.Inf(1)
	for i := 0; i < n; i++ {
		if f := fitness(y.RawRowView(i), weights.RawRowView(i)); f < best {
			best = f
		}
	}
	return best
}

// bestInScope returns the incumbent decision vector that best solves
// subproblem i's scalar subproblem among the scope members.
func bestInScope(scope []int, i int, x, y, weights *mat.Dense, fitness func(y, w []float64) float64) []float64 {
	w := weights.RawRowView(i)
	bestIdx := scope[0]
	bestFit := math.Inf(1)
	for _, j := range scope {
		if f := fitness(y.RawRowView(j), w); f < bestFit {
			bestFit = f
			bestIdx = j
		}
	}
	return x.RawRowView(bestIdx)
}

// computeNadir overwrites nadir with the elementwise maximum of y.
func computeNadir(nadir []float64, y *mat.Dense) {
	n, c := y.Dims()
	for j := 0; j < c; j++ {
		nadir[j] = math.Inf(-1)
	}
	for i := 0; i < n; i++ {
		row := y.RawRowView(i)
		for j := 0; j < c; j++ {
			if row[j] > nadir[j] {
				nadir[j] = row[j]
			}
		}
	}
}

// updateReference lowers the reference point to the elementwise minimum over
// the evaluated batch; it only ever improves.
func updateReference(z []float64, y *mat.Dense) {
	n, c := y.Dims()
	for i := 0; i < n; i++ {
		row := y.RawRowView(i)
		for j := 0; j < c; j++ {
			if row[j] < z[j] {
				z[j] = row[j]
			}
		}
	}
}

func addBatch(archive *framework.Archive, x, y *mat.Dense, v []float64) {
	n, _ := x.Dims()
	for i := 0; i < n; i++ {
		archive.Add(x.RawRowView(i), y.RawRowView(i), v[i])
	}
}

func copyRow(dst *mat.Dense, i int, src []float64) {
	copy(dst.RawRowView(i), src)
}
