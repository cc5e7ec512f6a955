// Package neighborhood computes, for each subproblem, the indices of its T
// closest subproblems under Euclidean distance. Weight-based tables are
// static for the whole run; incumbent-based tables are rebuilt every
// generation from the current population.
package neighborhood

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/moead-go/moead/pkg/moead/framework"
)

// Table lists the T nearest subproblem indices per subproblem. Row i always
// starts with i itself: the self distance is 0 and ties break by index.
type Table struct {
	Indices [][]int
	T       int
}

// Row returns subproblem i's neighbor indices.
func (t *Table) Row(i int) []int { return t.Indices[i] }

// Builder constructs neighbor tables from a distance source.
type Builder interface {
	Name() string
	// Static reports whether the table needs to be built only once.
	Static() bool
	// Prob is the probability delta.p of restricting mating and replacement
	// to the neighborhood rather than the whole population, sampled by the
	// engine once per subproblem per generation.
	Prob() float64
	// Build computes the table. weights is the N x m weight matrix, pop the
	// current N x n_variables population; each builder uses one of the two.
	Build(weights, pop *mat.Dense) (*Table, error)
}

// ByWeight builds the table once from the weight matrix.
type ByWeight struct {
	T      int
	DeltaP float64
}

func (b ByWeight) Name() string  { return "by-weight" }
func (b ByWeight) Static() bool  { return true }
func (b ByWeight) Prob() float64 { return b.DeltaP }

func (b ByWeight) Build(weights, _ *mat.Dense) (*Table, error) {
	return knn(weights, b.T, b.Name(), b.DeltaP)
}

// ByIncumbent rebuilds the table every generation from the incumbent
// solutions in decision space.
type ByIncumbent struct {
	T      int
	DeltaP float64
}

func (b ByIncumbent) Name() string  { return "by-incumbent" }
func (b ByIncumbent) Static() bool  { return false }
func (b ByIncumbent) Prob() float64 { return b.DeltaP }

func (b ByIncumbent) Build(_, pop *mat.Dense) (*Table, error) {
	return knn(pop, b.T, b.Name(), b.DeltaP)
}

func knn(src *mat.Dense, t int, name string, deltaP float64) (*Table, error) {
	if src == nil {
		return nil, framework.Configf("neighborhood/"+name, "distance source is nil")
	}
	n, _ := src.Dims()
	if t < 1 || t > n {
		return nil, framework.Configf("neighborhood/"+name, "T=%d outside [1,%d]", t, n)
	}
	if deltaP < 0 || deltaP > 1 {
		return nil, framework.Configf("neighborhood/"+name, "delta.p=%v outside [0,1]", deltaP)
	}

	table := &Table{
		Indices: make([][]int, n),
		T:       t,
	}
	dist := make([]float64, n)
	order := make([]int, n)

	for i := 0; i < n; i++ {
		ri := src.RawRowView(i)
		for j := 0; j < n; j++ {
			dist[j] = sqDist(ri, src.RawRowView(j))
			order[j] = j
		}
		// The self row sorts first even when another subproblem holds an
		// identical position.
		dist[i] = math.Inf(-1)
		sort.SliceStable(order, func(a, b int) bool {
			if dist[order[a]] != dist[order[b]] {
				return dist[order[a]] < dist[order[b]]
			}
			return order[a] < order[b]
		})

		row := make([]int, t)
		copy(row, order[:t])
		table.Indices[i] = row
	}
	return table, nil
}

func sqDist(a, b []float64) float64 {
	tot := 0.0
	for i := range a {
		d := a[i] - b[i]
		tot += d * d
	}
	return tot
}
