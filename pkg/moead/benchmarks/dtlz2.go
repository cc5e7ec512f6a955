package benchmarks

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/moead-go/moead/pkg/moead/framework"
)

// DTLZ2 is scalable to any number of objectives; its Pareto front is the
// positive orthant of the unit sphere in objective space.
type DTLZ2 struct {
	numVars       int
	numObjectives int
}

func NewDTLZ2(numVars, numObjectives int) *DTLZ2 {
	// Recommended: numVars = numObjectives + k - 1, where k = 10 for DTLZ2
	return &DTLZ2{
		numVars:       numVars,
		numObjectives: numObjectives,
	}
}

func (p *DTLZ2) Problem() *framework.Problem {
	xmin := make([]float64, p.numVars)
	xmax := make([]float64, p.numVars)
	for i := range xmax {
		xmax[i] = 1.0
	}
	return &framework.Problem{
		Name:          "DTLZ2",
		NumVariables:  p.numVars,
		NumObjectives: p.numObjectives,
		XMin:          xmin,
		XMax:          xmax,
		Objective:     p.evaluate,
	}
}

func (p *DTLZ2) g(row []float64) float64 {
	sum := 0.0
	for i := p.numObjectives - 1; i < p.numVars; i++ {
		sum += (row[i] - 0.5) * (row[i] - 0.5)
	}
	return sum
}

func (p *DTLZ2) evaluate(x *mat.Dense) (*mat.Dense, error) {
	n, _ := x.Dims()
	m := p.numObjectives
	y := mat.NewDense(n, m, nil)

	for i := 0; i < n; i++ {
		row := x.RawRowView(i)
		g := p.g(row)
		for obj := 0; obj < m; obj++ {
			f := 1.0 + g
			for j := 0; j < m-obj-1; j++ {
				f *= math.Cos(row[j] * math.Pi / 2)
			}
			if obj > 0 {
				f *= math.Sin(row[m-obj-1] * math.Pi / 2)
			}
			y.Set(i, obj, f)
		}
	}
	return y, nil
}

// TrueParetoFront samples numPoints points on the unit sphere front for the
// two-objective case; for higher dimensions there is no natural linear
// parameterization, so it returns nil.
func (p *DTLZ2) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	if p.numObjectives != 2 {
		return nil
	}
	points := make([]framework.ObjectiveSpacePoint, numPoints)
	for i := 0; i < numPoints; i++ {
		theta := float64(i) / float64(numPoints-1) * math.Pi / 2
		points[i] = framework.ObjectiveSpacePoint{
			math.Cos(theta), math.Sin(theta),
		}
	}
	return points
}
