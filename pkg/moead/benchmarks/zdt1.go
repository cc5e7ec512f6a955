package benchmarks

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/moead-go/moead/pkg/moead/framework"
)

// ZDT1 is a benchmark function used to test the correctness
// of multi-objective algorithms. For more details, check the article below:
// https://datacrayon.com/practical-evolutionary-algorithms/synthetic-objective-functions-and-zdt1/
type ZDT1 struct {
	numVars int
}

func NewZDT1(numVars int) *ZDT1 {
	return &ZDT1{
		numVars,
	}
}

// Problem returns the batch descriptor: all variables in [0,1], two
// objectives, no constraints.
func (p *ZDT1) Problem() *framework.Problem {
	xmin := make([]float64, p.numVars)
	xmax := make([]float64, p.numVars)
	for i := range xmax {
		xmax[i] = 1.0
	}
	return &framework.Problem{
		Name:          "ZDT1",
		NumVariables:  p.numVars,
		NumObjectives: 2,
		XMin:          xmin,
		XMax:          xmax,
		Objective:     p.evaluate,
	}
}

func (p *ZDT1) evaluate(x *mat.Dense) (*mat.Dense, error) {
	n, nv := x.Dims()
	y := mat.NewDense(n, 2, nil)
	for i := 0; i < n; i++ {
		row := x.RawRowView(i)
		g := 1.0
		for j := 1; j < nv; j++ {
			g += 9.0 * row[j] / float64(nv-1)
		}
		y.Set(i, 0, row[0])
		y.Set(i, 1, g*(1.0-math.Sqrt(row[0]/g)))
	}
	return y, nil
}

// TrueParetoFront generates numPoints points on the true Pareto front for ZDT1
func (p *ZDT1) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	points := make([]framework.ObjectiveSpacePoint, numPoints)
	for i := 0; i < numPoints; i++ {
		x := float64(i) / float64(numPoints-1)
		points[i] = framework.ObjectiveSpacePoint{
			x, 1.0 - math.Sqrt(x),
		}
	}
	return points
}
