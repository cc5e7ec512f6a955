package benchmarks

import (
	"gonum.org/v1/gonum/mat"

	"github.com/moead-go/moead/pkg/moead/constraints"
	"github.com/moead-go/moead/pkg/moead/framework"
)

// BinhKorn is a classic constrained two-objective problem with two decision
// variables and two inequality constraints; it exercises the violation-based
// comparison path of the engine.
type BinhKorn struct{}

func NewBinhKorn() *BinhKorn {
	return &BinhKorn{}
}

func (p *BinhKorn) Problem() *framework.Problem {
	return &framework.Problem{
		Name:          "BinhKorn",
		NumVariables:  2,
		NumObjectives: 2,
		XMin:          []float64{0, 0},
		XMax:          []float64{5, 3},
		Objective:     p.evaluate,
		Constraint:    p.constrain,
	}
}

func (p *BinhKorn) evaluate(x *mat.Dense) (*mat.Dense, error) {
	n, _ := x.Dims()
	y := mat.NewDense(n, 2, nil)
	for i := 0; i < n; i++ {
		a, b := x.At(i, 0), x.At(i, 1)
		y.Set(i, 0, 4*a*a+4*b*b)
		y.Set(i, 1, (a-5)*(a-5)+(b-5)*(b-5))
	}
	return y, nil
}

// constrain expresses both constraints in g(x) <= 0 form:
//
//	g1: (x-5)^2 + y^2 - 25        <= 0
//	g2: 7.7 - (x-8)^2 - (y+3)^2   <= 0
func (p *BinhKorn) constrain(x *mat.Dense, epsilon float64) (*framework.ConstraintEval, error) {
	n, _ := x.Dims()
	c := mat.NewDense(n, 2, nil)
	for i := 0; i < n; i++ {
		a, b := x.At(i, 0), x.At(i, 1)
		c.Set(i, 0, (a-5)*(a-5)+b*b-25)
		c.Set(i, 1, 7.7-(a-8)*(a-8)-(b+3)*(b+3))
	}
	return constraints.FromRaw(c, 2, epsilon), nil
}

// TrueParetoFront is not analytically parameterized here.
func (p *BinhKorn) TrueParetoFront(int) []framework.ObjectiveSpacePoint {
	return nil
}
