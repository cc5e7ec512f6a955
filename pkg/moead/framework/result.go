package framework

import "gonum.org/v1/gonum/mat"

// StopReason identifies which stop criterion terminated a run.
type StopReason string

const (
	StopMaxEvaluations StopReason = "MaxEvaluations"
	StopMaxGenerations StopReason = "MaxGenerations"
	StopMaxNoImprove   StopReason = "MaxNoImprove"
	StopTargetReached  StopReason = "TargetReached"
	StopCanceled       StopReason = "Canceled"
)

// Result is the terminal state of a run.
type Result struct {
	// X is the final population, one decision vector per subproblem.
	X *mat.Dense
	// Y holds the objective values of X.
	Y *mat.Dense
	// V holds the aggregate constraint violation per subproblem
	// (all zeros for unconstrained problems).
	V []float64
	// Archive is nil unless archiving was enabled.
	Archive *Archive

	Evaluations int
	Generations int
	Reason      StopReason
}

// Front returns the objective-space points of the final population.
func (r *Result) Front() []ObjectiveSpacePoint {
	n, m := r.Y.Dims()
	out := make([]ObjectiveSpacePoint, n)
	for i := 0; i < n; i++ {
		p := make(ObjectiveSpacePoint, m)
		copy(p, r.Y.RawRowView(i))
		out[i] = p
	}
	return out
}
