// Package scaling rescales objective vectors before scalarization so that
// objectives of disparate magnitudes contribute comparably to the aggregated
// fitness. Scaling is a fitness-space transform only; the population,
// the result and the archive always hold raw objective values.
package scaling

// spanFloor guards the normalization against degenerate objective ranges.
const spanFloor = 1e-12

// Scaler maps an objective vector into the scaled space spanned by the
// reference point z and the per-objective nadir estimate.
type Scaler interface {
	Name() string
	// Apply writes the scaled image of y into dst. dst and y must not alias.
	Apply(dst, y, z, nadir []float64)
}

// None passes objective values through unchanged.
type None struct{}

func (None) Name() string { return "none" }

func (None) Apply(dst, y, _, _ []float64) { copy(dst, y) }

// Simple linearly maps each objective onto [0,1] between the reference point
// and the nadir estimate: (y_i - z_i) / (nadir_i - z_i). Degenerate spans are
// floored; values outside the estimated range scale beyond [0,1].
type Simple struct{}

func (Simple) Name() string { return "simple" }

func (Simple) Apply(dst, y, z, nadir []float64) {
	for i := range y {
		span := nadir[i] - z[i]
		if span < spanFloor {
			span = spanFloor
		}
		dst[i] = (y[i] - z[i]) / span
	}
}
