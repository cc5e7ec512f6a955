package framework

import "gonum.org/v1/gonum/floats"

// ArchiveEntry is one solution retained by the archive.
type ArchiveEntry struct {
	X []float64
	Y ObjectiveSpacePoint
}

// Archive maintains the set of all non-dominated feasible solutions seen
// during a run. It is unbounded and independent of population replacement.
type Archive struct {
	entries []ArchiveEntry
}

func NewArchive() *Archive {
	return &Archive{}
}

// Add inserts the candidate if it is feasible (violation == 0) and neither
// dominated by nor objective-equal to any archived solution, removing every
// archived solution the candidate dominates. x and y are copied.
func (a *Archive) Add(x, y []float64, violation float64) bool {
	if violation > 0 {
		return false
	}
	for _, e := range a.entries {
		if Dominates(e.Y, y) || floats.Equal(e.Y, y) {
			return false
		}
	}

	kept := a.entries[:0]
	for _, e := range a.entries {
		if !Dominates(y, e.Y) {
			kept = append(kept, e)
		}
	}
	a.entries = kept

	xc := make([]float64, len(x))
	copy(xc, x)
	yc := make(ObjectiveSpacePoint, len(y))
	copy(yc, y)
	a.entries = append(a.entries, ArchiveEntry{X: xc, Y: yc})
	return true
}

// Entries returns a copy of the archived solutions.
func (a *Archive) Entries() []ArchiveEntry {
	out := make([]ArchiveEntry, len(a.entries))
	copy(out, a.entries)
	return out
}

// Front returns the objective-space points of the archived solutions.
func (a *Archive) Front() []ObjectiveSpacePoint {
	out := make([]ObjectiveSpacePoint, len(a.entries))
	for i, e := range a.entries {
		out[i] = e.Y
	}
	return out
}

// Size returns the number of archived solutions.
func (a *Archive) Size() int {
	return len(a.entries)
}
