// Package snapshot records periodic copies of a growth grid for later rendering.
package snapshot

import (
	"fmt"

	"lattice-growth/internal/core"
)

// Snapshot is an immutable copy of a grid's encoded cells taken after Iteration
// growth iterations had completed.
type Snapshot struct {
	Iteration int
	Occupied  int
	W, H      int
	Cells     []uint8
}

// At returns the encoded value at (x, y).
func (s Snapshot) At(x, y int) uint8 { return s.Cells[y*s.W+x] }

// Interval returns the number of iterations between checkpoints for a run of
// n iterations recording count snapshots. It is zero when nothing is recorded.
func Interval(n, count int) int {
	if n <= 0 || count <= 0 {
		return 0
	}
	if every := n / count; every > 1 {
		return every
	}
	return 1
}

// Recorder collects snapshots at a fixed checkpoint interval.
type Recorder struct {
	every int
	shots []Snapshot
}

// NewRecorder returns a Recorder for a run of n iterations with count checkpoints.
func NewRecorder(n, count int) *Recorder {
	r := &Recorder{every: Interval(n, count)}
	if r.every > 0 {
		r.shots = make([]Snapshot, 0, n/r.every+1)
	}
	return r
}

// Due reports whether the 0-based iteration i is a checkpoint.
func (r *Recorder) Due(i int) bool {
	return r.every > 0 && i%r.every == 0
}

// Observe records g if the 0-based iteration i is a checkpoint.
func (r *Recorder) Observe(g *core.Grid, i int) {
	if r.Due(i) {
		r.Record(g, i+1)
	}
}

// Record appends a deep copy of g tagged with the completed iteration count.
func (r *Recorder) Record(g *core.Grid, iteration int) {
	r.shots = append(r.shots, Snapshot{
		Iteration: iteration,
		Occupied:  g.CountOccupied(),
		W:         g.W,
		H:         g.H,
		Cells:     g.Snapshot(),
	})
}

// Len reports how many snapshots are held.
func (r *Recorder) Len() int { return len(r.shots) }

// All hands the ordered snapshot list to the caller and empties the recorder.
func (r *Recorder) All() []Snapshot {
	out := r.shots
	r.shots = nil
	return out
}

// Composite sums two snapshots cell-wise, the way a combined Eden and DLA plate
// is displayed. The result carries the later iteration and the summed counts.
func Composite(a, b Snapshot) (Snapshot, error) {
	if a.W != b.W || a.H != b.H {
		return Snapshot{}, fmt.Errorf("composite %dx%d with %dx%d: %w", a.W, a.H, b.W, b.H, core.ErrSizeMismatch)
	}
	cells := make([]uint8, len(a.Cells))
	for i := range cells {
		cells[i] = a.Cells[i] + b.Cells[i]
	}
	return Snapshot{
		Iteration: max(a.Iteration, b.Iteration),
		Occupied:  a.Occupied + b.Occupied,
		W:         a.W,
		H:         a.H,
		Cells:     cells,
	}, nil
}

// CompositeSeries pairs two snapshot sequences index by index. The shorter
// sequence is padded with its last element; an empty sequence contributes nothing.
func CompositeSeries(a, b []Snapshot) ([]Snapshot, error) {
	switch {
	case len(a) == 0:
		return append([]Snapshot(nil), b...), nil
	case len(b) == 0:
		return append([]Snapshot(nil), a...), nil
	}
	n := max(len(a), len(b))
	out := make([]Snapshot, 0, n)
	for i := 0; i < n; i++ {
		c, err := Composite(a[min(i, len(a)-1)], b[min(i, len(b)-1)])
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
