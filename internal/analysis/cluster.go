package analysis

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"lattice-growth/internal/core"
	"lattice-growth/internal/snapshot"
)

// ErrInsufficientData is returned when a fit has fewer than two usable samples.
var ErrInsufficientData = errors.New("analysis: insufficient data")

// ClusterStats summarises the occupied cells of a plate.
type ClusterStats struct {
	Mass      int
	CentroidX float64
	CentroidY float64
	// MaxRadius is the largest distance of an occupied cell from the origin
	// passed to Measure.
	MaxRadius float64
	// Gyration is the root-mean-square distance of occupied cells from the centroid.
	Gyration float64
}

// Measure computes ClusterStats for the occupied cells of g.
func Measure(g *core.Grid, origin core.Point) ClusterStats {
	cells, occ := g.Cells(), g.Encoding().Occupied
	return measure(g.W, g.H, origin, func(i int) bool { return cells[i] == occ })
}

// MeasureSnapshot computes ClusterStats for a snapshot. occupied lists the cell
// values that count as mass.
func MeasureSnapshot(s snapshot.Snapshot, origin core.Point, occupied ...uint8) ClusterStats {
	return measure(s.W, s.H, origin, func(i int) bool { return slices.Contains(occupied, s.Cells[i]) })
}

func measure(w, h int, origin core.Point, mass func(i int) bool) ClusterStats {
	var st ClusterStats
	var sx, sy, sxx float64
	for i := 0; i < w*h; i++ {
		if !mass(i) {
			continue
		}
		x, y := float64(i%w), float64(i/w)
		st.Mass++
		sx += x
		sy += y
		sxx += x*x + y*y
		dx, dy := x-float64(origin.X), y-float64(origin.Y)
		st.MaxRadius = math.Max(st.MaxRadius, math.Hypot(dx, dy))
	}
	if st.Mass == 0 {
		return st
	}
	n := float64(st.Mass)
	st.CentroidX, st.CentroidY = sx/n, sy/n
	variance := sxx/n - st.CentroidX*st.CentroidX - st.CentroidY*st.CentroidY
	st.Gyration = math.Sqrt(math.Max(variance, 0))
	return st
}

// Sample is one point of a mass-radius curve.
type Sample struct {
	Radius float64
	Mass   int
}

// MassRadius counts the occupied cells of g within each radius of origin.
// Radii are returned in the order given.
func MassRadius(g *core.Grid, origin core.Point, radii []float64) []Sample {
	out := make([]Sample, len(radii))
	for i, r := range radii {
		out[i].Radius = r
	}
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if !g.IsOccupied(x, y) {
				continue
			}
			d := math.Sqrt(float64(core.Point{X: x, Y: y}.Dist2(origin)))
			for i, r := range radii {
				if d <= r {
					out[i].Mass++
				}
			}
		}
	}
	return out
}

// LogRadii returns n radii spaced evenly in log space between min and max.
func LogRadii(min, max float64, n int) []float64 {
	if n <= 0 || min <= 0 || max < min {
		return nil
	}
	if n == 1 {
		return []float64{max}
	}
	out := make([]float64, n)
	lo, hi := math.Log(min), math.Log(max)
	for i := range out {
		out[i] = math.Exp(lo + (hi-lo)*float64(i)/float64(n-1))
	}
	return out
}

// Fit is a least-squares fit of log(mass) against log(radius).
type Fit struct {
	// Dimension is the fitted slope.
	Dimension float64
	// Intercept is log(mass) at radius 1.
	Intercept float64
	RSquared  float64
}

// FractalDimension fits log(mass) = Intercept + Dimension·log(radius) over the
// samples with positive radius and mass.
func FractalDimension(samples []Sample) (Fit, error) {
	var xs, ys []float64
	for _, s := range samples {
		if s.Radius <= 0 || s.Mass <= 0 {
			continue
		}
		xs = append(xs, math.Log(s.Radius))
		ys = append(ys, math.Log(float64(s.Mass)))
	}
	if len(xs) < 2 {
		return Fit{}, fmt.Errorf("fractal dimension from %d samples: %w", len(xs), ErrInsufficientData)
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	return Fit{
		Dimension: beta,
		Intercept: alpha,
		RSquared:  stat.RSquared(xs, ys, nil, alpha, beta),
	}, nil
}
