package dla

import (
	"fmt"
	"math"

	"lattice-growth/internal/core"
)

// Attractor selects the shape occupied around the seed before any walker spawns.
type Attractor int

const (
	// AttractorNone occupies only the seed cell.
	AttractorNone Attractor = iota
	// AttractorCircle scatters points on a circle around the seed.
	AttractorCircle
	// AttractorLine draws a vertical line through the seed.
	AttractorLine
)

const (
	circlePoints = 100
	circleRadius = 10
	linePoints   = 40
)

func (a Attractor) String() string {
	switch a {
	case AttractorNone:
		return "none"
	case AttractorCircle:
		return "circle"
	case AttractorLine:
		return "line"
	default:
		return fmt.Sprintf("attractor(%d)", int(a))
	}
}

// ParseAttractor maps an attractor name onto an Attractor.
func ParseAttractor(s string) (Attractor, error) {
	switch s {
	case "none", "":
		return AttractorNone, nil
	case "circle":
		return AttractorCircle, nil
	case "line":
		return AttractorLine, nil
	default:
		return 0, fmt.Errorf("attractor %q: %w", s, core.ErrInvalidConfiguration)
	}
}

// Points returns the cells the attractor occupies around seed. Circle points
// consume randomness from rng; the line is deterministic.
func (a Attractor) Points(seed core.Point, rng core.Rand) []core.Point {
	switch a {
	case AttractorCircle:
		pts := make([]core.Point, 0, circlePoints)
		for i := 0; i < circlePoints; i++ {
			pts = append(pts, onCircle(seed, circleRadius, rng.Float64()))
		}
		return pts
	case AttractorLine:
		// Alternate below and above the seed, moving one cell further out every
		// second point, so the line stays contiguous.
		pts := make([]core.Point, 0, linePoints)
		for i := 0; i < linePoints; i++ {
			d := i/2 + 1
			if i%2 == 0 {
				d = -d
			}
			pts = append(pts, core.Point{X: seed.X, Y: seed.Y + d})
		}
		return pts
	default:
		return nil
	}
}

// onCircle maps a uniform sample u in [0,1) onto the lattice cell nearest to
// the circle point at angle 2πu.
func onCircle(center core.Point, r, u float64) core.Point {
	theta := u * 2 * math.Pi
	return core.Point{
		X: center.X + int(math.Round(r*math.Cos(theta))),
		Y: center.Y + int(math.Round(r*math.Sin(theta))),
	}
}
