package core

import "fmt"

// State is the symbolic content of a lattice cell.
type State uint8

const (
	// Empty cells are free for growth.
	Empty State = iota
	// Occupied cells belong to the aggregate.
	Occupied
	// Marker cells carry diagnostic spawn traces. They behave like Empty for growth.
	Marker
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Occupied:
		return "occupied"
	case Marker:
		return "marker"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Encoding maps cell states onto the byte values stored in the grid and handed
// to renderers. Engines use distinct occupied values so their snapshots can be
// summed cell-wise without hiding overlap.
type Encoding struct {
	Empty    uint8
	Occupied uint8
	Marker   uint8
}

var (
	// EdenEncoding stores occupied cells as 1. Eden draws no markers.
	EdenEncoding = Encoding{Empty: 0, Occupied: 1, Marker: 0}
	// DLAEncoding stores occupied cells as 2 and spawn markers as 3.
	DLAEncoding = Encoding{Empty: 0, Occupied: 2, Marker: 3}
)

// Value returns the byte stored for s.
func (e Encoding) Value(s State) uint8 {
	switch s {
	case Occupied:
		return e.Occupied
	case Marker:
		return e.Marker
	default:
		return e.Empty
	}
}

// Point is an integer lattice coordinate.
type Point struct {
	X, Y int
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Dist2 returns the squared Euclidean distance between p and q.
func (p Point) Dist2(q Point) int {
	dx, dy := p.X-q.X, p.Y-q.Y
	return dx*dx + dy*dy
}

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Neighbors4 holds the von Neumann neighbourhood offsets.
var Neighbors4 = [4]Point{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}

// MinGridSize is the smallest width or height that still leaves an interior
// cell inside the one-cell border margin.
const MinGridSize = 3

// Grid stores a fixed-size lattice of encoded cell values in row-major order.
// Growth is confined to the interior; the outermost ring is a margin that is
// never occupied by the engines.
type Grid struct {
	W, H int
	enc  Encoding
	data []uint8
}

// NewGrid allocates an all-empty grid.
func NewGrid(w, h int, enc Encoding) (*Grid, error) {
	if w < MinGridSize || h < MinGridSize {
		return nil, fmt.Errorf("grid %dx%d: %w", w, h, ErrInvalidSize)
	}
	g := &Grid{W: w, H: h, enc: enc, data: make([]uint8, w*h)}
	if enc.Empty != 0 {
		g.Clear()
	}
	return g, nil
}

// Size returns the grid dimensions.
func (g *Grid) Size() Size { return Size{W: g.W, H: g.H} }

// Encoding reports the value encoding of the grid.
func (g *Grid) Encoding() Encoding { return g.enc }

// Cells exposes the backing slice for rendering. Callers must not write to it.
func (g *Grid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Interior reports whether (x, y) lies inside the one-cell margin.
func (g *Grid) Interior(x, y int) bool {
	return x >= 1 && x < g.W-1 && y >= 1 && y < g.H-1
}

// State decodes the cell at (x, y). Out-of-bounds cells read as Empty.
func (g *Grid) State(x, y int) State {
	if !g.InBounds(x, y) {
		return Empty
	}
	switch v := g.data[g.Index(x, y)]; {
	case v == g.enc.Occupied:
		return Occupied
	case v == g.enc.Marker && v != g.enc.Empty:
		return Marker
	default:
		return Empty
	}
}

// IsOccupied reports whether (x, y) is occupied. Out-of-bounds is never occupied.
func (g *Grid) IsOccupied(x, y int) bool {
	return g.InBounds(x, y) && g.data[g.Index(x, y)] == g.enc.Occupied
}

// IsEmpty reports whether (x, y) is free for growth. Markers count as empty;
// out-of-bounds cells do not, so growth never leaves the grid.
func (g *Grid) IsEmpty(x, y int) bool {
	return g.InBounds(x, y) && g.data[g.Index(x, y)] != g.enc.Occupied
}

// Occupy marks (x, y) as occupied. Occupying an occupied cell is a no-op.
func (g *Grid) Occupy(x, y int) error {
	return g.Set(x, y, Occupied)
}

// Set writes state s into (x, y).
func (g *Grid) Set(x, y int, s State) error {
	if !g.InBounds(x, y) {
		return fmt.Errorf("cell (%d,%d) outside %dx%d grid: %w", x, y, g.W, g.H, ErrOutOfBounds)
	}
	g.data[g.Index(x, y)] = g.enc.Value(s)
	return nil
}

// HasOccupiedNeighbor reports whether any 4-neighbour of (x, y) is occupied.
func (g *Grid) HasOccupiedNeighbor(x, y int) bool {
	for _, d := range Neighbors4 {
		if g.IsOccupied(x+d.X, y+d.Y) {
			return true
		}
	}
	return false
}

// OccupiedNeighbors counts the occupied 4-neighbours of (x, y).
func (g *Grid) OccupiedNeighbors(x, y int) int {
	n := 0
	for _, d := range Neighbors4 {
		if g.IsOccupied(x+d.X, y+d.Y) {
			n++
		}
	}
	return n
}

// EmptyNeighbors counts the 4-neighbours of (x, y) that are empty interior cells.
func (g *Grid) EmptyNeighbors(x, y int) int {
	n := 0
	for _, d := range Neighbors4 {
		nx, ny := x+d.X, y+d.Y
		if g.Interior(nx, ny) && g.IsEmpty(nx, ny) {
			n++
		}
	}
	return n
}

// CountOccupied returns the number of occupied cells.
func (g *Grid) CountOccupied() int {
	n := 0
	for _, v := range g.data {
		if v == g.enc.Occupied {
			n++
		}
	}
	return n
}

// Snapshot returns a deep copy of the encoded cells.
func (g *Grid) Snapshot() []uint8 {
	return append([]uint8(nil), g.data...)
}

// Clear resets every cell to Empty.
func (g *Grid) Clear() {
	for i := range g.data {
		g.data[i] = g.enc.Empty
	}
}
