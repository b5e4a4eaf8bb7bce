package eden

import (
	"fmt"

	"lattice-growth/internal/core"
)

// Rule selects which boundary cells may be occupied next.
type Rule int

const (
	// RuleEden allows every empty cell touching the aggregate.
	RuleEden Rule = iota
	// RuleTree allows only empty cells touching exactly one occupied cell, which
	// grows branching, tree-like clusters.
	RuleTree
)

func (r Rule) String() string {
	switch r {
	case RuleEden:
		return "eden"
	case RuleTree:
		return "tree"
	default:
		return fmt.Sprintf("rule(%d)", int(r))
	}
}

// ParseRule maps a rule name onto a Rule.
func ParseRule(s string) (Rule, error) {
	switch s {
	case "eden", "":
		return RuleEden, nil
	case "tree":
		return RuleTree, nil
	default:
		return 0, fmt.Errorf("rule %q: %w", s, core.ErrInvalidConfiguration)
	}
}

func (r Rule) maxNeighbors() uint8 {
	if r == RuleTree {
		return 1
	}
	return 4
}

// FrontierSet tracks the empty interior cells eligible for growth together with
// the active list of occupied cells that still border at least one empty cell.
// Both are updated incrementally on every occupation.
type FrontierSet struct {
	grid  *core.Grid
	limit uint8

	// counts holds the number of occupied 4-neighbours of every cell.
	counts []uint8

	cells []core.Point
	pos   []int

	active    []core.Point
	activePos []int
}

// NewFrontierSet builds the frontier for the current contents of g.
func NewFrontierSet(g *core.Grid, rule Rule) *FrontierSet {
	total := g.W * g.H
	f := &FrontierSet{
		grid:      g,
		limit:     rule.maxNeighbors(),
		counts:    make([]uint8, total),
		pos:       make([]int, total),
		activePos: make([]int, total),
	}
	f.Rebuild()
	return f
}

// Rebuild recomputes the frontier and active list from the grid. Cells are
// visited in row-major order so the result is deterministic.
func (f *FrontierSet) Rebuild() {
	g := f.grid
	for i := range f.pos {
		f.pos[i] = -1
		f.activePos[i] = -1
		f.counts[i] = 0
	}
	f.cells = f.cells[:0]
	f.active = f.active[:0]
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			f.counts[g.Index(x, y)] = uint8(g.OccupiedNeighbors(x, y))
		}
	}
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			p := core.Point{X: x, Y: y}
			if g.IsOccupied(x, y) {
				if g.EmptyNeighbors(x, y) > 0 {
					f.activate(p)
				}
				continue
			}
			if f.eligible(p) {
				f.insert(p)
			}
		}
	}
}

// Len reports the number of eligible frontier cells.
func (f *FrontierSet) Len() int { return len(f.cells) }

// Contains reports whether p is an eligible frontier cell.
func (f *FrontierSet) Contains(p core.Point) bool {
	return f.grid.InBounds(p.X, p.Y) && f.pos[f.grid.Index(p.X, p.Y)] >= 0
}

// Cells returns a copy of the eligible frontier cells.
func (f *FrontierSet) Cells() []core.Point {
	return append([]core.Point(nil), f.cells...)
}

// Active returns a copy of the occupied cells that still border an empty cell.
func (f *FrontierSet) Active() []core.Point {
	return append([]core.Point(nil), f.active...)
}

// Pick selects one frontier cell uniformly at random. Every eligible cell has
// the same probability regardless of how many occupied neighbours it has.
func (f *FrontierSet) Pick(rng core.Rand) (core.Point, error) {
	if len(f.cells) == 0 {
		return core.Point{}, core.ErrFrontierExhausted
	}
	return f.cells[rng.IntN(len(f.cells))], nil
}

// Grow updates the frontier after p has been occupied in the grid.
func (f *FrontierSet) Grow(p core.Point) {
	g := f.grid
	f.remove(p)
	f.activate(p)
	for _, d := range core.Neighbors4 {
		n := p.Add(d)
		if !g.InBounds(n.X, n.Y) {
			continue
		}
		f.counts[g.Index(n.X, n.Y)]++
		if g.IsOccupied(n.X, n.Y) {
			continue
		}
		if f.eligible(n) {
			f.insert(n)
		} else {
			f.remove(n)
		}
	}
	f.prune(p)
	for _, d := range core.Neighbors4 {
		if n := p.Add(d); g.IsOccupied(n.X, n.Y) {
			f.prune(n)
		}
	}
}

// Derived returns the union of empty interior 4-neighbours of the active list,
// which for RuleEden must equal the frontier.
func (f *FrontierSet) Derived() map[core.Point]struct{} {
	out := make(map[core.Point]struct{})
	for _, a := range f.active {
		for _, d := range core.Neighbors4 {
			n := a.Add(d)
			if f.grid.Interior(n.X, n.Y) && f.grid.IsEmpty(n.X, n.Y) {
				out[n] = struct{}{}
			}
		}
	}
	return out
}

func (f *FrontierSet) eligible(p core.Point) bool {
	g := f.grid
	if !g.Interior(p.X, p.Y) || !g.IsEmpty(p.X, p.Y) {
		return false
	}
	c := f.counts[g.Index(p.X, p.Y)]
	return c >= 1 && c <= f.limit
}

func (f *FrontierSet) insert(p core.Point) {
	i := f.grid.Index(p.X, p.Y)
	if f.pos[i] >= 0 {
		return
	}
	f.pos[i] = len(f.cells)
	f.cells = append(f.cells, p)
}

func (f *FrontierSet) remove(p core.Point) {
	i := f.grid.Index(p.X, p.Y)
	at := f.pos[i]
	if at < 0 {
		return
	}
	last := len(f.cells) - 1
	moved := f.cells[last]
	f.cells[at] = moved
	f.pos[f.grid.Index(moved.X, moved.Y)] = at
	f.cells = f.cells[:last]
	f.pos[i] = -1
}

func (f *FrontierSet) activate(p core.Point) {
	i := f.grid.Index(p.X, p.Y)
	if f.activePos[i] >= 0 {
		return
	}
	f.activePos[i] = len(f.active)
	f.active = append(f.active, p)
}

// prune drops p from the active list once it has no empty neighbour left.
func (f *FrontierSet) prune(p core.Point) {
	g := f.grid
	i := g.Index(p.X, p.Y)
	at := f.activePos[i]
	if at < 0 || g.EmptyNeighbors(p.X, p.Y) > 0 {
		return
	}
	last := len(f.active) - 1
	moved := f.active[last]
	f.active[at] = moved
	f.activePos[g.Index(moved.X, moved.Y)] = at
	f.active = f.active[:last]
	f.activePos[i] = -1
}
