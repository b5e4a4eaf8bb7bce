// Package analysis measures grown clusters: connectivity, radius of gyration
// and the mass-radius scaling used to estimate fractal dimension.
package analysis

import "lattice-growth/internal/core"

// Components returns the 4-connected components of the non-zero cells of a
// row-major w×h plate. Each component lists linear cell indices in BFS order.
// Components are ordered by their first cell in row-major order.
func Components(cells []uint8, w, h int) [][]int {
	return components(w, h, func(i int) bool { return cells[i] != 0 })
}

// GridComponents returns the 4-connected components of the occupied cells of g.
// Markers and empty cells separate components.
func GridComponents(g *core.Grid) [][]int {
	occ := g.Encoding().Occupied
	cells := g.Cells()
	return components(g.W, g.H, func(i int) bool { return cells[i] == occ })
}

// Connected reports whether every occupied cell of g is 4-connected to seed.
func Connected(g *core.Grid, seed core.Point) bool {
	if !g.IsOccupied(seed.X, seed.Y) {
		return false
	}
	comps := GridComponents(g)
	return len(comps) == 1
}

func components(w, h int, land func(i int) bool) [][]int {
	if w <= 0 || h <= 0 {
		return nil
	}
	visited := make([]bool, w*h)
	var out [][]int
	for start := range visited {
		if visited[start] || !land(start) {
			continue
		}
		visited[start] = true
		comp := []int{start}
		for head := 0; head < len(comp); head++ {
			x, y := comp[head]%w, comp[head]/w
			for _, d := range core.Neighbors4 {
				nx, ny := x+d.X, y+d.Y
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				n := ny*w + nx
				if visited[n] || !land(n) {
					continue
				}
				visited[n] = true
				comp = append(comp, n)
			}
		}
		out = append(out, comp)
	}
	return out
}
