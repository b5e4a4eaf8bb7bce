package ui

import (
	"fmt"

	"lattice-growth/internal/core"
)

// StatusReporter is implemented by sims that describe their progress beyond
// the iteration count.
type StatusReporter interface {
	Status() []string
}

// StatusLines formats the progress lines shown in the panel.
func StatusLines(sim core.Sim, paused bool) []string {
	if sim == nil {
		return nil
	}
	state := "running"
	if paused {
		state = "paused"
	}
	lines := []string{
		fmt.Sprintf("iteration %d", sim.Iteration()),
		state,
	}
	if r, ok := sim.(StatusReporter); ok {
		lines = append(lines, r.Status()...)
	}
	return lines
}
