package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lattice-growth/internal/core"
	_ "lattice-growth/internal/sims/dla"
	_ "lattice-growth/internal/sims/eden"
)

func TestStatusLines(t *testing.T) {
	sim, err := core.NewSim("eden", map[string]string{"w": "11", "h": "11", "iterations": "5"})
	require.NoError(t, err)
	require.NoError(t, sim.Step())

	lines := StatusLines(sim, true)
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, "iteration 1", lines[0])
	assert.Equal(t, "paused", lines[1])
	assert.Contains(t, lines, "occupied 2")

	assert.Nil(t, StatusLines(nil, false))
}

func TestDLAStatusReportsWalker(t *testing.T) {
	sim, err := core.NewSim("dla", map[string]string{"w": "21", "h": "21", "r_spawn": "5", "r_jump": "8", "r_kill": "12"})
	require.NoError(t, err)
	require.NoError(t, sim.Step())

	lines := StatusLines(sim, false)
	assert.Equal(t, "running", lines[1])
	require.Len(t, lines, 5)
	assert.Contains(t, lines[2], "captured")
}
