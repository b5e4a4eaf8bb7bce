package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lattice-growth/internal/core"
)

func TestInterval(t *testing.T) {
	cases := []struct {
		n, count, want int
	}{
		{n: 100, count: 10, want: 10},
		{n: 4, count: 4, want: 1},
		{n: 4, count: 10, want: 1},
		{n: 105, count: 10, want: 10},
		{n: 100, count: 0, want: 0},
		{n: 0, count: 5, want: 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Interval(tc.n, tc.count), "Interval(%d,%d)", tc.n, tc.count)
	}
}

func TestRecorderObservesCheckpoints(t *testing.T) {
	g, err := core.NewGrid(12, 12, core.EdenEncoding)
	require.NoError(t, err)

	rec := NewRecorder(100, 10)
	for i := 0; i < 100; i++ {
		require.NoError(t, g.Occupy(1+i%10, 1+i/10))
		rec.Observe(g, i)
	}
	shots := rec.All()
	require.Len(t, shots, 10)
	for i, s := range shots {
		assert.Equal(t, i*10+1, s.Iteration)
		assert.Equal(t, i*10+1, s.Occupied)
		assert.Equal(t, 12, s.W)
	}
	assert.Nil(t, rec.All(), "All hands the list off exactly once")
	assert.Zero(t, rec.Len())
}

func TestRecordCopiesGrid(t *testing.T) {
	g, _ := core.NewGrid(4, 4, core.DLAEncoding)
	rec := NewRecorder(1, 1)
	rec.Record(g, 0)
	require.NoError(t, g.Occupy(1, 1))
	shots := rec.All()
	require.Len(t, shots, 1)
	assert.Equal(t, uint8(0), shots[0].At(1, 1))
	assert.Zero(t, shots[0].Occupied)
}

func TestComposite(t *testing.T) {
	a := Snapshot{Iteration: 3, Occupied: 1, W: 2, H: 1, Cells: []uint8{1, 0}}
	b := Snapshot{Iteration: 5, Occupied: 2, W: 2, H: 1, Cells: []uint8{2, 2}}
	c, err := Composite(a, b)
	require.NoError(t, err)
	assert.Equal(t, []uint8{3, 2}, c.Cells)
	assert.Equal(t, 5, c.Iteration)
	assert.Equal(t, 3, c.Occupied)

	_, err = Composite(a, Snapshot{W: 1, H: 2, Cells: []uint8{0, 0}})
	assert.ErrorIs(t, err, core.ErrSizeMismatch)
}

func TestCompositeSeriesPadsShorter(t *testing.T) {
	eden := []Snapshot{
		{Iteration: 1, W: 1, H: 1, Cells: []uint8{1}},
	}
	dla := []Snapshot{
		{Iteration: 1, W: 1, H: 1, Cells: []uint8{0}},
		{Iteration: 2, W: 1, H: 1, Cells: []uint8{2}},
	}
	out, err := CompositeSeries(eden, dla)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, []uint8{1}, out[0].Cells)
	assert.Equal(t, []uint8{3}, out[1].Cells)

	only, err := CompositeSeries(nil, dla)
	require.NoError(t, err)
	assert.Len(t, only, 2)
}
