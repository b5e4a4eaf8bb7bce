package core

import (
	"errors"
	"slices"
	"testing"
)

func TestNewGridRejectsSmallSizes(t *testing.T) {
	for _, size := range []Size{{W: 2, H: 10}, {W: 10, H: 2}, {W: 0, H: 0}, {W: -4, H: 5}} {
		if _, err := NewGrid(size.W, size.H, EdenEncoding); !errors.Is(err, ErrInvalidSize) {
			t.Fatalf("NewGrid(%d,%d) error = %v, want ErrInvalidSize", size.W, size.H, err)
		}
	}
	g, err := NewGrid(3, 3, EdenEncoding)
	if err != nil {
		t.Fatalf("NewGrid(3,3): %v", err)
	}
	if g.CountOccupied() != 0 {
		t.Fatal("new grid must be empty")
	}
}

func TestOccupyIsIdempotent(t *testing.T) {
	g, _ := NewGrid(5, 5, DLAEncoding)
	for i := 0; i < 3; i++ {
		if err := g.Occupy(2, 2); err != nil {
			t.Fatalf("Occupy: %v", err)
		}
	}
	if got := g.CountOccupied(); got != 1 {
		t.Fatalf("occupied count = %d, want 1", got)
	}
	if got := g.Cells()[g.Index(2, 2)]; got != 2 {
		t.Fatalf("DLA occupied value = %d, want 2", got)
	}
}

func TestOccupyOutOfBounds(t *testing.T) {
	g, _ := NewGrid(4, 4, EdenEncoding)
	for _, p := range []Point{{X: -1, Y: 0}, {X: 0, Y: 4}, {X: 4, Y: 1}} {
		if err := g.Occupy(p.X, p.Y); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("Occupy%v error = %v, want ErrOutOfBounds", p, err)
		}
	}
}

func TestOccupyMarginCell(t *testing.T) {
	g, _ := NewGrid(4, 4, DLAEncoding)
	if g.Interior(0, 2) {
		t.Fatal("(0,2) must lie in the margin")
	}
	if err := g.Occupy(0, 2); err != nil {
		t.Fatalf("Occupy margin cell: %v", err)
	}
	if err := g.Set(3, 3, Marker); err != nil {
		t.Fatalf("Set margin cell: %v", err)
	}
	if !g.IsOccupied(0, 2) {
		t.Fatal("margin cell must read as occupied")
	}
}

func TestOutOfBoundsReadsAreNotOccupied(t *testing.T) {
	g, _ := NewGrid(3, 3, EdenEncoding)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			_ = g.Occupy(x, y)
		}
	}
	if g.IsOccupied(-1, 1) || g.IsOccupied(3, 1) || g.IsOccupied(1, 3) {
		t.Fatal("out-of-bounds cells must read as not occupied")
	}
	if g.IsEmpty(-1, 1) {
		t.Fatal("out-of-bounds cells must not be free for growth")
	}
	if got := g.OccupiedNeighbors(0, 0); got != 2 {
		t.Fatalf("corner occupied neighbours = %d, want 2", got)
	}
}

func TestInteriorExcludesMargin(t *testing.T) {
	g, _ := NewGrid(5, 4, EdenEncoding)
	cases := map[Point]bool{
		{X: 0, Y: 0}: false,
		{X: 1, Y: 1}: true,
		{X: 3, Y: 2}: true,
		{X: 4, Y: 2}: false,
		{X: 2, Y: 3}: false,
	}
	for p, want := range cases {
		if got := g.Interior(p.X, p.Y); got != want {
			t.Fatalf("Interior%v = %v, want %v", p, got, want)
		}
	}
}

func TestMarkerStateIsInert(t *testing.T) {
	g, _ := NewGrid(5, 5, DLAEncoding)
	if err := g.Set(1, 1, Marker); err != nil {
		t.Fatalf("Set marker: %v", err)
	}
	if g.State(1, 1) != Marker {
		t.Fatalf("state = %v, want marker", g.State(1, 1))
	}
	if g.IsOccupied(1, 1) || !g.IsEmpty(1, 1) {
		t.Fatal("markers must behave like empty cells")
	}
	if got := g.Cells()[g.Index(1, 1)]; got != 3 {
		t.Fatalf("marker value = %d, want 3", got)
	}
	_ = g.Occupy(1, 1)
	if g.State(1, 1) != Occupied {
		t.Fatal("occupation must overwrite markers")
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	g, _ := NewGrid(4, 4, EdenEncoding)
	_ = g.Occupy(1, 1)
	snap := g.Snapshot()
	_ = g.Occupy(2, 2)
	if slices.Equal(snap, g.Cells()) {
		t.Fatal("snapshot must not alias the grid")
	}
	if snap[g.Index(1, 1)] != 1 || snap[g.Index(2, 2)] != 0 {
		t.Fatal("snapshot content mismatch")
	}
}

func TestRNGDeterministic(t *testing.T) {
	a, b := NewRNG(7), NewRNG(7)
	for i := 0; i < 64; i++ {
		if a.IntN(1000) != b.IntN(1000) || a.Float64() != b.Float64() {
			t.Fatal("equal seeds must produce equal streams")
		}
	}
	if NewRNG(1).IntN(0) != 0 {
		t.Fatal("IntN(0) must return 0")
	}
}
