package core

import (
	"math"
	"testing"
)

func TestSpawnLayout(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := Spawn(7, 64, 8)
		b := Spawn(7, 64, 8)
		if a.X != b.X || a.Y != b.Y || a.Phase != b.Phase {
			t.Errorf("spawn not reproducible: %+v vs %+v", a, b)
		}
	})

	t.Run("stays in central band", func(t *testing.T) {
		const capacity = 256
		for i := 0; i < capacity; i++ {
			d := Spawn(i, capacity, 4)
			if d.X < 0.2 || d.X > 0.8 || d.Y < 0.2 || d.Y > 0.8 {
				t.Errorf("dot %d spawned at (%v,%v), want within [0.2,0.8]", i, d.X, d.Y)
			}
		}
	})

	t.Run("index zero anchors the curve", func(t *testing.T) {
		d := Spawn(0, 16, 4)
		// u=0: x = 0.2+0.6*(0.5+0.5*sin 0) = 0.5, y = 0.2+0.6*(0.5+0.5*cos 0) = 0.8
		if math.Abs(d.X-0.5) > 1e-12 || math.Abs(d.Y-0.8) > 1e-12 {
			t.Errorf("dot 0 at (%v,%v), want (0.5,0.8)", d.X, d.Y)
		}
		if d.Phase != 0 {
			t.Errorf("dot 0 phase = %v, want 0", d.Phase)
		}
	})

	t.Run("degenerate parameters rise to one", func(t *testing.T) {
		d := Spawn(0, 0, 0)
		if d.TrailLength() != 1 {
			t.Errorf("trail length = %d, want 1", d.TrailLength())
		}
		if math.IsNaN(d.X) || math.IsNaN(d.Y) {
			t.Errorf("zero capacity produced NaN position (%v,%v)", d.X, d.Y)
		}
	})
}

func TestSpawnTrailPrefilled(t *testing.T) {
	d := Spawn(3, 16, 5)
	for i := 0; i < d.TrailLength(); i++ {
		x, y := d.TrailAt(i)
		if x != d.X || y != d.Y {
			t.Errorf("trail slot %d = (%v,%v), want spawn position (%v,%v)", i, x, y, d.X, d.Y)
		}
	}
}

func TestAdvanceTrailLag(t *testing.T) {
	d := Spawn(0, 4, 3)
	px, py := d.X, d.Y

	next := d.Advance(0.31, 0.62, 1.5)

	if next.X != 0.31 || next.Y != 0.62 || next.Phase != 1.5 {
		t.Fatalf("advanced dot = (%v,%v,%v), want (0.31,0.62,1.5)", next.X, next.Y, next.Phase)
	}
	if next.Index != d.Index {
		t.Errorf("index changed across Advance: %d -> %d", d.Index, next.Index)
	}

	// The freshest trail slot holds where the dot stood before the move.
	x, y := next.TrailAt(0)
	if x != px || y != py {
		t.Errorf("TrailAt(0) = (%v,%v), want pre-move position (%v,%v)", x, y, px, py)
	}
}

func TestTrailRingOrder(t *testing.T) {
	// Walk a dot through five moves on a ring of three and check the
	// ring holds the last three pre-move positions, newest first.
	d := Spawn(0, 4, 3)

	history := [][2]float64{{d.X, d.Y}}
	cur := d
	steps := [][2]float64{{0.1, 0.1}, {0.2, 0.2}, {0.3, 0.3}, {0.4, 0.4}, {0.5, 0.5}}
	for _, p := range steps {
		cur = cur.Advance(p[0], p[1], 0)
		history = append(history, p)
	}

	// After 5 moves the recorded pre-move positions are history[4],
	// history[3], history[2] at depths 0, 1, 2.
	for depth := 0; depth < 3; depth++ {
		want := history[len(history)-2-depth]
		x, y := cur.TrailAt(depth)
		if x != want[0] || y != want[1] {
			t.Errorf("TrailAt(%d) = (%v,%v), want (%v,%v)", depth, x, y, want[0], want[1])
		}
	}
}

func TestTrailAtOutOfRange(t *testing.T) {
	d := Spawn(0, 4, 2).Advance(0.9, 0.1, 0)

	tests := []struct {
		name  string
		depth int
	}{
		{"negative depth", -1},
		{"depth at length", 2},
		{"depth far past length", 99},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := d.TrailAt(tt.depth)
			if x != d.X || y != d.Y {
				t.Errorf("TrailAt(%d) = (%v,%v), want live position (%v,%v)", tt.depth, x, y, d.X, d.Y)
			}
		})
	}
}

func TestAdvanceValueSemantics(t *testing.T) {
	a := Spawn(0, 4, 3)
	b := a.Advance(0.25, 0.25, 1)

	bx0, by0 := b.TrailAt(0)

	// Advancing b must not disturb the snapshot held in b.
	_ = b.Advance(0.75, 0.75, 2)

	x, y := b.TrailAt(0)
	if x != bx0 || y != by0 {
		t.Errorf("snapshot trail changed under a later Advance: (%v,%v) -> (%v,%v)", bx0, by0, x, y)
	}

	// And a, the generation before, still reads its spawn-filled ring.
	ax, ay := a.TrailAt(0)
	if ax != a.X || ay != a.Y {
		t.Errorf("origin dot trail changed: (%v,%v), want (%v,%v)", ax, ay, a.X, a.Y)
	}
}
