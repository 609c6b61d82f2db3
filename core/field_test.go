package core

import (
	"errors"
	"math"
	"testing"

	"github.com/kopi21144/drifting-dots/parameter"
)

func TestNewDotFieldValidation(t *testing.T) {
	seeds := SeedTriple{A: "a", B: "b", C: "c"}

	tests := []struct {
		name        string
		capacity    int
		trailLength int
		wantErr     bool
	}{
		{"minimal", 1, 1, false},
		{"typical", 64, 8, false},
		{"capacity at cap", parameter.MaxDotCapacity, 1, false},
		{"trail at cap", 4, parameter.MaxTrailLength, false},
		{"zero capacity", 0, 4, true},
		{"negative capacity", -3, 4, true},
		{"capacity above cap", parameter.MaxDotCapacity + 1, 4, true},
		{"zero trail", 16, 0, true},
		{"negative trail", 16, -1, true},
		{"trail above cap", 16, parameter.MaxTrailLength + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewDotField(tt.capacity, tt.trailLength, seeds)
			if tt.wantErr {
				if err == nil {
					t.Fatal("want error, got nil")
				}
				var ce *ConfigError
				if !errors.As(err, &ce) {
					t.Errorf("error %v is not a *ConfigError", err)
				}
				if f != nil {
					t.Error("field returned alongside error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if f.Len() != tt.capacity {
				t.Errorf("Len() = %d, want %d", f.Len(), tt.capacity)
			}
			if f.TrailLength() != tt.trailLength {
				t.Errorf("TrailLength() = %d, want %d", f.TrailLength(), tt.trailLength)
			}
		})
	}
}

func TestFieldIndexesStable(t *testing.T) {
	f, err := NewDotField(32, 4, SeedTriple{A: "a", B: "b", C: "c"})
	if err != nil {
		t.Fatal(err)
	}

	for tick := int64(1); tick <= 5; tick++ {
		f = f.Evolve(0.01, 0.001, 0, tick, parameter.DriftOracle)
	}
	for i := 0; i < f.Len(); i++ {
		if f.At(i).Index != i {
			t.Errorf("dot at slot %d carries index %d", i, f.At(i).Index)
		}
	}
}

func TestEvolveDeterministic(t *testing.T) {
	run := func() *DotField {
		f, err := NewDotField(16, 3, SeedTriple{A: "alpha", B: "beta", C: "gamma"})
		if err != nil {
			t.Fatal(err)
		}
		for tick := int64(1); tick <= 10; tick++ {
			f = f.Evolve(0.002, 0.0005, 42, tick, parameter.DriftOracle)
		}
		return f
	}

	a, b := run(), run()
	if !fieldsEqual(a, b) {
		t.Error("two runs from identical genesis diverged")
	}
}

func TestEvolveIsPure(t *testing.T) {
	f, err := NewDotField(8, 2, SeedTriple{A: "x", B: "y", C: "z"})
	if err != nil {
		t.Fatal(err)
	}

	a := f.Evolve(0.001, 0.0002, 0, 1, parameter.DriftOracle)
	b := f.Evolve(0.001, 0.0002, 0, 1, parameter.DriftOracle)
	if !fieldsEqual(a, b) {
		t.Error("same field and tick produced different successors")
	}

	// The receiver is untouched: every dot still sits on its spawn
	// position with a spawn-filled trail.
	for i := 0; i < f.Len(); i++ {
		d := f.At(i)
		s := Spawn(i, f.Len(), f.TrailLength())
		if d.X != s.X || d.Y != s.Y || d.Phase != s.Phase {
			t.Errorf("dot %d mutated by Evolve: %+v", i, d)
		}
	}
}

func TestEvolveSeedDivergence(t *testing.T) {
	tests := []struct {
		name  string
		seeds SeedTriple
	}{
		{"first seed differs", SeedTriple{A: "A!", B: "b", C: "c"}},
		{"second seed differs", SeedTriple{A: "a", B: "B!", C: "c"}},
		{"third seed differs", SeedTriple{A: "a", B: "b", C: "C!"}},
	}

	base, err := NewDotField(16, 2, SeedTriple{A: "a", B: "b", C: "c"})
	if err != nil {
		t.Fatal(err)
	}
	baseEvolved := base.Evolve(0.5, 0.1, 0, 1, parameter.DriftOracle)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewDotField(16, 2, tt.seeds)
			if err != nil {
				t.Fatal(err)
			}
			evolved := f.Evolve(0.5, 0.1, 0, 1, parameter.DriftOracle)
			if fieldsEqual(baseEvolved, evolved) {
				t.Error("distinct seed triples produced identical fields")
			}
		})
	}
}

func TestEvolveOracleDivergence(t *testing.T) {
	mk := func(oracle string) *DotField {
		f, err := NewDotField(16, 2, SeedTriple{A: "a", B: "b", C: "c"})
		if err != nil {
			t.Fatal(err)
		}
		return f.Evolve(0.5, 0.1, 0, 1, oracle)
	}

	if fieldsEqual(mk("oracle-one"), mk("oracle-two")) {
		t.Error("distinct drift oracles produced identical fields")
	}
}

func TestEvolveBounded(t *testing.T) {
	// A huge drift scale slams dots against the walls; clamping must
	// hold every coordinate inside the unit square with no wrapping.
	f, err := NewDotField(64, 2, SeedTriple{A: "wall", B: "test", C: "run"})
	if err != nil {
		t.Fatal(err)
	}

	for tick := int64(1); tick <= 20; tick++ {
		f = f.Evolve(10.0, 0.01, 0, tick, parameter.DriftOracle)
		for i := 0; i < f.Len(); i++ {
			d := f.At(i)
			if d.X < 0 || d.X > 1 || d.Y < 0 || d.Y > 1 {
				t.Fatalf("tick %d: dot %d escaped to (%v,%v)", tick, i, d.X, d.Y)
			}
		}
	}
}

func TestEvolvePhaseUnbounded(t *testing.T) {
	f, err := NewDotField(8, 2, SeedTriple{A: "phase", B: "spin", C: "test"})
	if err != nil {
		t.Fatal(err)
	}

	genesis := f
	for tick := int64(1); tick <= 50; tick++ {
		f = f.Evolve(0.001, 1.0, 0, tick, parameter.DriftOracle)
	}

	moved := false
	for i := 0; i < f.Len(); i++ {
		if f.At(i).Phase != genesis.At(i).Phase {
			moved = true
			break
		}
	}
	if !moved {
		t.Error("no dot accumulated any phase over 50 ticks")
	}
}

func TestSmallFieldScenario(t *testing.T) {
	const (
		capacity    = 4
		trailLength = 2
		driftScale  = 0.0004127
		phaseSpeed  = 0.0003829
		baseTimeMs  = int64(0)
	)
	seeds := SeedTriple{A: "a", B: "b", C: "c"}

	// Step 1: genesis field sits on the layout curve.
	f0, err := NewDotField(capacity, trailLength, seeds)
	if err != nil {
		t.Fatalf("genesis: %v", err)
	}

	// Step 2: the first tick keeps every dot inside the unit square
	// and stamps its pre-tick position into the freshest trail slot.
	f1 := f0.Evolve(driftScale, phaseSpeed, baseTimeMs, 1, parameter.DriftOracle)
	for i := 0; i < f1.Len(); i++ {
		d := f1.At(i)
		if d.X < 0 || d.X > 1 || d.Y < 0 || d.Y > 1 {
			t.Errorf("dot %d at (%v,%v), want within [0,1]", i, d.X, d.Y)
		}
		x0, y0 := d.TrailAt(0)
		prev := f0.At(i)
		if x0 != prev.X || y0 != prev.Y {
			t.Errorf("dot %d TrailAt(0) = (%v,%v), want pre-tick (%v,%v)", i, x0, y0, prev.X, prev.Y)
		}
	}

	// Step 3: two more ticks fill the ring; the two slots now hold the
	// positions from the two preceding fields, newest first.
	f2 := f1.Evolve(driftScale, phaseSpeed, baseTimeMs, 2, parameter.DriftOracle)
	f3 := f2.Evolve(driftScale, phaseSpeed, baseTimeMs, 3, parameter.DriftOracle)
	for i := 0; i < f3.Len(); i++ {
		d := f3.At(i)
		x0, y0 := d.TrailAt(0)
		x1, y1 := d.TrailAt(1)
		if x0 != f2.At(i).X || y0 != f2.At(i).Y {
			t.Errorf("dot %d TrailAt(0) does not match the previous field", i)
		}
		if x1 != f1.At(i).X || y1 != f1.At(i).Y {
			t.Errorf("dot %d TrailAt(1) does not match two fields back", i)
		}
	}

	// Step 4: replaying all three ticks from a fresh genesis lands on
	// an identical field, trail rings included.
	r, err := NewDotField(capacity, trailLength, seeds)
	if err != nil {
		t.Fatalf("replay genesis: %v", err)
	}
	for tick := int64(1); tick <= 3; tick++ {
		r = r.Evolve(driftScale, phaseSpeed, baseTimeMs, tick, parameter.DriftOracle)
	}
	if !fieldsEqual(f3, r) {
		t.Error("replay from genesis diverged from the original run")
	}
}

func TestEvolveBaseTimeMatters(t *testing.T) {
	mk := func(baseTimeMs int64) *DotField {
		f, err := NewDotField(16, 2, SeedTriple{A: "a", B: "b", C: "c"})
		if err != nil {
			t.Fatal(err)
		}
		return f.Evolve(0.5, 0.1, baseTimeMs, 1, parameter.DriftOracle)
	}

	if fieldsEqual(mk(0), mk(1)) {
		t.Error("different base times produced identical fields")
	}
}

// fieldsEqual compares every dot's position, phase, index and full
// trail ring across two fields.
func fieldsEqual(a, b *DotField) bool {
	if a.Len() != b.Len() || a.TrailLength() != b.TrailLength() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		da, db := a.At(i), b.At(i)
		if da.X != db.X || da.Y != db.Y || da.Phase != db.Phase || da.Index != db.Index {
			return false
		}
		for depth := 0; depth < da.TrailLength(); depth++ {
			ax, ay := da.TrailAt(depth)
			bx, by := db.TrailAt(depth)
			if ax != bx || ay != by {
				return false
			}
		}
	}
	return true
}

func TestMeanDisplacement(t *testing.T) {
	f0, err := NewDotField(8, 2, SeedTriple{A: "m", B: "n", C: "o"})
	if err != nil {
		t.Fatal(err)
	}

	if got := MeanDisplacement(f0, f0); got != 0 {
		t.Errorf("identical fields displaced by %g, want 0", got)
	}

	f1 := f0.Evolve(0.01, 0.0002, 0, 1, parameter.DriftOracle)
	got := MeanDisplacement(f0, f1)
	if got <= 0 {
		t.Fatalf("MeanDisplacement = %g, want > 0 after one evolve", got)
	}
	// Per-axis movement is bounded by half the drift scale.
	if limit := 0.01 * math.Sqrt2 / 2; got > limit {
		t.Errorf("MeanDisplacement = %g, beyond the per-tick bound %g", got, limit)
	}
	if back := MeanDisplacement(f1, f0); back != got {
		t.Errorf("MeanDisplacement(f1, f0) = %g, want %g either way around", back, got)
	}

	small, err := NewDotField(2, 2, SeedTriple{A: "m", B: "n", C: "o"})
	if err != nil {
		t.Fatal(err)
	}
	if MeanDisplacement(f0, small) != 0 {
		t.Error("mismatched sizes did not report zero")
	}
	if MeanDisplacement(nil, f0) != 0 || MeanDisplacement(f0, nil) != 0 {
		t.Error("nil field did not report zero")
	}
}
