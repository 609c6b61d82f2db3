package core

import (
	"fmt"
	"math"
	"strconv"

	"github.com/kopi21144/drifting-dots/parameter"
	"github.com/kopi21144/drifting-dots/vmath"
)

// SeedTriple carries the three genesis strings that anchor a field's
// hash chain. All three join every per-dot digest preimage, so triples
// differing in any single component walk unrelated trajectories.
type SeedTriple struct {
	A, B, C string
}

// DefaultSeeds returns the genesis triple baked into the engine.
func DefaultSeeds() SeedTriple {
	return SeedTriple{
		A: parameter.GenesisSeedA,
		B: parameter.GenesisSeedB,
		C: parameter.GenesisSeedC,
	}
}

// DotField is one immutable snapshot of every dot at a single tick.
// Evolve derives the next snapshot without touching the receiver, so
// listeners and exporters can hold a field as long as they like.
type DotField struct {
	dots        []Dot
	seeds       SeedTriple
	trailLength int
}

// NewDotField spawns capacity dots on the double-wave layout curve.
// Capacity and trail length are validated, never clamped: values
// outside their ranges return a *ConfigError and no field.
func NewDotField(capacity, trailLength int, seeds SeedTriple) (*DotField, error) {
	if capacity < 1 || capacity > parameter.MaxDotCapacity {
		return nil, &ConfigError{
			Param: "dot capacity",
			Value: capacity,
			Want:  fmt.Sprintf("1..%d", parameter.MaxDotCapacity),
		}
	}
	if trailLength < 1 || trailLength > parameter.MaxTrailLength {
		return nil, &ConfigError{
			Param: "trail length",
			Value: trailLength,
			Want:  fmt.Sprintf("1..%d", parameter.MaxTrailLength),
		}
	}

	dots := make([]Dot, capacity)
	for i := range dots {
		dots[i] = Spawn(i, capacity, trailLength)
	}
	return &DotField{dots: dots, seeds: seeds, trailLength: trailLength}, nil
}

// Evolve advances every dot by one tick and returns the successor
// field. The virtual timestamp t = baseTimeMs + tick*TickTimeStrideMs
// feeds each dot's digest, so the whole trajectory is a pure function
// of seeds, construction parameters and the tick counter. Displacement
// is centered: UnitAt-0.5 spreads [-0.5,0.5) before scaling, and the
// new position clamps to the unit square rather than wrapping. Phase
// accumulates a signed fraction of phaseSpeed and is never clamped.
// The drift oracle joins every digest preimage; engines pass their
// configured oracle so distinct oracles walk distinct trajectories.
func (f *DotField) Evolve(driftScale, phaseSpeed float64, baseTimeMs, tick int64, driftOracle string) *DotField {
	t := baseTimeMs + tick*parameter.TickTimeStrideMs
	ts := strconv.FormatInt(t, 10)

	next := make([]Dot, len(f.dots))
	for i, d := range f.dots {
		digest := Hash(f.seeds.A, f.seeds.B, f.seeds.C, strconv.Itoa(d.Index), ts, driftOracle)

		dx := (UnitAt(digest[:], 0) - 0.5) * driftScale
		dy := (UnitAt(digest[:], 8) - 0.5) * driftScale
		phase := d.Phase + phaseSpeed*float64(IntAt(digest[:], 4)%1000)/1000.0

		next[i] = d.Advance(
			vmath.Clamp01(d.X+dx),
			vmath.Clamp01(d.Y+dy),
			phase,
		)
	}
	return &DotField{dots: next, seeds: f.seeds, trailLength: f.trailLength}
}

// Len reports the dot count, fixed at construction.
func (f *DotField) Len() int {
	return len(f.dots)
}

// At returns the dot at index i. Dots keep their spawn index for life,
// so At(i).Index == i on every tick.
func (f *DotField) At(i int) Dot {
	return f.dots[i]
}

// Seeds returns the genesis triple the field was built with.
func (f *DotField) Seeds() SeedTriple {
	return f.seeds
}

// TrailLength reports the per-dot trail ring capacity.
func (f *DotField) TrailLength() int {
	return f.trailLength
}

// MeanDisplacement averages the straight-line distance between
// same-index dots of two snapshots. Nil or differently sized fields
// report zero.
func MeanDisplacement(a, b *DotField) float64 {
	if a == nil || b == nil || a.Len() == 0 || a.Len() != b.Len() {
		return 0
	}
	sum := 0.0
	for i := 0; i < a.Len(); i++ {
		da, db := a.At(i), b.At(i)
		dx := db.X - da.X
		dy := db.Y - da.Y
		sum += math.Sqrt(dx*dx + dy*dy)
	}
	return sum / float64(a.Len())
}
