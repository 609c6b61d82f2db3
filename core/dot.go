package core

import "math"

// Dot is a single particle in the field. Position lives in normalized
// [0,1] space, phase is an unbounded accumulator sampled by renderers
// for pulsing. A Dot is a value: Advance returns a fresh Dot with its
// own trail storage, so snapshots taken from earlier ticks stay intact.
type Dot struct {
	X, Y  float64
	Phase float64
	Index int

	trailX []float64
	trailY []float64
	head   int // next ring slot to overwrite
}

// Spawn places dot index on the deterministic double-wave layout used
// for tick zero. The layout parameter u walks [0,1) across the field,
// x follows two sine periods and y three half cosine periods, both
// squeezed into the central [0.2,0.8] band. The trail ring starts
// fully filled with the spawn position so early reads never expose
// uninitialized slots. A trail length below one is raised to one.
func Spawn(index, capacity, trailLength int) Dot {
	if capacity < 1 {
		capacity = 1
	}
	if trailLength < 1 {
		trailLength = 1
	}
	u := float64(index) / float64(capacity)
	x := 0.2 + 0.6*(0.5+0.5*math.Sin(u*4*math.Pi))
	y := 0.2 + 0.6*(0.5+0.5*math.Cos(u*3*math.Pi))

	d := Dot{
		X:      x,
		Y:      y,
		Phase:  u * 2 * math.Pi,
		Index:  index,
		trailX: make([]float64, trailLength),
		trailY: make([]float64, trailLength),
	}
	for i := range d.trailX {
		d.trailX[i] = x
		d.trailY[i] = y
	}
	return d
}

// Advance records the current position into the trail ring and returns
// the successor dot at the new position. The ring therefore lags one
// tick behind the head: immediately after Advance, TrailAt(0) is where
// the dot stood before the move.
func (d Dot) Advance(x, y, phase float64) Dot {
	n := len(d.trailX)
	tx := make([]float64, n)
	ty := make([]float64, n)
	copy(tx, d.trailX)
	copy(ty, d.trailY)
	tx[d.head] = d.X
	ty[d.head] = d.Y

	return Dot{
		X:      x,
		Y:      y,
		Phase:  phase,
		Index:  d.Index,
		trailX: tx,
		trailY: ty,
		head:   (d.head + 1) % n,
	}
}

// TrailAt returns the recorded position i steps into the past, where 0
// is the most recently recorded slot. Indexes outside [0,TrailLength)
// degrade to the live position instead of failing.
func (d Dot) TrailAt(i int) (x, y float64) {
	n := len(d.trailX)
	if i < 0 || i >= n {
		return d.X, d.Y
	}
	idx := ((d.head-1-i)%n + n) % n
	return d.trailX[idx], d.trailY[idx]
}

// TrailLength reports the fixed capacity of the trail ring.
func (d Dot) TrailLength() int {
	return len(d.trailX)
}
