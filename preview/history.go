package preview

import "github.com/kopi21144/drifting-dots/core"

// snapshot pairs a tick counter with the immutable field it produced.
type snapshot struct {
	tick  int64
	field *core.DotField
}

// history keeps the most recent snapshots in a fixed ring so the view
// can scrub backwards while the run continues. A full ring evicts its
// oldest entry; scrubbing walks a sliding window, not an archive.
type history struct {
	ring  []snapshot
	head  int // next slot to overwrite
	count int
}

func newHistory(capacity int) *history {
	if capacity < 1 {
		capacity = 1
	}
	return &history{ring: make([]snapshot, capacity)}
}

// push records a snapshot, evicting the oldest when the ring is full.
func (h *history) push(s snapshot) {
	h.ring[h.head] = s
	h.head = (h.head + 1) % len(h.ring)
	if h.count < len(h.ring) {
		h.count++
	}
}

// at returns the snapshot back steps behind the newest one, where 0 is
// the newest. Reports false when the ring holds nothing that old.
func (h *history) at(back int) (snapshot, bool) {
	if back < 0 || back >= h.count {
		return snapshot{}, false
	}
	n := len(h.ring)
	idx := ((h.head-1-back)%n + n) % n
	return h.ring[idx], true
}

// size reports how many snapshots the ring currently holds.
func (h *history) size() int {
	return h.count
}

// meanDisplacement measures how far the field moved between two
// snapshots, normalized to a single tick when they sit more than one
// tick apart.
func meanDisplacement(prev, next snapshot) float64 {
	span := next.tick - prev.tick
	if span < 1 {
		span = 1
	}
	return core.MeanDisplacement(prev.field, next.field) / float64(span)
}
