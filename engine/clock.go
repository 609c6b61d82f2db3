package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// PausableClock is the animation timebase: a clock whose reading
// freezes while paused and resumes without a jump. The Animator
// schedules against it so a paused preview holds its frame instead of
// fast-forwarding through the missed interval on resume.
type PausableClock struct {
	mu sync.RWMutex

	paused      atomic.Bool
	pauseStart  time.Time
	totalPaused time.Duration
}

// NewPausableClock starts a running clock at the current instant.
func NewPausableClock() *PausableClock {
	return &PausableClock{}
}

// Now returns animation time: wall time minus everything spent paused.
// While paused the reading is frozen at the pause instant.
func (c *PausableClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.paused.Load() {
		return c.pauseStart.Add(-c.totalPaused)
	}
	return time.Now().Add(-c.totalPaused)
}

// Pause freezes animation time. Pausing an already paused clock does
// nothing.
func (c *PausableClock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.paused.Load() {
		c.pauseStart = time.Now()
		c.paused.Store(true)
	}
}

// Resume unfreezes animation time, folding the pause that just ended
// into the cumulative offset.
func (c *PausableClock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.paused.Load() {
		c.totalPaused += time.Since(c.pauseStart)
		c.pauseStart = time.Time{}
		c.paused.Store(false)
	}
}

// IsPaused reports the pause state.
func (c *PausableClock) IsPaused() bool {
	return c.paused.Load()
}

// TotalPaused reports cumulative pause time, including the current
// pause if one is in progress.
func (c *PausableClock) TotalPaused() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := c.totalPaused
	if c.paused.Load() {
		total += time.Since(c.pauseStart)
	}
	return total
}
