package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/kopi21144/drifting-dots/parameter"
)

// Animator drives an Engine at a fixed tick interval on its own
// goroutine. Scheduling runs against a PausableClock, so pausing
// freezes the animation without burning CPU and resuming picks up at
// the next interval instead of replaying the backlog.
//
// While an Animator runs, the engine must only be touched from
// subscribed tick sinks; they execute on the animator goroutine, which
// is the engine's sole mutator.
type Animator struct {
	engine *Engine
	clock  *PausableClock

	interval time.Duration

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// NewAnimator pairs an engine with a fresh pausable clock. A
// non-positive interval falls back to the stock tick interval.
func NewAnimator(e *Engine, interval time.Duration) *Animator {
	if interval <= 0 {
		interval = parameter.AnimatorTickInterval
	}
	return &Animator{
		engine:   e,
		clock:    NewPausableClock(),
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start launches the tick loop. Starting a running animator does
// nothing.
func (a *Animator) Start() {
	if a.running.CompareAndSwap(false, true) {
		a.wg.Add(1)
		go a.loop()
	}
}

// Stop halts the loop and waits for the goroutine to exit. Safe to
// call more than once. Animators are single-use: a stopped animator
// cannot be restarted.
func (a *Animator) Stop() {
	a.stopOnce.Do(func() {
		if a.running.CompareAndSwap(true, false) {
			close(a.stopChan)
			a.wg.Wait()
		}
	})
}

// Pause freezes the animation clock; the loop idles until Resume.
func (a *Animator) Pause() {
	a.clock.Pause()
}

// Resume unfreezes the animation clock.
func (a *Animator) Resume() {
	a.clock.Resume()
}

// IsPaused reports whether the animation clock is frozen.
func (a *Animator) IsPaused() bool {
	return a.clock.IsPaused()
}

// Clock exposes the animator's timebase.
func (a *Animator) Clock() *PausableClock {
	return a.clock
}

// loop schedules ticks against the pausable clock using an absolute
// deadline, correcting drift instead of accumulating it. When the loop
// falls more than two intervals behind it resynchronizes to now rather
// than bursting to catch up.
func (a *Animator) loop() {
	defer a.wg.Done()

	deadline := a.clock.Now().Add(a.interval)

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		select {
		case <-a.stopChan:
			return
		default:
		}

		var sleep time.Duration
		if a.clock.IsPaused() {
			// Poll lazily while paused.
			sleep = a.interval * 2
		} else {
			now := a.clock.Now()
			if !now.Before(deadline) {
				a.engine.Tick()

				deadline = deadline.Add(a.interval)
				if now.Sub(deadline) > a.interval*2 {
					deadline = now.Add(a.interval)
				}

				sleep = deadline.Sub(a.clock.Now())
				if sleep < 0 {
					sleep = 0
				}
			} else {
				sleep = deadline.Sub(now)
			}
		}

		if sleep > 0 {
			timer.Reset(sleep)
			select {
			case <-timer.C:
			case <-a.stopChan:
				return
			}
		}
	}
}
