// Package engine owns the tick loop: it holds the current field
// snapshot and the tick counter, advances both atomically from the
// caller's point of view, and fans completed ticks out to subscribers.
// An Engine is driven by exactly one goroutine at a time; the Animator
// provides a paced driver for real-time use.
package engine

import (
	"sync/atomic"

	"github.com/kopi21144/drifting-dots/core"
	"github.com/kopi21144/drifting-dots/event"
	"github.com/kopi21144/drifting-dots/status"
)

// Engine is the single-owner state container. The tick counter starts
// at 0, increases by exactly 1 per Tick and never resets; the field
// pointer is replaced wholesale each tick, never mutated in place.
type Engine struct {
	cfg   Config
	field *core.DotField
	tick  int64

	ticks *event.Hub[event.TickEvent]
	reg   *status.Registry

	statTicks *atomic.Int64
	statDots  *atomic.Int64
}

// New validates cfg, spawns the genesis field and returns a ready
// engine at tick 0. No partial construction: any invalid parameter
// fails before the field exists.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	field, err := core.NewDotField(cfg.Capacity, cfg.TrailLength, cfg.Seeds)
	if err != nil {
		return nil, err
	}

	reg := status.NewRegistry()
	e := &Engine{
		cfg:       cfg,
		field:     field,
		ticks:     event.NewHub[event.TickEvent](),
		reg:       reg,
		statTicks: reg.Ints.Get("engine.ticks"),
		statDots:  reg.Ints.Get("engine.dots"),
	}
	e.statDots.Store(int64(field.Len()))
	reg.Texts.Get("engine.fingerprint").Store(fingerprint(cfg))
	return e, nil
}

// Tick advances the animation by one step: the successor field is
// computed with the incremented counter, both are swapped in, then the
// tick event fires with the new values. Sinks run synchronously on
// the calling goroutine before Tick returns.
func (e *Engine) Tick() {
	next := e.field.Evolve(e.cfg.DriftScale, e.cfg.PhaseSpeed, e.cfg.BaseTimeMs, e.tick+1, e.cfg.DriftOracle)
	e.tick++
	e.field = next
	e.statTicks.Store(e.tick)

	e.ticks.Dispatch(event.TickEvent{Tick: e.tick, Field: next})
}

// TickN runs n elementary ticks. Each one fires its own tick event;
// there is no batching shortcut. Non-positive n does nothing.
func (e *Engine) TickN(n int) {
	for i := 0; i < n; i++ {
		e.Tick()
	}
}

// Field returns the current snapshot. The returned field is immutable
// and remains valid after further ticks.
func (e *Engine) Field() *core.DotField {
	return e.field
}

// TickCount returns the number of ticks elapsed since construction.
func (e *Engine) TickCount() int64 {
	return e.tick
}

// Config returns the engine's fixed configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// SubscribeTicks registers a sink for completed ticks and returns its
// cancellation handle. A sink registered mid-run only sees ticks
// completed after registration.
func (e *Engine) SubscribeTicks(sink func(event.TickEvent)) *event.Subscription[event.TickEvent] {
	return e.ticks.Subscribe(sink)
}

// Status exposes the engine's metrics registry for HUDs and stat
// dumps. Writers inside the engine hold cached pointers; external
// readers may range freely.
func (e *Engine) Status() *status.Registry {
	return e.reg
}
