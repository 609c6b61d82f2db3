// Package event carries the engine's observer plumbing: typed events
// for completed ticks and rendered frames, and a generic Hub that
// fans them out to subscribed sinks in registration order.
package event

import (
	"image"

	"github.com/kopi21144/drifting-dots/core"
)

// TickEvent describes one completed tick: the counter value after the
// advance and the immutable field snapshot it produced. Sinks may hold
// the field indefinitely; it is never mutated after dispatch.
type TickEvent struct {
	Tick  int64
	Field *core.DotField
}

// FrameEvent describes one rasterized frame. The image belongs to the
// sink once delivered; producers allocate a fresh buffer per frame.
type FrameEvent struct {
	Tick  int64
	Image *image.RGBA
}
