package parameter

import "time"

// Field Shape & Evolution
const (
	// DotCapacity is the default number of dots in a field
	DotCapacity = 4096

	// TrailLength is the default number of remembered positions per dot
	TrailLength = 32

	// DefaultDriftScale is the default maximum per-tick displacement magnitude
	// in normalized canvas units; the valid range is (0, 1]
	DefaultDriftScale = 0.0004127

	// PhaseSpeed scales the per-tick phase noise increment
	PhaseSpeed = 0.0003829

	// HashIterations is how many times the palette digest is re-hashed before
	// color extraction
	HashIterations = 3

	// TickTimeStrideMs is the fixed per-tick advance of the evolution time value.
	// The stride is arbitrary but frozen: t = baseTimeMs + tick*stride makes the
	// whole tick sequence a function of construction time and tick count alone
	TickTimeStrideMs = 17
)

// Canvas & Validation Limits
const (
	CanvasWidthDefault  = 1920
	CanvasHeightDefault = 1080

	// MinCanvasDim/MaxCanvasDim bound each canvas dimension at construction
	MinCanvasDim = 64
	MaxCanvasDim = 16384

	// MaxDotCapacity bounds custom field capacities; the default preset uses
	// DotCapacity which is well inside
	MaxDotCapacity = 65536

	// MaxTrailLength bounds per-dot trail rings, dominating field memory
	// at capacity*trail*16 bytes
	MaxTrailLength = 1024
)

// Export & Auxiliary Queue Caps
const (
	// MaxRecordedFrames is the hard cap of the export frame recorder; Add
	// rejects once the queue is full rather than evicting
	MaxRecordedFrames = 512

	// MaxKeyframes bounds the keyframe list a preset may declare
	MaxKeyframes = 256

	// MaxHistorySnapshots is the preview scrub window; a sliding window, not a
	// rejecting cap (oldest snapshots fall off)
	MaxHistorySnapshots = 600
)

// Driving Loop Timing
const (
	// AnimatorTickInterval is the default wall-clock spacing of animator ticks
	AnimatorTickInterval = 33 * time.Millisecond

	// PreviewFrameInterval is the redraw spacing of the terminal preview (~30 FPS)
	PreviewFrameInterval = 33 * time.Millisecond
)
