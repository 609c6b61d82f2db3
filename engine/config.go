package engine

import (
	"fmt"
	"time"

	"github.com/kopi21144/drifting-dots/core"
	"github.com/kopi21144/drifting-dots/parameter"
)

// Config carries every knob an Engine is built from. All fields are
// fixed for the engine's lifetime; there is no reconfiguration path.
type Config struct {
	// Capacity is the dot count, fixed at genesis.
	Capacity int

	// TrailLength is the per-dot trail ring size.
	TrailLength int

	// Seeds anchor the hash chain. Identical seeds with an identical
	// BaseTimeMs replay the identical animation.
	Seeds core.SeedTriple

	// DriftScale spreads per-tick displacement across
	// [-DriftScale/2, DriftScale/2]. Must sit in (0,1].
	DriftScale float64

	// PhaseSpeed scales per-tick phase accumulation.
	PhaseSpeed float64

	// BaseTimeMs is the construction timestamp in Unix milliseconds.
	// It joins every digest preimage, so it acts as a fourth seed.
	BaseTimeMs int64

	// DriftOracle joins every displacement digest preimage.
	DriftOracle string

	// CanvasWidth and CanvasHeight size rasterized output in pixels.
	CanvasWidth  int
	CanvasHeight int
}

// DefaultConfig returns the stock configuration with BaseTimeMs
// captured from the wall clock, so every default engine runs a unique
// animation. Replayable runs set BaseTimeMs explicitly instead.
func DefaultConfig() Config {
	return Config{
		Capacity:     parameter.DotCapacity,
		TrailLength:  parameter.TrailLength,
		Seeds:        core.DefaultSeeds(),
		DriftScale:   parameter.DefaultDriftScale,
		PhaseSpeed:   parameter.PhaseSpeed,
		BaseTimeMs:   time.Now().UnixMilli(),
		DriftOracle:  parameter.DriftOracle,
		CanvasWidth:  parameter.CanvasWidthDefault,
		CanvasHeight: parameter.CanvasHeightDefault,
	}
}

// Validate checks every bound the engine enforces at construction.
// Violations return a *core.ConfigError; nothing is clamped.
func (c Config) Validate() error {
	if c.Capacity < 1 || c.Capacity > parameter.MaxDotCapacity {
		return &core.ConfigError{
			Param: "dot capacity",
			Value: c.Capacity,
			Want:  fmt.Sprintf("1..%d", parameter.MaxDotCapacity),
		}
	}
	if c.TrailLength < 1 || c.TrailLength > parameter.MaxTrailLength {
		return &core.ConfigError{
			Param: "trail length",
			Value: c.TrailLength,
			Want:  fmt.Sprintf("1..%d", parameter.MaxTrailLength),
		}
	}
	if c.DriftScale <= 0 || c.DriftScale > 1 {
		return &core.ConfigError{
			Param: "drift scale",
			Value: c.DriftScale,
			Want:  "(0,1]",
		}
	}
	if c.CanvasWidth < parameter.MinCanvasDim || c.CanvasWidth > parameter.MaxCanvasDim {
		return &core.ConfigError{
			Param: "canvas width",
			Value: c.CanvasWidth,
			Want:  fmt.Sprintf("%d..%d", parameter.MinCanvasDim, parameter.MaxCanvasDim),
		}
	}
	if c.CanvasHeight < parameter.MinCanvasDim || c.CanvasHeight > parameter.MaxCanvasDim {
		return &core.ConfigError{
			Param: "canvas height",
			Value: c.CanvasHeight,
			Want:  fmt.Sprintf("%d..%d", parameter.MinCanvasDim, parameter.MaxCanvasDim),
		}
	}
	return nil
}
