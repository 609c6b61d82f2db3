// Package preset loads and saves scene files: an engine configuration
// plus rendering choices and the keyframe schedule animation export
// follows. Files are TOML and marshal deterministically, so presets
// diff cleanly under version control.
package preset

import (
	"fmt"
	"os"

	"github.com/kopi21144/drifting-dots/core"
	"github.com/kopi21144/drifting-dots/engine"
	"github.com/kopi21144/drifting-dots/parameter"
	"github.com/kopi21144/drifting-dots/render"
	"github.com/kopi21144/drifting-dots/toml"
)

// Preset is one named scene. A preset file states only the keys it
// changes; everything else keeps the Default values.
type Preset struct {
	Name string `toml:"name,omitempty"`

	Capacity int `toml:"capacity"`
	Trail    int `toml:"trail"`

	DriftScale float64 `toml:"drift_scale"`
	PhaseSpeed float64 `toml:"phase_speed"`

	// BaseTimeMs pins the evolution timebase. Presets default it to
	// zero so the same file always replays the same animation; set it
	// to a wall-clock capture for a one-off run.
	BaseTimeMs int64 `toml:"base_time_ms,omitempty"`

	Palette  string `toml:"palette,omitempty"`
	Backdrop bool   `toml:"backdrop,omitempty"`

	Seeds     Seeds      `toml:"seeds"`
	Canvas    Canvas     `toml:"canvas"`
	Keyframes []Keyframe `toml:"keyframe,omitempty"`
}

// Seeds holds the three hash-chain anchors.
type Seeds struct {
	A string `toml:"a"`
	B string `toml:"b"`
	C string `toml:"c"`
}

// Canvas sizes rasterized output.
type Canvas struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Keyframe marks one tick the animate mode records. Label is free
// text surfaced in run output.
type Keyframe struct {
	Tick  int64  `toml:"tick"`
	Label string `toml:"label,omitempty"`
}

// Default returns the genesis scene. Unlike engine.DefaultConfig it
// pins BaseTimeMs to zero: preset runs replay.
func Default() Preset {
	return Preset{
		Name:       "genesis",
		Capacity:   parameter.DotCapacity,
		Trail:      parameter.TrailLength,
		DriftScale: parameter.DefaultDriftScale,
		PhaseSpeed: parameter.PhaseSpeed,
		Seeds: Seeds{
			A: parameter.GenesisSeedA,
			B: parameter.GenesisSeedB,
			C: parameter.GenesisSeedC,
		},
		Canvas: Canvas{
			Width:  parameter.CanvasWidthDefault,
			Height: parameter.CanvasHeightDefault,
		},
	}
}

// Parse decodes and validates a preset document over the defaults.
func Parse(data []byte) (*Preset, error) {
	p := Default()
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Load reads and parses the preset file at path.
func Load(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("preset: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("preset %s: %w", path, err)
	}
	return p, nil
}

// Validate applies the engine's construction bounds plus the
// preset-only rules: a known palette name and a bounded, strictly
// ascending keyframe schedule. Nothing is clamped or reordered.
func (p *Preset) Validate() error {
	if err := p.Config().Validate(); err != nil {
		return err
	}
	if _, err := render.ParsePaletteMode(p.Palette); err != nil {
		return err
	}

	if len(p.Keyframes) > parameter.MaxKeyframes {
		return &core.ConfigError{
			Param: "preset keyframes",
			Value: len(p.Keyframes),
			Want:  fmt.Sprintf("at most %d", parameter.MaxKeyframes),
		}
	}
	var last int64
	for i, kf := range p.Keyframes {
		if kf.Tick < 1 {
			return &core.ConfigError{Param: "keyframe tick", Value: kf.Tick, Want: "1 or later"}
		}
		if i > 0 && kf.Tick <= last {
			return &core.ConfigError{
				Param: "keyframe order",
				Value: kf.Tick,
				Want:  fmt.Sprintf("later than %d", last),
			}
		}
		last = kf.Tick
	}
	return nil
}

// Config maps the preset onto an engine configuration. The drift
// oracle is not preset-selectable; the hash chain is a fixed
// construction.
func (p *Preset) Config() engine.Config {
	return engine.Config{
		Capacity:     p.Capacity,
		TrailLength:  p.Trail,
		Seeds:        core.SeedTriple{A: p.Seeds.A, B: p.Seeds.B, C: p.Seeds.C},
		DriftScale:   p.DriftScale,
		PhaseSpeed:   p.PhaseSpeed,
		BaseTimeMs:   p.BaseTimeMs,
		DriftOracle:  parameter.DriftOracle,
		CanvasWidth:  p.Canvas.Width,
		CanvasHeight: p.Canvas.Height,
	}
}

// PaletteMode resolves the palette selection. Validate has already
// rejected unknown names, so the zero mode only appears for invalid
// presets.
func (p *Preset) PaletteMode() render.PaletteMode {
	mode, _ := render.ParsePaletteMode(p.Palette)
	return mode
}

// KeyframeTicks returns the recording schedule in declaration order.
// An empty schedule means the animate mode records every tick.
func (p *Preset) KeyframeTicks() []int64 {
	if len(p.Keyframes) == 0 {
		return nil
	}
	ticks := make([]int64, len(p.Keyframes))
	for i, kf := range p.Keyframes {
		ticks[i] = kf.Tick
	}
	return ticks
}

// Encode renders the preset as deterministic TOML.
func (p *Preset) Encode() ([]byte, error) {
	return toml.Marshal(p)
}

// Write encodes the preset into a file at path.
func (p *Preset) Write(path string) error {
	data, err := p.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("preset: %w", err)
	}
	return nil
}
