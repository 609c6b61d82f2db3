package engine

import "fmt"

// Stats is a read-only projection of engine state at one instant.
// Taking stats never mutates anything.
type Stats struct {
	Tick         int64
	Dots         int
	TrailLength  int
	CanvasWidth  int
	CanvasHeight int
	DriftScale   float64
	PhaseSpeed   float64
	Fingerprint  string
}

// Stats snapshots the engine's current counters and identity.
func (e *Engine) Stats() Stats {
	return Stats{
		Tick:         e.tick,
		Dots:         e.field.Len(),
		TrailLength:  e.cfg.TrailLength,
		CanvasWidth:  e.cfg.CanvasWidth,
		CanvasHeight: e.cfg.CanvasHeight,
		DriftScale:   e.cfg.DriftScale,
		PhaseSpeed:   e.cfg.PhaseSpeed,
		Fingerprint:  e.Fingerprint(),
	}
}

// Fingerprint identifies a run: the first eight characters of each
// seed joined with ':' plus the base time. Two engines with the same
// fingerprint walk byte-identical trajectories when their remaining
// config matches.
func (e *Engine) Fingerprint() string {
	return fingerprint(e.cfg)
}

func fingerprint(cfg Config) string {
	return fmt.Sprintf("%s:%s:%s@%d",
		seedPrefix(cfg.Seeds.A),
		seedPrefix(cfg.Seeds.B),
		seedPrefix(cfg.Seeds.C),
		cfg.BaseTimeMs,
	)
}

// seedPrefix truncates a seed to its first eight bytes. Default seeds
// are ASCII hex strings, so byte slicing never splits a rune.
func seedPrefix(s string) string {
	if len(s) > 8 {
		return s[:8]
	}
	return s
}

// String formats stats as a single log-friendly line.
func (s Stats) String() string {
	return fmt.Sprintf("tick=%d dots=%d trail=%d canvas=%dx%d drift=%g phase=%g fingerprint=%s",
		s.Tick, s.Dots, s.TrailLength, s.CanvasWidth, s.CanvasHeight, s.DriftScale, s.PhaseSpeed, s.Fingerprint)
}
