package render

import (
	"crypto/sha256"
	"fmt"
	"strconv"

	hsluv "github.com/hsluv/hsluv-go"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/kopi21144/drifting-dots/core"
	"github.com/kopi21144/drifting-dots/parameter"
)

// PaletteMode selects how a dot's digest becomes a color.
type PaletteMode int

const (
	// ModeHash XOR-blends raw digest bytes, the original derivation.
	ModeHash PaletteMode = iota
	// ModeVivid maps the digest into HSV space with saturation and
	// value floors, giving brighter, fuller colors.
	ModeVivid
	// ModePastel maps the digest through HSLuv so perceived lightness
	// stays even across hues.
	ModePastel
)

// String returns the mode's preset/CLI name.
func (m PaletteMode) String() string {
	switch m {
	case ModeHash:
		return "hash"
	case ModeVivid:
		return "vivid"
	case ModePastel:
		return "pastel"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParsePaletteMode maps a preset/CLI name to its mode.
func ParsePaletteMode(s string) (PaletteMode, error) {
	switch s {
	case "hash", "":
		return ModeHash, nil
	case "vivid":
		return ModeVivid, nil
	case "pastel":
		return ModePastel, nil
	default:
		return ModeHash, fmt.Errorf("render: unknown palette mode %q", s)
	}
}

// Palette derives stable per-index colors from the hash chain. The
// derivation is independent of field state: index i keeps its color
// for the whole run, and identical anchors reproduce identical
// palettes across runs.
type Palette struct {
	Anchor     string
	Iterations int
	Mode       PaletteMode
}

// NewPalette returns the stock palette for a mode: the original
// anchor, re-hashed the original number of iterations.
func NewPalette(mode PaletteMode) Palette {
	return Palette{
		Anchor:     parameter.PaletteAnchor,
		Iterations: parameter.HashIterations,
		Mode:       mode,
	}
}

// digest computes the per-index palette digest: anchor plus decimal
// index, then re-hashed raw until the iteration budget is spent.
func (p Palette) digest(index int) [32]byte {
	d := core.Hash(p.Anchor, strconv.Itoa(index))
	for i := 1; i < p.Iterations; i++ {
		d = sha256.Sum256(d[:])
	}
	return d
}

// ColorFor derives the color for one dot index.
func (p Palette) ColorFor(index int) RGB {
	d := p.digest(index)

	switch p.Mode {
	case ModeVivid:
		h := core.UnitAt(d[:], 0) * 360
		s := 0.55 + 0.45*core.UnitAt(d[:], 4)
		v := 0.70 + 0.30*core.UnitAt(d[:], 8)
		r, g, b := colorful.Hsv(h, s, v).RGB255()
		return RGB{R: r, G: g, B: b}

	case ModePastel:
		h := core.UnitAt(d[:], 0) * 360
		s := 55 + 35*core.UnitAt(d[:], 4)
		l := 55 + 25*core.UnitAt(d[:], 8)
		r, g, b := hsluv.HsluvToRGB(h, s, l)
		return RGB{R: clamp(r * 255), G: clamp(g * 255), B: clamp(b * 255)}

	default:
		return FromNRGBA(core.ColorAt(d[:]))
	}
}

// Table precomputes colors for indexes 0..n-1 so render loops avoid
// re-digesting every frame.
func (p Palette) Table(n int) []RGB {
	if n < 0 {
		n = 0
	}
	table := make([]RGB, n)
	for i := range table {
		table[i] = p.ColorFor(i)
	}
	return table
}
