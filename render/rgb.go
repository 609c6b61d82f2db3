// Package render turns field snapshots into pixels: a deterministic
// palette keyed off the hash chain, an optional perlin backdrop, and a
// rasterizer that draws trails and phase-pulsed dot heads. The RGB
// blend toolkit here also backs the terminal preview, which composites
// cells by hand.
package render

import (
	"image/color"

	"github.com/kopi21144/drifting-dots/parameter"
)

// RGB is a plain 8-bit color triple. Alpha lives with the caller;
// blend functions take it as an explicit parameter instead.
type RGB struct {
	R, G, B uint8
}

// FromNRGBA drops the alpha channel.
func FromNRGBA(c color.NRGBA) RGB {
	return RGB{R: c.R, G: c.G, B: c.B}
}

// NRGBA attaches an alpha channel.
func (c RGB) NRGBA(alpha uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: alpha}
}

// clamp converts a float channel to uint8 without wrapping.
func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v)
}

// Blend alpha-blends src over c. Alpha 0 and 1 return early.
func Blend(c, src RGB, alpha float64) RGB {
	if alpha >= 1.0 {
		return src
	}
	if alpha <= 0.0 {
		return c
	}

	inv := 1.0 - alpha
	return RGB{
		R: uint8(float64(src.R)*alpha + float64(c.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(c.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(c.B)*inv),
	}
}

// addChannel is addition with clamping.
func addChannel(a, b uint8) uint8 {
	sum := int(a) + int(b)
	if sum > 255 {
		return 255
	}
	return uint8(sum)
}

// Add performs additive blend with clamping, then alpha-blends the
// result over c. Overlapping dot heads brighten instead of occluding.
func Add(c, src RGB, alpha float64) RGB {
	if alpha <= 0.0 {
		return c
	}

	added := RGB{
		R: addChannel(c.R, src.R),
		G: addChannel(c.G, src.G),
		B: addChannel(c.B, src.B),
	}
	if alpha >= 1.0 {
		return added
	}
	return Blend(c, added, alpha)
}

// fastDiv255 approximates x / 255 using integer math.
func fastDiv255(x int) int {
	return (x + (x >> 8) + 1) >> 8
}

// Screen blends 1-(1-dst)*(1-src), lightening without ever clipping.
// Used to lay noise shading over the background.
func Screen(c, src RGB, alpha float64) RGB {
	if alpha <= 0.0 {
		return c
	}

	screened := RGB{
		R: uint8(255 - fastDiv255((255-int(c.R))*(255-int(src.R)))),
		G: uint8(255 - fastDiv255((255-int(c.G))*(255-int(src.G)))),
		B: uint8(255 - fastDiv255((255-int(c.B))*(255-int(src.B)))),
	}
	if alpha >= 1.0 {
		return screened
	}
	return Blend(c, screened, alpha)
}

// Scale multiplies all channels by factor, clamped so factors above
// 1.0 cannot wrap.
func Scale(c RGB, factor float64) RGB {
	return RGB{
		R: clamp(float64(c.R) * factor),
		G: clamp(float64(c.G) * factor),
		B: clamp(float64(c.B) * factor),
	}
}

// Grayscale converts to gray with Rec. 601 luma coefficients.
func Grayscale(c RGB) RGB {
	gray := uint8((int(c.R)*299 + int(c.G)*587 + int(c.B)*114) / 1000)
	return RGB{R: gray, G: gray, B: gray}
}

// Lerp interpolates between two colors; t=0 returns a, t=1 returns b.
func Lerp(a, b RGB, t float64) RGB {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return RGB{
		R: uint8(float64(a.R) + t*float64(int(b.R)-int(a.R))),
		G: uint8(float64(a.G) + t*float64(int(b.G)-int(a.G))),
		B: uint8(float64(a.B) + t*float64(int(b.B)-int(a.B))),
	}
}

// Background returns the stock deep-ink clear color.
func Background() RGB {
	return RGB{R: parameter.BackgroundR, G: parameter.BackgroundG, B: parameter.BackgroundB}
}
