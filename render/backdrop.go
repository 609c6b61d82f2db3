package render

import (
	"image"

	perlin "github.com/aquilax/go-perlin"

	"github.com/kopi21144/drifting-dots/core"
	"github.com/kopi21144/drifting-dots/parameter"
)

// Backdrop is a static perlin-shaded underlay rendered once per run.
// The noise seed derives from the field seeds, so the backdrop is as
// reproducible as the dots drifting over it.
type Backdrop struct {
	img *image.RGBA
}

// BackdropSeed folds a seed triple into the perlin generator's seed.
func BackdropSeed(seeds core.SeedTriple) int64 {
	d := core.Hash(seeds.A, seeds.B, seeds.C)
	return int64(core.IntAt(d[:], 0))
}

// NewBackdrop rasterizes the shaded underlay for a canvas. The noise
// is screen-blended over the background color, capped so dots stay
// readable on top.
func NewBackdrop(width, height int, seed int64) *Backdrop {
	p := perlin.NewPerlin(
		parameter.BackdropNoiseAlpha,
		parameter.BackdropNoiseBeta,
		parameter.BackdropOctaves,
		seed,
	)

	bg := Background()
	tint := RGB{R: 0x1c, G: 0x20, B: 0x3a}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		fy := float64(y) / float64(height) * parameter.BackdropScale
		for x := 0; x < width; x++ {
			fx := float64(x) / float64(width) * parameter.BackdropScale

			// Noise2D sits in [-1,1]; fold to [0,1] then cap.
			shade := (p.Noise2D(fx, fy) + 1) / 2
			c := Screen(bg, tint, shade*parameter.BackdropAlphaMax)

			i := img.PixOffset(x, y)
			img.Pix[i+0] = c.R
			img.Pix[i+1] = c.G
			img.Pix[i+2] = c.B
			img.Pix[i+3] = 0xff
		}
	}
	return &Backdrop{img: img}
}

// Image returns the precomputed underlay. Callers must not modify it.
func (b *Backdrop) Image() *image.RGBA {
	return b.img
}
