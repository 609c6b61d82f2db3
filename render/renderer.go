package render

import (
	"fmt"
	"image"
	"image/draw"
	"math"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gogpu/gg"

	"github.com/kopi21144/drifting-dots/core"
	"github.com/kopi21144/drifting-dots/parameter"
	"github.com/kopi21144/drifting-dots/status"
	"github.com/kopi21144/drifting-dots/vmath"
)

// trailRadiusRatio shrinks trail circles relative to the dot head.
const trailRadiusRatio = 0.6

// Options configure a Renderer. Width and Height are validated like
// engine canvas dimensions; everything else has a working zero value.
type Options struct {
	Width  int
	Height int

	// Palette defaults to the stock hash palette when zero.
	Palette Palette

	// Backdrop enables the perlin underlay, seeded from Seeds.
	Backdrop bool
	Seeds    core.SeedTriple

	// Status receives render.frames and render.nanos when non-nil.
	Status *status.Registry
}

// Renderer rasterizes field snapshots. It is deterministic: the same
// field with the same options yields a byte-identical image.
type Renderer struct {
	width  int
	height int

	palette Palette
	table   []RGB     // per-index colors, grown on demand
	jitter  []float64 // per-index trail alpha factors, grown on demand

	backdrop *Backdrop

	statFrames *atomic.Int64
	statNanos  *atomic.Int64
}

// NewRenderer validates opts and precomputes the backdrop if enabled.
func NewRenderer(opts Options) (*Renderer, error) {
	if opts.Width < parameter.MinCanvasDim || opts.Width > parameter.MaxCanvasDim {
		return nil, &core.ConfigError{
			Param: "canvas width",
			Value: opts.Width,
			Want:  fmt.Sprintf("%d..%d", parameter.MinCanvasDim, parameter.MaxCanvasDim),
		}
	}
	if opts.Height < parameter.MinCanvasDim || opts.Height > parameter.MaxCanvasDim {
		return nil, &core.ConfigError{
			Param: "canvas height",
			Value: opts.Height,
			Want:  fmt.Sprintf("%d..%d", parameter.MinCanvasDim, parameter.MaxCanvasDim),
		}
	}

	pal := opts.Palette
	if pal.Anchor == "" {
		pal = NewPalette(pal.Mode)
	}

	r := &Renderer{
		width:   opts.Width,
		height:  opts.Height,
		palette: pal,
	}
	if opts.Backdrop {
		r.backdrop = NewBackdrop(opts.Width, opts.Height, BackdropSeed(opts.Seeds))
	}
	if opts.Status != nil {
		r.statFrames = opts.Status.Ints.Get("render.frames")
		r.statNanos = opts.Status.Ints.Get("render.nanos")
	}
	return r, nil
}

// Frame rasterizes one field snapshot: backdrop or flat background,
// then per dot the trail ring faded oldest to newest and a head circle
// pulsed by phase. Dots draw in index order, so overlaps resolve the
// same way every run.
func (r *Renderer) Frame(f *core.DotField) *image.RGBA {
	var start time.Time
	if r.statNanos != nil {
		start = time.Now()
	}

	dc := gg.NewContext(r.width, r.height)
	if r.backdrop != nil {
		dc.DrawImage(r.backdrop.Image(), 0, 0)
	} else {
		bg := Background()
		dc.SetRGB255(int(bg.R), int(bg.G), int(bg.B))
		dc.Clear()
	}

	r.ensureTables(f.Len())

	// Positions are normalized; the last pixel row/column is the 1.0
	// edge so clamped dots stay visible instead of clipping away.
	sx := float64(r.width - 1)
	sy := float64(r.height - 1)

	for i := 0; i < f.Len(); i++ {
		d := f.At(i)
		c := r.table[i]

		n := d.TrailLength()
		for depth := n - 1; depth >= 0; depth-- {
			tx, ty := d.TrailAt(depth)

			age := 1.0
			if n > 1 {
				age = 1 - float64(depth)/float64(n-1)
			}
			alpha := vmath.Lerp(parameter.TrailMinAlpha, parameter.TrailMaxAlpha, age) * r.jitter[i]

			dc.SetRGBA(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, alpha)
			dc.DrawCircle(tx*sx, ty*sy, parameter.DotBaseRadius*trailRadiusRatio)
			dc.Fill()
		}

		radius := parameter.DotBaseRadius * (1 + parameter.DotPulseAmplitude*math.Sin(d.Phase))
		dc.SetRGBA(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, parameter.DotAlpha)
		dc.DrawCircle(d.X*sx, d.Y*sy, radius)
		dc.Fill()
	}

	img, ok := dc.Image().(*image.RGBA)
	if !ok {
		b := dc.Image().Bounds()
		img = image.NewRGBA(b)
		draw.Draw(img, b, dc.Image(), b.Min, draw.Src)
	}

	if r.statFrames != nil {
		r.statFrames.Add(1)
		r.statNanos.Add(time.Since(start).Nanoseconds())
	}
	return img
}

// Size reports the canvas dimensions.
func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}

// ensureTables grows the per-index color and jitter tables to cover n
// dots. The jitter factor dims each dot's trail by a stable amount
// derived from the trail salt, so trails shimmer per dot rather than
// uniformly.
func (r *Renderer) ensureTables(n int) {
	if len(r.table) >= n {
		return
	}
	r.table = r.palette.Table(n)
	r.jitter = make([]float64, n)
	for i := range r.jitter {
		d := core.Hash(parameter.TrailHashSalt, strconv.Itoa(i))
		r.jitter[i] = 1 - parameter.TrailJitterDepth*core.UnitAt(d[:], 0)
	}
}
