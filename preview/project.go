package preview

import (
	"github.com/kopi21144/drifting-dots/core"
	"github.com/kopi21144/drifting-dots/parameter"
	"github.com/kopi21144/drifting-dots/render"
	"github.com/kopi21144/drifting-dots/vmath"
)

// cell is one character cell of the projected view.
type cell struct {
	ch   rune
	fg   render.RGB
	lit  bool
	head bool
}

// cellAt buckets a unit coordinate into one of n cells. The mapping
// mirrors the rasterizer's pixel scaling; 1.0 lands in the last cell
// instead of one past it.
func cellAt(v float64, n int) int {
	i := int(v * float64(n))
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// projectField composites a field onto a w by h cell grid. Trail
// ghosts go in first, faded by age and summed where they overlap; dot
// heads go in second so they always own the cell's rune and carry the
// full palette color. Row-major, length w*h.
func projectField(f *core.DotField, w, h int, table []render.RGB) []cell {
	cells := make([]cell, w*h)
	if f == nil || w < 1 || h < 1 {
		return cells
	}

	depth := parameter.PreviewTrailDepth
	if tl := f.TrailLength(); depth > tl {
		depth = tl
	}

	for i := 0; i < f.Len(); i++ {
		d := f.At(i)
		col := colorFor(table, i)

		for age := depth - 1; age >= 0; age-- {
			t := 0.0
			if depth > 1 {
				t = float64(age) / float64(depth-1)
			}
			fade := vmath.Lerp(parameter.TrailMaxAlpha, parameter.TrailMinAlpha, t)
			ghost := render.Scale(col, fade)

			tx, ty := d.TrailAt(age)
			c := &cells[cellAt(ty, h)*w+cellAt(tx, w)]
			if c.lit {
				c.fg = render.Add(c.fg, ghost, 1)
			} else {
				c.ch = parameter.PreviewTrailRune
				c.fg = ghost
				c.lit = true
			}
		}
	}

	for i := 0; i < f.Len(); i++ {
		d := f.At(i)
		col := colorFor(table, i)

		c := &cells[cellAt(d.Y, h)*w+cellAt(d.X, w)]
		if c.head {
			c.fg = render.Add(c.fg, col, 1)
		} else {
			c.ch = parameter.PreviewDotRune
			c.fg = col
			c.lit = true
			c.head = true
		}
	}

	return cells
}

// colorFor guards table lookups; indexes past the table reuse the
// digest derivation's out-of-range fallback color.
func colorFor(table []render.RGB, i int) render.RGB {
	if i < 0 || i >= len(table) {
		return render.RGB{R: 128, G: 128, B: 200}
	}
	return table[i]
}
