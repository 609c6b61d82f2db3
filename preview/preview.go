// Package preview shows a live run in the terminal: the dot field
// projected onto the cell grid with trail ghosts, a stats line, and a
// sparkline of recent per-tick drift. Space pauses, '[' and ']' scrub
// through recent history, 'q' quits.
//
// The animator goroutine owns the engine; the view only ever touches
// field snapshots handed over through tick events and the metrics
// registry, so it never races the simulation.
package preview

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/guptarohit/asciigraph"

	"github.com/kopi21144/drifting-dots/engine"
	"github.com/kopi21144/drifting-dots/event"
	"github.com/kopi21144/drifting-dots/parameter"
	"github.com/kopi21144/drifting-dots/render"
	"github.com/kopi21144/drifting-dots/status"
)

// Options tunes a Preview. The zero value uses the hash palette, the
// stock tick interval, and the stock history depth.
type Options struct {
	// Palette selects the per-index color derivation.
	Palette render.PaletteMode

	// Interval is the animator tick interval. Zero or negative uses
	// the stock rate.
	Interval time.Duration

	// History caps the scrub-back ring. Zero or negative uses the
	// stock cap.
	History int
}

// Preview runs an engine under an animator and draws it into a tcell
// screen. Construct with New, then Run blocks until the user quits.
type Preview struct {
	engine   *engine.Engine
	animator *engine.Animator
	table    []render.RGB
	fp       string

	ticks chan event.TickEvent

	hist   *history
	scrub  int // 0 views the newest snapshot
	last   snapshot
	series []float64

	statPaused *atomic.Bool
	statScrub  *atomic.Int64
	statDrift  *status.Float
}

// New wires a preview around an engine. The engine must not be
// running yet: New reads its genesis field directly to seed the
// history ring, then Run hands the engine to an animator.
func New(e *engine.Engine, opts Options) *Preview {
	hist := opts.History
	if hist <= 0 {
		hist = parameter.MaxHistorySnapshots
	}

	reg := e.Status()
	p := &Preview{
		engine:     e,
		animator:   engine.NewAnimator(e, opts.Interval),
		table:      render.NewPalette(opts.Palette).Table(e.Config().Capacity),
		fp:         e.Fingerprint(),
		ticks:      make(chan event.TickEvent, 64),
		hist:       newHistory(hist),
		statPaused: reg.Bools.Get("preview.paused"),
		statScrub:  reg.Ints.Get("preview.scrub"),
		statDrift:  reg.Floats.Get("preview.drift"),
	}

	genesis := snapshot{tick: e.TickCount(), field: e.Field()}
	p.hist.push(genesis)
	p.last = genesis
	return p
}

// Run opens the terminal screen and blocks inside the view loop until
// the user quits or screen setup fails.
func (p *Preview) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	defer screen.Fini()
	return p.run(screen)
}

// run drives the view loop against an initialized screen. Split from
// Run so tests can inject a simulation screen.
func (p *Preview) run(screen tcell.Screen) error {
	screen.SetStyle(p.baseStyle())
	screen.Clear()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	sub := p.engine.SubscribeTicks(p.sink)
	defer sub.Cancel()

	p.animator.Start()
	defer p.animator.Stop()

	frame := time.NewTicker(parameter.PreviewFrameInterval)
	defer frame.Stop()

	for {
		select {
		case ev := <-events:
			switch tev := ev.(type) {
			case *tcell.EventKey:
				if !p.handleKey(tev) {
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case tev := <-p.ticks:
			p.absorb(tev)
		case <-frame.C:
			p.drainTicks()
			p.draw(screen)
			screen.Show()
		}
	}
}

// sink runs on the animator goroutine and must never block it. When
// the view falls behind, the oldest pending event is dropped so the
// channel always keeps the newest ticks.
func (p *Preview) sink(ev event.TickEvent) {
	for {
		select {
		case p.ticks <- ev:
			return
		default:
		}
		select {
		case <-p.ticks:
		default:
		}
	}
}

// drainTicks absorbs any backlog before a draw so the view renders the
// newest state the animator has produced.
func (p *Preview) drainTicks() {
	for {
		select {
		case tev := <-p.ticks:
			p.absorb(tev)
		default:
			return
		}
	}
}

// absorb folds one tick event into the history ring and the drift
// series.
func (p *Preview) absorb(ev event.TickEvent) {
	next := snapshot{tick: ev.Tick, field: ev.Field}
	if p.last.field != nil {
		p.pushDrift(meanDisplacement(p.last, next))
	}
	p.last = next
	p.hist.push(next)
}

func (p *Preview) pushDrift(v float64) {
	p.statDrift.Store(v)
	if len(p.series) == parameter.SparklineWidth {
		copy(p.series, p.series[1:])
		p.series = p.series[:len(p.series)-1]
	}
	p.series = append(p.series, v)
}

// handleKey reacts to one key event. Returns false when the view
// should shut down.
func (p *Preview) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return false
		case ' ':
			p.togglePause()
		case '[':
			p.scrubBy(1)
		case ']':
			p.scrubBy(-1)
		}
	}
	return true
}

// togglePause flips the animation clock. Resuming snaps the view back
// to live.
func (p *Preview) togglePause() {
	if p.animator.IsPaused() {
		p.scrub = 0
		p.statScrub.Store(0)
		p.animator.Resume()
		p.statPaused.Store(false)
	} else {
		p.animator.Pause()
		p.statPaused.Store(true)
	}
}

// scrubBy moves the view through history; positive steps go further
// back. Scrubbing pauses the run so the window under the view stops
// sliding.
func (p *Preview) scrubBy(step int) {
	if !p.animator.IsPaused() {
		p.animator.Pause()
		p.statPaused.Store(true)
	}
	s := p.scrub + step
	if s < 0 {
		s = 0
	}
	if top := p.hist.size() - 1; s > top {
		s = top
	}
	p.scrub = s
	p.statScrub.Store(int64(s))
}

// draw repaints the grid and the HUD from the snapshot the scrub
// offset selects.
func (p *Preview) draw(screen tcell.Screen) {
	w, h := screen.Size()
	if w < 1 || h < 1 {
		return
	}

	snap, ok := p.hist.at(p.scrub)
	if !ok {
		if snap, ok = p.hist.at(0); !ok {
			return
		}
	}

	hud := hudRows(h)
	gridH := h - hud
	paused := p.animator.IsPaused()

	screen.Clear()
	if gridH > 0 {
		cells := projectField(snap.field, w, gridH, p.table)
		for y := 0; y < gridH; y++ {
			for x := 0; x < w; x++ {
				c := cells[y*w+x]
				if !c.lit {
					continue
				}
				fg := c.fg
				if paused {
					fg = render.Grayscale(fg)
				}
				screen.SetContent(x, y, c.ch, nil, p.dotStyle(fg))
			}
		}
	}
	if hud > 0 {
		p.drawHUD(screen, w, h, hud, snap, paused)
	}
}

// hudRows decides how much of the bottom belongs to the HUD: the
// stats line needs a screen of at least five rows, the sparkline
// block joins on taller screens.
func hudRows(h int) int {
	const sparkRows = parameter.SparklineHeight + 2 // plot rows plus caption
	if h >= 16 {
		return 1 + sparkRows
	}
	if h >= 5 {
		return 1
	}
	return 0
}

func (p *Preview) drawHUD(screen tcell.Screen, w, h, rows int, snap snapshot, paused bool) {
	top := h - rows

	line := fmt.Sprintf("tick %d  dots %d  drift %.3g  %s",
		snap.tick, snap.field.Len(), p.statDrift.Load(), p.fp)
	if paused {
		line += "  PAUSED"
		if p.scrub > 0 {
			line += fmt.Sprintf(" -%d", p.scrub)
		}
	}
	line += "   space pause  [ ] scrub  q quit"
	p.drawText(screen, 0, top, w, line, p.baseStyle())

	if rows < 2 || len(p.series) < 2 {
		return
	}
	gw := parameter.SparklineWidth
	if m := w - 12; m < gw {
		gw = m
	}
	if gw < 8 {
		return
	}

	graph := asciigraph.Plot(p.series,
		asciigraph.Height(parameter.SparklineHeight),
		asciigraph.Width(gw),
		asciigraph.Caption("mean drift per tick"),
	)
	dim := p.baseStyle().Dim(true)
	for i, gl := range strings.Split(graph, "\n") {
		y := top + 1 + i
		if y >= h {
			break
		}
		p.drawText(screen, 0, y, w, gl, dim)
	}
}

// drawText writes s at (x, y), clipping at maxW columns.
func (p *Preview) drawText(screen tcell.Screen, x, y, maxW int, s string, style tcell.Style) {
	for _, r := range s {
		if x >= maxW {
			return
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// baseStyle paints the canvas background color behind everything so
// the terminal matches the raster output.
func (p *Preview) baseStyle() tcell.Style {
	return tcell.StyleDefault.
		Background(tcell.NewRGBColor(parameter.BackgroundR, parameter.BackgroundG, parameter.BackgroundB)).
		Foreground(tcell.ColorWhite)
}

func (p *Preview) dotStyle(c render.RGB) tcell.Style {
	return p.baseStyle().Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}
