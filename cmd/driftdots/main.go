// driftdots runs the drifting-dots engine from the command line:
// rasterize one frame, record an animation, export a text dump, or
// print run statistics. Data goes to -out (or stdout for dumps);
// diagnostics always go to stderr.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/guptarohit/asciigraph"

	"github.com/kopi21144/drifting-dots/core"
	"github.com/kopi21144/drifting-dots/engine"
	"github.com/kopi21144/drifting-dots/event"
	"github.com/kopi21144/drifting-dots/export"
	"github.com/kopi21144/drifting-dots/parameter"
	"github.com/kopi21144/drifting-dots/preset"
	"github.com/kopi21144/drifting-dots/render"
)

// defaultTicks covers eight seconds of animation at the stock tick
// interval.
const defaultTicks = 240

var (
	modeFlag   = flag.String("mode", "render", "run mode: render, animate, dump, stats")
	presetFlag = flag.String("preset", "", "preset file or builtin scene name; empty uses the genesis preset")
	ticksFlag  = flag.Int("ticks", 0, "ticks to advance (0 uses the preset keyframes or a stock count)")
	outFlag    = flag.String("out", "", "output file, or directory for PNG sequences")
	formatFlag = flag.String("format", "", "animate output format: png (sequence) or gif")

	seedAFlag    = flag.String("seed-a", "", "override seed A")
	seedBFlag    = flag.String("seed-b", "", "override seed B")
	seedCFlag    = flag.String("seed-c", "", "override seed C")
	baseTimeFlag = flag.Int64("base-time", -1, "override the base time in unix ms (-1 keeps the preset value)")
	paletteFlag  = flag.String("palette", "", "override the palette mode: hash, vivid, pastel")

	writePresetFlag = flag.String("write-preset", "", "write the effective preset to a file ('-' for stdout) and exit")
)

func main() {
	flag.Parse()

	p, err := loadPreset(*presetFlag)
	if err != nil {
		fatal(err)
	}
	applyOverrides(p)
	if err := p.Validate(); err != nil {
		fatal(err)
	}

	if *writePresetFlag != "" {
		if err := writePreset(p, *writePresetFlag); err != nil {
			fatal(err)
		}
		return
	}

	switch *modeFlag {
	case "render":
		err = runRender(p)
	case "animate":
		err = runAnimate(p)
	case "dump":
		err = runDump(p)
	case "stats":
		err = runStats(p)
	default:
		err = fmt.Errorf("unknown mode %q (want render, animate, dump, or stats)", *modeFlag)
	}
	if err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "driftdots: %v\n", err)
	os.Exit(1)
}

// loadPreset resolves -preset: empty means the genesis defaults, an
// existing file loads as TOML, and anything else is tried against the
// builtin scenes before the file error surfaces.
func loadPreset(path string) (*preset.Preset, error) {
	if path == "" {
		p := preset.Default()
		return &p, nil
	}
	if _, statErr := os.Stat(path); statErr != nil {
		if p, err := preset.Builtin(path); err == nil {
			return p, nil
		}
	}
	return preset.Load(path)
}

func applyOverrides(p *preset.Preset) {
	if *seedAFlag != "" {
		p.Seeds.A = *seedAFlag
	}
	if *seedBFlag != "" {
		p.Seeds.B = *seedBFlag
	}
	if *seedCFlag != "" {
		p.Seeds.C = *seedCFlag
	}
	if *baseTimeFlag >= 0 {
		p.BaseTimeMs = *baseTimeFlag
	}
	if *paletteFlag != "" {
		p.Palette = *paletteFlag
	}
}

func writePreset(p *preset.Preset, path string) error {
	if path == "-" {
		data, err := p.Encode()
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := p.Write(path); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote preset %q to %s\n", p.Name, path)
	return nil
}

// tickBudget resolves how many ticks a run advances: the -ticks flag
// wins, then the preset's last keyframe, then the stock count.
func tickBudget(p *preset.Preset) int {
	if *ticksFlag > 0 {
		return *ticksFlag
	}
	if n := len(p.Keyframes); n > 0 {
		return int(p.Keyframes[n-1].Tick)
	}
	return defaultTicks
}

func newRenderer(p *preset.Preset, cfg engine.Config, e *engine.Engine) (*render.Renderer, error) {
	return render.NewRenderer(render.Options{
		Width:    cfg.CanvasWidth,
		Height:   cfg.CanvasHeight,
		Palette:  render.NewPalette(p.PaletteMode()),
		Backdrop: p.Backdrop,
		Seeds:    cfg.Seeds,
		Status:   e.Status(),
	})
}

func runRender(p *preset.Preset) error {
	cfg := p.Config()
	e, err := engine.New(cfg)
	if err != nil {
		return err
	}
	r, err := newRenderer(p, cfg, e)
	if err != nil {
		return err
	}

	e.TickN(tickBudget(p))

	out := *outFlag
	if out == "" {
		out = "drift.png"
	}
	if err := export.WritePNG(out, r.Frame(e.Field())); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "%s\nwrote %s\n", e.Stats(), out)
	return nil
}

// runAnimate drives the engine under an animator and records frames
// through the event hub: every tick when the preset has no keyframes,
// otherwise exactly the scheduled ticks.
func runAnimate(p *preset.Preset) error {
	cfg := p.Config()
	e, err := engine.New(cfg)
	if err != nil {
		return err
	}
	r, err := newRenderer(p, cfg, e)
	if err != nil {
		return err
	}

	budget := tickBudget(p)
	schedule := p.KeyframeTicks()
	limit := len(schedule)
	if limit == 0 {
		limit = budget
		if limit > parameter.MaxRecordedFrames {
			limit = parameter.MaxRecordedFrames
		}
	}
	rec, err := export.NewRecorder(limit, e.Status())
	if err != nil {
		return err
	}

	frames := event.NewHub[event.FrameEvent]()
	frames.Subscribe(rec.Sink())

	marks := make(map[int64]string, len(p.Keyframes))
	for _, kf := range p.Keyframes {
		marks[kf.Tick] = kf.Label
	}

	done := make(chan struct{})
	var once sync.Once
	budget64 := int64(budget)

	sub := e.SubscribeTicks(func(ev event.TickEvent) {
		if ev.Tick > budget64 {
			once.Do(func() { close(done) })
			return
		}
		label, marked := marks[ev.Tick]
		if len(schedule) == 0 || marked {
			frames.Dispatch(event.FrameEvent{Tick: ev.Tick, Image: r.Frame(ev.Field)})
			if label != "" {
				fmt.Fprintf(os.Stderr, "keyframe %d: %s\n", ev.Tick, label)
			}
		}
		if ev.Tick == budget64 {
			once.Do(func() { close(done) })
		}
	})
	defer sub.Cancel()

	anim := engine.NewAnimator(e, time.Millisecond)
	anim.Start()
	<-done
	anim.Stop()

	if dropped := e.Status().Ints.Get("export.dropped").Load(); dropped > 0 {
		fmt.Fprintf(os.Stderr, "frame budget reached: %d frames dropped (cap %d)\n", dropped, limit)
	}

	switch format := resolveFormat(); format {
	case "gif":
		out := *outFlag
		if out == "" {
			out = "drift.gif"
		}
		if err := rec.WriteGIF(out, 0); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "session %s: wrote %d frames to %s\n", rec.ID(), rec.Len(), out)
	case "png":
		dir := *outFlag
		if dir == "" {
			dir = "frames"
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		if err := rec.WriteSequence(dir); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "session %s: wrote %d frames to %s%c\n", rec.ID(), rec.Len(), dir, os.PathSeparator)
	default:
		return fmt.Errorf("unknown format %q (want png or gif)", format)
	}
	return nil
}

// resolveFormat picks the animate output: the -format flag wins, a
// .gif output path implies gif, everything else is a PNG sequence.
func resolveFormat() string {
	if *formatFlag != "" {
		return *formatFlag
	}
	if strings.EqualFold(filepath.Ext(*outFlag), ".gif") {
		return "gif"
	}
	return "png"
}

func runDump(p *preset.Preset) error {
	e, err := engine.New(p.Config())
	if err != nil {
		return err
	}
	e.TickN(tickBudget(p))

	if *outFlag == "" || *outFlag == "-" {
		return export.WriteDump(os.Stdout, e.Field(), e.TickCount())
	}

	f, err := os.Create(*outFlag)
	if err != nil {
		return err
	}
	if err := export.WriteDump(f, e.Field(), e.TickCount()); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", *outFlag)
	return nil
}

func runStats(p *preset.Preset) error {
	e, err := engine.New(p.Config())
	if err != nil {
		return err
	}

	budget := tickBudget(p)
	series := make([]float64, 0, budget)
	prev := e.Field()
	sub := e.SubscribeTicks(func(ev event.TickEvent) {
		series = append(series, core.MeanDisplacement(prev, ev.Field))
		prev = ev.Field
	})
	defer sub.Cancel()

	e.TickN(budget)

	fmt.Println(e.Stats())
	if len(series) >= 2 {
		fmt.Println(asciigraph.Plot(series,
			asciigraph.Height(parameter.SparklineHeight),
			asciigraph.Width(parameter.SparklineWidth),
			asciigraph.Caption("mean drift per tick"),
		))
	}
	return nil
}
