package export

import (
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/kopi21144/drifting-dots/core"
	"github.com/kopi21144/drifting-dots/event"
	"github.com/kopi21144/drifting-dots/parameter"
	"github.com/kopi21144/drifting-dots/status"
)

// ErrRecorderFull reports that the frame budget is spent. Further Add
// calls keep returning it; recorded frames stay intact.
var ErrRecorderFull = errors.New("export: recorder at frame capacity")

// Recorder buffers rendered frames up to a fixed budget, then writes
// them out as a PNG sequence or an animated GIF. Each recorder carries
// a unique session id used to name its output files.
type Recorder struct {
	id    string
	limit int

	ticks  []int64
	frames []*image.RGBA

	statFrames  *atomic.Int64
	statDropped *atomic.Int64
}

// NewRecorder builds a recorder with the given frame budget. The
// budget is validated, never clamped. A nil registry disables the
// export metrics.
func NewRecorder(limit int, reg *status.Registry) (*Recorder, error) {
	if limit < 1 || limit > parameter.MaxRecordedFrames {
		return nil, &core.ConfigError{
			Param: "recorder frame budget",
			Value: limit,
			Want:  fmt.Sprintf("1..%d", parameter.MaxRecordedFrames),
		}
	}

	r := &Recorder{id: uuid.NewString(), limit: limit}
	if reg != nil {
		r.statFrames = reg.Ints.Get("export.frames")
		r.statDropped = reg.Ints.Get("export.dropped")
	}
	return r, nil
}

// ID returns the recorder's session id.
func (r *Recorder) ID() string {
	return r.id
}

// Len reports the number of buffered frames.
func (r *Recorder) Len() int {
	return len(r.frames)
}

// Add buffers one frame. Once the budget is spent it returns
// ErrRecorderFull and drops the frame.
func (r *Recorder) Add(tick int64, img *image.RGBA) error {
	if len(r.frames) >= r.limit {
		if r.statDropped != nil {
			r.statDropped.Add(1)
		}
		return ErrRecorderFull
	}

	r.ticks = append(r.ticks, tick)
	r.frames = append(r.frames, img)
	if r.statFrames != nil {
		r.statFrames.Add(1)
	}
	return nil
}

// Sink adapts the recorder to a frame hub. Frames past the budget are
// counted as dropped and otherwise ignored, so a long animation run
// keeps its first budget-worth of frames.
func (r *Recorder) Sink() func(event.FrameEvent) {
	return func(ev event.FrameEvent) {
		_ = r.Add(ev.Tick, ev.Image)
	}
}

// WriteSequence writes every buffered frame into dir as
// <session>-<tick>.png. The directory must exist.
func (r *Recorder) WriteSequence(dir string) error {
	for i, img := range r.frames {
		name := fmt.Sprintf("%s-%06d.png", r.id, r.ticks[i])
		if err := WritePNG(filepath.Join(dir, name), img); err != nil {
			return err
		}
	}
	return nil
}

// EncodeGIF writes the buffered frames as an animated GIF. Delay is in
// hundredths of a second per frame; non-positive delays fall back to
// the stock animation pacing. Frames quantize to the Plan9 palette
// with Floyd-Steinberg dithering.
func (r *Recorder) EncodeGIF(w io.Writer, delay int) error {
	if len(r.frames) == 0 {
		return fmt.Errorf("export: no frames recorded")
	}
	if delay <= 0 {
		delay = int(parameter.AnimatorTickInterval.Milliseconds() / 10)
		if delay < 1 {
			delay = 1
		}
	}

	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		p := image.NewPaletted(frame.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(p, frame.Bounds(), frame, frame.Bounds().Min)
		anim.Image = append(anim.Image, p)
		anim.Delay = append(anim.Delay, delay)
	}

	if err := gif.EncodeAll(w, &anim); err != nil {
		return fmt.Errorf("export: encode gif: %w", err)
	}
	return nil
}

// WriteGIF encodes the buffered frames into a file at path.
func (r *Recorder) WriteGIF(path string, delay int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	if err := r.EncodeGIF(f, delay); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: close %s: %w", path, err)
	}
	return nil
}
