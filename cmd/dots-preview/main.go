// dots-preview shows a live drifting-dots run in the terminal. Space
// pauses, '[' and ']' scrub through recent ticks, 'q' quits.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/kopi21144/drifting-dots/engine"
	"github.com/kopi21144/drifting-dots/preset"
	"github.com/kopi21144/drifting-dots/preview"
)

var (
	presetFlag   = flag.String("preset", "", "preset file or builtin scene name; empty uses the genesis preset")
	paletteFlag  = flag.String("palette", "", "override the palette mode: hash, vivid, pastel")
	intervalFlag = flag.Duration("interval", 0, "tick interval (0 uses the stock rate)")
)

func main() {
	// The screen must come back even when the run dies mid-frame, or
	// the shell is left in the alternate screen with no cursor.
	defer func() {
		if r := recover(); r != nil {
			emergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\ndots-preview crashed: %v\r\n", r)
			fmt.Fprintf(os.Stderr, "stack trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	p, err := loadPreset(*presetFlag)
	if err != nil {
		fatal(err)
	}
	if *paletteFlag != "" {
		p.Palette = *paletteFlag
	}
	if err := p.Validate(); err != nil {
		fatal(err)
	}

	e, err := engine.New(p.Config())
	if err != nil {
		fatal(err)
	}

	view := preview.New(e, preview.Options{
		Palette:  p.PaletteMode(),
		Interval: *intervalFlag,
	})
	if err := view.Run(); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "dots-preview: %v\n", err)
	os.Exit(1)
}

// loadPreset resolves -preset the same way driftdots does: empty for
// the genesis defaults, a file path, or a builtin scene name.
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

// emergencyReset restores the terminal when a crash bypasses tcell's
// cleanup. Escape sequences alone cannot restore termios, but they
// cover the visible damage: the alternate screen, the cursor, colors,
// and autowrap.
func emergencyReset(w io.Writer) {
	io.WriteString(w, "\x1b[?1049l") // alternate screen exit
	io.WriteString(w, "\x1b[?25h")   // cursor show
	io.WriteString(w, "\x1b[0m")     // attribute reset
	io.WriteString(w, "\x1b[?7h")    // autowrap on
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}
}
