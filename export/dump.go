// Package export serializes engine output: the line-oriented text
// dump, PNG frames, and a bounded frame recorder that writes image
// sequences and animated GIFs.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kopi21144/drifting-dots/core"
	"github.com/kopi21144/drifting-dots/parameter"
)

// Dump is a parsed text dump: per-dot values only. Trail history is
// never persisted, so a dump cannot reconstruct trails.
type Dump struct {
	Version string
	Tick    int64
	Dots    []DumpDot
}

// DumpDot is one dot's persisted state.
type DumpDot struct {
	Index int
	X     float64
	Y     float64
	Phase float64
}

// WriteDump serializes a field snapshot: a version header, the tick
// and dot counters, then one fixed-point line per dot in index order.
// Six decimals keep the format stable and diff-friendly; full float
// precision is not round-tripped.
func WriteDump(w io.Writer, f *core.DotField, tick int64) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, parameter.EngineVersion)
	fmt.Fprintf(bw, "tick=%d\n", tick)
	fmt.Fprintf(bw, "dots=%d\n", f.Len())
	for i := 0; i < f.Len(); i++ {
		d := f.At(i)
		fmt.Fprintf(bw, "%d %.6f %.6f %.6f\n", d.Index, d.X, d.Y, d.Phase)
	}
	return bw.Flush()
}

// ParseDump reads a dump back. The dot count line must match the
// number of dot lines exactly; any malformed line fails with its line
// number.
func ParseDump(r io.Reader) (*Dump, error) {
	sc := bufio.NewScanner(r)

	version, err := scanLine(sc, 1)
	if err != nil {
		return nil, err
	}
	if version == "" {
		return nil, fmt.Errorf("export: empty version header")
	}

	tickLine, err := scanLine(sc, 2)
	if err != nil {
		return nil, err
	}
	tick, err := parseCounter(tickLine, "tick", 2)
	if err != nil {
		return nil, err
	}

	dotsLine, err := scanLine(sc, 3)
	if err != nil {
		return nil, err
	}
	count, err := parseCounter(dotsLine, "dots", 3)
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("export: line 3: negative dot count %d", count)
	}

	dump := &Dump{Version: version, Tick: tick, Dots: make([]DumpDot, 0, count)}
	for i := int64(0); i < count; i++ {
		lineNo := 4 + int(i)
		line, err := scanLine(sc, lineNo)
		if err != nil {
			return nil, err
		}

		fields := strings.Fields(line)
		if len(fields) != 4 {
			return nil, fmt.Errorf("export: line %d: %d fields, want 4", lineNo, len(fields))
		}

		idx, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("export: line %d: bad index: %w", lineNo, err)
		}
		x, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("export: line %d: bad x: %w", lineNo, err)
		}
		y, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("export: line %d: bad y: %w", lineNo, err)
		}
		phase, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, fmt.Errorf("export: line %d: bad phase: %w", lineNo, err)
		}

		dump.Dots = append(dump.Dots, DumpDot{Index: idx, X: x, Y: y, Phase: phase})
	}

	return dump, nil
}

func scanLine(sc *bufio.Scanner, lineNo int) (string, error) {
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", fmt.Errorf("export: line %d: %w", lineNo, err)
		}
		return "", fmt.Errorf("export: truncated dump at line %d", lineNo)
	}
	return sc.Text(), nil
}

func parseCounter(line, key string, lineNo int) (int64, error) {
	prefix := key + "="
	if !strings.HasPrefix(line, prefix) {
		return 0, fmt.Errorf("export: line %d: want %q prefix, got %q", lineNo, prefix, line)
	}
	v, err := strconv.ParseInt(strings.TrimPrefix(line, prefix), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("export: line %d: bad %s counter: %w", lineNo, key, err)
	}
	return v, nil
}
