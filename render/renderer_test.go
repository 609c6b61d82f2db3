package render

import (
	"bytes"
	"errors"
	"testing"

	"github.com/kopi21144/drifting-dots/core"
	"github.com/kopi21144/drifting-dots/parameter"
	"github.com/kopi21144/drifting-dots/status"
)

func testField(t *testing.T) *core.DotField {
	t.Helper()
	f, err := core.NewDotField(8, 3, core.SeedTriple{A: "a", B: "b", C: "c"})
	if err != nil {
		t.Fatal(err)
	}
	return f.Evolve(0.01, 0.001, 0, 1, parameter.DriftOracle)
}

func TestNewRendererValidation(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		wantErr bool
	}{
		{"minimum canvas", parameter.MinCanvasDim, parameter.MinCanvasDim, false},
		{"width too small", parameter.MinCanvasDim - 1, 128, true},
		{"height too small", 128, 0, true},
		{"width too large", parameter.MaxCanvasDim + 1, 128, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRenderer(Options{Width: tt.w, Height: tt.h})
			if tt.wantErr {
				if err == nil {
					t.Fatal("want error, got nil")
				}
				var ce *core.ConfigError
				if !errors.As(err, &ce) {
					t.Errorf("error %v is not a *core.ConfigError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if w, h := r.Size(); w != tt.w || h != tt.h {
				t.Errorf("Size() = %dx%d", w, h)
			}
		})
	}
}

func TestFrameShapeAndBackground(t *testing.T) {
	r, err := NewRenderer(Options{Width: 96, Height: 64})
	if err != nil {
		t.Fatal(err)
	}

	img := r.Frame(testField(t))

	if img.Bounds().Dx() != 96 || img.Bounds().Dy() != 64 {
		t.Fatalf("frame is %dx%d, want 96x64", img.Bounds().Dx(), img.Bounds().Dy())
	}

	// Dots spawn inside the [0.2,0.8] band, so the top-left corner is
	// untouched background.
	bg := Background()
	c := img.RGBAAt(0, 0)
	if c.R != bg.R || c.G != bg.G || c.B != bg.B {
		t.Errorf("corner pixel = %v, want background %+v", c, bg)
	}

	// And something must have been drawn somewhere.
	drawn := false
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] != bg.R || img.Pix[i+1] != bg.G || img.Pix[i+2] != bg.B {
			drawn = true
			break
		}
	}
	if !drawn {
		t.Error("frame contains nothing but background")
	}
}

func TestFrameDeterministic(t *testing.T) {
	f := testField(t)

	mk := func() []byte {
		r, err := NewRenderer(Options{Width: 96, Height: 64})
		if err != nil {
			t.Fatal(err)
		}
		return r.Frame(f).Pix
	}

	if !bytes.Equal(mk(), mk()) {
		t.Error("two renders of the same field differ")
	}
}

func TestFrameWithBackdropDeterministic(t *testing.T) {
	f := testField(t)
	seeds := core.SeedTriple{A: "a", B: "b", C: "c"}

	mk := func() []byte {
		r, err := NewRenderer(Options{Width: 96, Height: 64, Backdrop: true, Seeds: seeds})
		if err != nil {
			t.Fatal(err)
		}
		return r.Frame(f).Pix
	}

	first, second := mk(), mk()
	if !bytes.Equal(first, second) {
		t.Error("backdrop renders differ across runs")
	}

	flat, err := NewRenderer(Options{Width: 96, Height: 64})
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(first, flat.Frame(f).Pix) {
		t.Error("backdrop had no visible effect")
	}
}

func TestFrameCountsByStatus(t *testing.T) {
	f := testField(t)

	reg := status.NewRegistry()
	r, err := NewRenderer(Options{Width: 96, Height: 64, Status: reg})
	if err != nil {
		t.Fatal(err)
	}

	r.Frame(f)
	r.Frame(f)

	if got := reg.Ints.Get("render.frames").Load(); got != 2 {
		t.Errorf("render.frames = %d, want 2", got)
	}
	if reg.Ints.Get("render.nanos").Load() <= 0 {
		t.Error("render.nanos not accumulated")
	}
}
