package render

import (
	"bytes"
	"testing"

	"github.com/kopi21144/drifting-dots/core"
)

func TestBackdropSeedStable(t *testing.T) {
	seeds := core.SeedTriple{A: "a", B: "b", C: "c"}
	if BackdropSeed(seeds) != BackdropSeed(seeds) {
		t.Error("seed derivation not stable")
	}
	if BackdropSeed(seeds) == BackdropSeed(core.SeedTriple{A: "x", B: "b", C: "c"}) {
		t.Error("distinct seed triples share a backdrop seed")
	}
}

func TestBackdropDeterministic(t *testing.T) {
	a := NewBackdrop(64, 64, 12345)
	b := NewBackdrop(64, 64, 12345)

	if !bytes.Equal(a.Image().Pix, b.Image().Pix) {
		t.Error("same seed produced different backdrops")
	}

	c := NewBackdrop(64, 64, 54321)
	if bytes.Equal(a.Image().Pix, c.Image().Pix) {
		t.Error("different seeds produced identical backdrops")
	}
}

func TestBackdropBounds(t *testing.T) {
	b := NewBackdrop(96, 48, 7)
	img := b.Image()

	if img.Bounds().Dx() != 96 || img.Bounds().Dy() != 48 {
		t.Fatalf("backdrop is %dx%d, want 96x48", img.Bounds().Dx(), img.Bounds().Dy())
	}

	// The shade is capped: no pixel strays far from the background.
	bg := Background()
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] < bg.R || img.Pix[i+3] != 0xff {
			t.Fatalf("pixel %d outside expected shading: %v", i/4, img.Pix[i:i+4])
		}
	}
}
