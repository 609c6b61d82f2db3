package core

import (
	"encoding/hex"
	"math"
	"testing"
)

func TestHashConcatenation(t *testing.T) {
	tests := []struct {
		name string
		a    []string
		b    []string
		same bool
	}{
		{"split is invisible", []string{"a", "b"}, []string{"ab"}, true},
		{"empty parts skipped", []string{"", "a", ""}, []string{"a"}, true},
		{"all empty equals none", []string{"", ""}, nil, true},
		{"order matters", []string{"a", "b"}, []string{"b", "a"}, false},
		{"content matters", []string{"seed-1"}, []string{"seed-2"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ha := Hash(tt.a...)
			hb := Hash(tt.b...)
			if (ha == hb) != tt.same {
				t.Errorf("Hash(%q) vs Hash(%q): same=%v, want %v", tt.a, tt.b, ha == hb, tt.same)
			}
		})
	}
}

func TestHashKnownVector(t *testing.T) {
	// SHA-256("abc") from the NIST test vectors.
	const want = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"

	got := Hash("a", "b", "c")
	if hex.EncodeToString(got[:]) != want {
		t.Fatalf("Hash(a,b,c) = %x, want %s", got, want)
	}
}

func TestIntAt(t *testing.T) {
	digest := make([]byte, 32)
	digest[0], digest[1], digest[2], digest[3] = 0x00, 0x00, 0x00, 0x01
	digest[4], digest[5], digest[6], digest[7] = 0x80, 0x00, 0x00, 0x00
	digest[8], digest[9], digest[10], digest[11] = 0xFF, 0xFF, 0xFF, 0xFF
	digest[28], digest[29], digest[30], digest[31] = 0x12, 0x34, 0x56, 0x78

	tests := []struct {
		name   string
		offset int
		want   int32
	}{
		{"small positive", 0, 1},
		{"sign bit set", 4, math.MinInt32},
		{"all ones is minus one", 8, -1},
		{"last valid offset", 28, 0x12345678},
		{"negative offset", -1, 0},
		{"window past end", 29, 0},
		{"offset past end", 32, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IntAt(digest, tt.offset); got != tt.want {
				t.Errorf("IntAt(digest, %d) = %d, want %d", tt.offset, got, tt.want)
			}
		})
	}

	if got := IntAt(nil, 0); got != 0 {
		t.Errorf("IntAt(nil, 0) = %d, want 0", got)
	}
}

func TestUnitAtRange(t *testing.T) {
	digest := Hash("range probe")
	for offset := 0; offset <= 28; offset += 4 {
		u := UnitAt(digest[:], offset)
		if u < 0 || u > 1 {
			t.Errorf("UnitAt(digest, %d) = %v, want within [0,1]", offset, u)
		}
	}
}

func TestUnitAtSignMasked(t *testing.T) {
	pos := []byte{0x00, 0x00, 0x00, 0x2A}
	neg := []byte{0x80, 0x00, 0x00, 0x2A}

	if UnitAt(pos, 0) != UnitAt(neg, 0) {
		t.Errorf("sign bit leaked: %v != %v", UnitAt(pos, 0), UnitAt(neg, 0))
	}

	// An all-ones window masks to MaxInt32 and lands on 1.0 exactly.
	ones := []byte{0xFF, 0xFF, 0xFF, 0xFF}
	if got := UnitAt(ones, 0); got != 1.0 {
		t.Errorf("UnitAt(all ones) = %v, want 1.0", got)
	}

	if got := UnitAt(ones, 17); got != 0 {
		t.Errorf("UnitAt out of range = %v, want 0", got)
	}
}

func TestColorAt(t *testing.T) {
	t.Run("stable", func(t *testing.T) {
		digest := Hash("palette probe")
		if ColorAt(digest[:]) != ColorAt(digest[:]) {
			t.Error("ColorAt not stable for identical digest")
		}
	})

	t.Run("channels clamped with fixed alpha", func(t *testing.T) {
		for _, seed := range []string{"x", "y", "z", "deep violet"} {
			digest := Hash(seed)
			c := ColorAt(digest[:])
			if c.R < 32 || c.G < 32 || c.B < 32 {
				t.Errorf("seed %q: channel below 32: %+v", seed, c)
			}
			if c.A != 220 {
				t.Errorf("seed %q: alpha = %d, want 220", seed, c.A)
			}
		}
	})

	t.Run("short digest falls back", func(t *testing.T) {
		c := ColorAt([]byte{1, 2, 3})
		if c.R != 128 || c.G != 128 || c.B != 200 || c.A != 200 {
			t.Errorf("fallback color = %+v, want 128/128/200/200", c)
		}
	})

	t.Run("nil digest falls back", func(t *testing.T) {
		c := ColorAt(nil)
		if c.R != 128 || c.G != 128 || c.B != 200 || c.A != 200 {
			t.Errorf("fallback color = %+v, want 128/128/200/200", c)
		}
	})
}
