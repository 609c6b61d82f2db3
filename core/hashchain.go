// Package core implements the deterministic dot field: the hash chain
// that drives all pseudo-randomness, the Dot value type with its trail
// ring buffer, and the DotField container that evolves dots tick by tick.
package core

import (
	"crypto/sha256"
	"encoding/binary"
	"image/color"
	"math"
)

// Hash digests the ordered parts with SHA-256. Parts are concatenated
// as raw UTF-8 with no separator, so the digest is sensitive to order
// but not to how the input was split. Empty parts contribute nothing.
func Hash(parts ...string) [32]byte {
	var buf []byte
	for _, p := range parts {
		buf = append(buf, p...)
	}
	return sha256.Sum256(buf)
}

// IntAt reads a signed big-endian 32-bit integer from digest at the
// given byte offset. Offsets that do not leave room for four bytes
// yield 0 rather than an error.
func IntAt(digest []byte, offset int) int32 {
	if offset < 0 || offset+4 > len(digest) {
		return 0
	}
	return int32(binary.BigEndian.Uint32(digest[offset:]))
}

// UnitAt maps four digest bytes at offset into [0,1] by masking the
// sign bit of IntAt and dividing by MaxInt32. An all-ones window hits
// 1.0 exactly, so downstream math must tolerate the closed bound.
func UnitAt(digest []byte, offset int) float64 {
	return float64(uint32(IntAt(digest, offset))&0x7FFFFFFF) / float64(math.MaxInt32)
}

// ColorAt derives a stable color from the first twelve digest bytes.
// Each channel XORs a raw byte with a shifted window of the integer
// read at the same offset, then clamps into [32,255] so dots never
// vanish into the background. Alpha is fixed at 220. Digests shorter
// than twelve bytes fall back to a muted blue.
func ColorAt(digest []byte) color.NRGBA {
	if len(digest) < 12 {
		return color.NRGBA{R: 128, G: 128, B: 200, A: 200}
	}
	r := int(digest[0]) ^ int((IntAt(digest, 0)>>16)&0xFF)
	g := int(digest[4]) ^ int((IntAt(digest, 4)>>16)&0xFF)
	b := int(digest[8]) ^ int((IntAt(digest, 8)>>16)&0xFF)
	return color.NRGBA{
		R: clampChannel(r),
		G: clampChannel(g),
		B: clampChannel(b),
		A: 220,
	}
}

func clampChannel(v int) uint8 {
	if v < 32 {
		return 32
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
