package vmath

import "testing"

func TestClamp01(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"Below", -0.5, 0},
		{"Zero", 0, 0},
		{"Inside", 0.25, 0.25},
		{"One", 1, 1},
		{"Above", 1.0001, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp01(tt.in); got != tt.want {
				t.Errorf("Clamp01(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 32, 255); got != 32 {
		t.Errorf("Clamp(5, 32, 255) = %v, want 32", got)
	}
	if got := Clamp(300, 32, 255); got != 255 {
		t.Errorf("Clamp(300, 32, 255) = %v, want 255", got)
	}
	if got := Clamp(100, 32, 255); got != 100 {
		t.Errorf("Clamp(100, 32, 255) = %v, want 100", got)
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(0, 10, 0.5); got != 5 {
		t.Errorf("Lerp(0, 10, 0.5) = %v, want 5", got)
	}
	if got := Lerp(2, 2, 0.9); got != 2 {
		t.Errorf("Lerp(2, 2, 0.9) = %v, want 2", got)
	}
	// Endpoints are exact, not approximate
	if got := Lerp(0.1, 0.9, 0); got != 0.1 {
		t.Errorf("Lerp(..., 0) = %v, want 0.1", got)
	}
}
