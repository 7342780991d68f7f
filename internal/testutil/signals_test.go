package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 4000, 0.5, 4)
	want := []float64{0, 0.5, 0, -0.5}
	RequireSliceNearlyEqual(t, s, want, 1e-12)
}

func TestDeterministicNoise_Reproducible(t *testing.T) {
	a := DeterministicNoise(9, 1, 32)
	b := DeterministicNoise(9, 1, 32)
	RequireSliceNearlyEqual(t, a, b, 0)
	RequireBounded(t, a, 1)
}

func TestDC(t *testing.T) {
	for i, v := range DC(math.Pi, 5) {
		if v != math.Pi {
			t.Fatalf("DC[%d] = %v", i, v)
		}
	}
}
