package biquad

import "testing"

// twoSectionCoeffs returns two biquad sections for a 4th-order-like cascade.
func twoSectionCoeffs() []Coefficients {
	return []Coefficients{
		{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04},
		{B0: 0.1, B1: 0.2, B2: 0.1, A1: -0.5, A2: 0.1},
	}
}

func TestNewChain(t *testing.T) {
	c := NewChain(twoSectionCoeffs())
	if c.NumSections() != 2 {
		t.Fatalf("NumSections: got %d, want 2", c.NumSections())
	}
	if c.Order() != 4 {
		t.Fatalf("Order: got %d, want 4", c.Order())
	}
	if c.gain != 1 {
		t.Fatalf("default gain: got %v, want 1", c.gain)
	}
}

func TestNewChain_WithGain(t *testing.T) {
	c := NewChain(twoSectionCoeffs(), WithGain(0.5))
	if c.gain != 0.5 {
		t.Fatalf("gain: got %v, want 0.5", c.gain)
	}
}

func TestChain_ProcessSample_MatchesManualCascade(t *testing.T) {
	coeffs := twoSectionCoeffs()
	section1 := NewSection(coeffs[0])
	section2 := NewSection(coeffs[1])
	chain := NewChain(coeffs)

	input := []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8}
	for i, x := range input {
		ref := section2.ProcessSample(section1.ProcessSample(x))
		if got := chain.ProcessSample(x); !almostEqual(got, ref, eps) {
			t.Errorf("sample %d: chain=%.15f, ref=%.15f", i, got, ref)
		}
	}
}

func TestChain_ProcessBlock_MatchesSample(t *testing.T) {
	input := []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8}

	ref := NewChain(twoSectionCoeffs(), WithGain(2))
	want := make([]float64, len(input))
	for i, x := range input {
		want[i] = ref.ProcessSample(x)
	}

	c := NewChain(twoSectionCoeffs(), WithGain(2))
	buf := append([]float64(nil), input...)
	c.ProcessBlock(buf)

	for i := range buf {
		if !almostEqual(buf[i], want[i], eps) {
			t.Errorf("sample %d: block=%v, sample=%v", i, buf[i], want[i])
		}
	}
}

func TestChain_SteadyState(t *testing.T) {
	c := NewChain(twoSectionCoeffs())
	c.SteadyState(0.5)
	first := c.ProcessSample(0.5)
	for i := range 32 {
		if y := c.ProcessSample(0.5); !almostEqual(y, first, 1e-12) {
			t.Fatalf("sample %d: got %v, want %v", i, y, first)
		}
	}
}

func TestChain_State_SaveRestore(t *testing.T) {
	c := NewChain(twoSectionCoeffs())
	c.ProcessSample(1)
	saved := c.State()
	y1 := c.ProcessSample(0.3)

	c.SetState(saved)
	if y2 := c.ProcessSample(0.3); !almostEqual(y1, y2, eps) {
		t.Fatalf("restored output %v, want %v", y2, y1)
	}

	c.Reset()
	for i, st := range c.State() {
		if st != [2]float64{} {
			t.Fatalf("section %d state after reset = %v", i, st)
		}
	}
}

func TestChain_Section_Access(t *testing.T) {
	coeffs := twoSectionCoeffs()
	c := NewChain(coeffs)
	if c.Section(1).Coefficients != coeffs[1] {
		t.Fatalf("section 1 = %v, want %v", c.Section(1).Coefficients, coeffs[1])
	}
}
