package biquad

import "testing"

// twoSectionCoeffs returns two biquad sections for a 4th-order cascade.
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
}

func TestChain_OrderCountsFirstOrderSections(t *testing.T) {
	coeffs := append(twoSectionCoeffs(), Coefficients{B0: 0.5, B1: 0.5, A1: -0.1})
	if got := NewChain(coeffs).Order(); got != 5 {
		t.Fatalf("Order: got %d, want 5", got)
	}
}

func TestChain_ProcessBlock_MatchesManualCascade(t *testing.T) {
	coeffs := twoSectionCoeffs()
	s1 := NewSection(coeffs[0])
	s2 := NewSection(coeffs[1])

	input := []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8}
	buf := append([]float64(nil), input...)
	NewChain(coeffs).ProcessBlock(buf)

	for i, x := range input {
		ref := s2.ProcessSample(s1.ProcessSample(x))
		if !almostEqual(buf[i], ref, eps) {
			t.Errorf("sample %d: chain=%.15f, ref=%.15f", i, buf[i], ref)
		}
	}
}

func TestChain_SetSteadyState(t *testing.T) {
	coeffs := twoSectionCoeffs()
	g := coeffs[0].DCGain() * coeffs[1].DCGain()

	c := NewChain(coeffs)
	c.SetSteadyState(-1.5)

	buf := make([]float64, 16)
	for i := range buf {
		buf[i] = -1.5
	}
	c.ProcessBlock(buf)
	for i, v := range buf {
		if !almostEqual(v, -1.5*g, 1e-12) {
			t.Fatalf("sample %d: got %v, want %v", i, v, -1.5*g)
		}
	}
}
