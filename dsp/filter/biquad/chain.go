package biquad

// Chain is an ordered cascade of biquad sections processed in series.
// The Butterworth lowpass, highpass and bandpass designs are all chains.
type Chain struct {
	sections []Section
}

// NewChain creates a cascade with one zero-state Section per coefficient set.
func NewChain(coeffs []Coefficients) *Chain {
	c := &Chain{sections: make([]Section, len(coeffs))}
	for i := range coeffs {
		c.sections[i].Coefficients = coeffs[i]
	}
	return c
}

// ProcessBlock filters a block in-place through the full cascade.
func (c *Chain) ProcessBlock(buf []float64) {
	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// SetSteadyState primes every section for a constant input x. Each section
// sees the DC level produced by the sections before it.
func (c *Chain) SetSteadyState(x float64) {
	level := x
	for i := range c.sections {
		c.sections[i].SetSteadyState(level)
		level *= c.sections[i].DCGain()
	}
}

// Order returns the number of poles in the cascade. First-order sections
// count once.
func (c *Chain) Order() int {
	n := 0
	for i := range c.sections {
		if c.sections[i].FirstOrder() {
			n++
		} else {
			n += 2
		}
	}

	return n
}

// NumSections returns the number of biquad sections.
func (c *Chain) NumSections() int {
	return len(c.sections)
}
