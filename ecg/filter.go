package ecg

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-ecg/dsp/filter/biquad"
	"github.com/cwbudde/algo-ecg/dsp/filter/design/pass"
)

// DefaultFilterOrder is the Butterworth order used by NewFilterSpec.
const DefaultFilterOrder = 4

// FilterKind selects the filter response.
type FilterKind int

const (
	FilterNone FilterKind = iota
	FilterLowpass
	FilterHighpass
	FilterBandpass
)

var filterKindNames = [...]string{"none", "lowpass", "highpass", "bandpass"}

func (k FilterKind) String() string {
	if k >= 0 && int(k) < len(filterKindNames) {
		return filterKindNames[k]
	}
	return fmt.Sprintf("FilterKind(%d)", int(k))
}

// ParseFilterKind accepts "none", "lowpass", "highpass" and "bandpass",
// ignoring case and surrounding space.
func ParseFilterKind(s string) (FilterKind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range filterKindNames {
		if n == name {
			return FilterKind(i), nil
		}
	}
	return FilterNone, fmt.Errorf("%w: %q", ErrUnknownFilterKind, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k FilterKind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(filterKindNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFilterKind, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *FilterKind) UnmarshalText(text []byte) error {
	v, err := ParseFilterKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// FilterSpec describes the filter applied to a signal. For bandpass the
// passband runs from the configured low edge up to CutoffHz.
type FilterSpec struct {
	Kind     FilterKind
	CutoffHz float64
	Order    int
}

// NewFilterSpec returns a spec with the default order.
func NewFilterSpec(kind FilterKind, cutoffHz float64) FilterSpec {
	return FilterSpec{Kind: kind, CutoffHz: cutoffHz, Order: DefaultFilterOrder}
}

// DesignFilter validates spec and returns the second-order sections of
// the Butterworth design. FilterNone yields no sections.
func DesignFilter(spec FilterSpec, opts ...Option) ([]biquad.Coefficients, error) {
	o := newOptions(opts)
	return design(spec, o)
}

func design(spec FilterSpec, o options) ([]biquad.Coefficients, error) {
	fs := o.proc.SampleRate
	nyquist := o.proc.Nyquist()
	fail := func(err error) error {
		return &FilterError{Spec: spec, Nyquist: nyquist, Err: err}
	}
	if o.err != nil {
		return nil, fail(o.err)
	}

	switch spec.Kind {
	case FilterNone:
		return nil, nil
	case FilterLowpass, FilterHighpass, FilterBandpass:
	default:
		return nil, fail(ErrUnknownFilterKind)
	}

	if spec.Order <= 0 {
		return nil, fail(ErrInvalidOrder)
	}
	if !(spec.CutoffHz > 0 && spec.CutoffHz < nyquist) {
		return nil, fail(ErrCutoffOutOfRange)
	}

	var sections []biquad.Coefficients
	switch spec.Kind {
	case FilterLowpass:
		sections = pass.ButterworthLP(spec.CutoffHz, spec.Order, fs)
	case FilterHighpass:
		sections = pass.ButterworthHP(spec.CutoffHz, spec.Order, fs)
	case FilterBandpass:
		if !(o.bandLowHz > 0 && o.bandLowHz < spec.CutoffHz) {
			return nil, fail(fmt.Errorf("%w: low edge %g Hz", ErrInvalidBand, o.bandLowHz))
		}
		sections = pass.ButterworthBP(o.bandLowHz, spec.CutoffHz, spec.Order, fs)
	}
	if len(sections) == 0 {
		return nil, fail(fmt.Errorf("%w: design produced no sections", ErrCutoffOutOfRange))
	}
	return sections, nil
}

// Filter applies spec to signal with zero phase: the cascade runs forward
// and then backward, so peaks stay where they are in time.
//
// FilterNone returns signal itself. Otherwise the result is a new slice of
// the same length and signal is not modified. Invalid parameters and
// signals too short for the edge padding yield a *FilterError.
func Filter(signal []float64, spec FilterSpec, opts ...Option) ([]float64, error) {
	if spec.Kind == FilterNone {
		return signal, nil
	}

	o := newOptions(opts)
	sections, err := design(spec, o)
	if err != nil {
		return nil, err
	}

	out, err := biquad.FiltFilt(sections, signal)
	if err != nil {
		return nil, &FilterError{Spec: spec, Nyquist: o.proc.Nyquist(), Err: err}
	}
	return out, nil
}
