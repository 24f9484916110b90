package ecg

import (
	"fmt"
	"slices"

	"github.com/cwbudde/algo-ecg/internal/matfile"
)

// Record is the signal selected from a container together with its
// derived time axis.
type Record struct {
	Name       string    // variable name in the container
	Index      int       // position among the decoded variables
	Dims       []int     // stored dimensions before flattening
	Time       []float64 // Time[i] = i / SampleRate
	Signal     []float64
	SampleRate float64
}

// Len returns the number of samples.
func (r *Record) Len() int { return len(r.Signal) }

// Duration returns the time of the last sample in seconds.
func (r *Record) Duration() float64 {
	if len(r.Time) == 0 {
		return 0
	}
	return r.Time[len(r.Time)-1]
}

// Load decodes a MAT-file and extracts one signal.
//
// By default the variables are scanned in stored order and the first
// non-empty numeric array of rank <= 2 is taken, whatever its name. The
// array is flattened row by row and complex data contributes its real
// part. WithVariable selects by name instead.
//
// Every failure is returned as a *LoadError.
func Load(data []byte, opts ...Option) (*Record, error) {
	o := newOptions(opts)
	if o.err != nil {
		return nil, &LoadError{Cause: o.err}
	}

	f, err := matfile.Decode(data)
	if err != nil {
		return nil, &LoadError{Cause: err}
	}

	idx, err := selectVariable(f, o.variable)
	if err != nil {
		return nil, &LoadError{Cause: err}
	}

	v := &f.Variables[idx]
	signal := v.RowMajor()
	return &Record{
		Name:       v.Name,
		Index:      idx,
		Dims:       slices.Clone(v.Dims),
		Time:       o.proc.TimeAxis(len(signal)),
		Signal:     signal,
		SampleRate: o.proc.SampleRate,
	}, nil
}

func selectVariable(f *matfile.File, name string) (int, error) {
	if name != "" {
		for i := range f.Variables {
			v := &f.Variables[i]
			if v.Name != name {
				continue
			}
			if !acceptable(v) {
				return 0, fmt.Errorf("%w: %q is a %s array with dimensions %v", ErrNoSignal, name, v.Class, v.Dims)
			}
			return i, nil
		}
		return 0, fmt.Errorf("%w: %q", ErrVariableNotFound, name)
	}

	for i := range f.Variables {
		if acceptable(&f.Variables[i]) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w among %d variables", ErrNoSignal, len(f.Variables))
}

func acceptable(v *matfile.Variable) bool {
	return v.Class.IsNumeric() && v.Rank() <= 2 && v.Len() > 0
}

// Variables lists the names of the acceptable signal arrays in stored
// order, for callers offering an explicit choice.
func Variables(data []byte) ([]string, error) {
	f, err := matfile.Decode(data)
	if err != nil {
		return nil, &LoadError{Cause: err}
	}
	var names []string
	for i := range f.Variables {
		if acceptable(&f.Variables[i]) {
			names = append(names, f.Variables[i].Name)
		}
	}
	return names, nil
}
