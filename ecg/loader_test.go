package ecg

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-ecg/internal/matfile"
)

func TestLoadSelectsFirstArrayInStoredOrder(t *testing.T) {
	meta := matfile.Variable{Name: "meta", Class: matfile.ClassDouble, Dims: []int{1, 1}, Real: []float64{42}}
	signal := row("signal", ramp(500))

	for name, data := range map[string][]byte{
		"plain":      fixture(t, meta, signal),
		"compressed": compressedFixture(t, meta, signal),
	} {
		t.Run(name, func(t *testing.T) {
			rec, err := Load(data)
			require.NoError(t, err)

			assert.Equal(t, "meta", rec.Name)
			assert.Equal(t, 0, rec.Index)
			assert.Equal(t, []int{1, 1}, rec.Dims)
			assert.Equal(t, []float64{42}, rec.Signal)
			assert.Equal(t, []float64{0}, rec.Time)
		})
	}

	// Reversing the stored order flips the selection.
	rec, err := Load(fixture(t, signal, meta))
	require.NoError(t, err)
	assert.Equal(t, "signal", rec.Name)
	assert.Len(t, rec.Signal, 500)
}

func TestLoadLengthAndTimeAxis(t *testing.T) {
	rec, err := Load(fixture(t, row("ecg", ramp(500))))
	require.NoError(t, err)

	require.Len(t, rec.Signal, 500)
	require.Len(t, rec.Time, 500)
	assert.Equal(t, ecgRate, rec.SampleRate)
	for i, v := range rec.Time {
		assert.InDelta(t, float64(i)/ecgRate, v, 1e-12)
	}
	assert.Equal(t, ramp(500), rec.Signal)
	assert.InDelta(t, 499/ecgRate, rec.Duration(), 1e-12)
	assert.Equal(t, 500, rec.Len())
}

func TestLoadSampleRateOption(t *testing.T) {
	rec, err := Load(fixture(t, row("ecg", ramp(4))), WithSampleRate(500))
	require.NoError(t, err)
	assert.Equal(t, 500.0, rec.SampleRate)
	assert.InDeltaSlice(t, []float64{0, 0.002, 0.004, 0.006}, rec.Time, 1e-12)
}

func TestLoadSkipsUnacceptableVariables(t *testing.T) {
	data := fixture(t,
		matfile.Variable{Name: "label", Class: matfile.ClassChar, Dims: []int{1, 3}, Real: []float64{'e', 'c', 'g'}},
		matfile.Variable{Name: "empty", Class: matfile.ClassDouble, Dims: []int{0, 0}, Real: []float64{}},
		matfile.Variable{Name: "cube", Class: matfile.ClassDouble, Dims: []int{2, 2, 2}, Real: ramp(8)},
		matfile.Variable{Name: "notes", Class: matfile.ClassCell, Dims: []int{0, 1}},
		matfile.Variable{Name: "lead", Class: matfile.ClassInt16, Dims: []int{3, 1}, Real: []float64{-5, 0, 5}},
	)

	rec, err := Load(data)
	require.NoError(t, err)
	assert.Equal(t, "lead", rec.Name)
	assert.Equal(t, 4, rec.Index)
	assert.Equal(t, []float64{-5, 0, 5}, rec.Signal)

	names, err := Variables(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"lead"}, names)
}

func TestLoadFlattensRowMajor(t *testing.T) {
	// [[1 2 3] [4 5 6]] stored column by column.
	data := fixture(t, matfile.Variable{Name: "m", Class: matfile.ClassDouble, Dims: []int{2, 3}, Real: []float64{1, 4, 2, 5, 3, 6}})

	rec, err := Load(data)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, rec.Signal)
	assert.Equal(t, []int{2, 3}, rec.Dims)
}

func TestLoadComplexUsesRealPart(t *testing.T) {
	data := fixture(t, matfile.Variable{
		Name: "z", Class: matfile.ClassSingle, Complex: true, Dims: []int{1, 3},
		Real: []float64{1, 2, 3}, Imag: []float64{9, 9, 9},
	})

	rec, err := Load(data)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, rec.Signal)
}

func TestLoadLevel4(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, matfile.EncodeV4(&buf, []matfile.Variable{row("val", ramp(300))}))

	rec, err := Load(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "val", rec.Name)
	assert.Len(t, rec.Signal, 300)
}

func TestLoadGoldenFile(t *testing.T) {
	data, err := os.ReadFile("../internal/matfile/testdata/scipy_layout.mat")
	require.NoError(t, err)

	rec, err := Load(data)
	require.NoError(t, err)
	assert.Equal(t, "ecg", rec.Name)
	assert.Equal(t, []float64{0.5, -1.25, 2, 1000}, rec.Signal)

	names, err := Variables(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"ecg", "fs", "lead2"}, names)

	rec, err = Load(data, WithVariable("lead2"))
	require.NoError(t, err)
	assert.Equal(t, 2, rec.Index)
	assert.Equal(t, []float64{-2, 0, 3}, rec.Signal)
}

func TestLoadExplicitVariable(t *testing.T) {
	data := fixture(t,
		matfile.Variable{Name: "meta", Class: matfile.ClassDouble, Dims: []int{1, 1}, Real: []float64{1}},
		matfile.Variable{Name: "label", Class: matfile.ClassChar, Dims: []int{1, 1}, Real: []float64{'x'}},
		row("signal", ramp(500)),
	)

	rec, err := Load(data, WithVariable("signal"))
	require.NoError(t, err)
	assert.Equal(t, "signal", rec.Name)
	assert.Equal(t, 2, rec.Index)

	_, err = Load(data, WithVariable("missing"))
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.ErrorIs(t, err, ErrVariableNotFound)

	_, err = Load(data, WithVariable("label"))
	require.ErrorAs(t, err, &loadErr)
	assert.ErrorIs(t, err, ErrNoSignal)
}

func TestLoadErrors(t *testing.T) {
	good := fixture(t, row("ecg", ramp(10)))

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"no acceptable array", fixture(t, matfile.Variable{Name: "s", Class: matfile.ClassChar, Dims: []int{1, 1}, Real: []float64{'a'}}), ErrNoSignal},
		{"no variables", fixture(t), ErrNoSignal},
		{"empty input", nil, matfile.ErrMalformed},
		{"truncated", good[:len(good)-20], matfile.ErrMalformed},
		{"not a mat file", []byte("this is plainly not a MAT-file, just some text that is long enough to pass the header length check ......."), matfile.ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Load(tt.data)
			assert.Nil(t, rec)

			var loadErr *LoadError
			require.ErrorAs(t, err, &loadErr)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "loading ECG data: ")
		})
	}
}

func TestLoadErrorMessage(t *testing.T) {
	err := &LoadError{Cause: errors.New("boom")}
	assert.Equal(t, "loading ECG data: boom", err.Error())
}
