package ecg

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-ecg/internal/matfile"
)

const ecgRate = 250.0

func row(name string, values []float64) matfile.Variable {
	return matfile.Variable{Name: name, Class: matfile.ClassDouble, Dims: []int{1, len(values)}, Real: values}
}

func fixture(t *testing.T, vars ...matfile.Variable) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, matfile.Encode(&buf, vars))
	return buf.Bytes()
}

func compressedFixture(t *testing.T, vars ...matfile.Variable) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, matfile.Encode(&buf, vars, matfile.WithCompression()))
	return buf.Bytes()
}

func ramp(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}
