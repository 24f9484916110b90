package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-ecg/internal/matfile"
	"github.com/cwbudde/algo-ecg/internal/testutil"
)

func writeRecord(t *testing.T) string {
	t.Helper()
	x := testutil.SyntheticECG(250, 60, 0.01, 2500)

	var buf bytes.Buffer
	require.NoError(t, matfile.Encode(&buf, []matfile.Variable{
		{Name: "meta", Class: matfile.ClassChar, Dims: []int{1, 1}, Real: []float64{'m'}},
		{Name: "val", Class: matfile.ClassDouble, Dims: []int{1, len(x)}, Real: x},
	}, matfile.WithCompression()))

	path := filepath.Join(t.TempDir(), "record.mat")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	env := filepath.Join(t.TempDir(), "missing.env")
	code := run(context.Background(), append([]string{"-env", env}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunPrintsSummary(t *testing.T) {
	path := writeRecord(t)

	code, out, errOut := runCLI(t, "-filter", "bandpass", "-cutoff", "40", "-top", "3", path)
	require.Equal(t, 0, code, errOut)

	assert.Contains(t, out, "val (#1, dims [1 2500])")
	assert.Regexp(t, `Samples\s+2500\n`, out)
	assert.Contains(t, out, "bandpass, cutoff 40 Hz, order 4 (-6.02 dB at cutoff)")
	for _, k := range []string{"Mean", "StdDev", "Min", "Max", "Range", "RMS", "Centroid", "Rolloff (85%)", "Mains 50 Hz share", "Peak"} {
		assert.Contains(t, out, k)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	header := -1
	for i, l := range lines {
		if strings.Contains(l, "Freq (Hz)") {
			header = i
		}
	}
	require.GreaterOrEqual(t, header, 0)
	assert.Len(t, lines[header+1:], 3)
}

func TestRunList(t *testing.T) {
	code, out, _ := runCLI(t, "-list", writeRecord(t))
	require.Equal(t, 0, code)
	assert.Equal(t, "val\n", out)
}

func TestRunErrors(t *testing.T) {
	path := writeRecord(t)

	code, _, errOut := runCLI(t)
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "exactly one MAT-file")

	code, _, errOut = runCLI(t, "-filter", "notch", path)
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "unknown filter kind")

	code, _, errOut = runCLI(t, "-filter", "lowpass", "-cutoff", "200", path)
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "outside configured range")

	code, _, errOut = runCLI(t, "-var", "meta", path)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "loading ECG data")

	code, _, _ = runCLI(t, filepath.Join(t.TempDir(), "nope.mat"))
	assert.Equal(t, 1, code)
}

func TestRunWritesMetrics(t *testing.T) {
	path := writeRecord(t)

	code, _, errOut := runCLI(t, "-metrics", path)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, errOut, "# TYPE ecg_pipeline_runs_total counter")
	assert.Contains(t, errOut, `ecg_pipeline_runs_total{outcome="ok"} 1`)
	assert.Contains(t, errOut, "ecg_pipeline_samples_processed_total 2500")

	code, _, errOut = runCLI(t, "-metrics", "-var", "meta", path)
	require.Equal(t, 1, code)
	assert.Contains(t, errOut, `ecg_pipeline_runs_total{outcome="load_error"} 1`)

	code, _, errOut = runCLI(t, path)
	require.Equal(t, 0, code)
	assert.NotContains(t, errOut, "ecg_pipeline_runs_total")
}

func TestRunRateRevalidatesConfig(t *testing.T) {
	path := writeRecord(t)

	// 100 Hz lowers the cutoff range to [1, 50].
	code, _, errOut := runCLI(t, "-rate", "100", "-filter", "lowpass", "-cutoff", "60", path)
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "outside configured range [1, 50]")

	code, out, errOut := runCLI(t, "-rate", "100", "-filter", "lowpass", "-cutoff", "30", path)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "100 Hz")

	// Below 2 Hz even the lowest cutoff exceeds Nyquist.
	code, _, errOut = runCLI(t, "-rate", "1", path)
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "invalid config")
}
