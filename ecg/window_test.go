package ecg

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindowSeconds(t *testing.T) {
	tests := []struct {
		duration, max, want float64
	}{
		{25, 10, 10},
		{3.99, 10, 3},
		{0.5, 10, 1},
		{0, 10, 1},
		{25, 0, DefaultWindowSeconds},
		{7.2, 5, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WindowSeconds(tt.duration, tt.max), "duration=%v max=%v", tt.duration, tt.max)
	}
}

func TestRecordWindow(t *testing.T) {
	rec := &Record{Time: []float64{0, 0.5, 1, 1.5, 2}, Signal: []float64{1, 2, 3, 4, 5}}

	tw, xw := rec.Window(1)
	assert.Equal(t, []float64{0, 0.5, 1}, tw)
	assert.Equal(t, []float64{1, 2, 3}, xw)

	tw, _ = rec.Window(10)
	assert.Len(t, tw, 5)
}

func TestExampleSignal(t *testing.T) {
	tt, x := ExampleSignal()
	assert.Len(t, tt, 1000)
	assert.Len(t, x, 1000)
	assert.Equal(t, 0.0, tt[0])
	assert.InDelta(t, 2*math.Pi, tt[999], 1e-12)
	assert.InDelta(t, 0, x[999], 1e-12)
	assert.InDelta(t, 1, x[250], 1e-4)
}
