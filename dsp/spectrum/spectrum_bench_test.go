package spectrum

import (
	"math"
	"testing"
)

func BenchmarkOneSided(b *testing.B) {
	sizes := []struct {
		name string
		size int
	}{
		{"10s", 2500},
		{"1min", 15000},
		{"5min", 75000},
	}

	for _, testCase := range sizes {
		b.Run(testCase.name, func(b *testing.B) {
			sig := make([]float64, testCase.size)
			for i := range sig {
				sig[i] = math.Sin(2 * math.Pi * 1.2 * float64(i) / 250)
			}

			b.SetBytes(int64(testCase.size * 8))
			b.ResetTimer()

			for range b.N {
				_, _, _ = OneSided(sig, 250)
			}
		})
	}
}

func BenchmarkMagnitude(b *testing.B) {
	in := make([]complex128, 4096)
	for i := range in {
		in[i] = complex(float64(i)/10.0, float64(4096-i)/10.0)
	}
	b.SetBytes(int64(len(in) * 16))
	b.ResetTimer()

	for range b.N {
		_ = Magnitude(in)
	}
}
