package ladder

import (
	"math"
	"testing"
)

func benchmarkModel(b *testing.B, opts ...Option) {
	m, err := New(48000, opts...)
	if err != nil {
		b.Fatalf("New() error = %v", err)
	}

	var s State

	buf := make([]float64, 512)
	for i := range buf {
		buf[i] = math.Sin(2 * math.Pi * float64(i) / 64)
	}

	b.SetBytes(int64(len(buf) * 8))
	b.ResetTimer()

	for range b.N {
		ProcessBlock(m, &s, buf, buf)
	}
}

func BenchmarkHexed(b *testing.B) {
	benchmarkModel(b, WithVariant(VariantHexed), WithResonance(70))
}

func BenchmarkDexed(b *testing.B) {
	benchmarkModel(b, WithVariant(VariantDexed), WithResonance(70))
}

func BenchmarkMoog(b *testing.B) {
	benchmarkModel(b, WithVariant(VariantMoog), WithResonance(70))
}
