package testutil

import (
	"math"
	"math/rand"
)

// generate returns a signal of length samples with sample i set to f(i).
func generate(length int, f func(i int) float64) []float64 {
	out := make([]float64, max(length, 0))
	for i := range out {
		out[i] = f(i)
	}

	return out
}

// DeterministicSine returns a zero-phase sine of freqHz sampled at sampleRate.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	w := 2 * math.Pi * freqHz / sampleRate

	return generate(length, func(i int) float64 {
		return amplitude * math.Sin(w*float64(i))
	})
}

// DeterministicNoise returns uniform white noise in [-amplitude, amplitude).
// The same seed always yields the same samples.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	rng := rand.New(rand.NewSource(seed))

	return generate(length, func(int) float64 {
		return amplitude * (2*rng.Float64() - 1)
	})
}

// Impulse returns a unit impulse at pos. Positions outside the signal give
// silence.
func Impulse(length, pos int) []float64 {
	return generate(length, func(i int) float64 {
		if i == pos {
			return 1
		}

		return 0
	})
}

// DC returns a constant signal.
func DC(value float64, length int) []float64 {
	return generate(length, func(int) float64 { return value })
}
