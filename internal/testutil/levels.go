package testutil

import "math"

// RMS returns the root-mean-square level of data, or 0 for an empty slice.
func RMS(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range data {
		sum += v * v
	}

	return math.Sqrt(sum / float64(len(data)))
}

// PeakAbs returns the largest absolute value in data.
func PeakAbs(data []float64) float64 {
	peak := 0.0
	for _, v := range data {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}

	return peak
}

// Step generates a signal that is 0 before pos and value from pos onward.
func Step(value float64, length, pos int) []float64 {
	out := make([]float64, length)
	for i := max(pos, 0); i < length; i++ {
		out[i] = value
	}

	return out
}

// ToneGainDB drives process with a unit sine at freqHz and returns the
// steady-state RMS gain in dB. The first settle samples are discarded.
func ToneGainDB(process func(float64) float64, freqHz, sampleRate float64, settle, measure int) float64 {
	in := DeterministicSine(freqHz, sampleRate, 1, settle+measure)
	out := make([]float64, len(in))
	for i, x := range in {
		out[i] = process(x)
	}

	ref := RMS(in[settle:])
	got := RMS(out[settle:])
	if ref == 0 || got == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(got/ref)
}
