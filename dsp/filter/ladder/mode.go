package ladder

import "github.com/cwbudde/algo-robotfx/dsp/core"

// Weights are the output blend weights for the four cascade taps. They are
// non-negative and sum to 1.
type Weights [4]float64

// ModeWeights returns blend weights for mode in [1, 4]. Integer modes select
// one tap; fractional modes interpolate linearly between the two adjacent
// one-hot vectors. Out-of-range modes are clamped.
func ModeWeights(mode float64) Weights {
	mode = core.ClampFinite(mode, 1, 4)

	var w Weights

	lo := int(mode)
	if lo >= 4 {
		w[3] = 1
		return w
	}

	frac := mode - float64(lo)
	w[lo-1] = 1 - frac
	w[lo] = frac

	return w
}

// Mix returns the weighted sum of the four tap outputs.
func (w Weights) Mix(y1, y2, y3, y4 float64) float64 {
	return w[0]*y1 + w[1]*y2 + w[2]*y3 + w[3]*y4
}
