package mix

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-robotfx/dsp/core"
	"github.com/cwbudde/algo-robotfx/dsp/smooth"
	vecmath "github.com/cwbudde/algo-vecmath"
)

// curveSlope makes WetCurve reach exactly 1 at 100 %: 1-e^-1+e^-1 = 1.
const curveSlope = 0.367879441171442

var errMismatchedLength = errors.New("mix: mismatched block lengths")

// WetCurve maps a wet knob position in percent to a blend weight in [0, 1].
func WetCurve(percent float64) float64 {
	v := core.ClampFinite(percent, 0, 100) * 0.01
	return core.Clamp(1-math.Exp(-v)+curveSlope*v, 0, 1)
}

// Mix blends dry and wet with weight w in [0, 1].
func Mix(dry, wet, w float64) float64 {
	return dry*(1-w) + wet*w
}

// MixBlock writes dry*(1-w)+wet*w into dst using per-sample weights. scratch
// must not alias any other argument; dst may alias dry or wet.
func MixBlock(dst, dry, wet, weights, scratch []float64) error {
	n := len(dst)
	if len(dry) != n || len(wet) != n || len(weights) != n || len(scratch) < n {
		return errMismatchedLength
	}

	if n == 0 {
		return nil
	}

	scratch = scratch[:n]
	vecmath.MulBlock(scratch, wet, weights)

	for i := range dst {
		dst[i] = dry[i]*(1-weights[i]) + scratch[i]
	}

	return nil
}

// WetDry is a smoothed wet/dry mixer. The knob value is ramped over one block
// and mapped through WetCurve per sample.
type WetDry struct {
	ramp smooth.Ramp
}

// NewWetDry returns a mixer settled at percent.
func NewWetDry(percent float64) *WetDry {
	w := &WetDry{}
	w.Reset(percent)

	return w
}

// Reset jumps to percent without ramping.
func (w *WetDry) Reset(percent float64) {
	w.ramp.Reset(core.ClampFinite(percent, 0, 100))
}

// SetWet sets a new wet target in percent. It takes effect at the next Begin.
func (w *WetDry) SetWet(percent float64) {
	w.ramp.SetTarget(core.ClampFinite(percent, 0, 100))
}

// Wet returns the wet target in percent.
func (w *WetDry) Wet() float64 {
	return w.ramp.Target()
}

// Begin arms the ramp towards the pending target over n samples.
func (w *WetDry) Begin(n int) {
	w.ramp.Begin(n)
}

// Next advances one sample and returns the blend weight.
func (w *WetDry) Next() float64 {
	return WetCurve(w.ramp.Next())
}

// Process advances one sample and blends dry with wet.
func (w *WetDry) Process(dry, wet float64) float64 {
	return Mix(dry, wet, w.Next())
}

// Weights fills dst with the next len(dst) blend weights.
func (w *WetDry) Weights(dst []float64) {
	for i := range dst {
		dst[i] = w.Next()
	}
}
