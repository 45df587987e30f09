package core

import "math"

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// ClampFinite is Clamp with NaN mapped to min and infinities mapped to the
// nearest bound. Host parameter values go through this before any mapping.
func ClampFinite(value, min, max float64) float64 {
	if math.IsNaN(value) {
		if min > max {
			return max
		}

		return min
	}

	return Clamp(value, min, max)
}

// IsFinite reports whether value is neither NaN nor Inf.
func IsFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}

// Sanitize returns value, or 0 when value is NaN or Inf.
func Sanitize(value float64) float64 {
	if !IsFinite(value) {
		return 0
	}

	return value
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// This can reduce denormal-related CPU slowdowns in hot DSP loops.
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// DefaultRolloff is the curvature used by LogScale when callers have no
// preference. With 19 the curve spans a 20:1 exponential range.
const DefaultRolloff = 19.0

// LogScale maps a normalized control value in [0, 1] onto [min, max] through
// an exponential curve:
//
//	((exp(param*ln(rolloff+1)) - 1) / rolloff) * (max-min) + min
//
// param=0 yields min and param=1 yields max. The mapping is strictly
// increasing for rolloff > 0. param is clamped to [0, 1].
func LogScale(param, min, max, rolloff float64) float64 {
	if rolloff <= 0 {
		rolloff = DefaultRolloff
	}

	param = ClampFinite(param, 0, 1)

	return ((math.Exp(param*math.Log(rolloff+1)) - 1) / rolloff * (max - min)) + min
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// LinearPowerToDB converts linear power to dB (10*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearPowerToDB(power float64) float64 {
	if power < 0 {
		return math.NaN()
	}

	if power == 0 {
		return math.Inf(-1)
	}

	return 10 * math.Log10(power)
}
