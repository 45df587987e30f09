package smooth

import "math"

// OnePole is an exponential-approach smoother:
//
//	z(n) = a*z(n-1) + b*x(n),  a = exp(-2*pi / (timeMs*0.001*sampleRate)),  b = 1-a
type OnePole struct {
	timeMs     float64
	sampleRate float64

	a float64
	b float64
	z float64
}

// NewOnePole creates a smoother with the given time constant.
func NewOnePole(timeMs, sampleRate float64) *OnePole {
	s := &OnePole{timeMs: timeMs}
	s.SetSampleRate(sampleRate)

	return s
}

// SetSampleRate updates coefficients and flushes the state when the rate
// changes.
func (s *OnePole) SetSampleRate(sampleRate float64) {
	if sampleRate == s.sampleRate && s.b != 0 {
		return
	}

	s.sampleRate = sampleRate
	s.recalc()
	s.z = 0
}

// SetTime updates the time constant in milliseconds without touching state.
func (s *OnePole) SetTime(timeMs float64) {
	s.timeMs = timeMs
	s.recalc()
}

// Flush zeroes the internal state.
func (s *OnePole) Flush() { s.z = 0 }

// Reset rests the smoother at value so the next outputs start there.
func (s *OnePole) Reset(value float64) { s.z = value }

// Value returns the last output.
func (s *OnePole) Value() float64 { return s.z }

// Coefficients returns the feedback (a) and input (b) coefficients.
func (s *OnePole) Coefficients() (a, b float64) { return s.a, s.b }

// Process feeds one input sample and returns the smoothed value.
func (s *OnePole) Process(in float64) float64 {
	s.z = in*s.b + s.z*s.a
	return s.z
}

func (s *OnePole) recalc() {
	denom := s.timeMs * 0.001 * s.sampleRate
	if denom <= 0 || math.IsNaN(denom) || math.IsInf(denom, 0) {
		s.a = 0
		s.b = 1

		return
	}

	s.a = math.Exp(-2 * math.Pi / denom)
	s.b = 1 - s.a
}
