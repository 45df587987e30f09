package smooth

import "math"

// Linear is a time-based linear smoother. Each new input value starts a
// straight line from the current output to that value lasting a fixed number
// of samples derived from the smoothing time.
type Linear struct {
	timeMs     float64
	sampleRate float64
	tail       int

	start   float64
	end     float64
	current float64
	tick    int
}

// NewLinear creates a linear smoother with the given ramp time.
func NewLinear(timeMs, sampleRate float64) *Linear {
	l := &Linear{timeMs: timeMs}
	l.SetSampleRate(sampleRate)

	return l
}

// SetSampleRate recomputes the tail length.
func (l *Linear) SetSampleRate(sampleRate float64) {
	l.sampleRate = sampleRate

	tail := l.timeMs * 0.001 * sampleRate
	if tail < 0 || math.IsNaN(tail) || math.IsInf(tail, 0) {
		tail = 0
	}

	l.tail = int(tail)
	if l.tick > l.tail {
		l.tick = l.tail
	}
}

// Tail returns the ramp length in samples.
func (l *Linear) Tail() int { return l.tail }

// Flush finishes any ramp immediately at its end value.
func (l *Linear) Flush() {
	l.tick = 0
	l.current = l.end
	l.start = l.end
}

// Reset rests the smoother at value.
func (l *Linear) Reset(value float64) {
	l.start = value
	l.end = value
	l.current = value
	l.tick = 0
}

// Process feeds the latest control value and returns the smoothed output.
// A changed value mid-ramp restarts from the current output.
func (l *Linear) Process(in float64) float64 {
	if in != l.end {
		l.start = l.current
		l.end = in
		l.tick = l.tail
	}

	if l.tick == 0 {
		l.current = l.end
		return l.current
	}

	l.tick--
	l.current = l.end - (l.end-l.start)*float64(l.tick)/float64(l.tail)

	return l.current
}
