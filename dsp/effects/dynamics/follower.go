package dynamics

import (
	"fmt"
	"math"
)

const (
	defaultAttackMs  = 1.0
	defaultReleaseMs = 36.0

	minTimeMs       = 0.01
	maxAttackMs     = 10.0
	maxReleaseMs    = 120.0
	minSampleRateHz = 1.0
)

// Follower tracks the level of a sidechain signal. Rising input moves the
// state with the attack coefficient, falling input with the release one:
//
//	c = side >= state ? attack : release
//	state = side + c*(state-side)
//
// A coefficient of exp(-1000/(ms*fs)) makes a step reach 1-1/e of its final
// value after ms milliseconds.
type Follower struct {
	sampleRate float64
	attackMs   float64
	releaseMs  float64

	attackCoeff  float64
	releaseCoeff float64

	state float64
}

// NewFollower returns a follower with 1 ms attack and 36 ms release.
func NewFollower(sampleRate float64) (*Follower, error) {
	f := &Follower{attackMs: defaultAttackMs, releaseMs: defaultReleaseMs}
	if err := f.SetSampleRate(sampleRate); err != nil {
		return nil, err
	}

	return f, nil
}

// SetSampleRate updates the time-constant coefficients.
func (f *Follower) SetSampleRate(sampleRate float64) error {
	if sampleRate < minSampleRateHz || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("dynamics: sample rate must be positive and finite: %f", sampleRate)
	}

	f.sampleRate = sampleRate
	f.attackCoeff = timeCoeff(f.attackMs, sampleRate)
	f.releaseCoeff = timeCoeff(f.releaseMs, sampleRate)

	return nil
}

// SetAttack sets the attack time in milliseconds, clamped to [0.01, 10].
func (f *Follower) SetAttack(ms float64) {
	f.attackMs = clampTime(ms, maxAttackMs, defaultAttackMs)
	f.attackCoeff = timeCoeff(f.attackMs, f.sampleRate)
}

// SetRelease sets the release time in milliseconds, clamped to [0.01, 120].
func (f *Follower) SetRelease(ms float64) {
	f.releaseMs = clampTime(ms, maxReleaseMs, defaultReleaseMs)
	f.releaseCoeff = timeCoeff(f.releaseMs, f.sampleRate)
}

// Attack returns the attack time in milliseconds.
func (f *Follower) Attack() float64 { return f.attackMs }

// Release returns the release time in milliseconds.
func (f *Follower) Release() float64 { return f.releaseMs }

// SampleRate returns the sample rate in Hz.
func (f *Follower) SampleRate() float64 { return f.sampleRate }

// Coefficients returns the attack and release coefficients.
func (f *Follower) Coefficients() (attack, release float64) {
	return f.attackCoeff, f.releaseCoeff
}

// Value returns the current envelope.
func (f *Follower) Value() float64 { return f.state }

// Reset clears the envelope.
func (f *Follower) Reset() { f.state = 0 }

// Process advances the envelope with one sidechain sample.
func (f *Follower) Process(side float64) float64 {
	if math.IsNaN(side) || math.IsInf(side, 0) {
		side = 0
	}

	c := f.releaseCoeff
	if side >= f.state {
		c = f.attackCoeff
	}

	f.state = side + c*(f.state-side)

	return f.state
}

func timeCoeff(ms, sampleRate float64) float64 {
	return math.Exp(-1000 / (ms * sampleRate))
}

func clampTime(ms, max, def float64) float64 {
	switch {
	case math.IsNaN(ms):
		return def
	case ms < minTimeMs:
		return minTimeMs
	case ms > max:
		return max
	default:
		return ms
	}
}
