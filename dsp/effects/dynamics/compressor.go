package dynamics

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-robotfx/dsp/core"
	"github.com/cwbudde/algo-robotfx/dsp/smooth"
	vecmath "github.com/cwbudde/algo-vecmath"
)

const (
	defaultThresholdDB = 0.0
	defaultRatio       = 1.0
	defaultMakeupDB    = 0.0

	minThresholdDB = -80.0
	maxThresholdDB = 0.0
	minRatio       = 1.0
	maxRatio       = 16.0
	minMakeupDB    = -8.0
	maxMakeupDB    = 24.0

	// envelopeFloor keeps log10 finite on silence.
	envelopeFloor = 1e-12

	// Control changes glide over this time so gain never steps.
	controlSmoothMs = 21.34
)

// Detector turns an input sample into a non-negative sidechain level.
type Detector interface {
	Detect(x float64) float64
	Reset()
}

// PeakDetector is the default detector: the absolute sample value.
type PeakDetector struct{}

// Detect returns |x|.
func (PeakDetector) Detect(x float64) float64 { return math.Abs(x) }

// Reset is a no-op.
func (PeakDetector) Reset() {}

// Option mutates compressor construction.
type Option func(*Compressor) error

// WithThreshold sets the threshold in dB, within [-80, 0].
func WithThreshold(dB float64) Option {
	return func(c *Compressor) error {
		if err := validateFiniteRange(dB, minThresholdDB, maxThresholdDB, "threshold"); err != nil {
			return err
		}

		c.thresholdDB = dB

		return nil
	}
}

// WithRatio sets the compression ratio, within [1, 16].
func WithRatio(ratio float64) Option {
	return func(c *Compressor) error {
		if err := validateFiniteRange(ratio, minRatio, maxRatio, "ratio"); err != nil {
			return err
		}

		c.ratio = ratio

		return nil
	}
}

// WithMakeupGain sets the makeup gain in dB, within [-8, 24].
func WithMakeupGain(dB float64) Option {
	return func(c *Compressor) error {
		if err := validateFiniteRange(dB, minMakeupDB, maxMakeupDB, "makeup gain"); err != nil {
			return err
		}

		c.makeupDB = dB

		return nil
	}
}

// WithAttack sets the attack time in milliseconds, within [0.01, 10].
func WithAttack(ms float64) Option {
	return func(c *Compressor) error {
		if err := validateFiniteRange(ms, minTimeMs, maxAttackMs, "attack"); err != nil {
			return err
		}

		c.follower.attackMs = ms

		return nil
	}
}

// WithRelease sets the release time in milliseconds, within [0.01, 120].
func WithRelease(ms float64) Option {
	return func(c *Compressor) error {
		if err := validateFiniteRange(ms, minTimeMs, maxReleaseMs, "release"); err != nil {
			return err
		}

		c.follower.releaseMs = ms

		return nil
	}
}

// WithDetector replaces the peak sidechain detector.
func WithDetector(d Detector) Option {
	return func(c *Compressor) error {
		if d == nil {
			return fmt.Errorf("dynamics: nil detector")
		}

		c.detector = d

		return nil
	}
}

// Compressor is a hard-knee feed-forward compressor. The sidechain level is
// tracked by a Follower and converted to a power-domain envelope in dB:
//
//	envDb  = 10*log10(max(env, 1e-12))
//	gainDb = min(0, (1-1/ratio)*(threshold-envDb))
//	out    = x * 10^(gainDb/20) * 10^(makeup/20)
//
// Threshold follows a one-pole glide; the ratio slope and linear makeup gain
// follow linear ramps. Construction options and Settle apply immediately.
//
// The compressor is mono; use one instance per channel.
type Compressor struct {
	thresholdDB float64
	ratio       float64
	makeupDB    float64

	slope     float64
	makeupLin float64
	lastGain  float64

	thresholdGlide *smooth.OnePole
	slopeGlide     *smooth.Linear
	makeupGlide    *smooth.Linear

	follower   Follower
	detector   Detector
	gainBuffer []float64
}

// NewCompressor creates a compressor with threshold 0 dB, ratio 1:1, no
// makeup, 1 ms attack and 36 ms release.
func NewCompressor(sampleRate float64, opts ...Option) (*Compressor, error) {
	c := &Compressor{
		thresholdDB: defaultThresholdDB,
		ratio:       defaultRatio,
		makeupDB:    defaultMakeupDB,
		follower:    Follower{attackMs: defaultAttackMs, releaseMs: defaultReleaseMs},
		detector:    PeakDetector{},
		lastGain:    1,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if err := c.follower.SetSampleRate(sampleRate); err != nil {
		return nil, err
	}

	c.updateCoefficients()

	c.thresholdGlide = smooth.NewOnePole(controlSmoothMs, sampleRate)
	c.slopeGlide = smooth.NewLinear(controlSmoothMs, sampleRate)
	c.makeupGlide = smooth.NewLinear(controlSmoothMs, sampleRate)
	c.Settle()

	return c, nil
}

// SetSampleRate updates the follower and control glide time constants. Glides
// keep their current values.
func (c *Compressor) SetSampleRate(sampleRate float64) error {
	if err := c.follower.SetSampleRate(sampleRate); err != nil {
		return err
	}

	thr := c.thresholdGlide.Value()
	c.thresholdGlide.SetSampleRate(sampleRate)
	c.thresholdGlide.Reset(thr)
	c.slopeGlide.SetSampleRate(sampleRate)
	c.makeupGlide.SetSampleRate(sampleRate)

	return nil
}

// Settle ends any control glide so the current threshold, ratio and makeup
// apply from the next sample.
func (c *Compressor) Settle() {
	c.thresholdGlide.Reset(c.thresholdDB)
	c.slopeGlide.Reset(c.slope)
	c.makeupGlide.Reset(c.makeupLin)
}

// SetThreshold sets the threshold in dB, clamped to [-80, 0].
func (c *Compressor) SetThreshold(dB float64) {
	c.thresholdDB = clampFinite(dB, minThresholdDB, maxThresholdDB, c.thresholdDB)
}

// SetRatio sets the compression ratio. Values below 1 are clamped to 1
// (no compression), values above 16 to 16.
func (c *Compressor) SetRatio(ratio float64) {
	c.ratio = clampFinite(ratio, minRatio, maxRatio, c.ratio)
	c.updateCoefficients()
}

// SetMakeupGain sets the makeup gain in dB, clamped to [-8, 24].
func (c *Compressor) SetMakeupGain(dB float64) {
	c.makeupDB = clampFinite(dB, minMakeupDB, maxMakeupDB, c.makeupDB)
	c.updateCoefficients()
}

// SetAttack sets the attack time in milliseconds.
func (c *Compressor) SetAttack(ms float64) { c.follower.SetAttack(ms) }

// SetRelease sets the release time in milliseconds.
func (c *Compressor) SetRelease(ms float64) { c.follower.SetRelease(ms) }

// SetDetector replaces the sidechain detector. nil restores peak sensing.
func (c *Compressor) SetDetector(d Detector) {
	if d == nil {
		d = PeakDetector{}
	}

	c.detector = d
}

// Threshold returns the threshold in dB.
func (c *Compressor) Threshold() float64 { return c.thresholdDB }

// Ratio returns the compression ratio.
func (c *Compressor) Ratio() float64 { return c.ratio }

// MakeupGain returns the makeup gain in dB.
func (c *Compressor) MakeupGain() float64 { return c.makeupDB }

// Attack returns the attack time in milliseconds.
func (c *Compressor) Attack() float64 { return c.follower.Attack() }

// Release returns the release time in milliseconds.
func (c *Compressor) Release() float64 { return c.follower.Release() }

// SampleRate returns the sample rate in Hz.
func (c *Compressor) SampleRate() float64 { return c.follower.SampleRate() }

// Envelope returns the current follower state.
func (c *Compressor) Envelope() float64 { return c.follower.Value() }

// LastGain returns the gain (without makeup) applied to the most recent sample.
func (c *Compressor) LastGain() float64 { return c.lastGain }

// Reset clears the envelope and the detector.
func (c *Compressor) Reset() {
	c.follower.Reset()
	c.detector.Reset()
	c.lastGain = 1
}

// ProcessSample compresses one sample and returns the output together with
// the applied gain reduction factor.
func (c *Compressor) ProcessSample(x float64) (float64, float64) {
	x = core.Sanitize(x)

	gain := c.gainFor(c.detector.Detect(x))

	return x * gain * c.makeupGlide.Process(c.makeupLin), gain
}

// ProcessInPlace compresses buf in place. The gain vector is computed first
// and then applied with a single block multiply.
func (c *Compressor) ProcessInPlace(buf []float64) {
	if len(buf) == 0 {
		return
	}

	c.gainBuffer = core.EnsureLen(c.gainBuffer, len(buf))
	gains := c.gainBuffer

	for i, x := range buf {
		x = core.Sanitize(x)
		buf[i] = x

		gains[i] = c.gainFor(c.detector.Detect(x)) * c.makeupGlide.Process(c.makeupLin)
	}

	vecmath.MulBlockInPlace(buf, gains)
}

// Reserve preallocates the block gain buffer so ProcessInPlace does not
// allocate for blocks up to n samples.
func (c *Compressor) Reserve(n int) {
	c.gainBuffer = core.EnsureLen(c.gainBuffer, n)
}

// StaticGainDB returns the steady-state gain reduction in dB for a constant
// envelope level (without makeup) once all glides have settled.
func (c *Compressor) StaticGainDB(envelope float64) float64 {
	envDB := core.LinearPowerToDB(math.Max(envelope, envelopeFloor))
	return math.Min(0, c.slope*(c.thresholdDB-envDB))
}

func (c *Compressor) gainFor(side float64) float64 {
	env := c.follower.Process(side)
	if env < envelopeFloor {
		env = envelopeFloor
		c.follower.state = env
	}

	threshold := c.thresholdGlide.Process(c.thresholdDB)
	slope := c.slopeGlide.Process(c.slope)

	gainDB := slope * (threshold - 10*mathLog10(env))
	if gainDB >= 0 {
		c.lastGain = 1
		return 1
	}

	c.lastGain = mathPower10(gainDB / 20)

	return c.lastGain
}

func (c *Compressor) updateCoefficients() {
	c.slope = 1 - 1/c.ratio
	c.makeupLin = core.DBToLinear(c.makeupDB)
}

func validateFiniteRange(value, min, max float64, name string) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("dynamics: %s must be finite: %v", name, value)
	}

	if value < min || value > max {
		return fmt.Errorf("dynamics: %s must be in [%g, %g]: %f", name, min, max, value)
	}

	return nil
}

func clampFinite(value, min, max, def float64) float64 {
	switch {
	case math.IsNaN(value):
		return def
	case value < min:
		return min
	case value > max:
		return max
	default:
		return value
	}
}
