package ladder

import (
	"math"

	"github.com/cwbudde/algo-robotfx/dsp/core"
)

const (
	maxMoogResonance = 0.95
	moogIterations   = 2
)

// Moog is a four-stage tanh ladder with polynomial tuning correction and
// two sub-iterations per sample. The fourth tap is the half-sample averaged
// stage-4 output, which also feeds the resonance loop.
type Moog struct {
	sampleRate float64

	cutoff    float64
	cutoffHz  float64
	resonance float64
	mode      float64
	drive     float64
	invDrive  float64

	tune float64
	acr  float64
	res4 float64

	weights Weights
}

// NewMoog constructs a Moog ladder. WithVariant may be omitted; any other
// variant is rejected.
func NewMoog(sampleRate float64, opts ...Option) (*Moog, error) {
	cfg, err := applyOptions(append([]Option{WithVariant(VariantMoog)}, opts...))
	if err != nil {
		return nil, err
	}

	if cfg.variant != VariantMoog {
		return nil, errMoogVariant
	}

	return newMoog(sampleRate, cfg)
}

func newMoog(sampleRate float64, cfg config) (*Moog, error) {
	m := &Moog{
		drive:    cfg.drive,
		invDrive: 1 / cfg.drive,
		mode:     cfg.mode,
	}

	m.cutoff = core.ClampFinite(cfg.cutoff, 0, 100)
	m.cutoffHz = CutoffHz(m.cutoff)

	if err := m.SetSampleRate(sampleRate); err != nil {
		return nil, err
	}

	m.SetResonance(cfg.resonance)
	m.SetMode(cfg.mode)

	return m, nil
}

// Variant returns VariantMoog.
func (m *Moog) Variant() Variant { return VariantMoog }

// SampleRate returns the sample rate in Hz.
func (m *Moog) SampleRate() float64 { return m.sampleRate }

// CutoffHz returns the cutoff frequency before the Nyquist guard.
func (m *Moog) CutoffHz() float64 { return m.cutoffHz }

// Resonance returns the resonance knob in percent.
func (m *Moog) Resonance() float64 { return m.resonance }

// Mode returns the output tap selection.
func (m *Moog) Mode() float64 { return m.mode }

// Drive returns the saturation drive.
func (m *Moog) Drive() float64 { return m.drive }

// Tune returns the per-iteration one-pole coefficient.
func (m *Moog) Tune() float64 { return m.tune }

// FeedbackGain returns the effective resonance loop gain 4*res*acr.
func (m *Moog) FeedbackGain() float64 { return m.res4 }

// SetSampleRate updates the tuning for a new sample rate.
func (m *Moog) SetSampleRate(sampleRate float64) error {
	if err := validateSampleRate(sampleRate); err != nil {
		return err
	}

	m.sampleRate = sampleRate
	m.retune()

	return nil
}

// SetCutoff sets the cutoff knob in percent.
func (m *Moog) SetCutoff(percent float64) {
	m.cutoff = core.ClampFinite(percent, 0, 100)
	m.cutoffHz = CutoffHz(m.cutoff)
	m.retune()
}

// SetCutoffHz sets the cutoff frequency directly. The tuning limits it to
// 0.45 times the sample rate. Non-finite values are ignored.
func (m *Moog) SetCutoffHz(hz float64) {
	if !core.IsFinite(hz) {
		return
	}

	m.cutoffHz = math.Max(hz, 1)
	m.retune()
}

// SetResonance sets the resonance knob in percent; 100 % maps to 0.95.
func (m *Moog) SetResonance(percent float64) {
	m.resonance = core.ClampFinite(percent, 0, 100)
	m.res4 = 4 * m.resonance * 0.01 * maxMoogResonance * m.acr
}

// SetMode sets the output tap selection in [1, 4].
func (m *Moog) SetMode(mode float64) {
	m.mode = core.ClampFinite(mode, 1, 4)
	m.weights = ModeWeights(m.mode)
}

func (m *Moog) retune() {
	fc := clampCutoffHz(m.cutoffHz, m.sampleRate) / m.sampleRate
	fc2 := fc * fc
	fc3 := fc2 * fc

	fcr := 1.8730*fc3 + 0.4955*fc2 - 0.6490*fc + 0.9988
	m.acr = -3.9364*fc2 + 1.8409*fc + 0.9968
	m.tune = 1 - math.Exp(-2*math.Pi*(0.5*fc)*fcr)

	m.res4 = 4 * m.resonance * 0.01 * maxMoogResonance * m.acr
}

func (m *Moog) sat(x float64) float64 {
	return math.Tanh(m.drive*x) * m.invDrive
}

// Process filters one sample.
func (m *Moog) Process(x float64, s *State) float64 {
	if !core.IsFinite(x) {
		x = 0
	}

	for range moogIterations {
		in := x - m.res4*s.Delay[1]

		s.Stage[0] += m.tune * (m.sat(in) - s.Tanh[0])
		s.Tanh[0] = m.sat(s.Stage[0])

		s.Stage[1] += m.tune * (s.Tanh[0] - s.Tanh[1])
		s.Tanh[1] = m.sat(s.Stage[1])

		s.Stage[2] += m.tune * (s.Tanh[1] - s.Tanh[2])
		s.Tanh[2] = m.sat(s.Stage[2])

		s.Stage[3] += m.tune * (s.Tanh[2] - m.sat(s.Stage[3]))

		for i := range s.Stage {
			s.Stage[i] = clipState(s.Stage[i])
		}

		s.Delay[1] = (s.Stage[3] + s.Delay[0]) * 0.5
		s.Delay[0] = s.Stage[3]
	}

	out := m.weights.Mix(s.Stage[0], s.Stage[1], s.Stage[2], s.Delay[1])
	if !core.IsFinite(out) || !s.IsFinite() {
		s.Reset()
		return 0
	}

	return out
}
