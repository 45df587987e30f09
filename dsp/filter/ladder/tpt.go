package ladder

import (
	"math"

	"github.com/cwbudde/algo-robotfx/dsp/core"
)

const (
	maxResonanceAmount = 0.991

	hexedResonanceScale = 3.8
	dexedResonanceScale = 3.5

	dcBlockHz      = 126.0
	subAudioHz     = 15.0
	subAudioAmount = 0.45
	makeupPerR24   = 0.45

	// Distance below Nyquist of the bright stage prototype.
	hexedBrightOffsetHz = 5.0
	dexedBrightOffsetHz = 10.0
	brightTracking      = 0.000000016

	// Feedback estimate offset that keeps the cascade input off exact zero.
	nr24Epsilon = 1e-8

	balanceAmount = 0.222
)

// TPT is the Hexed/Dexed ladder: four topology-preserving-transform one-pole
// stages with zero-delay feedback resonance.
type TPT struct {
	variant    Variant
	sampleRate float64
	levelComp  bool

	cutoff    float64
	resonance float64
	mode      float64

	cutoffHz float64
	g        float64
	lpc      float64
	ml       float64
	lpc4     float64

	rReso float64
	r24   float64

	bright    float64
	brightK   float64
	subK      float64
	rcor24    float64
	rcor24Inv float64
	dcR       float64

	weights Weights
	gain    float64
}

// NewTPT constructs a Hexed (default) or Dexed ladder. WithVariant(VariantMoog)
// is rejected.
func NewTPT(sampleRate float64, opts ...Option) (*TPT, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	if cfg.variant == VariantMoog {
		return nil, errTPTVariant
	}

	return newTPT(sampleRate, cfg)
}

func newTPT(sampleRate float64, cfg config) (*TPT, error) {
	t := &TPT{
		variant:   cfg.variant,
		levelComp: cfg.levelComp,
		cutoff:    cfg.cutoff,
		resonance: cfg.resonance,
		mode:      cfg.mode,
	}

	if err := t.SetSampleRate(sampleRate); err != nil {
		return nil, err
	}

	return t, nil
}

// Variant returns VariantHexed or VariantDexed.
func (t *TPT) Variant() Variant { return t.variant }

// SampleRate returns the sample rate in Hz.
func (t *TPT) SampleRate() float64 { return t.sampleRate }

// Cutoff returns the cutoff knob in percent.
func (t *TPT) Cutoff() float64 { return t.cutoff }

// CutoffHz returns the mapped cutoff frequency.
func (t *TPT) CutoffHz() float64 { return t.cutoffHz }

// Resonance returns the resonance knob in percent.
func (t *TPT) Resonance() float64 { return t.resonance }

// R24 returns the feedback gain around the cascade.
func (t *TPT) R24() float64 { return t.r24 }

// Mode returns the output tap selection.
func (t *TPT) Mode() float64 { return t.mode }

// Weights returns the current output blend weights.
func (t *TPT) Weights() Weights { return t.weights }

// Coefficients returns the prewarped stage gain g and the one-pole
// coefficient lpc = g/(1+g).
func (t *TPT) Coefficients() (g, lpc float64) { return t.g, t.lpc }

// SetSampleRate updates all rate-dependent coefficients. Channel states are
// owned by the caller and should be reset alongside.
func (t *TPT) SetSampleRate(sampleRate float64) error {
	if err := validateSampleRate(sampleRate); err != nil {
		return err
	}

	t.sampleRate = sampleRate
	inv := 1 / sampleRate

	rcrate := math.Sqrt(44000 * inv)
	t.rcor24 = (970.0 / 44000) * rcrate
	t.rcor24Inv = 1 / t.rcor24

	offset := hexedBrightOffsetHz
	if t.variant == VariantDexed {
		offset = dexedBrightOffsetHz
	}

	t.bright = math.Tan((sampleRate*0.5 - offset) * math.Pi * inv)
	t.dcR = 1 - dcBlockHz*inv
	t.subK = onePoleCoeff(subAudioHz * math.Pi * inv)

	t.SetCutoff(t.cutoff)
	t.SetResonance(t.resonance)
	t.SetMode(t.mode)

	return nil
}

// SetCutoff sets the cutoff knob in percent.
func (t *TPT) SetCutoff(percent float64) {
	t.cutoff = core.ClampFinite(percent, 0, 100)
	t.cutoffHz = clampCutoffHz(CutoffHz(t.cutoff), t.sampleRate)

	t.g = math.Tan(t.cutoffHz * math.Pi / t.sampleRate)
	t.lpc = onePoleCoeff(t.g)
	t.ml = 1 / (1 + t.g)
	t.lpc4 = t.lpc * t.lpc * t.lpc * t.lpc

	br := t.bright
	if t.variant == VariantHexed {
		br = t.bright - (t.bright-1)*(1-(t.cutoffHz-minCutoffHz)*brightTracking)
	}

	t.brightK = onePoleCoeff(br)
}

// SetResonance sets the resonance knob in percent.
func (t *TPT) SetResonance(percent float64) {
	t.resonance = core.ClampFinite(percent, 0, 100)
	t.rReso = ResonanceAmount(t.resonance)

	scale := hexedResonanceScale
	if t.variant == VariantDexed {
		scale = dexedResonanceScale
	}

	t.r24 = scale * t.rReso
	t.updateGain()
}

// SetMode sets the output tap selection in [1, 4].
func (t *TPT) SetMode(mode float64) {
	t.mode = core.ClampFinite(mode, 1, 4)
	t.weights = ModeWeights(t.mode)
	t.updateGain()
}

// Process filters one sample.
func (t *TPT) Process(x float64, s *State) float64 {
	if !core.IsFinite(x) {
		x = 0
	}

	prev := s.DCPrev
	s.DCPrev = x
	x = x - prev + t.dcR*prev

	x -= subAudioAmount * tptStep(&s.Sub, x, t.subK)
	x = tptStep(&s.Bright, x, t.brightK)

	y0 := t.nr24(x, s)

	y1 := tptStep(&s.Stage[0], y0, t.lpc)
	s.Stage[0] = math.Atan(s.Stage[0]*t.rcor24) * t.rcor24Inv

	y2 := tptStep(&s.Stage[1], y1, t.lpc)
	y3 := tptStep(&s.Stage[2], y2, t.lpc)
	y4 := tptStep(&s.Stage[3], y3, t.lpc)

	for i := range s.Stage {
		s.Stage[i] = clipState(s.Stage[i])
	}

	out := t.weights.Mix(y1, y2, y3, y4) * t.gain
	if !core.IsFinite(out) || !s.IsFinite() {
		s.Reset()
		return 0
	}

	return out
}

// nr24 resolves the zero-delay feedback loop: it predicts the cascade output
// from the current accumulators and returns the corrected cascade input.
func (t *TPT) nr24(x float64, s *State) float64 {
	lpc := t.lpc
	est := (lpc*(lpc*(lpc*s.Stage[0]+s.Stage[1])+s.Stage[2]) + s.Stage[3]) * t.ml
	y := (x - t.r24*est) / (1 + t.r24*t.lpc4)

	return y + nr24Epsilon
}

func (t *TPT) updateGain() {
	t.gain = 1 + t.r24*makeupPerR24
	if t.levelComp {
		t.gain *= 1 - modeBalance(t.mode)*t.rReso*balanceAmount
	}
}

// modeBalance is the level trim curve over mode used by level compensation.
func modeBalance(mode float64) float64 {
	return 0.8999 - 0.0328*math.Pow(mode, math.E)
}

// onePoleCoeff maps a prewarped gain c to the TPT one-pole coefficient c/(1+c).
func onePoleCoeff(c float64) float64 {
	return c / (1 + c)
}

// tptStep advances a TPT one-pole low-pass with coefficient k = c/(1+c):
//
//	v = (in-state)*k; out = state+v; state = out+v
func tptStep(state *float64, in, k float64) float64 {
	v := (in - *state) * k
	out := v + *state
	*state = out + v

	return out
}
