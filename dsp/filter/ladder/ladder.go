package ladder

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-robotfx/dsp/core"
)

const (
	defaultCutoff    = 100.0
	defaultResonance = 0.0
	defaultMode      = 4.0
	defaultDrive     = 1.0

	minCutoffHz   = 60.0
	maxCutoffHz   = 19000.0
	minSampleRate = 1000.0
	minDrive      = 0.1
	maxDrive      = 24.0

	// Cutoff never reaches Nyquist so tan() stays positive and finite.
	maxCutoffRatio = 0.45

	stateLimit = 1e6
)

// Variant selects the ladder processing model.
type Variant int

const (
	// VariantHexed is the TPT cascade with cutoff-tracking bright stage.
	VariantHexed Variant = iota
	// VariantDexed is the earlier TPT revision with a fixed bright stage.
	VariantDexed
	// VariantMoog is the tanh ladder with Huovilainen tuning.
	VariantMoog
)

func (v Variant) String() string {
	switch v {
	case VariantHexed:
		return "hexed"
	case VariantDexed:
		return "dexed"
	case VariantMoog:
		return "moog"
	default:
		return "unknown"
	}
}

// ParseVariant returns the variant named by s.
func ParseVariant(s string) (Variant, error) {
	for v := VariantHexed; v <= VariantMoog; v++ {
		if v.String() == s {
			return v, nil
		}
	}

	return 0, fmt.Errorf("ladder: unknown variant %q", s)
}

// Model is the resonant ladder capability shared by all variants.
type Model interface {
	Variant() Variant
	SampleRate() float64
	SetSampleRate(sampleRate float64) error
	// SetCutoff sets the cutoff knob in percent, clamped to [0, 100].
	SetCutoff(percent float64)
	// SetResonance sets the resonance knob in percent, clamped to [0, 100].
	SetResonance(percent float64)
	// SetMode selects the output tap in [1, 4]; fractions cross-fade.
	SetMode(mode float64)
	// Process filters one sample using the caller-owned channel state.
	Process(x float64, s *State) float64
}

// Option mutates constructor configuration.
type Option func(*config) error

type config struct {
	variant   Variant
	cutoff    float64
	resonance float64
	mode      float64
	drive     float64
	levelComp bool
}

func defaultConfig() config {
	return config{
		variant:   VariantHexed,
		cutoff:    defaultCutoff,
		resonance: defaultResonance,
		mode:      defaultMode,
		drive:     defaultDrive,
	}
}

// WithVariant selects the ladder variant.
func WithVariant(variant Variant) Option {
	return func(cfg *config) error {
		if !validVariant(variant) {
			return fmt.Errorf("ladder: invalid variant: %d", variant)
		}

		cfg.variant = variant

		return nil
	}
}

// WithCutoff sets the initial cutoff knob in [0, 100] %.
func WithCutoff(percent float64) Option {
	return func(cfg *config) error {
		if err := validateFiniteRange(percent, 0, 100, "cutoff"); err != nil {
			return err
		}

		cfg.cutoff = percent

		return nil
	}
}

// WithResonance sets the initial resonance knob in [0, 100] %.
func WithResonance(percent float64) Option {
	return func(cfg *config) error {
		if err := validateFiniteRange(percent, 0, 100, "resonance"); err != nil {
			return err
		}

		cfg.resonance = percent

		return nil
	}
}

// WithMode sets the initial output tap in [1, 4].
func WithMode(mode float64) Option {
	return func(cfg *config) error {
		if err := validateFiniteRange(mode, 1, 4, "mode"); err != nil {
			return err
		}

		cfg.mode = mode

		return nil
	}
}

// WithDrive sets the Moog saturation drive in [0.1, 24]. Other variants
// ignore it.
func WithDrive(drive float64) Option {
	return func(cfg *config) error {
		if err := validateFiniteRange(drive, minDrive, maxDrive, "drive"); err != nil {
			return err
		}

		cfg.drive = drive

		return nil
	}
}

// WithLevelCompensation enables the mode-dependent output balancing used by
// the Hexed processor. The Moog variant ignores it.
func WithLevelCompensation(enabled bool) Option {
	return func(cfg *config) error {
		cfg.levelComp = enabled
		return nil
	}
}

// New constructs the model selected by WithVariant (Hexed by default).
func New(sampleRate float64, opts ...Option) (Model, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	switch cfg.variant {
	case VariantMoog:
		return newMoog(sampleRate, cfg)
	default:
		return newTPT(sampleRate, cfg)
	}
}

// CutoffHz maps a cutoff knob position in percent to Hz on the
// 60 Hz..19 kHz exponential curve.
func CutoffHz(percent float64) float64 {
	return core.LogScale(core.ClampFinite(percent, 0, 100)*0.01, minCutoffHz, maxCutoffHz, core.DefaultRolloff)
}

// ResonanceAmount maps a resonance knob position in percent to the
// normalized resonance in [0, 0.991].
func ResonanceAmount(percent float64) float64 {
	p := core.ClampFinite(percent, 0, 100) * 0.01
	return maxResonanceAmount - core.LogScale(1-p, 0, maxResonanceAmount, core.DefaultRolloff)
}

// ProcessBlock filters src into dst with m and s. dst and src may alias.
func ProcessBlock(m Model, s *State, dst, src []float64) {
	n := len(src)
	if n == 0 {
		return
	}

	_ = dst[n-1]
	for i, x := range src {
		dst[i] = m.Process(x, s)
	}
}

func applyOptions(opts []Option) (config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return config{}, err
		}
	}

	return cfg, nil
}

func validVariant(variant Variant) bool {
	return variant >= VariantHexed && variant <= VariantMoog
}

func validateSampleRate(sampleRate float64) error {
	if !core.IsFinite(sampleRate) || sampleRate < minSampleRate {
		return fmt.Errorf("ladder: sample rate must be finite and >= %g: %f", minSampleRate, sampleRate)
	}

	return nil
}

func validateFiniteRange(value, min, max float64, name string) error {
	if !core.IsFinite(value) {
		return fmt.Errorf("ladder: %s must be finite: %v", name, value)
	}

	if value < min || value > max {
		return fmt.Errorf("ladder: %s must be in [%g, %g]: %f", name, min, max, value)
	}

	return nil
}

// clampCutoffHz keeps the cutoff inside (0, maxCutoffRatio*sampleRate].
func clampCutoffHz(hz, sampleRate float64) float64 {
	return math.Min(math.Max(hz, 1), maxCutoffRatio*sampleRate)
}

func clipState(value float64) float64 {
	if value > stateLimit {
		return stateLimit
	}

	if value < -stateLimit {
		return -stateLimit
	}

	return core.FlushDenormals(value)
}
