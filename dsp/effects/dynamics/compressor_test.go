package dynamics

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-robotfx/internal/testutil"
)

// TestNewCompressor verifies constructor validation.
func TestNewCompressor(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate float64
		opts       []Option
		wantErr    bool
	}{
		{"valid 44100", 44100, nil, false},
		{"valid 48000", 48000, nil, false},
		{"invalid zero", 0, nil, true},
		{"invalid NaN", math.NaN(), nil, true},
		{"threshold too high", 48000, []Option{WithThreshold(3)}, true},
		{"ratio below one", 48000, []Option{WithRatio(0.5)}, true},
		{"makeup too high", 48000, []Option{WithMakeupGain(30)}, true},
		{"attack too long", 48000, []Option{WithAttack(50)}, true},
		{"release NaN", 48000, []Option{WithRelease(math.NaN())}, true},
		{"nil detector", 48000, []Option{WithDetector(nil)}, true},
		{"all options", 48000, []Option{
			WithThreshold(-20), WithRatio(4), WithMakeupGain(3),
			WithAttack(5), WithRelease(50), WithDetector(PeakDetector{}),
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCompressor(tt.sampleRate, tt.opts...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewCompressor() error = %v, wantErr %v", err, tt.wantErr)
			}

			if !tt.wantErr && c == nil {
				t.Fatal("NewCompressor() returned nil without error")
			}
		})
	}
}

func TestCompressorDefaults(t *testing.T) {
	c, err := NewCompressor(48000)
	if err != nil {
		t.Fatalf("NewCompressor() error = %v", err)
	}

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"Threshold", c.Threshold(), defaultThresholdDB},
		{"Ratio", c.Ratio(), defaultRatio},
		{"MakeupGain", c.MakeupGain(), defaultMakeupDB},
		{"Attack", c.Attack(), defaultAttackMs},
		{"Release", c.Release(), defaultReleaseMs},
		{"SampleRate", c.SampleRate(), 48000},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestCompressorUnityRatioIsTransparent(t *testing.T) {
	c, err := NewCompressor(48000, WithThreshold(-40))
	if err != nil {
		t.Fatalf("NewCompressor() error = %v", err)
	}

	in := testutil.DeterministicSine(1000, 48000, 0.9, 1024)
	for i, x := range in {
		y, gain := c.ProcessSample(x)
		if gain != 1 || y != x {
			t.Fatalf("sample %d: out=%v gain=%v, want passthrough", i, y, gain)
		}
	}
}

func TestCompressorSteadyStateGain(t *testing.T) {
	c, err := NewCompressor(48000, WithThreshold(-20), WithRatio(4))
	if err != nil {
		t.Fatalf("NewCompressor() error = %v", err)
	}

	var y, gain float64
	for range 48000 {
		y, gain = c.ProcessSample(1)
	}

	// envDb = 0, so gainDb = (1-1/4)*(-20) = -15.
	want := math.Pow(10, -15.0/20)
	if math.Abs(gain-want) > 1e-6 {
		t.Fatalf("gain = %v, want %v", gain, want)
	}

	if math.Abs(y-want) > 1e-6 {
		t.Fatalf("out = %v, want %v", y, want)
	}

	if math.Abs(c.StaticGainDB(1)+15) > 1e-12 {
		t.Fatalf("StaticGainDB(1) = %v, want -15", c.StaticGainDB(1))
	}
}

func TestCompressorBelowThresholdUntouched(t *testing.T) {
	c, err := NewCompressor(48000, WithThreshold(-20), WithRatio(8))
	if err != nil {
		t.Fatalf("NewCompressor() error = %v", err)
	}

	for range 4800 {
		if _, gain := c.ProcessSample(0.001); gain != 1 {
			t.Fatalf("gain = %v below threshold, want 1", gain)
		}
	}
}

func TestCompressorMakeupGain(t *testing.T) {
	c, err := NewCompressor(48000, WithMakeupGain(6))
	if err != nil {
		t.Fatalf("NewCompressor() error = %v", err)
	}

	y, _ := c.ProcessSample(0.25)
	if want := 0.25 * math.Pow(10, 6.0/20); math.Abs(y-want) > 1e-12 {
		t.Fatalf("out = %v, want %v", y, want)
	}
}

func TestCompressorSettersClamp(t *testing.T) {
	c, err := NewCompressor(48000)
	if err != nil {
		t.Fatalf("NewCompressor() error = %v", err)
	}

	c.SetRatio(0.25)
	if c.Ratio() != 1 {
		t.Fatalf("Ratio() = %v, want 1", c.Ratio())
	}

	c.SetRatio(4)
	c.SetRatio(math.NaN())

	if c.Ratio() != 4 {
		t.Fatalf("Ratio() = %v, NaN should keep previous value", c.Ratio())
	}

	c.SetThreshold(-200)
	if c.Threshold() != minThresholdDB {
		t.Fatalf("Threshold() = %v, want %v", c.Threshold(), minThresholdDB)
	}

	c.SetMakeupGain(99)
	if c.MakeupGain() != maxMakeupDB {
		t.Fatalf("MakeupGain() = %v, want %v", c.MakeupGain(), maxMakeupDB)
	}
}

func TestCompressorSilenceStaysFinite(t *testing.T) {
	c, err := NewCompressor(48000, WithThreshold(-80), WithRatio(16))
	if err != nil {
		t.Fatalf("NewCompressor() error = %v", err)
	}

	buf := make([]float64, 4096)
	c.ProcessInPlace(buf)
	testutil.RequireFinite(t, buf)

	if c.Envelope() < envelopeFloor {
		t.Fatalf("envelope %v dropped below floor", c.Envelope())
	}

	y, gain := c.ProcessSample(math.Inf(1))
	if y != 0 || math.IsNaN(gain) {
		t.Fatalf("ProcessSample(+Inf) = %v, %v", y, gain)
	}
}

func TestCompressorProcessInPlaceMatchesSample(t *testing.T) {
	opts := []Option{WithThreshold(-24), WithRatio(6), WithMakeupGain(4), WithAttack(2), WithRelease(40)}

	c1, err := NewCompressor(48000, opts...)
	if err != nil {
		t.Fatalf("NewCompressor() error = %v", err)
	}

	c2, err := NewCompressor(48000, opts...)
	if err != nil {
		t.Fatalf("NewCompressor() error = %v", err)
	}

	in := testutil.DeterministicNoise(11, 0.8, 1000)

	want := make([]float64, len(in))
	for i, x := range in {
		want[i], _ = c1.ProcessSample(x)
	}

	got := append([]float64(nil), in...)
	c2.Reserve(len(got))
	c2.ProcessInPlace(got[:500])
	c2.ProcessInPlace(got[500:])

	testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)
}

func TestCompressorReset(t *testing.T) {
	c, err := NewCompressor(48000, WithThreshold(-30), WithRatio(4))
	if err != nil {
		t.Fatalf("NewCompressor() error = %v", err)
	}

	for range 1000 {
		c.ProcessSample(1)
	}

	c.Reset()

	if c.Envelope() != 0 || c.LastGain() != 1 {
		t.Fatalf("Reset left envelope=%v gain=%v", c.Envelope(), c.LastGain())
	}
}

func TestCompressorMakeupChangeGlides(t *testing.T) {
	c, err := NewCompressor(48000)
	if err != nil {
		t.Fatalf("NewCompressor() error = %v", err)
	}

	prev, _ := c.ProcessSample(0.25)
	c.SetMakeupGain(24)

	want := 0.25 * math.Pow(10, 24.0/20)
	maxStep := 0.0

	for range 4800 {
		y, _ := c.ProcessSample(0.25)
		maxStep = math.Max(maxStep, math.Abs(y-prev))
		prev = y
	}

	// 21.34 ms at 48 kHz is 1024 samples, so each step is about 1/1024 of the
	// total change.
	if maxStep > 0.01 {
		t.Fatalf("largest single-sample step = %v, want a glide", maxStep)
	}

	if math.Abs(prev-want) > 1e-12 {
		t.Fatalf("settled output = %v, want %v", prev, want)
	}
}

func TestCompressorThresholdAndRatioGlide(t *testing.T) {
	c, err := NewCompressor(48000, WithAttack(0.01))
	if err != nil {
		t.Fatalf("NewCompressor() error = %v", err)
	}

	for range 100 {
		c.ProcessSample(1)
	}

	c.SetThreshold(-40)
	c.SetRatio(16)

	_, first := c.ProcessSample(1)
	if first < 0.9 {
		t.Fatalf("gain right after the change = %v, want close to 1", first)
	}

	var gain float64
	for range 9600 {
		_, gain = c.ProcessSample(1)
	}

	if want := math.Pow(10, c.StaticGainDB(1)/20); math.Abs(gain-want) > 1e-6 {
		t.Fatalf("settled gain = %v, want %v", gain, want)
	}
}

func TestCompressorSettleAppliesImmediately(t *testing.T) {
	c, err := NewCompressor(48000)
	if err != nil {
		t.Fatalf("NewCompressor() error = %v", err)
	}

	c.SetMakeupGain(6)
	c.Settle()

	y, _ := c.ProcessSample(0.25)
	if want := 0.25 * math.Pow(10, 6.0/20); math.Abs(y-want) > 1e-12 {
		t.Fatalf("out = %v, want %v", y, want)
	}
}

func TestCompressorSetSampleRateKeepsGlides(t *testing.T) {
	c, err := NewCompressor(48000, WithThreshold(-20), WithRatio(4))
	if err != nil {
		t.Fatalf("NewCompressor() error = %v", err)
	}

	if err := c.SetSampleRate(96000); err != nil {
		t.Fatalf("SetSampleRate() error = %v", err)
	}

	if err := c.SetSampleRate(0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}

	var gain float64
	for range 96000 {
		_, gain = c.ProcessSample(1)
	}

	if want := math.Pow(10, -15.0/20); math.Abs(gain-want) > 1e-6 {
		t.Fatalf("gain = %v, want %v", gain, want)
	}
}
