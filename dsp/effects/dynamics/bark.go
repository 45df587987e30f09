package dynamics

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-robotfx/dsp/core"
	vecmath "github.com/cwbudde/algo-vecmath"
)

const (
	defaultBarkFrame = 256
	minBarkFrame     = 16

	// silenceMagnitude is the spectral peak below which a frame counts as silent.
	silenceMagnitude = 1e-9
)

// Bark maps a frequency in Hz onto the Bark critical-band scale.
func Bark(hz float64) float64 {
	r := hz / 7500

	return 13*math.Atan(hz/1315.8) + 3.5*math.Atan(r*r)
}

// BarkDetector is an experimental sidechain feature: it estimates the
// dominant frequency of the most recent frame and reports its Bark position
// normalized to [0, 1] at Nyquist. Silence reports 0.
//
// The feature tracks pitch, not loudness, so a Compressor driven by it
// reacts to spectral content instead of level. Peak sensing stays the
// default for that reason.
type BarkDetector struct {
	sampleRate float64
	size       int
	hop        int
	norm       float64

	plan     *algofft.Plan[complex128]
	window   []float64
	ring     []float64
	frame    []complex128
	spectrum []complex128
	re       []float64
	im       []float64
	mag      []float64

	pos      int
	filled   int
	sinceHop int
	value    float64
}

// NewBarkDetector creates a detector analysing frames of size samples with
// a hop of size/4. size must be a power of two of at least 16; 0 selects 256.
func NewBarkDetector(sampleRate float64, size int) (*BarkDetector, error) {
	if sampleRate < minSampleRateHz || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("dynamics: bark sample rate must be positive and finite: %f", sampleRate)
	}

	if size == 0 {
		size = defaultBarkFrame
	}

	if size < minBarkFrame || size&(size-1) != 0 {
		return nil, fmt.Errorf("dynamics: bark frame size must be a power of two >= %d: %d", minBarkFrame, size)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("dynamics: bark FFT plan: %w", err)
	}

	half := size / 2

	d := &BarkDetector{
		sampleRate: sampleRate,
		size:       size,
		hop:        size / 4,
		norm:       1 / Bark(sampleRate/2),
		plan:       plan,
		window:     make([]float64, size),
		ring:       make([]float64, size),
		frame:      make([]complex128, size),
		spectrum:   make([]complex128, size),
		re:         make([]float64, half),
		im:         make([]float64, half),
		mag:        make([]float64, half),
	}

	for i := range d.window {
		d.window[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(size))
	}

	return d, nil
}

// Size returns the analysis frame length.
func (d *BarkDetector) Size() int { return d.size }

// Value returns the most recent normalized Bark estimate.
func (d *BarkDetector) Value() float64 { return d.value }

// Reset clears the analysis history.
func (d *BarkDetector) Reset() {
	core.Zero(d.ring)
	d.pos = 0
	d.filled = 0
	d.sinceHop = 0
	d.value = 0
}

// Detect pushes one sample and returns the current estimate. A new frame is
// analysed every size/4 samples once the first full frame is available.
func (d *BarkDetector) Detect(x float64) float64 {
	d.ring[d.pos] = core.Sanitize(x)
	d.pos = (d.pos + 1) % d.size

	if d.filled < d.size {
		d.filled++
	}

	d.sinceHop++
	if d.filled == d.size && d.sinceHop >= d.hop {
		d.sinceHop = 0
		d.analyze()
	}

	return d.value
}

// DominantFrequency returns the frequency of the strongest bin in the last
// analysed frame, or 0 when it was silent.
func (d *BarkDetector) DominantFrequency() float64 {
	k, peak := d.peakBin()
	if peak < silenceMagnitude {
		return 0
	}

	return float64(k) * d.sampleRate / float64(d.size)
}

func (d *BarkDetector) analyze() {
	for i := range d.frame {
		v := d.ring[(d.pos+i)%d.size] * d.window[i]
		d.frame[i] = complex(v, 0)
	}

	if err := d.plan.Forward(d.spectrum, d.frame); err != nil {
		return
	}

	for i := range d.re {
		d.re[i] = real(d.spectrum[i])
		d.im[i] = imag(d.spectrum[i])
	}

	vecmath.Magnitude(d.mag, d.re, d.im)

	hz := d.DominantFrequency()
	if hz == 0 {
		d.value = 0
		return
	}

	d.value = math.Min(Bark(hz)*d.norm, 1)
}

// peakBin skips DC so a constant offset does not read as 0 Hz content.
func (d *BarkDetector) peakBin() (int, float64) {
	k := 0
	peak := 0.0

	for i := 1; i < len(d.mag); i++ {
		if d.mag[i] > peak {
			peak = d.mag[i]
			k = i
		}
	}

	return k, peak
}
