package response

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-robotfx/dsp/core"
	"github.com/cwbudde/algo-robotfx/dsp/filter/ladder"
	vecmath "github.com/cwbudde/algo-vecmath"
)

const (
	// DefaultFFTSize is used when Measure is given a size of 0.
	DefaultFFTSize = 8192
	minFFTSize     = 64

	// floorDB is reported for bins with zero magnitude.
	floorDB = -240.0
)

var errEmptyRange = errors.New("response: empty frequency range")

// Response is a magnitude response in dB per FFT bin.
type Response struct {
	SampleRate float64
	FFTSize    int
	// MagnitudeDB has FFTSize/2+1 bins from DC to Nyquist.
	MagnitudeDB []float64
}

// Measure captures the impulse response of m at sampleRate and returns its
// magnitude response. The model's sample rate is updated if it differs.
// fftSize must be a power of two of at least 64; 0 selects DefaultFFTSize.
func Measure(m ladder.Model, sampleRate float64, fftSize int) (*Response, error) {
	if m == nil {
		return nil, errors.New("response: nil model")
	}

	if m.SampleRate() != sampleRate {
		if err := m.SetSampleRate(sampleRate); err != nil {
			return nil, fmt.Errorf("response: %w", err)
		}
	}

	var s ladder.State

	return MeasureFunc(func(x float64) float64 { return m.Process(x, &s) }, sampleRate, fftSize)
}

// MeasureFunc captures the impulse response of an arbitrary per-sample
// process function.
func MeasureFunc(process func(float64) float64, sampleRate float64, fftSize int) (*Response, error) {
	if fftSize == 0 {
		fftSize = DefaultFFTSize
	}

	if fftSize < minFFTSize || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("response: fft size must be a power of two >= %d: %d", minFFTSize, fftSize)
	}

	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return nil, fmt.Errorf("response: sample rate must be positive and finite: %f", sampleRate)
	}

	in := make([]complex128, fftSize)
	for i := range in {
		x := 0.0
		if i == 0 {
			x = 1
		}

		in[i] = complex(process(x), 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("response: failed to create FFT plan: %w", err)
	}

	out := make([]complex128, fftSize)

	err = plan.Forward(out, in)
	if err != nil {
		return nil, fmt.Errorf("response: forward FFT failed: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)

	for k := range bins {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	for k, v := range mag {
		db := core.LinearToDB(v)
		if math.IsInf(db, -1) || math.IsNaN(db) {
			db = floorDB
		}

		mag[k] = db
	}

	return &Response{SampleRate: sampleRate, FFTSize: fftSize, MagnitudeDB: mag}, nil
}

// BinHz returns the frequency of bin k.
func (r *Response) BinHz(k int) float64 {
	return float64(k) * r.SampleRate / float64(r.FFTSize)
}

// At returns the magnitude in dB at hz, linearly interpolated between the
// neighbouring bins. Frequencies outside [0, Nyquist] are clamped.
func (r *Response) At(hz float64) float64 {
	last := len(r.MagnitudeDB) - 1
	pos := core.Clamp(hz*float64(r.FFTSize)/r.SampleRate, 0, float64(last))

	k := int(pos)
	if k >= last {
		return r.MagnitudeDB[last]
	}

	frac := pos - float64(k)

	return r.MagnitudeDB[k]*(1-frac) + r.MagnitudeDB[k+1]*frac
}

// Peak returns the frequency and level of the loudest bin in [lo, hi] Hz.
func (r *Response) Peak(lo, hi float64) (float64, float64, error) {
	first := int(math.Ceil(lo * float64(r.FFTSize) / r.SampleRate))
	last := int(math.Floor(hi * float64(r.FFTSize) / r.SampleRate))
	first = max(first, 0)
	last = min(last, len(r.MagnitudeDB)-1)

	if first > last {
		return 0, 0, fmt.Errorf("%w: [%g, %g] Hz", errEmptyRange, lo, hi)
	}

	best := first
	for k := first + 1; k <= last; k++ {
		if r.MagnitudeDB[k] > r.MagnitudeDB[best] {
			best = k
		}
	}

	return r.BinHz(best), r.MagnitudeDB[best], nil
}

// Corner returns the first frequency above refHz where the response falls
// dropDB below its level at refHz, or 0 when it never does.
func (r *Response) Corner(refHz, dropDB float64) float64 {
	ref := r.At(refHz)
	start := int(math.Ceil(refHz * float64(r.FFTSize) / r.SampleRate))

	for k := max(start, 0); k < len(r.MagnitudeDB); k++ {
		if r.MagnitudeDB[k] <= ref-dropDB {
			return r.BinHz(k)
		}
	}

	return 0
}
