// Package response measures the magnitude response of a filter model from
// its impulse response.
//
// The impulse response is captured over one FFT frame, transformed with
// algo-fft and reported in dB per bin from DC to Nyquist. Nonlinear models
// are measured at the impulse amplitude, so the result describes their
// small-signal behaviour.
package response
