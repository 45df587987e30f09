// Package core holds the small numeric and configuration helpers shared by
// every processor in the module: clamping, finite-value guards, the
// exponential knob curve used for cutoff and resonance, and dB conversions.
package core
