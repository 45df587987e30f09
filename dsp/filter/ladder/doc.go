// Package ladder provides nonlinear four-pole resonant low-pass cascades with
// global feedback, shared by the Hexed, Dexed and Moog filter processors.
//
// Supported variants:
//   - VariantHexed:
//     Topology-preserving-transform (TPT) one-pole cascade with a zero-delay
//     feedback estimate, atan damping on the first stage, DC blocking,
//     sub-15 Hz attenuation and a cutoff-tracking "bright" pre-emphasis.
//   - VariantDexed:
//     Earlier revision of the same cascade with a fixed bright stage and a
//     softer resonance scale.
//   - VariantMoog:
//     Huovilainen-style tanh ladder with polynomial tuning and resonance
//     compensation, run twice per sample with a half-sample feedback tap.
//
// All variants implement Model. Coefficients live in the model and are
// recomputed by its setters; the per-channel memory lives in State, which the
// caller owns and passes to Process. One model can therefore drive any number
// of channels, and setters never disturb a running signal's state.
//
// Cutoff and resonance are set as 0..100 % knob positions and mapped through
// exponential curves (60 Hz..19 kHz for cutoff). Mode is 1..4 and selects the
// 6, 12, 18 or 24 dB/oct tap; fractional modes cross-fade adjacent taps.
//
// Process never returns NaN or Inf: invalid inputs are treated as silence and
// a non-finite result clears the channel state.
package ladder
