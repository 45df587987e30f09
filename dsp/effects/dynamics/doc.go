// Package dynamics provides the envelope follower and the feed-forward
// compressor used by the compressor processor.
//
// Included processors:
//   - Follower: one-pole level tracker with separate attack and release.
//   - Compressor: hard-knee downward compressor driven by a Follower, with
//     threshold, ratio and makeup gain.
//   - BarkDetector: experimental FFT-based sidechain feature that maps the
//     dominant frequency onto the Bark scale.
//
// Build with -tags fastmath to replace the per-sample dB conversions with
// algo-approx approximations.
package dynamics
