// Package smooth provides parameter smoothers that turn instantaneous control
// changes into per-sample trajectories so that host automation never produces
// zipper noise.
//
// Included smoothers:
//   - Ramp: block-linear trajectory that lands exactly on the new value at the
//     end of the block it was armed for. A new target arriving mid-ramp
//     restarts from the current interpolated value.
//   - OnePole: exponential approach z(n) = a*z(n-1) + b*x(n) for continuously
//     varying signals such as mix coefficients or meter telemetry.
//   - Linear: time-based linear smoother with a fixed tail in samples.
//
// None of the smoothers allocate or fail; they are safe to drive from the
// audio thread.
package smooth
