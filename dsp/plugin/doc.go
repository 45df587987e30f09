// Package plugin adapts the DSP cores to a host-style processing contract:
// Activate once per sample rate, SetParameter from any thread, Run from the
// audio thread.
//
// Parameter values cross threads through [ParamSlot], a latest-value slot
// built on atomics. Run reads each slot once at block start and ramps the
// filter controls across the block, so automation never clicks.
package plugin
