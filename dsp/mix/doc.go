// Package mix blends a dry signal with a processed (wet) signal.
//
// The wet knob is mapped through a gently bowed curve so that the first half
// of its travel is more audible than a linear crossfade, and the mixer
// smooths knob changes over one host block with [smooth.Ramp].
package mix
