package smooth

// Ramp is a linear smoothing trajectory from an old parameter value to a new
// one across the samples of one processing block.
//
// The typical host flow is:
//
//	r.SetTarget(v) // whenever a new value is read at block start
//	r.Begin(frames)
//	for i := range frames {
//		x := r.Next()
//		...
//	}
//
// Value i of an N-sample ramp is old + (target-old)*(i+1)/N, so the last
// value equals the target exactly.
type Ramp struct {
	current float64
	start   float64
	target  float64

	remaining int
	total     int
	pending   bool
}

// NewRamp returns a ramp resting at value.
func NewRamp(value float64) *Ramp {
	r := &Ramp{}
	r.Reset(value)

	return r
}

// Trajectory returns a ramp already armed to move from old to target over n
// samples. With n == 0 the ramp jumps to target immediately.
func Trajectory(old, target float64, n int) *Ramp {
	r := NewRamp(old)
	r.SetTarget(target)
	r.Begin(n)

	return r
}

// Reset drops any in-flight trajectory and rests the ramp at value.
func (r *Ramp) Reset(value float64) {
	r.current = value
	r.start = value
	r.target = value
	r.remaining = 0
	r.total = 0
	r.pending = false
}

// SetTarget records a new target. Setting the current target again is a
// no-op and leaves any in-flight trajectory untouched.
//
// When a trajectory is in flight the ramp restarts from its current
// interpolated value and lands on the new target at the end of the same
// block. Otherwise the target waits for the next Begin.
func (r *Ramp) SetTarget(target float64) {
	if target == r.target {
		return
	}

	r.start = r.current
	r.target = target

	if r.remaining > 0 {
		r.total = r.remaining
		return
	}

	r.pending = true
}

// Begin arms a pending target over blockLen samples. It does nothing when no
// new target has been set since the last ramp finished. A zero or negative
// blockLen collapses the trajectory to the target immediately.
func (r *Ramp) Begin(blockLen int) {
	if !r.pending {
		return
	}

	r.pending = false

	if blockLen <= 0 {
		r.current = r.target
		r.start = r.target
		r.remaining = 0
		r.total = 0

		return
	}

	r.start = r.current
	r.total = blockLen
	r.remaining = blockLen
}

// Next advances the trajectory by one sample and returns the value to use
// for that sample. A target set without a following Begin is applied as an
// instantaneous jump.
func (r *Ramp) Next() float64 {
	if r.remaining == 0 {
		if r.pending {
			r.pending = false
			r.current = r.target
			r.start = r.target
		}

		return r.current
	}

	r.remaining--
	if r.remaining == 0 {
		r.current = r.target
		r.start = r.target
		r.total = 0

		return r.current
	}

	step := float64(r.total - r.remaining)
	r.current = r.start + (r.target-r.start)*step/float64(r.total)

	return r.current
}

// Current returns the most recently produced value.
func (r *Ramp) Current() float64 { return r.current }

// Target returns the value the ramp is heading for.
func (r *Ramp) Target() float64 { return r.target }

// Remaining returns the number of samples left in the in-flight trajectory.
func (r *Ramp) Remaining() int { return r.remaining }

// Active reports whether the ramp has not yet reached its target.
func (r *Ramp) Active() bool { return r.remaining > 0 || r.pending }
