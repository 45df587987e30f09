package plugin

import (
	"math"
	"sync/atomic"
)

// ParamSlot hands the most recent parameter value from a control thread to
// the audio thread. Intermediate writes between two reads are dropped.
type ParamSlot struct {
	bits    atomic.Uint64
	changed atomic.Bool
}

// Store publishes v and marks the slot changed.
func (s *ParamSlot) Store(v float64) {
	s.bits.Store(math.Float64bits(v))
	s.changed.Store(true)
}

// Load returns the latest value and whether it changed since the previous
// Load. The changed flag is consumed.
func (s *ParamSlot) Load() (float64, bool) {
	changed := s.changed.Swap(false)
	return math.Float64frombits(s.bits.Load()), changed
}

// Peek returns the latest value without consuming the changed flag.
func (s *ParamSlot) Peek() float64 {
	return math.Float64frombits(s.bits.Load())
}
