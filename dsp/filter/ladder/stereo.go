package ladder

// Stereo runs one Model over two channels, each with its own State.
type Stereo struct {
	Model Model
	Left  State
	Right State
}

// NewStereo wraps m with silent channel states.
func NewStereo(m Model) *Stereo {
	return &Stereo{Model: m}
}

// Process filters one left/right sample pair.
func (s *Stereo) Process(left, right float64) (float64, float64) {
	return s.Model.Process(left, &s.Left), s.Model.Process(right, &s.Right)
}

// ProcessBlock filters both channels in place.
func (s *Stereo) ProcessBlock(left, right []float64) {
	ProcessBlock(s.Model, &s.Left, left, left)
	ProcessBlock(s.Model, &s.Right, right, right)
}

// Reset silences both channels.
func (s *Stereo) Reset() {
	s.Left.Reset()
	s.Right.Reset()
}
