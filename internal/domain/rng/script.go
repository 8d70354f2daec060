package rng

// Script is a deterministic Source replaying fixed sequences. Each sequence
// wraps around when exhausted; an empty sequence yields zero.
type Script struct {
	floats []float64
	ints   []int
	fi, ii int
}

// NewScript builds a Script from float and integer sequences.
func NewScript(floats []float64, ints []int) *Script {
	return &Script{floats: floats, ints: ints}
}

// Float64 returns the next scripted float.
func (s *Script) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[s.fi%len(s.floats)]
	s.fi++
	return v
}

// Intn returns the next scripted integer reduced into [0, n).
func (s *Script) Intn(n int) int {
	if n <= 0 {
		panic("rng: invalid argument to Intn")
	}
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[s.ii%len(s.ints)]
	s.ii++
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Draws reports how many floats and ints have been consumed.
func (s *Script) Draws() (floats, ints int) {
	return s.fi, s.ii
}
