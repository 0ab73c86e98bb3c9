package util

import "math/rand"

func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	src := rand.NewSource(seed)
	return rand.New(src)
}

// Script replays a fixed sequence of values, wrapping around when exhausted.
// Each value is reduced modulo n so any script is valid for any range.
type Script struct {
	Values []int
	pos    int
}

func NewScript(values ...int) *Script {
	return &Script{Values: values}
}

func (s *Script) Intn(n int) int {
	if n <= 0 {
		panic("util: Script.Intn called with n <= 0")
	}
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.pos%len(s.Values)]
	s.pos++
	if v < 0 {
		v = -v
	}
	return v % n
}

// Calls reports how many values have been drawn so far.
func (s *Script) Calls() int { return s.pos }
