package skyline

import (
	"math/rand/v2"
	"time"
)

// Source supplies uniform floats in [0,1). Each Generate call should use its
// own Source; implementations are not required to be safe for concurrent use.
type Source interface {
	Float64() float64
}

// NewSource returns a deterministic Source seeded with seed.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// DefaultSource returns a Source seeded from the wall clock.
func DefaultSource() Source {
	return NewSource(uint64(time.Now().UnixNano()))
}

// ConstantSource always returns the same value.
type ConstantSource float64

// Float64 implements Source.
func (c ConstantSource) Float64() float64 { return float64(c) }

// SequenceSource replays a fixed list of values, wrapping around when it
// reaches the end. An empty sequence yields zeros.
type SequenceSource struct {
	Values []float64
	next   int
}

// Float64 implements Source.
func (s *SequenceSource) Float64() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return v
}
