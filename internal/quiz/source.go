package quiz

import (
	"math/rand/v2"
	"sync"
)

// Source supplies uniform random integers to the generator.
type Source interface {
	// IntRange returns a uniform int in [min, max], inclusive on both ends.
	// When max < min it returns min.
	IntRange(min, max int) int
}

type globalSource struct{}

func (globalSource) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + rand.IntN(max-min+1)
}

// DefaultSource draws from the process-wide math/rand/v2 generator.
// It is safe for concurrent use.
var DefaultSource Source = globalSource{}

// SeededSource is a reproducible Source. It is safe for concurrent use.
type SeededSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSeededSource returns a Source whose sequence is fixed by seed.
func NewSeededSource(seed uint64) *SeededSource {
	return &SeededSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *SeededSource) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return min + s.r.IntN(max-min+1)
}

// SequenceSource replays scripted values in order. Each value is clamped
// into the requested range; once the script runs out every draw returns min.
// It is meant for tests and is not safe for concurrent use.
type SequenceSource struct {
	values []int
	pos    int
}

// NewSequenceSource scripts the given values.
func NewSequenceSource(values ...int) *SequenceSource {
	return &SequenceSource{values: values}
}

func (s *SequenceSource) IntRange(min, max int) int {
	if s.pos >= len(s.values) {
		return min
	}
	v := s.values[s.pos]
	s.pos++
	if max < min {
		return min
	}
	return clamp(v, min, max)
}

// Remaining reports how many scripted values have not been drawn.
func (s *SequenceSource) Remaining() int {
	return len(s.values) - s.pos
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
