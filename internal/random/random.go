// Package random provides the entropy sources that can be injected into the processor
// for the random-byte instruction.
package random

import (
	"math/rand"
	"time"
)

// Random is a seeded pseudo random byte generator.
type Random struct {
	rng *rand.Rand
}

// New returns a generator for the given seed. A zero seed selects a time based seed.
func New(seed int64) *Random {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Random{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Byte returns the next random byte.
func (r *Random) Byte() byte {
	return byte(r.rng.Intn(256))
}

// Sequence returns a fixed list of bytes in a loop, useful for predictable runs.
type Sequence struct {
	values []byte
	next   int
}

// NewSequence returns a generator that cycles through the given values.
// Without values it always returns 0.
func NewSequence(values ...byte) *Sequence {
	return &Sequence{
		values: values,
	}
}

// Byte returns the next value of the sequence.
func (s *Sequence) Byte() byte {
	if len(s.values) == 0 {
		return 0
	}
	b := s.values[s.next]
	s.next = (s.next + 1) % len(s.values)
	return b
}
