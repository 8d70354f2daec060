// Package rng defines the random source every draw in a match goes through.
package rng

import (
	"math/rand"
	"sync"
	"time"
)

// Source is the subset of *rand.Rand the game draws from. Implementations
// need not be safe for concurrent use; a match is driven by one caller.
type Source interface {
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
	// Intn returns a value in [0, n). It panics if n <= 0.
	Intn(n int) int
}

// NewSeeded returns a *rand.Rand seeded with seed, or with the current time
// when seed is 0.
func NewSeeded(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)) //nolint:gosec // game rolls, not secrets
}

// Seeder hands out independent per-match sources derived from one root seed,
// so a fixed root seed replays every match of a process.
type Seeder struct {
	mu   sync.Mutex
	root *rand.Rand
}

// NewSeeder creates a Seeder. A zero seed is replaced by the current time.
func NewSeeder(seed int64) *Seeder {
	return &Seeder{root: NewSeeded(seed)}
}

// Next returns a fresh source for one match.
func (s *Seeder) Next() Source {
	s.mu.Lock()
	seed := s.root.Int63()
	s.mu.Unlock()
	if seed == 0 {
		seed = 1
	}
	return NewSeeded(seed)
}
