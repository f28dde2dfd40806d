// Package selection picks the next exercise item for a learner, preferring
// items the learner has not completed yet.
package selection

import (
	"errors"
	"math/rand/v2"
	"sync"
	"time"
)

var (
	// ErrEmptyCatalog is returned only when there is nothing to select from.
	ErrEmptyCatalog = errors.New("selection: catalog is empty")
	// ErrInvalidCount is returned by SelectN for non-positive counts.
	ErrInvalidCount = errors.New("selection: count must be positive")
)

// RandSource is the randomness the selector draws from. *rand.Rand satisfies it.
type RandSource interface {
	IntN(n int) int
}

// lockedSource makes a *rand.Rand safe for concurrent requests.
type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (s *lockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

type Selector struct {
	src RandSource
}

func New(src RandSource) *Selector {
	return &Selector{src: src}
}

// NewDefault returns a selector backed by a time-seeded PCG source.
func NewDefault() *Selector {
	seed := uint64(time.Now().UnixNano())
	return New(&lockedSource{rng: rand.New(rand.NewPCG(seed, seed>>1|1))})
}

// Select returns an index in [0, size). Indices not in completed are chosen
// uniformly; once everything is completed the whole range is eligible again.
// Completed indices outside the catalog are ignored.
func (s *Selector) Select(size int, completed map[int]struct{}) (int, error) {
	if size <= 0 {
		return 0, ErrEmptyCatalog
	}

	candidates := unseen(size, completed)
	if len(candidates) == 0 {
		return s.src.IntN(size), nil
	}
	return candidates[s.src.IntN(len(candidates))], nil
}

// SelectN samples up to n distinct indices without replacement. Unseen indices
// are used first; when none remain the full range is sampled. Fewer than n
// indices are returned when fewer are eligible.
func (s *Selector) SelectN(size int, completed map[int]struct{}, n int) ([]int, error) {
	if size <= 0 {
		return nil, ErrEmptyCatalog
	}
	if n <= 0 {
		return nil, ErrInvalidCount
	}

	pool := unseen(size, completed)
	if len(pool) == 0 {
		pool = make([]int, size)
		for i := range pool {
			pool[i] = i
		}
	}

	k := min(n, len(pool))
	// Partial Fisher-Yates: the first k slots end up a uniform sample.
	for i := 0; i < k; i++ {
		j := i + s.src.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k], nil
}

func unseen(size int, completed map[int]struct{}) []int {
	candidates := make([]int, 0, size)
	for i := 0; i < size; i++ {
		if _, done := completed[i]; !done {
			candidates = append(candidates, i)
		}
	}
	return candidates
}
