package optimizer

import (
	"math/rand"
	"time"
)

// RandomSource draws uniform integers in [0, n). *rand.Rand satisfies it.
// A source is used by one goroutine only.
type RandomSource interface {
	Intn(n int) int
}

// NewRandomSource returns a seeded source; seed 0 seeds from the clock
func NewRandomSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// pickOne returns a uniformly chosen element of a non-empty slice
func pickOne[T any](rng RandomSource, items []T) T {
	return items[rng.Intn(len(items))]
}
