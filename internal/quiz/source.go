package quiz

import (
	"math/rand"
	"time"
)

// Source yields pseudo-random floats in [0, 1). The engine takes its
// randomness through this so tests can inject a fixed sequence and get
// deterministic shuffles and template picks.
type Source func() float64

// NewSource returns a time-seeded Source.
func NewSource() Source {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return r.Float64
}

// pick returns a random element of items. Items must be non-empty.
func pick(items []string, src Source) string {
	return items[int(src()*float64(len(items)))]
}

// shuffle reorders items in place (Fisher-Yates).
func shuffle[T any](items []T, src Source) {
	for i := len(items) - 1; i > 0; i-- {
		j := int(src() * float64(i+1))
		items[i], items[j] = items[j], items[i]
	}
}
