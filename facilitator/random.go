// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package facilitator

import (
	"math/rand/v2"
	"sync"
)

// Randomizer is the only source of randomness in a session. *rand.Rand
// satisfies it.
type Randomizer interface {
	// IntN returns a value in [0, n).
	IntN(n int) int
}

// lockedRandomizer lets one source serve many sessions at once.
type lockedRandomizer struct {
	mu  sync.Mutex
	src Randomizer
}

func (l *lockedRandomizer) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.IntN(n)
}

// NewRandomizer returns a PCG-backed source safe for concurrent use. A zero
// seed draws the seed from the runtime; any other seed makes tie-breaks
// reproducible.
func NewRandomizer(seed uint64) Randomizer {
	var src *rand.Rand
	if seed == 0 {
		src = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	} else {
		src = rand.New(rand.NewPCG(seed, seed))
	}
	return &lockedRandomizer{src: src}
}
