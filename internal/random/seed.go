// Package random seeds the pseudo-random sources used by transforms.
//
// Seeds are explicit so that a shuffle can be reproduced from the seed
// printed or stored alongside it.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"time"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Resolve returns seed unchanged when it is non-zero. A zero seed means
// "pick one": it is replaced by NewSeed, or by the wall clock if crypto/rand
// fails.
func Resolve(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	s, err := NewSeed()
	if err != nil || s == 0 {
		return time.Now().UnixNano()
	}
	return s
}

// NewRand returns a generator seeded with Resolve(seed) and the seed it used.
func NewRand(seed int64) (*rand.Rand, int64) {
	seed = Resolve(seed)
	return rand.New(rand.NewSource(seed)), seed
}
