package testutil

import "sync"

// ScriptedSource replays a fixed list of draws, cycling when it runs out.
// Each draw is reduced modulo n, so any script is valid for any bound.
//
// It satisfies algorithm.Source and makes shuffles fully predictable.
type ScriptedSource struct {
	mu    sync.Mutex
	draws []int
	idx   int
}

// NewScriptedSource creates a source over draws. With no draws every
// Intn returns 0.
func NewScriptedSource(draws ...int) *ScriptedSource {
	return &ScriptedSource{draws: draws}
}

// Intn returns the next scripted draw modulo n. Panics if n <= 0, like
// math/rand.
func (s *ScriptedSource) Intn(n int) int {
	if n <= 0 {
		panic("ScriptedSource: invalid argument to Intn")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.draws) == 0 {
		return 0
	}
	d := s.draws[s.idx%len(s.draws)]
	s.idx++
	if d < 0 {
		d = -d
	}
	return d % n
}

// Calls returns how many draws have been taken.
func (s *ScriptedSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.idx
}
