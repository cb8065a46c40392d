package algorithm

// shuffle is Fisher-Yates: each index below the last swaps with a uniform
// index at or after it. Every permutation is equally likely.
func shuffle(p Primitives, size int, rng Source) {
	for i := 0; i < size-1; i++ {
		j := i + rng.Intn(size-i)
		p.Swap(i, j)
	}
}

// reverse overwrites the buffer with size, size-1, ..., 1 without reading it.
func reverse(p Primitives, size int, _ Source) {
	for i := 0; i < size; i++ {
		p.Write(i, size-i)
	}
}
