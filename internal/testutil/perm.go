package testutil

// Identity returns [1, 2, ..., n].
func Identity(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// Reversed returns [n, n-1, ..., 1].
func Reversed(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = n - i
	}
	return out
}

// Permutations returns every ordering of 1..n (n! slices) in the order
// Heap's algorithm produces them. Intended for small n.
func Permutations(n int) [][]int {
	cur := Identity(n)
	out := [][]int{append([]int{}, cur...)}

	c := make([]int, n)
	for i := 0; i < n; {
		if c[i] < i {
			if i%2 == 0 {
				cur[0], cur[i] = cur[i], cur[0]
			} else {
				cur[c[i]], cur[i] = cur[i], cur[c[i]]
			}
			out = append(out, append([]int{}, cur...))
			c[i]++
			i = 0
		} else {
			c[i] = 0
			i++
		}
	}
	return out
}

// Inversions counts pairs i < j with values[i] > values[j]. Any sort built
// from adjacent swaps performs exactly this many swaps.
func Inversions(values []int) int {
	n := 0
	for i := range values {
		for j := i + 1; j < len(values); j++ {
			if values[i] > values[j] {
				n++
			}
		}
	}
	return n
}
