package algorithm

// insertion swaps each element left until its predecessor is not greater.
func insertion(p Primitives, size int, _ Source) {
	for i := 1; i < size; i++ {
		for j := i; j > 0 && p.Greater(j-1, j); j-- {
			p.Swap(j-1, j)
		}
	}
}

// shell runs gapped insertion sort with gaps size/2, size/4, ..., 1.
func shell(p Primitives, size int, _ Source) {
	for gap := size / 2; gap > 0; gap /= 2 {
		for i := gap; i < size; i++ {
			for j := i; j >= gap && p.Greater(j-gap, j); j -= gap {
				p.Swap(j-gap, j)
			}
		}
	}
}
