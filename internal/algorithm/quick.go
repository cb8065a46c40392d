package algorithm

// quickSort is recursive quick sort with the Lomuto partition scheme and
// the last element of each range as pivot.
func quickSort(p Primitives, size int, _ Source) {
	quickRange(p, 0, size-1)
}

func quickRange(p Primitives, low, high int) {
	if low >= high {
		return
	}
	pivot := partition(p, low, high)
	quickRange(p, low, pivot-1)
	quickRange(p, pivot+1, high)
}

// partition moves everything smaller than the pivot at high to the front of
// the range and returns the pivot's final index. The pivot stays at high
// until the last swap, so comparing against its cell is sound.
func partition(p Primitives, low, high int) int {
	i := low
	for j := low; j < high; j++ {
		if p.Less(j, high) {
			p.Swap(i, j)
			i++
		}
	}
	p.Swap(i, high)
	return i
}
