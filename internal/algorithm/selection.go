package algorithm

// selection swaps the minimum of the unsorted suffix into place.
func selection(p Primitives, size int, _ Source) {
	for i := 0; i < size-1; i++ {
		min := i
		for j := i + 1; j < size; j++ {
			if p.Greater(min, j) {
				min = j
			}
		}
		if min != i {
			p.Swap(i, min)
		}
	}
}

// cycle rotates each cycle of the permutation into place with raw reads
// and writes, carrying the displaced value in hand.
//
// The "skip equal values" loops only terminate because values are
// distinct; cycle must never run on data with duplicates.
func cycle(p Primitives, size int, _ Source) {
	for start := 0; start < size-1; start++ {
		item := p.Read(start)

		pos := cyclePosition(p, start, size, item)
		if pos == start {
			continue
		}
		for item == p.Read(pos) {
			pos++
		}
		item = cycleExchange(p, pos, item)

		for pos != start {
			pos = cyclePosition(p, start, size, item)
			for item == p.Read(pos) {
				pos++
			}
			if item != p.Read(pos) {
				item = cycleExchange(p, pos, item)
			}
		}
	}
}

// cyclePosition counts the values after start that are smaller than item.
func cyclePosition(p Primitives, start, size, item int) int {
	pos := start
	for i := start + 1; i < size; i++ {
		if p.Read(i) < item {
			pos++
		}
	}
	return pos
}

// cycleExchange writes item at pos and returns the value it displaced.
func cycleExchange(p Primitives, pos, item int) int {
	displaced := p.Read(pos)
	p.Write(pos, item)
	return displaced
}

// heap builds a binary max-heap, then repeatedly moves the root behind the
// shrinking heap.
func heap(p Primitives, size int, _ Source) {
	for i := size/2 - 1; i >= 0; i-- {
		siftDown(p, size, i)
	}
	for end := size - 1; end > 0; end-- {
		p.Swap(0, end)
		siftDown(p, end, 0)
	}
}

// siftDown restores the heap property below i within the first n cells.
// Recursion depth is bounded by the heap height.
func siftDown(p Primitives, n, i int) {
	largest := i
	left, right := 2*i+1, 2*i+2

	if left < n && p.Greater(left, largest) {
		largest = left
	}
	if right < n && p.Greater(right, largest) {
		largest = right
	}
	if largest != i {
		p.Swap(i, largest)
		siftDown(p, n, largest)
	}
}
