package algorithm

// bubble sweeps a shrinking prefix, floating the largest remaining value to
// its end, and stops after a sweep without swaps.
func bubble(p Primitives, size int, _ Source) {
	for end := size - 1; end > 0; end-- {
		swapped := false
		for i := 0; i < end; i++ {
			if p.Greater(i, i+1) {
				p.Swap(i, i+1)
				swapped = true
			}
		}
		if !swapped {
			return
		}
	}
}

// cocktail alternates forward and backward bubble sweeps, narrowing the
// unsorted window from both ends.
func cocktail(p Primitives, size int, _ Source) {
	lo, hi := 0, size-1
	for lo < hi {
		swapped := false
		for i := lo; i < hi; i++ {
			if p.Greater(i, i+1) {
				p.Swap(i, i+1)
				swapped = true
			}
		}
		hi--
		if !swapped {
			return
		}

		swapped = false
		for i := hi; i > lo; i-- {
			if p.Greater(i-1, i) {
				p.Swap(i-1, i)
				swapped = true
			}
		}
		lo++
		if !swapped {
			return
		}
	}
}

// gnome walks forward while neighbours are ordered and steps back after
// each swap.
func gnome(p Primitives, size int, _ Source) {
	index := 0
	for index < size {
		if index == 0 || !p.Greater(index-1, index) {
			index++
			continue
		}
		p.Swap(index-1, index)
		index--
	}
}

// oddEven is brick sort: an odd-indexed pass then an even-indexed pass,
// repeated until a full round makes no swap.
func oddEven(p Primitives, size int, _ Source) {
	sorted := false
	for !sorted {
		sorted = true
		for i := 1; i < size-1; i += 2 {
			if p.Greater(i, i+1) {
				p.Swap(i, i+1)
				sorted = false
			}
		}
		for i := 0; i < size-1; i += 2 {
			if p.Greater(i, i+1) {
				p.Swap(i, i+1)
				sorted = false
			}
		}
	}
}
