package remap

// Combine is the reduction used to merge partial minima. It is associative and
// commutative, so partial results may be merged in any order or shape.
func Combine(a, b uint64) uint64 {
	return min(a, b)
}

// ReduceMinimum folds values pairwise as a balanced tree with Combine.
// ok is false for an empty slice.
func ReduceMinimum(values []uint64) (m uint64, ok bool) {
	if len(values) == 0 {
		return 0, false
	}

	level := make([]uint64, len(values))
	copy(level, values)

	for len(level) > 1 {
		half := (len(level) + 1) / 2
		for i := 0; i < half; i++ {
			if j := 2*i + 1; j < len(level) {
				level[i] = Combine(level[2*i], level[j])
			} else {
				level[i] = level[2*i]
			}
		}
		level = level[:half]
	}
	return level[0], true
}

func minimumStart(intervals []Interval) (uint64, bool) {
	starts := make([]uint64, len(intervals))
	for i, r := range intervals {
		starts[i] = r.Start
	}
	return ReduceMinimum(starts)
}
