package remap

import (
	"fmt"
	"math/bits"
)

// Interval is the half-open range [Start, End).
type Interval struct {
	// Start is the inclusive start of the range.
	Start uint64

	// End is the exclusive end of the range.
	End uint64
}

// NewInterval returns [start, start+length). The end must fit in 64 bits.
func NewInterval(start, length uint64) (Interval, error) {
	if length == 0 {
		return Interval{}, Newf(CodeInvalidInterval, "interval at %d has zero length", start).
			WithDetail("start", start)
	}
	end, ok := checkedAdd(start, length)
	if !ok {
		return Interval{}, Newf(CodeOverflow, "interval %d+%d exceeds the 64-bit domain", start, length).
			WithDetail("start", start).
			WithDetail("length", length)
	}
	return Interval{Start: start, End: end}, nil
}

// WellFormed returns true if r.Start <= r.End. All other methods on an
// Interval require that it is well-formed.
func (r Interval) WellFormed() bool {
	return r.Start <= r.End
}

func (r Interval) Len() uint64 {
	return r.End - r.Start
}

func (r Interval) IsEmpty() bool {
	return r.End <= r.Start
}

func (r Interval) Contains(v uint64) bool {
	return r.Start <= v && v < r.End
}

func (r Interval) Overlaps(o Interval) bool {
	return r.Start < o.End && o.Start < r.End
}

// Intersect returns the overlap of r and o. If they do not overlap the result
// has unspecified bounds and Len() == 0.
func (r Interval) Intersect(o Interval) Interval {
	if r.Start < o.Start {
		r.Start = o.Start
	}
	if r.End > o.End {
		r.End = o.End
	}
	if r.End < r.Start {
		r.End = r.Start
	}
	return r
}

func (r Interval) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

// TotalLen sums the lengths of intervals.
func TotalLen(intervals []Interval) uint64 {
	var total uint64
	for _, r := range intervals {
		total += r.Len()
	}
	return total
}

func checkedAdd(a, b uint64) (uint64, bool) {
	sum, carry := bits.Add64(a, b, 0)
	return sum, carry == 0
}

// mustNonEmpty guards the splitting math: an empty piece is a logic bug.
func mustNonEmpty(r Interval) Interval {
	if r.IsEmpty() {
		panic(fmt.Sprintf("remap: empty interval %s produced", r))
	}
	return r
}
