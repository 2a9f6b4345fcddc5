package remap

import "fmt"

// Rule maps [Source, Source+Length) onto [Dest, Dest+Length).
type Rule struct {
	Source uint64
	Dest   uint64
	Length uint64
}

// NewRule validates the rule. Length must be positive and neither interval may
// run past the 64-bit domain.
func NewRule(source, dest, length uint64) (Rule, error) {
	r := Rule{Source: source, Dest: dest, Length: length}
	if err := r.validate(); err != nil {
		return Rule{}, err
	}
	return r, nil
}

func (r Rule) validate() error {
	if r.Length == 0 {
		return Newf(CodeMalformedRule, "rule %s has zero length", r)
	}
	if _, ok := checkedAdd(r.Source, r.Length); !ok {
		return Newf(CodeOverflow, "rule %s: source range exceeds the 64-bit domain", r).
			WithDetail("source", r.Source).
			WithDetail("length", r.Length)
	}
	if _, ok := checkedAdd(r.Dest, r.Length); !ok {
		return Newf(CodeOverflow, "rule %s: destination range exceeds the 64-bit domain", r).
			WithDetail("dest", r.Dest).
			WithDetail("length", r.Length)
	}
	return nil
}

func (r Rule) SourceRange() Interval {
	return Interval{Start: r.Source, End: r.Source + r.Length}
}

func (r Rule) DestRange() Interval {
	return Interval{Start: r.Dest, End: r.Dest + r.Length}
}

func (r Rule) Contains(v uint64) bool {
	return r.SourceRange().Contains(v)
}

// apply never overflows for a validated rule and v <= Source+Length:
// Dest + (v - Source) <= Dest + Length.
func (r Rule) apply(v uint64) uint64 {
	return r.Dest + (v - r.Source)
}

func (r Rule) shift(in Interval) Interval {
	return mustNonEmpty(Interval{Start: r.apply(in.Start), End: r.apply(in.End)})
}

// split classifies in against the source range. When they overlap it returns
// the shifted overlap and the zero, one or two pieces of in left outside the
// source range; otherwise ok is false.
func (r Rule) split(in Interval) (mapped Interval, leftovers []Interval, ok bool) {
	src := r.SourceRange()

	switch {
	case !in.Overlaps(src):
		return Interval{}, nil, false

	case src.Start <= in.Start && in.End <= src.End:
		return r.shift(in), nil, true

	case in.Start < src.Start && in.End <= src.End:
		return r.shift(Interval{Start: src.Start, End: in.End}),
			[]Interval{mustNonEmpty(Interval{Start: in.Start, End: src.Start})}, true

	case src.Start <= in.Start && src.End < in.End:
		return r.shift(Interval{Start: in.Start, End: src.End}),
			[]Interval{mustNonEmpty(Interval{Start: src.End, End: in.End})}, true

	default:
		return r.shift(src), []Interval{
			mustNonEmpty(Interval{Start: in.Start, End: src.Start}),
			mustNonEmpty(Interval{Start: src.End, End: in.End}),
		}, true
	}
}

func (r Rule) String() string {
	return fmt.Sprintf("%d->%d x%d", r.Source, r.Dest, r.Length)
}
