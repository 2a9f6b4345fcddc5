package remap

import (
	"fmt"
	"slices"
)

// Stage is one remapping table. Values outside every rule map to themselves.
// A Stage is immutable once built and safe for concurrent use.
type Stage struct {
	name  string
	rules []Rule
}

// NewStage validates rules and builds a stage. Rules keep their declaration
// order; source ranges must be pairwise disjoint.
func NewStage(name string, rules ...Rule) (*Stage, error) {
	for i, r := range rules {
		if err := r.validate(); err != nil {
			return nil, Wrapf(err, CodeOf(err), "stage %q rule %d", name, i).
				WithDetail("stage", name).
				WithDetail("rule", i)
		}
	}

	if err := checkDisjoint(name, rules); err != nil {
		return nil, err
	}

	return &Stage{name: name, rules: slices.Clone(rules)}, nil
}

func checkDisjoint(name string, rules []Rule) error {
	order := make([]int, len(rules))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int {
		switch {
		case rules[a].Source < rules[b].Source:
			return -1
		case rules[a].Source > rules[b].Source:
			return 1
		}
		return 0
	})

	for k := 1; k < len(order); k++ {
		prev, cur := order[k-1], order[k]
		if rules[prev].SourceRange().Overlaps(rules[cur].SourceRange()) {
			first, second := min(prev, cur), max(prev, cur)
			return Newf(CodeOverlappingRules, "stage %q: rule %d (%s) overlaps rule %d (%s)",
				name, first, rules[first], second, rules[second]).
				WithDetail("stage", name).
				WithDetail("rules", []int{first, second})
		}
	}
	return nil
}

func (s *Stage) Name() string {
	return s.name
}

// Rules returns a copy of the rules in declaration order.
func (s *Stage) Rules() []Rule {
	return slices.Clone(s.rules)
}

// MapValue returns the image of v under the first rule containing it, or v.
func (s *Stage) MapValue(v uint64) uint64 {
	for _, r := range s.rules {
		if r.Contains(v) {
			return r.apply(v)
		}
	}
	return v
}

// MapRange partitions r against the rules and returns the images of the
// pieces. The result is pairwise disjoint in the source domain and its total
// length equals r.Len(). Pieces no rule touches come back unshifted.
//
// Each rule drains the current work queue into the next one; a piece split
// off by a rule is only tested against the rules after it.
func (s *Stage) MapRange(r Interval) []Interval {
	mustNonEmpty(r)

	resolved := make([]Interval, 0, 2)
	current := []Interval{r}
	next := make([]Interval, 0, 2)

	for _, rule := range s.rules {
		if len(current) == 0 {
			break
		}
		for _, in := range current {
			mapped, leftovers, ok := rule.split(in)
			if !ok {
				next = append(next, in)
				continue
			}
			resolved = append(resolved, mapped)
			next = append(next, leftovers...)
		}
		current, next = next, current[:0]
	}

	return append(resolved, current...)
}

func (s *Stage) String() string {
	return fmt.Sprintf("%s (%d rules)", s.name, len(s.rules))
}
