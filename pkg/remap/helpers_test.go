package remap

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustRule(t *testing.T, source, dest, length uint64) Rule {
	t.Helper()
	r, err := NewRule(source, dest, length)
	require.NoError(t, err)
	return r
}

func mustStage(t *testing.T, name string, rules ...Rule) *Stage {
	t.Helper()
	s, err := NewStage(name, rules...)
	require.NoError(t, err)
	return s
}

func mustPipeline(t *testing.T, stages ...*Stage) *Pipeline {
	t.Helper()
	p, err := NewPipeline(stages...)
	require.NoError(t, err)
	return p
}

// permutationStage cuts [0, n) into blocks and lays them out again in a
// random order, so the stage is a bijection on [0, n) and identity above it.
// Rules are declared in random order.
func permutationStage(t *testing.T, rng *rand.Rand, name string, n uint64, blocks int) *Stage {
	t.Helper()

	cuts := map[uint64]struct{}{}
	for len(cuts) < blocks-1 {
		cuts[1+rng.Uint64N(n-1)] = struct{}{}
	}
	bounds := []uint64{0, n}
	for c := range cuts {
		bounds = append(bounds, c)
	}
	slices.Sort(bounds)

	lengths := make([]uint64, len(bounds)-1)
	for i := range lengths {
		lengths[i] = bounds[i+1] - bounds[i]
	}

	dest := make([]uint64, len(lengths))
	var pos uint64
	for _, idx := range rng.Perm(len(lengths)) {
		dest[idx] = pos
		pos += lengths[idx]
	}

	rules := make([]Rule, len(lengths))
	for i := range lengths {
		rules[i] = mustRule(t, bounds[i], dest[i], lengths[i])
	}
	rng.Shuffle(len(rules), func(i, j int) { rules[i], rules[j] = rules[j], rules[i] })

	return mustStage(t, name, rules...)
}

// sparseStage maps a few disjoint blocks of [0, n) anywhere in [0, 2n), so
// outputs may collide with identity pieces.
func sparseStage(t *testing.T, rng *rand.Rand, name string, n uint64, blocks int) *Stage {
	t.Helper()

	width := n / uint64(blocks)
	rules := make([]Rule, 0, blocks)
	for b := range blocks {
		start := uint64(b)*width + rng.Uint64N(width/2)
		length := 1 + rng.Uint64N(width/2)
		rules = append(rules, mustRule(t, start, rng.Uint64N(2*n), length))
	}
	return mustStage(t, name, rules...)
}

// expand lists every value covered by intervals, sorted.
func expand(intervals []Interval) []uint64 {
	var values []uint64
	for _, r := range intervals {
		for v := r.Start; v < r.End; v++ {
			values = append(values, v)
		}
	}
	slices.Sort(values)
	return values
}

func randomInterval(rng *rand.Rand, limit uint64) Interval {
	start := rng.Uint64N(limit)
	return Interval{Start: start, End: start + 1 + rng.Uint64N(limit-start)}
}
