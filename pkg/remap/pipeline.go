package remap

import (
	"slices"

	"github.com/ib-77/remap/pkg/logging"
)

// Pipeline applies its stages left to right. Stage i's output is stage i+1's
// input. A Pipeline is immutable once built and safe for concurrent use.
type Pipeline struct {
	stages []*Stage
}

func NewPipeline(stages ...*Stage) (*Pipeline, error) {
	for i, s := range stages {
		if s == nil {
			return nil, Newf(CodeMalformedInput, "stage %d is nil", i).WithDetail("stage", i)
		}
	}
	return &Pipeline{stages: slices.Clone(stages)}, nil
}

func (p *Pipeline) Stages() []*Stage {
	return slices.Clone(p.stages)
}

func (p *Pipeline) Len() int {
	return len(p.stages)
}

// MapScalar folds every stage's MapValue over v.
func (p *Pipeline) MapScalar(v uint64) uint64 {
	for _, s := range p.stages {
		v = s.MapValue(v)
	}
	return v
}

// Trace returns v after each stage, in stage order.
func (p *Pipeline) Trace(v uint64) []uint64 {
	steps := make([]uint64, 0, len(p.stages))
	for _, s := range p.stages {
		v = s.MapValue(v)
		steps = append(steps, v)
	}
	return steps
}

// MapRanges routes every input interval through every stage and returns the
// union of the final pieces. Zero-length inputs hold no values and are
// skipped; an input with End < Start is rejected.
func (p *Pipeline) MapRanges(inputs []Interval) ([]Interval, error) {
	valid, err := checkInputs(inputs)
	if err != nil {
		return nil, err
	}
	return p.route(valid), nil
}

// route assumes non-empty inputs.
func (p *Pipeline) route(inputs []Interval) []Interval {
	logger := logging.GetLogger("remap")

	current := slices.Clone(inputs)
	for _, s := range p.stages {
		next := make([]Interval, 0, len(current))
		for _, r := range current {
			next = append(next, s.MapRange(r)...)
		}
		logger.Trace().
			Str("stage", s.Name()).
			Int("in", len(current)).
			Int("out", len(next)).
			Msg("stage applied")
		current = next
	}
	return current
}

// MinimumOutput returns the smallest value reachable from any value in inputs.
func (p *Pipeline) MinimumOutput(inputs []Interval) (uint64, error) {
	valid, err := checkInputs(inputs)
	if err != nil {
		return 0, err
	}
	if len(valid) == 0 {
		return 0, New(CodeEmptyInput, "no input values to map")
	}

	m, _ := minimumStart(p.route(valid))
	return m, nil
}

// MinimumScalar returns the smallest MapScalar image of values.
func (p *Pipeline) MinimumScalar(values []uint64) (uint64, error) {
	if len(values) == 0 {
		return 0, New(CodeEmptyInput, "no input values to map")
	}

	images := make([]uint64, len(values))
	for i, v := range values {
		images[i] = p.MapScalar(v)
	}
	m, _ := ReduceMinimum(images)
	return m, nil
}

func checkInputs(inputs []Interval) ([]Interval, error) {
	valid := make([]Interval, 0, len(inputs))
	for i, r := range inputs {
		if err := checkInput(r); err != nil {
			return nil, Wrapf(err, CodeInvalidInterval, "input %d", i).WithDetail("input", i)
		}
		if !r.IsEmpty() {
			valid = append(valid, r)
		}
	}
	return valid, nil
}

func checkInput(r Interval) error {
	if !r.WellFormed() {
		return Newf(CodeInvalidInterval, "interval %s ends before it starts", r).
			WithDetail("interval", r.String())
	}
	return nil
}
