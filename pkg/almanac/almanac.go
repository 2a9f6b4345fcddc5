package almanac

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"

	"github.com/ib-77/remap/pkg/remap"
)

// Almanac is a parsed input: the initial seed values and the stage tables in
// the order they apply.
type Almanac struct {
	Seeds  []uint64
	Stages []*remap.Stage
}

// Category names one stage's source and destination, e.g. seed -> soil.
type Category struct {
	Source      string
	Destination string
}

func Parse(r io.Reader) (*Almanac, error) {
	return parse("", r)
}

func ParseString(s string) (*Almanac, error) {
	return parse("", strings.NewReader(s))
}

func ParseFile(path string) (*Almanac, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open almanac: %w", err)
	}
	defer f.Close()

	return parse(path, f)
}

func parse(filename string, r io.Reader) (*Almanac, error) {
	tree, err := parser.Parse(filename, r)
	if err != nil {
		return nil, grammarError(err)
	}

	seeds := make([]uint64, 0, len(tree.Seeds.Values))
	for i, s := range tree.Seeds.Values {
		v, err := parseNumber(s)
		if err != nil {
			return nil, remap.Wrapf(err, remap.CodeMalformedInput, "line %d: seed %d %q", tree.Seeds.Pos.Line, i, s).
				WithDetail("line", tree.Seeds.Pos.Line)
		}
		seeds = append(seeds, v)
	}

	stages := make([]*remap.Stage, 0, len(tree.Maps))
	for _, m := range tree.Maps {
		stage, err := buildStage(m)
		if err != nil {
			return nil, err
		}
		stages = append(stages, stage)
	}

	return &Almanac{Seeds: seeds, Stages: stages}, nil
}

func buildStage(m *mapNode) (*remap.Stage, error) {
	cat := parseHeader(m.Header)
	name := cat.Source + "-to-" + cat.Destination

	rules := make([]remap.Rule, 0, len(m.Rules))
	for _, node := range m.Rules {
		rule, err := buildRule(node)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	stage, err := remap.NewStage(name, rules...)
	if err != nil {
		return nil, remap.Wrapf(err, remap.CodeOf(err), "line %d: map %s", m.Pos.Line, name).
			WithDetail("line", m.Pos.Line)
	}
	return stage, nil
}

// buildRule reads a "dest source length" line.
func buildRule(node *ruleNode) (remap.Rule, error) {
	line := node.Pos.Line

	if len(node.Fields) != 3 {
		return remap.Rule{}, remap.Newf(remap.CodeMalformedRule,
			"line %d: want 3 fields (dest source length), got %d", line, len(node.Fields)).
			WithDetail("line", line)
	}

	var nums [3]uint64
	for i, f := range node.Fields {
		v, err := parseNumber(f)
		if err != nil {
			return remap.Rule{}, remap.Wrapf(err, remap.CodeMalformedRule, "line %d: field %d %q", line, i+1, f).
				WithDetail("line", line)
		}
		nums[i] = v
	}

	rule, err := remap.NewRule(nums[1], nums[0], nums[2])
	if err != nil {
		return remap.Rule{}, remap.Wrapf(err, remap.CodeOf(err), "line %d", line).
			WithDetail("line", line)
	}
	return rule, nil
}

func parseHeader(header string) Category {
	// the lexer guarantees "<source>-to-<dest> map:"
	source, dest, _ := strings.Cut(strings.Fields(header)[0], "-to-")
	return Category{Source: source, Destination: dest}
}

func parseNumber(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, remap.Newf(remap.CodeOverflow, "%s exceeds the 64-bit domain", s)
		}
		return 0, fmt.Errorf("%q is not an unsigned integer", s)
	}
	return v, nil
}

func grammarError(err error) error {
	var perr participle.Error
	if errors.As(err, &perr) {
		pos := perr.Position()
		return remap.Wrapf(err, remap.CodeMalformedInput, "line %d: %s", pos.Line, perr.Message()).
			WithDetail("line", pos.Line)
	}
	return remap.Wrap(err, remap.CodeMalformedInput, "failed to read almanac")
}

// Categories lists each stage's source and destination category.
func (a *Almanac) Categories() []Category {
	cats := make([]Category, 0, len(a.Stages))
	for _, s := range a.Stages {
		source, dest, _ := strings.Cut(s.Name(), "-to-")
		cats = append(cats, Category{Source: source, Destination: dest})
	}
	return cats
}

func (a *Almanac) Pipeline() (*remap.Pipeline, error) {
	return remap.NewPipeline(a.Stages...)
}

// SeedRanges reads the seeds as consecutive (start, length) pairs.
func (a *Almanac) SeedRanges() ([]remap.Interval, error) {
	if len(a.Seeds)%2 != 0 {
		return nil, remap.Newf(remap.CodeMalformedInput, "seed ranges need pairs, got %d values", len(a.Seeds))
	}

	ranges := make([]remap.Interval, 0, len(a.Seeds)/2)
	for i := 0; i < len(a.Seeds); i += 2 {
		r, err := remap.NewInterval(a.Seeds[i], a.Seeds[i+1])
		if err != nil {
			return nil, remap.Wrapf(err, remap.CodeOf(err), "seed pair %d", i/2).
				WithDetail("pair", i/2)
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}
