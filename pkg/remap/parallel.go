package remap

import (
	"context"
	"errors"
	"runtime"

	"github.com/ib-77/remap/pkg/logging"
	"github.com/ib-77/remap/pkg/rop"
	"github.com/ib-77/remap/pkg/rop/core"
	"github.com/ib-77/remap/pkg/rop/lite"
	"github.com/ib-77/remap/pkg/rop/mass"
)

// routed is one input interval together with everything it became.
type routed struct {
	input   Interval
	outputs []Interval
}

// shard is the partial answer of one input interval.
type shard struct {
	minimum uint64
	ok      bool
	err     error
}

// MinimumOutputParallel computes MinimumOutput with every input interval
// routed through all stages on its own worker line. Partial minima are merged
// with Combine, so the answer does not depend on scheduling.
//
// workers <= 0 falls back to the limit stored with core.WithWorkerOptions,
// then to runtime.NumCPU().
func (p *Pipeline) MinimumOutputParallel(ctx context.Context, inputs []Interval, workers int) (uint64, error) {
	if workers <= 0 {
		workers = core.GetWorkerMaxCount(ctx, runtime.NumCPU())
	}

	logger := logging.GetLogger("remap")
	logger.Debug().
		Int("workers", workers).
		Int("intervals", len(inputs)).
		Int("stages", len(p.stages)).
		Msg("routing intervals")

	handlers := mass.FinallyHandlers[routed, shard]{
		OnSuccess: func(_ context.Context, r routed) shard {
			m, ok := minimumStart(r.outputs)
			return shard{minimum: m, ok: ok}
		},
		OnError: func(_ context.Context, err error) shard {
			return shard{err: err}
		},
		OnCancel: func(_ context.Context, err error) shard {
			return shard{err: err}
		},
	}

	shards := core.FromChanMany(ctx,
		lite.Finally(ctx,
			lite.Run(ctx,
				lite.Turnout(ctx,
					lite.Run(ctx,
						core.ToChanManyResults(ctx, inputs),
						lite.Validate(validateInput), workers),
					lite.Try(p.routeOne), workers),
				lite.Tee(logRouted), workers),
			handlers),
	)

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var errs []error
	minima := make([]uint64, 0, len(shards))
	for _, s := range shards {
		switch {
		case s.err != nil:
			errs = append(errs, s.err)
		case s.ok:
			minima = append(minima, s.minimum)
		}
	}
	if len(errs) > 0 {
		return 0, errors.Join(errs...)
	}

	m, ok := ReduceMinimum(minima)
	if !ok {
		return 0, New(CodeEmptyInput, "no input values to map")
	}
	return m, nil
}

func validateInput(_ context.Context, r Interval) error {
	return checkInput(r)
}

// routeOne pushes one interval and all of its descendants through every stage.
func (p *Pipeline) routeOne(ctx context.Context, r Interval) (routed, error) {
	if r.IsEmpty() {
		return routed{input: r}, nil
	}

	current := []Interval{r}
	for _, s := range p.stages {
		if err := ctx.Err(); err != nil {
			return routed{}, err
		}
		next := make([]Interval, 0, len(current))
		for _, in := range current {
			next = append(next, s.MapRange(in)...)
		}
		current = next
	}
	return routed{input: r, outputs: current}, nil
}

func logRouted(_ context.Context, r rop.Result[routed]) {
	logger := logging.GetLogger("remap")
	logger.Trace().
		Str("id", r.Id().String()).
		Str("input", r.Result().input.String()).
		Int("pieces", len(r.Result().outputs)).
		Msg("interval routed")
}
