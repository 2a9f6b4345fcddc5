package lite

import (
	"context"

	"github.com/ib-77/remap/pkg/rop"
	"github.com/ib-77/remap/pkg/rop/core"
	"github.com/ib-77/remap/pkg/rop/mass"
)

func Run[T any](ctx context.Context, inputCh <-chan rop.Result[T],
	engine func(ctx context.Context, input rop.Result[T]) <-chan rop.Result[T],
	lines int) <-chan rop.Result[T] {
	return core.Lines(ctx, inputCh, engine, lines)
}

func Turnout[In, Out any](ctx context.Context, inputCh <-chan rop.Result[In],
	engine func(ctx context.Context, input rop.Result[In]) <-chan rop.Result[Out],
	lines int) <-chan rop.Result[Out] {
	return core.Lines(ctx, inputCh, engine, lines)
}

func Validate[T any](validate func(ctx context.Context, in T) error) func(ctx context.Context,
	input rop.Result[T]) <-chan rop.Result[T] {
	return func(ctx context.Context, input rop.Result[T]) <-chan rop.Result[T] {
		return mass.Validating(ctx, input, validate)
	}
}

func Map[In, Out any](mapOnSuccess func(ctx context.Context, r In) Out) func(ctx context.Context,
	input rop.Result[In]) <-chan rop.Result[Out] {
	return func(ctx context.Context, input rop.Result[In]) <-chan rop.Result[Out] {
		return mass.Mapping(ctx, input, mapOnSuccess)
	}
}

func Tee[T any](sideEffect func(ctx context.Context, r rop.Result[T])) func(ctx context.Context,
	input rop.Result[T]) <-chan rop.Result[T] {
	return func(ctx context.Context, input rop.Result[T]) <-chan rop.Result[T] {
		return mass.Teeing(ctx, input, sideEffect)
	}
}

func Try[In, Out any](
	onTryExecute func(ctx context.Context, r In) (Out, error)) func(ctx context.Context,
	input rop.Result[In]) <-chan rop.Result[Out] {
	return func(ctx context.Context, input rop.Result[In]) <-chan rop.Result[Out] {
		return mass.Trying(ctx, input, onTryExecute)
	}
}

func Finally[In, Out any](ctx context.Context, input <-chan rop.Result[In],
	handlers mass.FinallyHandlers[In, Out]) <-chan Out {
	return mass.Finalizing(ctx, input, handlers)
}
