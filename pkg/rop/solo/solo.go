package solo

import (
	"context"

	"github.com/ib-77/remap/pkg/rop"
)

func Succeed[T any](input T) rop.Result[T] {
	return rop.Success(input)
}

func Fail[T any](err error) rop.Result[T] {
	return rop.Fail[T](err)
}

func Cancel[T any](err error) rop.Result[T] {
	return rop.Cancel[T](err)
}

func Validate[T any](ctx context.Context, input T,
	validate func(ctx context.Context, in T) error) rop.Result[T] {
	return AndValidate(ctx, Succeed(input), validate)
}

// AndValidate keeps a successful unit on the rails only if validate accepts it.
func AndValidate[T any](ctx context.Context, input rop.Result[T],
	validate func(ctx context.Context, in T) error) rop.Result[T] {

	if !input.IsSuccess() {
		return input
	}

	if err := validate(ctx, input.Result()); err != nil {
		return rop.FailFrom[T, T](input, err)
	}
	return input
}

func Map[In any, Out any](ctx context.Context,
	input rop.Result[In],
	onSuccess func(ctx context.Context, r In) Out) rop.Result[Out] {

	if input.IsSuccess() {
		return rop.SuccessFrom(input, onSuccess(ctx, input.Result()))
	}
	return rop.Carry[In, Out](input)
}

// Try runs onTryExecute on a successful unit. Cancellation errors cancel the
// unit, any other error fails it.
func Try[In any, Out any](ctx context.Context, input rop.Result[In],
	onTryExecute func(ctx context.Context, r In) (Out, error)) rop.Result[Out] {

	if !input.IsSuccess() {
		return rop.Carry[In, Out](input)
	}

	out, err := onTryExecute(ctx, input.Result())
	if err != nil {
		if rop.IsCancellationError(err) {
			return rop.CancelFrom[In, Out](input, err)
		}
		return rop.FailFrom[In, Out](input, err)
	}

	return rop.SuccessFrom(input, out)
}

func Tee[T any](ctx context.Context,
	input rop.Result[T],
	onSuccess func(ctx context.Context, r rop.Result[T])) rop.Result[T] {

	if input.IsSuccess() {
		onSuccess(ctx, input)
	}

	return input
}

func Finally[In, Out any](ctx context.Context, input rop.Result[In],
	onSuccess func(ctx context.Context, r In) Out,
	onError func(ctx context.Context, err error) Out,
	onCancel func(ctx context.Context, err error) Out) Out {

	if input.IsSuccess() {
		return onSuccess(ctx, input.Result())
	} else if input.IsCancel() {
		return onCancel(ctx, input.Err())
	} else {
		return onError(ctx, input.Err())
	}
}
