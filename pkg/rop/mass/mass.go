package mass

import (
	"context"

	"github.com/ib-77/remap/pkg/rop"
	"github.com/ib-77/remap/pkg/rop/solo"
)

// lifting runs step in its own goroutine. The buffered channel lets the
// goroutine finish even when the reader has already left on cancellation.
// Nothing is sent if ctx is done before step starts.
func lifting[Out any](ctx context.Context, step func() rop.Result[Out]) <-chan rop.Result[Out] {
	out := make(chan rop.Result[Out], 1)

	go func() {
		defer close(out)

		if ctx.Err() != nil {
			return
		}
		out <- step()
	}()

	return out
}

func Validating[T any](ctx context.Context, input rop.Result[T],
	validate func(ctx context.Context, in T) error) <-chan rop.Result[T] {
	return lifting(ctx, func() rop.Result[T] {
		return solo.AndValidate(ctx, input, validate)
	})
}

func Mapping[In, Out any](ctx context.Context, input rop.Result[In],
	mapOnSuccess func(ctx context.Context, r In) Out) <-chan rop.Result[Out] {
	return lifting(ctx, func() rop.Result[Out] {
		return solo.Map(ctx, input, mapOnSuccess)
	})
}

func Trying[In, Out any](ctx context.Context, input rop.Result[In],
	onTryExecute func(ctx context.Context, r In) (Out, error)) <-chan rop.Result[Out] {
	return lifting(ctx, func() rop.Result[Out] {
		return solo.Try(ctx, input, onTryExecute)
	})
}

func Teeing[T any](ctx context.Context, input rop.Result[T],
	sideEffect func(ctx context.Context, r rop.Result[T])) <-chan rop.Result[T] {
	return lifting(ctx, func() rop.Result[T] {
		return solo.Tee(ctx, input, sideEffect)
	})
}

type FinallyHandlers[In, Out any] struct {
	OnSuccess func(ctx context.Context, r In) Out
	OnError   func(ctx context.Context, err error) Out
	OnCancel  func(ctx context.Context, err error) Out
}

// Finalizing maps every unit of inputCh to a concrete value. The returned
// channel closes when inputCh closes or ctx is done.
func Finalizing[In, Out any](ctx context.Context, inputCh <-chan rop.Result[In],
	handlers FinallyHandlers[In, Out]) <-chan Out {

	out := make(chan Out)

	go func() {
		defer close(out)

		for {
			select {
			case <-ctx.Done():
				return
			case in, ok := <-inputCh:
				if !ok {
					return
				}

				res := solo.Finally(ctx, in, handlers.OnSuccess, handlers.OnError, handlers.OnCancel)

				select {
				case <-ctx.Done():
					return
				case out <- res:
				}
			}
		}
	}()

	return out
}
