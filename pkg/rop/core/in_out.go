package core

import (
	"context"

	"github.com/ib-77/remap/pkg/rop"
	"github.com/ib-77/remap/pkg/rop/solo"
)

// ToChanManyResults feeds values onto a channel as successful units. Feeding
// stops early when ctx is done; the channel is always closed.
func ToChanManyResults[T any](ctx context.Context, values []T) <-chan rop.Result[T] {
	in := make(chan rop.Result[T])

	go func() {
		defer close(in)

		if ctx.Err() != nil {
			return
		}

		for _, v := range values {
			select {
			case in <- solo.Succeed(v):
			case <-ctx.Done():
				return
			}
		}
	}()

	return in
}

// FromChanMany drains out until it is closed or ctx is done.
func FromChanMany[T any](ctx context.Context, out <-chan T) []T {
	res := make([]T, 0)

	for {
		select {
		case v, ok := <-out:
			if !ok {
				return res
			}
			res = append(res, v)
		case <-ctx.Done():
			return res
		}
	}
}
