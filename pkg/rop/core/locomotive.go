package core

import (
	"context"
	"sync"

	"github.com/ib-77/remap/pkg/rop"
)

// Locomotive is one worker line: it pulls units from inputCh, runs engine on
// each and pushes the outcome to outCh until the input closes or ctx is done.
func Locomotive[In, Out any](ctx context.Context, inputCh <-chan rop.Result[In], outCh chan<- rop.Result[Out],
	engine func(ctx context.Context, input rop.Result[In]) <-chan rop.Result[Out],
	wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case in, ok := <-inputCh:
			if !ok {
				return
			}

			select {
			case <-ctx.Done():
				return
			case pr, running := <-engine(ctx, in):
				if !running {
					return
				}

				select {
				case <-ctx.Done():
					return
				case outCh <- pr:
				}
			}
		}
	}
}

// Lines starts n locomotives over inputCh and closes the returned channel once
// all of them have stopped.
func Lines[In, Out any](ctx context.Context, inputCh <-chan rop.Result[In],
	engine func(ctx context.Context, input rop.Result[In]) <-chan rop.Result[Out],
	n int) <-chan rop.Result[Out] {

	out := make(chan rop.Result[Out])
	wg := &sync.WaitGroup{}

	for range max(n, 1) {
		wg.Add(1)
		go Locomotive(ctx, inputCh, out, engine, wg)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}
