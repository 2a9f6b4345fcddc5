package lite

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ib-77/remap/pkg/rop"
	"github.com/ib-77/remap/pkg/rop/core"
	"github.com/ib-77/remap/pkg/rop/mass"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doubling(ctx context.Context, input rop.Result[int]) <-chan rop.Result[int] {
	return mass.Mapping(ctx, input, func(_ context.Context, r int) int {
		return r * 2
	})
}

// Test Run function with single worker
func TestRun_SingleWorker(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	input := []int{1, 2, 3, 4, 5}

	var results []int
	for result := range Run(ctx, core.ToChanManyResults(ctx, input), doubling, 1) {
		if !result.IsSuccess() {
			t.Errorf("Unexpected error: %v", result.Err())
			continue
		}
		results = append(results, result.Result())
	}

	// a single line keeps the input order
	assert.Equal(t, []int{2, 4, 6, 8, 10}, results)
}

// Test Run function with multiple workers
func TestRun_MultipleWorkers(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	input := make([]int, 100)
	for i := range input {
		input[i] = i + 1
	}

	var active, peak atomic.Int32
	slow := func(ctx context.Context, input rop.Result[int]) <-chan rop.Result[int] {
		return mass.Mapping(ctx, input, func(_ context.Context, r int) int {
			n := active.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			active.Add(-1)
			return r
		})
	}

	start := time.Now()
	var results []int
	for result := range Run(ctx, core.ToChanManyResults(ctx, input), slow, 5) {
		require.True(t, result.IsSuccess())
		results = append(results, result.Result())
	}

	slices.Sort(results)
	assert.Equal(t, input, results)
	assert.LessOrEqual(t, peak.Load(), int32(5))
	if time.Since(start) > time.Second {
		t.Errorf("Processing took too long: %v", time.Since(start))
	}
}

// Test Run with context cancellation
func TestRun_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	input := make([]int, 50)
	for i := range input {
		input[i] = i + 1
	}

	slow := func(ctx context.Context, input rop.Result[int]) <-chan rop.Result[int] {
		return mass.Mapping(ctx, input, func(_ context.Context, r int) int {
			time.Sleep(20 * time.Millisecond)
			return r
		})
	}

	resultCh := Run(ctx, core.ToChanManyResults(ctx, input), slow, 2)

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	count := 0
	for range resultCh {
		count++
	}

	if count >= len(input) {
		t.Errorf("Expected cancellation to stop processing, but got %d results", count)
	}
}

// Test Turnout function with type conversion
func TestTurnout_TypeConversion(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	input := []int{1, 2, 3}
	format := Map(func(_ context.Context, r int) string {
		return fmt.Sprintf("num_%d", r)
	})

	var results []string
	for result := range Turnout(ctx, core.ToChanManyResults(ctx, input), format, 2) {
		require.True(t, result.IsSuccess())
		results = append(results, result.Result())
	}

	assert.ElementsMatch(t, []string{"num_1", "num_2", "num_3"}, results)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	errNegative := errors.New("value must be positive")
	validator := Validate(func(_ context.Context, in int) error {
		if in <= 0 {
			return errNegative
		}
		return nil
	})

	valid := rop.Success(5)
	result := <-validator(ctx, valid)
	assert.True(t, result.IsSuccess())
	assert.Equal(t, 5, result.Result())
	assert.Equal(t, valid.Id(), result.Id())

	invalid := rop.Success(-5)
	result = <-validator(ctx, invalid)
	assert.True(t, result.IsFailure())
	assert.ErrorIs(t, result.Err(), errNegative)
	assert.Equal(t, invalid.Id(), result.Id())
}

func TestTry(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	try := Try(func(ctx context.Context, r int) (string, error) {
		switch {
		case r < 0:
			return "", errors.New("negative number")
		case r == 0:
			return "", context.Canceled
		}
		return "positive", nil
	})

	result := <-try(ctx, rop.Success(1))
	assert.True(t, result.IsSuccess())
	assert.Equal(t, "positive", result.Result())

	result = <-try(ctx, rop.Success(-1))
	assert.True(t, result.IsFailure())
	assert.EqualError(t, result.Err(), "negative number")

	result = <-try(ctx, rop.Success(0))
	assert.True(t, result.IsCancel())
}

func TestTee_OnlySeesSuccesses(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	var seen atomic.Int32
	tee := Tee(func(_ context.Context, r rop.Result[int]) {
		seen.Add(1)
	})

	<-tee(ctx, rop.Success(1))
	<-tee(ctx, rop.Fail[int](errors.New("boom")))

	assert.Equal(t, int32(1), seen.Load())
}

// Full line: validate, convert, finish. Rejected units reach OnError.
func TestFinally_Pipeline(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	ctx = core.WithWorkerOptions(ctx, 2)
	workers := core.GetWorkerMaxCount(ctx, 5)
	require.Equal(t, 2, workers)

	handlers := mass.FinallyHandlers[int, int]{
		OnSuccess: func(_ context.Context, in int) int { return in },
		OnError:   func(_ context.Context, err error) int { return -1 },
		OnCancel:  func(_ context.Context, err error) int { return -2 },
	}

	results := core.FromChanMany(ctx,
		Finally(ctx,
			Turnout(ctx,
				Run(ctx,
					core.ToChanManyResults(ctx, []int{10, 5, 1, 20, 2}),
					Validate(func(_ context.Context, in int) error {
						if in == 1 {
							return errors.New("value should not be 1")
						}
						return nil
					}),
					workers),
				Map(func(_ context.Context, r int) int { return r + 1000 }),
				workers),
			handlers))

	assert.ElementsMatch(t, []int{1010, 1005, -1, 1020, 1002}, results)
}
