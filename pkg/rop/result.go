package rop

import (
	"time"

	"github.com/google/uuid"
)

// Result carries one unit of work along the rails. Its id is assigned when the
// unit enters the pipeline and survives every stage, so log lines for the same
// unit can be correlated.
type Result[T any] struct {
	id        uuid.UUID
	createdAt time.Time
	result    T
	err       error
	isSuccess bool
	isCancel  bool
}

func Success[T any](r T) Result[T] {
	return Result[T]{
		result:    r,
		isSuccess: true,
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
}

func Fail[T any](err error) Result[T] {
	return Result[T]{
		err:       err,
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
}

func Cancel[T any](err error) Result[T] {
	return Result[T]{
		err:       err,
		isCancel:  true,
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
}

// SuccessFrom moves a unit to the next stage with a new value.
func SuccessFrom[In, Out any](from Result[In], r Out) Result[Out] {
	return Result[Out]{
		result:    r,
		isSuccess: true,
		createdAt: from.createdAt,
		id:        from.id,
	}
}

// FailFrom derails a unit, keeping its identity.
func FailFrom[In, Out any](from Result[In], err error) Result[Out] {
	return Result[Out]{
		err:       err,
		createdAt: from.createdAt,
		id:        from.id,
	}
}

// CancelFrom marks a unit cancelled, keeping its identity.
func CancelFrom[In, Out any](from Result[In], err error) Result[Out] {
	return Result[Out]{
		err:       err,
		isCancel:  true,
		createdAt: from.createdAt,
		id:        from.id,
	}
}

// Carry re-types a failed or cancelled unit for the next stage unchanged.
func Carry[In, Out any](from Result[In]) Result[Out] {
	if from.isCancel {
		return CancelFrom[In, Out](from, from.err)
	}
	return FailFrom[In, Out](from, from.err)
}

func (r Result[T]) Result() T {
	return r.result
}

func (r Result[T]) Err() error {
	return r.err
}

func (r Result[T]) IsSuccess() bool {
	return r.isSuccess
}

func (r Result[T]) IsCancel() bool {
	return r.isCancel
}

// IsFailure is true for failed units, cancelled ones excluded.
func (r Result[T]) IsFailure() bool {
	return !r.isSuccess && !r.isCancel
}

func (r Result[T]) CreatedAt() time.Time {
	return r.createdAt
}

func (r Result[T]) Id() uuid.UUID {
	return r.id
}
