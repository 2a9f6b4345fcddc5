package remap

import (
	"errors"
	"fmt"
)

// ErrorCode identifies an error category independently of its message.
type ErrorCode string

const (
	CodeUnknown          ErrorCode = "UNKNOWN"
	CodeMalformedRule    ErrorCode = "MALFORMED_RULE"
	CodeMalformedInput   ErrorCode = "MALFORMED_INPUT"
	CodeOverflow         ErrorCode = "OVERFLOW"
	CodeOverlappingRules ErrorCode = "OVERLAPPING_RULES"
	CodeInvalidInterval  ErrorCode = "INVALID_INTERVAL"
	CodeEmptyInput       ErrorCode = "EMPTY_INPUT"
)

// Sentinels for errors.Is. Any *Error with the same code matches.
var (
	ErrMalformedRule    = New(CodeMalformedRule, "malformed rule")
	ErrMalformedInput   = New(CodeMalformedInput, "malformed input")
	ErrOverflow         = New(CodeOverflow, "arithmetic overflow")
	ErrOverlappingRules = New(CodeOverlappingRules, "overlapping rules")
	ErrInvalidInterval  = New(CodeInvalidInterval, "invalid interval")
	ErrEmptyInput       = New(CodeEmptyInput, "empty input")
)

// Error is a structured construction or query error.
type Error struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// WithDetail records a key/value pair on the error and returns it.
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap returns nil when err is nil.
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *Error {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// CodeOf returns the code of the first *Error in err's chain, or CodeUnknown.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}
