package core

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every kernel group. Callers match with errors.Is.
var (
	// ErrInvalidBufferLength reports a fixed-size buffer argument of the wrong length.
	ErrInvalidBufferLength = errors.New("invalid buffer length")

	// ErrEmptyPattern reports an empty search pattern where one is not allowed.
	ErrEmptyPattern = errors.New("empty pattern")

	// ErrIndexOutOfRange reports a read or write outside a buffer.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// BufferError describes a rejected buffer argument.
type BufferError struct {
	Op   string // operation name, e.g. "matrix.MultiplyInto"
	Arg  string // argument name
	Want int    // required length (or bound)
	Got  int    // observed length (or index)
	Err  error  // one of the sentinels above
}

func (e *BufferError) Error() string {
	return fmt.Sprintf("%s: %s: %v (want %d, got %d)", e.Op, e.Arg, e.Err, e.Want, e.Got)
}

func (e *BufferError) Unwrap() error { return e.Err }

// CheckLen returns an ErrInvalidBufferLength error when got != want.
func CheckLen(op, arg string, got, want int) error {
	if got != want {
		return &BufferError{Op: op, Arg: arg, Want: want, Got: got, Err: ErrInvalidBufferLength}
	}
	return nil
}

// CheckMinLen returns an ErrInvalidBufferLength error when got < want.
func CheckMinLen(op, arg string, got, want int) error {
	if got < want {
		return &BufferError{Op: op, Arg: arg, Want: want, Got: got, Err: ErrInvalidBufferLength}
	}
	return nil
}

// OutOfRange builds an ErrIndexOutOfRange error for index idx against bound.
func OutOfRange(op, arg string, idx, bound int) error {
	return &BufferError{Op: op, Arg: arg, Want: bound, Got: idx, Err: ErrIndexOutOfRange}
}
